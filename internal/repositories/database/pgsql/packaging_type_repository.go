package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	"github.com/kemasku/packshop_backend/internal/models"
	"github.com/kemasku/packshop_backend/internal/utils/mapping"
)

type PgxPackagingTypeRepository struct {
	BaseRepository
}

func newPgxPackagingTypeRepository(pool *pgxpool.Pool) portsrepo.PackagingTypeRepositoryFacade {
	return &PgxPackagingTypeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PackagingTypeRepositoryFacade = (*PgxPackagingTypeRepository)(nil)

const packagingTypeColumns = `packaging_type_id, name, description, sizes, created_at, created_by, last_updated_at, last_updated_by`

func toDomainPackagingType(m models.PackagingType) domain.PackagingType {
	sizes := make([]domain.PackagingSize, 0, len(m.Sizes))
	for _, s := range m.Sizes {
		sizes = append(sizes, domain.PackagingSize{Size: s.Size, Price: s.Price})
	}
	return domain.PackagingType{
		PackagingTypeID: m.PackagingTypeID,
		Name:            m.Name,
		Description:     m.Description,
		Sizes:           sizes,
		AuditFields:     mapping.ToDomainAuditFields(m.AuditFields),
	}
}

func modelSizes(d domain.PackagingType) ([]byte, error) {
	sizes := make([]models.PackagingSize, 0, len(d.Sizes))
	for _, s := range d.Sizes {
		sizes = append(sizes, models.PackagingSize{Size: s.Size, Price: s.Price})
	}
	raw, err := json.Marshal(sizes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal packaging sizes: %w", err)
	}
	return raw, nil
}

func (r *PgxPackagingTypeRepository) scanRow(row pgx.Row) (models.PackagingType, error) {
	var m models.PackagingType
	var rawSizes []byte
	err := row.Scan(
		&m.PackagingTypeID, &m.Name, &m.Description, &rawSizes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(rawSizes, &m.Sizes); err != nil {
		return m, fmt.Errorf("failed to unmarshal packaging sizes for %s: %w", m.PackagingTypeID, err)
	}
	return m, nil
}

// SavePackagingType inserts a new catalog entry. Sizes are stored as jsonb.
func (r *PgxPackagingTypeRepository) SavePackagingType(ctx context.Context, pt domain.PackagingType) error {
	rawSizes, err := modelSizes(pt)
	if err != nil {
		return err
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO packaging_types (`+packagingTypeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		pt.PackagingTypeID, pt.Name, pt.Description, rawSizes,
		pt.CreatedAt, pt.CreatedBy, pt.LastUpdatedAt, pt.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: packaging type %q already exists", apperrors.ErrDuplicate, pt.Name)
		}
		return fmt.Errorf("failed to save packaging type %s: %w", pt.PackagingTypeID, err)
	}
	return nil
}

func (r *PgxPackagingTypeRepository) FindPackagingTypeByID(ctx context.Context, packagingTypeID string) (*domain.PackagingType, error) {
	m, err := r.scanRow(r.Pool.QueryRow(ctx,
		`SELECT `+packagingTypeColumns+` FROM packaging_types WHERE packaging_type_id = $1;`, packagingTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find packaging type by ID %s: %w", packagingTypeID, err)
	}
	pt := toDomainPackagingType(m)
	return &pt, nil
}

func (r *PgxPackagingTypeRepository) FindPackagingTypeByName(ctx context.Context, name string) (*domain.PackagingType, error) {
	m, err := r.scanRow(r.Pool.QueryRow(ctx,
		`SELECT `+packagingTypeColumns+` FROM packaging_types WHERE name = $1;`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find packaging type by name %q: %w", name, err)
	}
	pt := toDomainPackagingType(m)
	return &pt, nil
}

func (r *PgxPackagingTypeRepository) ListPackagingTypes(ctx context.Context) ([]domain.PackagingType, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+packagingTypeColumns+` FROM packaging_types ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query packaging types: %w", err)
	}
	defer rows.Close()

	pts := []domain.PackagingType{}
	for rows.Next() {
		m, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan packaging type row: %w", err)
		}
		pts = append(pts, toDomainPackagingType(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packaging type rows: %w", err)
	}
	return pts, nil
}

func (r *PgxPackagingTypeRepository) UpdatePackagingType(ctx context.Context, pt domain.PackagingType) error {
	rawSizes, err := modelSizes(pt)
	if err != nil {
		return err
	}
	ct, err := r.Pool.Exec(ctx, `
		UPDATE packaging_types
		SET name = $2, description = $3, sizes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE packaging_type_id = $1;
	`,
		pt.PackagingTypeID, pt.Name, pt.Description, rawSizes,
		pt.LastUpdatedAt, pt.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: packaging type %q already exists", apperrors.ErrDuplicate, pt.Name)
		}
		return fmt.Errorf("failed to update packaging type %s: %w", pt.PackagingTypeID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPackagingTypeRepository) DeletePackagingType(ctx context.Context, packagingTypeID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM packaging_types WHERE packaging_type_id = $1;`, packagingTypeID)
	if err != nil {
		return fmt.Errorf("failed to delete packaging type %s: %w", packagingTypeID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
