package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	"github.com/kemasku/packshop_backend/internal/models"
	"github.com/kemasku/packshop_backend/internal/utils/mapping"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, customer_id, product_name, product_label, nib, no_pirt, no_halal, packaging_type, packaging_size, is_deleted, created_at, created_by, last_updated_at, last_updated_by`

func toDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:     m.ProductID,
		CustomerID:    m.CustomerID,
		ProductName:   m.ProductName,
		ProductLabel:  m.ProductLabel,
		NIB:           m.NIB,
		NoPIRT:        m.NoPIRT,
		NoHalal:       m.NoHalal,
		PackagingType: m.PackagingType,
		PackagingSize: m.PackagingSize,
		IsDeleted:     m.IsDeleted,
		AuditFields:   mapping.ToDomainAuditFields(m.AuditFields),
	}
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID, &m.CustomerID, &m.ProductName, &m.ProductLabel,
		&m.NIB, &m.NoPIRT, &m.NoHalal, &m.PackagingType, &m.PackagingSize, &m.IsDeleted,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		product.ProductID, product.CustomerID, product.ProductName, product.ProductLabel,
		product.NIB, product.NoPIRT, product.NoHalal, product.PackagingType, product.PackagingSize, product.IsDeleted,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", product.ProductID, err)
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	m, err := scanProduct(r.Pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id = $1 AND is_deleted = FALSE;`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	product := toDomainProduct(m)
	return &product, nil
}

func (r *PgxProductRepository) ListProductsByCustomer(ctx context.Context, customerID string) ([]domain.Product, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE customer_id = $1 AND is_deleted = FALSE
		ORDER BY product_name;
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, toDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	ct, err := r.Pool.Exec(ctx, `
		UPDATE products
		SET product_name = $2, product_label = $3, nib = $4, no_pirt = $5, no_halal = $6,
		    packaging_type = $7, packaging_size = $8, last_updated_at = $9, last_updated_by = $10
		WHERE product_id = $1 AND is_deleted = FALSE;
	`,
		product.ProductID, product.ProductName, product.ProductLabel,
		product.NIB, product.NoPIRT, product.NoHalal,
		product.PackagingType, product.PackagingSize,
		product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkProductDeleted soft-deletes; orders referencing the product keep their
// frozen snapshots either way.
func (r *PgxProductRepository) MarkProductDeleted(ctx context.Context, productID string, userID string) error {
	ct, err := r.Pool.Exec(ctx, `
		UPDATE products
		SET is_deleted = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $1 AND is_deleted = FALSE;
	`, productID, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
