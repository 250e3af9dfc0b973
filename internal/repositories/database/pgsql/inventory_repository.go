package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	"github.com/kemasku/packshop_backend/internal/models"
	"github.com/kemasku/packshop_backend/internal/utils/mapping"
	"github.com/kemasku/packshop_backend/internal/utils/pagination"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates the repository for inventory items and
// their stock audit log.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const inventoryColumns = `item_id, name, category, size, unit, stock, min_stock, cost_per_unit, created_at, created_by, last_updated_at, last_updated_by`

func scanInventoryItem(row pgx.Row) (models.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ItemID, &m.Name, &m.Category, &m.Size, &m.Unit,
		&m.Stock, &m.MinStock, &m.CostPerUnit,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveItem inserts a new inventory item.
func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO inventory_items (`+inventoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.ItemID, m.Name, m.Category, m.Size, m.Unit,
		m.Stock, m.MinStock, m.CostPerUnit,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: inventory item %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save inventory item %s: %w", m.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves a single inventory item.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	m, err := scanInventoryItem(r.Pool.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE item_id = $1;`, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item by ID %s: %w", itemID, err)
	}
	item := mapping.ToDomainInventoryItem(m)
	return &item, nil
}

// FindItemsByIDs retrieves multiple items keyed by ID.
func (r *PgxInventoryRepository) FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.InventoryItem, error) {
	if len(itemIDs) == 0 {
		return map[string]domain.InventoryItem{}, nil
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE item_id = ANY($1);`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items by IDs: %w", err)
	}
	defer rows.Close()

	itemsMap := make(map[string]domain.InventoryItem)
	for rows.Next() {
		m, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item row: %w", err)
		}
		itemsMap[m.ItemID] = mapping.ToDomainInventoryItem(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory item rows: %w", err)
	}
	return itemsMap, nil
}

// ListItems retrieves all inventory items ordered by name.
func (r *PgxInventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory_items ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		m, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item row: %w", err)
		}
		items = append(items, mapping.ToDomainInventoryItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory item rows: %w", err)
	}
	return items, nil
}

// UpdateItem updates master fields of an item. Stock is deliberately absent
// from the SET list; it moves only through the ledger paths.
func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	ct, err := r.Pool.Exec(ctx, `
		UPDATE inventory_items
		SET name = $2, category = $3, size = $4, unit = $5, min_stock = $6, cost_per_unit = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE item_id = $1;
	`,
		m.ItemID, m.Name, m.Category, m.Size, m.Unit, m.MinStock, m.CostPerUnit,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", m.ItemID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Adjust applies one stock mutation and its log entry atomically. The item
// row is locked so concurrent adjustments serialize and the insufficient
// stock check stays truthful.
func (r *PgxInventoryRepository) Adjust(ctx context.Context, itemID string, direction domain.LogDirection, amount decimal.Decimal, note string, userID string, now time.Time) (*domain.InventoryItem, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanInventoryItem(tx.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE item_id = $1 FOR UPDATE;`, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock inventory item %s: %w", itemID, err)
	}

	item := mapping.ToDomainInventoryItem(m)
	if err := item.ApplyAdjustment(direction, amount); err != nil {
		return nil, err
	}
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	_, err = tx.Exec(ctx, `
		UPDATE inventory_items
		SET stock = $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $1;
	`, item.ItemID, item.Stock, now, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock of item %s: %w", itemID, err)
	}

	logEntry := mapping.ToModelInventoryLog(domain.InventoryLogEntry{
		LogID:     uuid.NewString(),
		ItemID:    itemID,
		Direction: direction,
		Amount:    amount,
		Note:      note,
		CreatedAt: now,
		CreatedBy: userID,
	})
	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_logs (log_id, item_id, direction, amount, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, logEntry.LogID, logEntry.ItemID, logEntry.Direction, logEntry.Amount, logEntry.Note, logEntry.CreatedAt, logEntry.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to insert inventory log for item %s: %w", itemID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListLogEntries retrieves the audit trail, newest first.
func (r *PgxInventoryRepository) ListLogEntries(ctx context.Context, itemID *string, limit int, nextToken *string) ([]domain.InventoryLogEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT log_id, item_id, direction, amount, note, created_at, created_by FROM inventory_logs WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if itemID != nil {
		query += fmt.Sprintf(" AND item_id = $%d", argPos)
		args = append(args, *itemID)
		argPos++
	}
	if nextToken != nil {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += fmt.Sprintf(" AND (created_at, log_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, createdAt, fields[1])
		argPos += 2
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, log_id DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query inventory logs: %w", err)
	}
	defer rows.Close()

	entries := []domain.InventoryLogEntry{}
	for rows.Next() {
		var m models.InventoryLog
		if err := rows.Scan(&m.LogID, &m.ItemID, &m.Direction, &m.Amount, &m.Note, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan inventory log row: %w", err)
		}
		entries = append(entries, mapping.ToDomainInventoryLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating inventory log rows: %w", err)
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.LogID)
		next = &token
	}
	return entries, next, nil
}

// FindItemsByIDsForUpdate retrieves items by ID and locks the rows. Must run
// inside the caller's transaction; all requested IDs must exist.
func (r *PgxInventoryRepository) FindItemsByIDsForUpdate(ctx context.Context, tx pgx.Tx, itemIDs []string) (map[string]domain.InventoryItem, error) {
	if len(itemIDs) == 0 {
		return map[string]domain.InventoryItem{}, nil
	}

	rows, err := tx.Query(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE item_id = ANY($1) FOR UPDATE;`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items for update: %w", err)
	}
	defer rows.Close()

	itemsMap := make(map[string]domain.InventoryItem)
	for rows.Next() {
		m, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked inventory item row: %w", err)
		}
		itemsMap[m.ItemID] = mapping.ToDomainInventoryItem(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked inventory item rows: %w", err)
	}

	if len(itemsMap) != len(itemIDs) {
		for _, id := range itemIDs {
			if _, ok := itemsMap[id]; !ok {
				return nil, fmt.Errorf("%w: inventory item %s", apperrors.ErrNotFound, id)
			}
		}
	}
	return itemsMap, nil
}

// ApplyStockChangesInTx applies signed stock deltas to rows the caller has
// already locked. A delta that would drive stock negative affects no rows and
// surfaces as insufficient stock.
func (r *PgxInventoryRepository) ApplyStockChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}

	query := `
		UPDATE inventory_items
		SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $1 AND stock + $2 >= 0;
	`
	batch := &pgx.Batch{}
	itemIDs := make([]string, 0, len(changes))
	for itemID, delta := range changes {
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, itemID, delta, now, userID)
		itemIDs = append(itemIDs, itemID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to apply stock change to item %s: %w", itemIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: item %s", domain.ErrInsufficientStock, itemIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close stock change batch: %w", err)
	}
	return batchErr
}

// InsertLogEntriesInTx appends audit log entries inside the caller's transaction.
func (r *PgxInventoryRepository) InsertLogEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.InventoryLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO inventory_logs (log_id, item_id, direction, amount, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, entry := range entries {
		m := mapping.ToModelInventoryLog(entry)
		batch.Queue(query, m.LogID, m.ItemID, m.Direction, m.Amount, m.Note, m.CreatedAt, m.CreatedBy)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert inventory log batch: %w", err)
	}
	return nil
}
