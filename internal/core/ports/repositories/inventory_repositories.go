package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryReader defines read operations for inventory data.
type InventoryReader interface {
	// FindItemByID retrieves a single inventory item.
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// FindItemsByIDs retrieves multiple items keyed by ID. Missing IDs are absent from the map.
	FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.InventoryItem, error)

	// ListItems retrieves all inventory items, ordered by name.
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)

	// ListLogEntries retrieves the audit trail, newest first, optionally filtered by item.
	ListLogEntries(ctx context.Context, itemID *string, limit int, nextToken *string) ([]domain.InventoryLogEntry, *string, error)
}

// InventoryWriter defines write operations for inventory data.
type InventoryWriter interface {
	// SaveItem inserts a new inventory item.
	SaveItem(ctx context.Context, item domain.InventoryItem) error

	// UpdateItem updates master fields of an item. Stock is excluded: it moves
	// only through Adjust or the in-transaction helpers below.
	UpdateItem(ctx context.Context, item domain.InventoryItem) error

	// Adjust applies one stock mutation and its log entry atomically, with the
	// item row locked against concurrent adjustments.
	Adjust(ctx context.Context, itemID string, direction domain.LogDirection, amount decimal.Decimal, note string, userID string, now time.Time) (*domain.InventoryItem, error)
}

// InventoryTxOps are helpers other repositories call inside their own
// database transactions (the order repository consumes stock when an order
// enters Processing).
type InventoryTxOps interface {
	// FindItemsByIDsForUpdate retrieves items by ID and locks the rows for update.
	// Must be called within a transaction.
	FindItemsByIDsForUpdate(ctx context.Context, tx pgx.Tx, itemIDs []string) (map[string]domain.InventoryItem, error)

	// ApplyStockChangesInTx applies signed stock deltas to locked rows.
	ApplyStockChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error

	// InsertLogEntriesInTx appends audit log entries.
	InsertLogEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.InventoryLogEntry) error
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
	InventoryTxOps
}
