package services

import (
	"context"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/kemasku/packshop_backend/internal/dto"
)

// InventorySvcFacade defines inventory master data and stock ledger operations.
type InventorySvcFacade interface {
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, creatorUserID string) (*domain.InventoryItem, error)
	GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest, userID string) (*domain.InventoryItem, error)

	// AdjustStock applies one in/out stock mutation with an audit log entry.
	AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest, userID string) (*domain.InventoryItem, error)

	// ListLogEntries retrieves the stock audit trail, newest first.
	ListLogEntries(ctx context.Context, params dto.ListInventoryLogsParams) (*dto.ListInventoryLogsResponse, error)
}
