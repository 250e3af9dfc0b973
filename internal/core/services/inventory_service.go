package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/dto"
	"github.com/kemasku/packshop_backend/internal/middleware"
)

// inventoryService provides inventory master data and the stock ledger.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateItem registers a new material. A non-zero opening stock also writes
// the opening "in" entry so the ledger replays to the current stock.
func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, creatorUserID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Stock.IsNegative() || req.MinStock.IsNegative() || req.CostPerUnit.IsNegative() {
		return nil, fmt.Errorf("%w: stock, minStock and costPerUnit must not be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	item := domain.InventoryItem{
		ItemID:      uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Size:        req.Size,
		Unit:        req.Unit,
		Stock:       decimal.Zero,
		MinStock:    req.MinStock,
		CostPerUnit: req.CostPerUnit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		logger.Error("Failed to save inventory item", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}

	if req.Stock.GreaterThan(decimal.Zero) {
		updated, err := s.inventoryRepo.Adjust(ctx, item.ItemID, domain.DirectionIn, req.Stock, "Stok awal", creatorUserID, now)
		if err != nil {
			logger.Error("Failed to record opening stock", slog.String("item_id", item.ItemID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to record opening stock for item %s: %w", item.ItemID, err)
		}
		item = *updated
	}

	logger.Info("Inventory item created", slog.String("item_id", item.ItemID), slog.String("name", item.Name))
	return &item, nil
}

// GetItemByID retrieves a single inventory item.
func (s *inventoryService) GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	return item, nil
}

// ListItems retrieves all inventory items.
func (s *inventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// UpdateItem changes descriptive fields. Stock is untouchable here; it moves
// only through AdjustStock and order processing.
func (s *inventoryService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest, userID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.MinStock != nil {
		if req.MinStock.IsNegative() {
			return nil, fmt.Errorf("%w: minStock must not be negative", apperrors.ErrValidation)
		}
		item.MinStock = *req.MinStock
	}
	if req.CostPerUnit != nil {
		if req.CostPerUnit.IsNegative() {
			return nil, fmt.Errorf("%w: costPerUnit must not be negative", apperrors.ErrValidation)
		}
		item.CostPerUnit = *req.CostPerUnit
	}
	item.LastUpdatedAt = time.Now()
	item.LastUpdatedBy = userID

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		logger.Error("Failed to update inventory item", slog.String("item_id", itemID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update inventory item %s: %w", itemID, err)
	}
	return item, nil
}

// AdjustStock applies one manual stock mutation with its audit log entry.
func (s *inventoryService) AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest, userID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	direction := domain.LogDirection(req.Direction)
	if direction != domain.DirectionIn && direction != domain.DirectionOut {
		return nil, fmt.Errorf("%w: unknown adjustment direction %q", apperrors.ErrValidation, req.Direction)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", domain.ErrInvalidAmount, req.Amount)
	}

	item, err := s.inventoryRepo.Adjust(ctx, itemID, direction, req.Amount, req.Note, userID, time.Now())
	if err != nil {
		logger.Warn("Stock adjustment failed", slog.String("item_id", itemID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to adjust stock for item %s: %w", itemID, err)
	}

	if item.IsBelowMinimum() {
		logger.Warn("Inventory item below minimum stock",
			slog.String("item_id", item.ItemID),
			slog.String("name", item.Name),
			slog.String("stock", item.Stock.String()),
			slog.String("min_stock", item.MinStock.String()))
	}
	return item, nil
}

// ListLogEntries retrieves the stock audit trail.
func (s *inventoryService) ListLogEntries(ctx context.Context, params dto.ListInventoryLogsParams) (*dto.ListInventoryLogsResponse, error) {
	entries, nextToken, err := s.inventoryRepo.ListLogEntries(ctx, params.ItemID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory logs: %w", err)
	}

	resp := dto.ListInventoryLogsResponse{
		Logs:      make([]dto.InventoryLogResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for _, e := range entries {
		resp.Logs = append(resp.Logs, dto.ToInventoryLogResponse(e))
	}
	return &resp, nil
}
