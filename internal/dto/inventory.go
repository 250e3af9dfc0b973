package dto

import (
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest is the request body for registering a material.
type CreateInventoryItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Size        string          `json:"size,omitempty"`
	Unit        string          `json:"unit" binding:"required"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"minStock"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
}

// UpdateInventoryItemRequest updates descriptive fields only. Stock is
// mutated exclusively through the adjustment ledger.
type UpdateInventoryItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Size        *string          `json:"size,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	MinStock    *decimal.Decimal `json:"minStock,omitempty"`
	CostPerUnit *decimal.Decimal `json:"costPerUnit,omitempty"`
}

// AdjustStockRequest is one manual in/out stock mutation.
type AdjustStockRequest struct {
	Direction string          `json:"direction" binding:"required,oneof=in out"`
	Amount    decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Note      string          `json:"note,omitempty"`
}

// ListInventoryLogsParams captures query parameters for the stock audit trail.
type ListInventoryLogsParams struct {
	ItemID    *string `form:"itemId" binding:"omitempty,uuid"`
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken" binding:"omitempty"`
}

// InventoryItemResponse is the API shape of one material.
type InventoryItemResponse struct {
	ItemID       string          `json:"itemId"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Size         string          `json:"size,omitempty"`
	Unit         string          `json:"unit"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"minStock"`
	CostPerUnit  decimal.Decimal `json:"costPerUnit"`
	BelowMinimum bool            `json:"belowMinimum"`
	CreatedAt    time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time      `json:"lastUpdatedAt"`
}

// InventoryLogResponse is one stock audit entry.
type InventoryLogResponse struct {
	LogID     string          `json:"logId"`
	ItemID    string          `json:"itemId"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

// ListInventoryLogsResponse is a page of stock audit entries.
type ListInventoryLogsResponse struct {
	Logs      []InventoryLogResponse `json:"logs"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToInventoryItemResponse converts a domain item to its API shape.
func ToInventoryItemResponse(i *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:        i.ItemID,
		Name:          i.Name,
		Category:      i.Category,
		Size:          i.Size,
		Unit:          i.Unit,
		Stock:         i.Stock,
		MinStock:      i.MinStock,
		CostPerUnit:   i.CostPerUnit,
		BelowMinimum:  i.IsBelowMinimum(),
		CreatedAt:     i.CreatedAt,
		LastUpdatedAt: i.LastUpdatedAt,
	}
}

// ToInventoryLogResponse converts a domain log entry to its API shape.
func ToInventoryLogResponse(e domain.InventoryLogEntry) InventoryLogResponse {
	return InventoryLogResponse{
		LogID:     e.LogID,
		ItemID:    e.ItemID,
		Direction: string(e.Direction),
		Amount:    e.Amount,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
	}
}
