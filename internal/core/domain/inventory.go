package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LogDirection indicates whether a stock mutation was inbound or outbound.
type LogDirection string

const (
	DirectionIn  LogDirection = "in"
	DirectionOut LogDirection = "out"
)

// ErrInsufficientStock rejects an outbound adjustment larger than the on-hand stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// InventoryItem is a stocked material consumed during production.
// Stock is mutated only through ledger adjustments, never written directly.
type InventoryItem struct {
	ItemID      string          `json:"itemID"` // Primary Key (UUID)
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	Unit        string          `json:"unit"` // pcs, kg, ...
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"minStock"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
	AuditFields
}

// InventoryLogEntry is the audit trail record for one stock mutation. Append-only.
type InventoryLogEntry struct {
	LogID     string          `json:"logID"` // Primary Key (UUID)
	ItemID    string          `json:"itemID"`
	Direction LogDirection    `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"` // Tagged with the invoice number for order consumption
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

// ApplyAdjustment mutates the on-hand stock by amount in the given direction.
// Outbound moves that would drive stock negative are rejected and leave stock unchanged.
func (i *InventoryItem) ApplyAdjustment(direction LogDirection, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	switch direction {
	case DirectionIn:
		i.Stock = i.Stock.Add(amount)
	case DirectionOut:
		if amount.GreaterThan(i.Stock) {
			return fmt.Errorf("%w: %s has %s %s, requested %s", ErrInsufficientStock, i.Name, i.Stock, i.Unit, amount)
		}
		i.Stock = i.Stock.Sub(amount)
	default:
		return fmt.Errorf("unknown adjustment direction %q", direction)
	}
	return nil
}

// IsBelowMinimum reports whether the on-hand stock dropped under the restock threshold.
func (i *InventoryItem) IsBelowMinimum() bool {
	return i.Stock.LessThan(i.MinStock)
}
