package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the inventory_items table row.
type InventoryItem struct {
	ItemID      string          `db:"item_id"`
	Name        string          `db:"name"`
	Category    string          `db:"category"`
	Size        string          `db:"size"`
	Unit        string          `db:"unit"`
	Stock       decimal.Decimal `db:"stock"`
	MinStock    decimal.Decimal `db:"min_stock"`
	CostPerUnit decimal.Decimal `db:"cost_per_unit"`
	AuditFields
}

// InventoryLog is the inventory_logs table row. Append-only.
type InventoryLog struct {
	LogID     string          `db:"log_id"`
	ItemID    string          `db:"item_id"`
	Direction string          `db:"direction"`
	Amount    decimal.Decimal `db:"amount"`
	Note      string          `db:"note"`
	CreatedAt time.Time       `db:"created_at"`
	CreatedBy string          `db:"created_by"`
}
