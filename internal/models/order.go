package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus mirrors the derived settlement state stored on the orders row.
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "Pending"
	PaymentDownPayment PaymentStatus = "Down Payment"
	PaymentPaid        PaymentStatus = "Paid"
	PaymentCancelled   PaymentStatus = "Cancelled"
)

// OrderStatus mirrors the lifecycle state stored on the orders row.
type OrderStatus string

// Order is the orders table row. Items, payments and the materials snapshot
// live in child tables and are loaded separately.
type Order struct {
	OrderID          string          `db:"order_id"`
	InvoiceNumber    string          `db:"invoice_number"`
	CustomerID       string          `db:"customer_id"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	TotalPaid        decimal.Decimal `db:"total_paid"`
	RemainingBalance decimal.Decimal `db:"remaining_balance"`
	PaymentStatus    PaymentStatus   `db:"payment_status"`
	OrderStatus      OrderStatus     `db:"order_status"`
	Version          int64           `db:"version"`
	AuditFields
}

// OrderItem is the order_items table row, a frozen snapshot of one order line.
type OrderItem struct {
	OrderItemID   string          `db:"order_item_id"`
	OrderID       string          `db:"order_id"`
	LineNo        int             `db:"line_no"`
	ProductName   string          `db:"product_name"`
	PackagingType string          `db:"packaging_type"`
	PackagingSize string          `db:"packaging_size"`
	PricePerUnit  decimal.Decimal `db:"price_per_unit"`
	Qty           int64           `db:"qty"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	HasDesign     bool            `db:"has_design"`
	Note          string          `db:"note"`
}

// Payment is the payments table row. Append-only.
type Payment struct {
	PaymentID string          `db:"payment_id"`
	OrderID   string          `db:"order_id"`
	Amount    decimal.Decimal `db:"amount"`
	Method    string          `db:"method"`
	Note      string          `db:"note"`
	PaidAt    time.Time       `db:"paid_at"`
	CreatedBy string          `db:"created_by"`
}

// OrderMaterial is the order_materials table row, one line of the frozen
// materials snapshot attached when production starts.
type OrderMaterial struct {
	OrderID         string          `db:"order_id"`
	InventoryItemID string          `db:"inventory_item_id"`
	MaterialName    string          `db:"material_name"`
	Amount          decimal.Decimal `db:"amount"`
	Unit            string          `db:"unit"`
}
