package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceLog is the finance_logs table row. Append-only.
type FinanceLog struct {
	EntryID       string          `db:"entry_id"`
	Type          string          `db:"type"`
	Category      string          `db:"category"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	PaymentMethod string          `db:"payment_method"`
	InvoiceNumber string          `db:"invoice_number"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
