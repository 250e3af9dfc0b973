package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceLogType classifies a finance-log entry.
type FinanceLogType string

// FinanceIncome is the only type the money ledger emits; expenses are
// entered through out-of-scope manager tooling.
const FinanceIncome FinanceLogType = "income"

// FinanceLogEntry is the write-only notification the money ledger emits
// whenever a payment is recorded. The core never reads it back; the
// manager reporting surface consumes it.
type FinanceLogEntry struct {
	EntryID       string          `json:"entryID"` // Primary Key (UUID)
	Type          FinanceLogType  `json:"type"`
	Category      string          `json:"category"` // e.g. "DP", "Pelunasan"
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	InvoiceNumber string          `json:"invoiceNumber"` // Transaction reference
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}
