package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how a payment was made.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "Cash"
	MethodTransfer PaymentMethod = "Transfer"
)

// Payment is a single entry in an order's money ledger. Immutable once appended.
type Payment struct {
	PaymentID string          `json:"paymentID"` // Primary Key (UUID)
	OrderID   string          `json:"orderID"`   // FK -> Order.orderID
	Amount    decimal.Decimal `json:"amount"`    // Positive value
	Method    PaymentMethod   `json:"method"`    // Cash or Transfer
	Note      string          `json:"note"`      // e.g. "DP Awal", "Pelunasan"
	PaidAt    time.Time       `json:"paidAt"`
	CreatedBy string          `json:"createdBy"`
}
