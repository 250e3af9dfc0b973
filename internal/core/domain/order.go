package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the financial-settlement state of an Order,
// derived from the payment ledger and never set directly.
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "Pending"
	PaymentDownPayment PaymentStatus = "Down Payment"
	PaymentPaid        PaymentStatus = "Paid"
	PaymentCancelled   PaymentStatus = "Cancelled"
)

var (
	// ErrInvalidAmount rejects a monetary or quantity value that is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrOverpayment rejects a payment exceeding the remaining balance.
	ErrOverpayment = errors.New("payment exceeds remaining balance")
	// ErrEmptyOrder rejects an order created without line items.
	ErrEmptyOrder = errors.New("order must have at least one item")
	// ErrInvoiceSequenceExhausted signals the 4-digit per-day invoice sequence overflowed.
	ErrInvoiceSequenceExhausted = errors.New("daily invoice sequence exhausted")
	// ErrMaterialsAlreadyRecorded rejects a second materials snapshot on the same order.
	ErrMaterialsAlreadyRecorded = errors.New("materials snapshot already recorded for order")
)

// OrderItem is a line item snapshot, frozen at order creation time.
// Later catalog price changes never alter a placed order.
type OrderItem struct {
	ProductName   string          `json:"productName"`
	PackagingType string          `json:"packagingType"`
	PackagingSize string          `json:"packagingSize"`
	PricePerUnit  decimal.Decimal `json:"pricePerUnit"`
	Qty           int64           `json:"qty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	HasDesign     bool            `json:"hasDesign"`
	Note          string          `json:"note"`
}

// MaterialUsage is one entry of the materials snapshot attached when production starts.
type MaterialUsage struct {
	InventoryItemID string          `json:"inventoryItemID"`
	MaterialName    string          `json:"materialName"`
	Amount          decimal.Decimal `json:"amount"`
	Unit            string          `json:"unit"`
}

// MaterialRequest is the operator's declaration of materials to consume
// when transitioning an order into Processing.
type MaterialRequest struct {
	InventoryItemID string
	Amount          decimal.Decimal
}

// Order is the aggregate root binding line items, the payment ledger,
// the materials snapshot and the lifecycle status into one record.
type Order struct {
	OrderID          string          `json:"orderID"`       // Primary Key (UUID)
	InvoiceNumber    string          `json:"invoiceNumber"` // INV-YYYYMMDD-NNNN, immutable
	CustomerID       string          `json:"customerID"`    // FK -> Customer, opaque to the core
	Items            []OrderItem     `json:"items"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Payments         []Payment       `json:"payments"` // Append-only
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	OrderStatus      OrderStatus     `json:"orderStatus"`
	MaterialsUsed    []MaterialUsage `json:"materialsUsed"` // Set exactly once, on Production -> Processing
	Version          int64           `json:"version"`       // Optimistic concurrency counter
	AuditFields
}

// RecordPayment appends p to the ledger and updates the derived balance fields.
// The payment must be positive and must not exceed the remaining balance.
func (o *Order) RecordPayment(p Payment) error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, p.Amount)
	}
	if p.Amount.GreaterThan(o.RemainingBalance) {
		return fmt.Errorf("%w: amount %s, remaining %s", ErrOverpayment, p.Amount, o.RemainingBalance)
	}

	o.Payments = append(o.Payments, p)
	o.TotalPaid = o.TotalPaid.Add(p.Amount)
	o.RemainingBalance = o.RemainingBalance.Sub(p.Amount)
	o.recomputePaymentStatus()
	return nil
}

// recomputePaymentStatus derives the settlement state from the ledger totals.
func (o *Order) recomputePaymentStatus() {
	switch {
	case o.RemainingBalance.IsZero() && o.TotalPaid.GreaterThan(decimal.Zero):
		o.PaymentStatus = PaymentPaid
	case o.TotalPaid.GreaterThan(decimal.Zero):
		o.PaymentStatus = PaymentDownPayment
	default:
		o.PaymentStatus = PaymentPending
	}
}

// TransitionTo moves the order along one lifecycle edge.
// Handover (-> Completed) additionally requires Ready status and a zero balance.
func (o *Order) TransitionTo(target OrderStatus) error {
	if target == StatusCompleted {
		if o.OrderStatus != StatusReady {
			return fmt.Errorf("%w: current status is %s", ErrNotReady, o.OrderStatus)
		}
		if !o.RemainingBalance.IsZero() {
			return fmt.Errorf("%w: %s outstanding", ErrUnpaidBalance, o.RemainingBalance)
		}
	}
	if !o.OrderStatus.CanTransitionTo(target) {
		return &IllegalTransitionError{From: o.OrderStatus, To: target}
	}
	o.OrderStatus = target
	return nil
}

// AttachMaterials records the frozen materials snapshot. It may succeed at most once.
func (o *Order) AttachMaterials(snapshot []MaterialUsage) error {
	if len(o.MaterialsUsed) > 0 {
		return ErrMaterialsAlreadyRecorded
	}
	o.MaterialsUsed = snapshot
	return nil
}

// VerifyBalances recomputes the derived ledger fields from the payments
// sequence and reports any drift. Cached totals are never trusted blindly.
func (o *Order) VerifyBalances() error {
	paid := decimal.Zero
	for _, p := range o.Payments {
		paid = paid.Add(p.Amount)
	}
	if !paid.Equal(o.TotalPaid) {
		return fmt.Errorf("totalPaid %s does not match payment ledger sum %s", o.TotalPaid, paid)
	}
	if !o.TotalPaid.Add(o.RemainingBalance).Equal(o.TotalAmount) {
		return fmt.Errorf("totalPaid %s + remainingBalance %s does not equal totalAmount %s",
			o.TotalPaid, o.RemainingBalance, o.TotalAmount)
	}
	if o.RemainingBalance.IsNegative() {
		return fmt.Errorf("remainingBalance %s is negative", o.RemainingBalance)
	}
	return nil
}
