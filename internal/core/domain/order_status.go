package domain

import (
	"errors"
	"fmt"
)

// OrderStatus is the production-lifecycle state of an Order.
type OrderStatus string

const (
	StatusQueue      OrderStatus = "Queue"
	StatusDesigning  OrderStatus = "Designing"
	StatusProduction OrderStatus = "Production"
	StatusProcessing OrderStatus = "Processing"
	StatusReady      OrderStatus = "Ready"
	StatusCompleted  OrderStatus = "Completed"
	StatusRejected   OrderStatus = "Rejected"
)

var (
	// ErrUnpaidBalance blocks handover of an order that still has an outstanding balance.
	ErrUnpaidBalance = errors.New("order has an unpaid remaining balance")
	// ErrNotReady blocks handover of an order that has not reached Ready.
	ErrNotReady = errors.New("order is not ready for handover")
)

// legalTransitions lists every edge the order lifecycle allows.
// Rejected -> Queue is the only backward edge (explicit restore).
var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusQueue:      {StatusDesigning, StatusProduction, StatusRejected},
	StatusDesigning:  {StatusProduction},
	StatusProduction: {StatusProcessing},
	StatusProcessing: {StatusReady},
	StatusReady:      {StatusCompleted},
	StatusRejected:   {StatusQueue},
	StatusCompleted:  {},
}

// IsValid reports whether s is one of the closed set of order statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := legalTransitions[s]
	return ok
}

// CanTransitionTo reports whether the edge s -> target exists in the lifecycle.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range legalTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no forward edge leaves s.
// Rejected is terminal unless explicitly restored to Queue.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// IllegalTransitionError reports an order-status transition outside the lifecycle table.
type IllegalTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal order status transition from %s to %s", e.From, e.To)
}
