package services

import (
	"context"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/kemasku/packshop_backend/internal/dto"
)

// OrderReaderSvc defines read operations on orders.
type OrderReaderSvc interface {
	// GetOrderByID retrieves one order with items and payment ledger.
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a token-paginated order list, newest first.
	ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error)
}

// OrderWriterSvc defines the state-changing order operations.
type OrderWriterSvc interface {
	// CreateOrder builds the aggregate: snapshots items, computes totals,
	// applies an optional first payment and persists with a fresh invoice number.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error)

	// RecordPayment appends a payment through the money ledger and emits a
	// finance-log income entry tagged with the invoice number.
	RecordPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, userID string) (*domain.Order, error)

	// TransitionOrder moves the order along one lifecycle edge. The
	// Production -> Processing edge consumes the declared materials and
	// attaches the frozen snapshot; Ready -> Completed is gated on a zero balance.
	TransitionOrder(ctx context.Context, orderID string, req dto.TransitionOrderRequest, userID string) (*domain.Order, error)
}

// OrderSvcFacade combines all order service interfaces.
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
