package repositories

import (
	"context"
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
)

// ListOrdersParams narrows an order listing.
type ListOrdersParams struct {
	Limit       int
	NextToken   *string
	OrderStatus *domain.OrderStatus
	CustomerID  *string
}

// OrderReader defines read operations for order data.
type OrderReader interface {
	// FindOrderByID retrieves an order with its items and payments.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a token-paginated list of orders, newest first.
	ListOrders(ctx context.Context, params ListOrdersParams) ([]domain.Order, *string, error)
}

// OrderWriter defines write operations for order data.
type OrderWriter interface {
	// SaveOrder persists a new order with its items and any initial payment in one
	// database transaction. The invoice number is assigned inside that transaction
	// so same-day sequences stay strictly increasing under concurrency; the
	// returned order carries it.
	SaveOrder(ctx context.Context, order domain.Order) (*domain.Order, error)

	// AppendPayment persists one payment row and the recomputed balance fields.
	// The update is guarded by the order's version; a lost race surfaces as
	// apperrors.ErrConflict and nothing is written.
	AppendPayment(ctx context.Context, order domain.Order, payment domain.Payment) error

	// UpdateOrderStatus moves an order from one status to another with a
	// compare-and-set on the current status. A lost race surfaces as
	// apperrors.ErrConflict and no update is applied.
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, userID string, now time.Time) error

	// SaveProcessingStart applies the Production -> Processing transition as one
	// atomic unit: locks the order row, locks and validates all requested
	// inventory rows, deducts stock, writes ledger log entries tagged with the
	// invoice number, attaches the materials snapshot and sets the status.
	// On any failure nothing is applied.
	SaveProcessingStart(ctx context.Context, order domain.Order, requests []domain.MaterialRequest, userID string, now time.Time) (*domain.Order, error)
}

// OrderRepositoryFacade combines all order-related repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities.
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager
}
