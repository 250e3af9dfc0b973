package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/dto"
	"github.com/kemasku/packshop_backend/internal/middleware"
)

// orderService provides the order aggregate operations: creation with frozen
// price snapshots, the payment ledger and the lifecycle state machine.
type orderService struct {
	orderRepo    portsrepo.OrderRepositoryWithTx
	customerSvc  portssvc.CustomerSvcFacade
	packagingSvc portssvc.PackagingTypeSvcFacade
	financeSvc   portssvc.FinanceSvcFacade
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepositoryWithTx, customerSvc portssvc.CustomerSvcFacade, packagingSvc portssvc.PackagingTypeSvcFacade, financeSvc portssvc.FinanceSvcFacade) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:    orderRepo,
		customerSvc:  customerSvc,
		packagingSvc: packagingSvc,
		financeSvc:   financeSvc,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// CreateOrder builds and persists the aggregate. Line prices not supplied by
// the caller are resolved from the packaging catalog; either way the price is
// frozen into the item so later catalog edits never change a placed order.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	if _, err := s.customerSvc.GetCustomerByID(ctx, req.CustomerID); err != nil {
		logger.Warn("Customer lookup failed for CreateOrder", slog.String("customer_id", req.CustomerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve customer %s: %w", req.CustomerID, err)
	}

	now := time.Now()
	items := make([]domain.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for i, reqItem := range req.Items {
		if reqItem.Qty <= 0 {
			return nil, fmt.Errorf("%w: item %d has qty %d", domain.ErrInvalidAmount, i, reqItem.Qty)
		}

		var price decimal.Decimal
		if reqItem.PricePerUnit != nil {
			price = *reqItem.PricePerUnit
		} else {
			resolved, err := s.packagingSvc.ResolvePrice(ctx, reqItem.PackagingType, reqItem.PackagingSize)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve price for %s/%s: %w", reqItem.PackagingType, reqItem.PackagingSize, err)
			}
			price = resolved
		}
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: item %d has price %s", domain.ErrInvalidAmount, i, price)
		}

		subtotal := price.Mul(decimal.NewFromInt(reqItem.Qty))
		items = append(items, domain.OrderItem{
			ProductName:   reqItem.ProductName,
			PackagingType: reqItem.PackagingType,
			PackagingSize: reqItem.PackagingSize,
			PricePerUnit:  price,
			Qty:           reqItem.Qty,
			Subtotal:      subtotal,
			HasDesign:     reqItem.HasDesign,
			Note:          reqItem.Note,
		})
		total = total.Add(subtotal)
	}

	order := domain.Order{
		OrderID:          uuid.NewString(),
		CustomerID:       req.CustomerID,
		Items:            items,
		TotalAmount:      total,
		TotalPaid:        decimal.Zero,
		RemainingBalance: total,
		PaymentStatus:    domain.PaymentPending,
		OrderStatus:      domain.StatusQueue,
		Version:          1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	var firstPayment *domain.Payment
	// Amount zero means pay later; the order starts Pending with no ledger entry.
	if req.InitialPayment != nil && !req.InitialPayment.Amount.IsZero() {
		p := domain.Payment{
			PaymentID: uuid.NewString(),
			OrderID:   order.OrderID,
			Amount:    req.InitialPayment.Amount,
			Method:    domain.PaymentMethod(req.InitialPayment.Method),
			Note:      req.InitialPayment.Note,
			PaidAt:    now,
			CreatedBy: creatorUserID,
		}
		if err := order.RecordPayment(p); err != nil {
			return nil, err
		}
		firstPayment = &p
	}

	saved, err := s.orderRepo.SaveOrder(ctx, order)
	if err != nil {
		logger.Error("Failed to save order", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if firstPayment != nil {
		s.emitIncomeEntry(ctx, saved, *firstPayment)
	}

	logger.Info("Order created", slog.String("order_id", saved.OrderID), slog.String("invoice_number", saved.InvoiceNumber))
	return saved, nil
}

// GetOrderByID retrieves one order aggregate.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if err := order.VerifyBalances(); err != nil {
		// Stored totals drifting from the ledger is a data corruption signal.
		middleware.GetLoggerFromCtx(ctx).Error("Order balance drift detected", slog.String("order_id", orderID), slog.String("error", err.Error()))
	}
	return order, nil
}

// ListOrders retrieves a filtered, token-paginated page of orders.
func (s *orderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	repoParams := portsrepo.ListOrdersParams{
		Limit:      params.Limit,
		NextToken:  params.NextToken,
		CustomerID: params.CustomerID,
	}
	if params.Status != nil {
		status := domain.OrderStatus(*params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, *params.Status)
		}
		repoParams.OrderStatus = &status
	}

	orders, nextToken, err := s.orderRepo.ListOrders(ctx, repoParams)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	resp := dto.ListOrdersResponse{
		Orders:    make([]dto.OrderResponse, 0, len(orders)),
		NextToken: nextToken,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, dto.ToOrderResponse(&orders[i]))
	}
	return &resp, nil
}

// RecordPayment appends one payment to the order's money ledger.
func (s *orderService) RecordPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.OrderStatus.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is already completed", apperrors.ErrValidation, order.InvoiceNumber)
	}
	if err := order.VerifyBalances(); err != nil {
		logger.Error("Refusing payment on order with balance drift", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: order %s balances are inconsistent", apperrors.ErrInternal, orderID)
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID: uuid.NewString(),
		OrderID:   order.OrderID,
		Amount:    req.Amount,
		Method:    domain.PaymentMethod(req.Method),
		Note:      req.Note,
		PaidAt:    now,
		CreatedBy: userID,
	}
	if err := order.RecordPayment(payment); err != nil {
		return nil, err
	}
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID

	if err := s.orderRepo.AppendPayment(ctx, *order, payment); err != nil {
		logger.Error("Failed to append payment", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to append payment to order %s: %w", orderID, err)
	}
	order.Version++

	s.emitIncomeEntry(ctx, order, payment)

	logger.Info("Payment recorded",
		slog.String("order_id", orderID),
		slog.String("amount", payment.Amount.String()),
		slog.String("payment_status", string(order.PaymentStatus)))
	return order, nil
}

// TransitionOrder moves the order along one lifecycle edge. The edge into
// Processing consumes the declared materials atomically with the status change.
func (s *orderService) TransitionOrder(ctx context.Context, orderID string, req dto.TransitionOrderRequest, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target := domain.OrderStatus(req.Target)
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, req.Target)
	}

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}

	from := order.OrderStatus
	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}

	now := time.Now()
	if from == domain.StatusProduction && target == domain.StatusProcessing {
		// An empty declaration is legal: the operator confirms the run uses
		// stock accounted for outside the ledger.
		requests := make([]domain.MaterialRequest, 0, len(req.Materials))
		for _, m := range req.Materials {
			if m.Amount.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("%w: material %s amount %s", domain.ErrInvalidAmount, m.InventoryItemID, m.Amount)
			}
			requests = append(requests, domain.MaterialRequest{
				InventoryItemID: m.InventoryItemID,
				Amount:          m.Amount,
			})
		}

		updated, err := s.orderRepo.SaveProcessingStart(ctx, *order, requests, userID, now)
		if err != nil {
			logger.Warn("Failed to start processing", slog.String("order_id", orderID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to start processing for order %s: %w", orderID, err)
		}
		logger.Info("Order entered processing", slog.String("order_id", orderID), slog.Int("materials", len(requests)))
		return updated, nil
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, from, target, userID, now); err != nil {
		logger.Warn("Failed to update order status", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to transition order %s: %w", orderID, err)
	}
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID

	logger.Info("Order status changed",
		slog.String("order_id", orderID),
		slog.String("from", string(from)),
		slog.String("to", string(target)))
	return order, nil
}

// emitIncomeEntry notifies the finance log about a recorded payment. The log
// is write-only from the ledger's perspective and failures never roll back
// the payment itself.
func (s *orderService) emitIncomeEntry(ctx context.Context, order *domain.Order, payment domain.Payment) {
	if s.financeSvc == nil {
		return
	}
	category := "DP"
	if order.PaymentStatus == domain.PaymentPaid {
		category = "Pelunasan"
	}
	entry := domain.FinanceLogEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.FinanceIncome,
		Category:      category,
		Amount:        payment.Amount,
		Description:   fmt.Sprintf("Pembayaran %s %s", category, order.InvoiceNumber),
		PaymentMethod: payment.Method,
		InvoiceNumber: order.InvoiceNumber,
		CreatedAt:     payment.PaidAt,
		CreatedBy:     payment.CreatedBy,
	}
	if err := s.financeSvc.RecordIncome(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to record finance log entry",
			slog.String("invoice_number", order.InvoiceNumber),
			slog.String("error", err.Error()))
	}
}
