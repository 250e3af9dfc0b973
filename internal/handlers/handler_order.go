package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/dto"
	"github.com/kemasku/packshop_backend/internal/middleware"
)

// orderHandler handles order lifecycle requests.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(orderService portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: orderService}
}

// registerOrderRoutes registers order routes. Creation and payments are the
// cashier's job; status transitions belong to the production floor.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.POST("", middleware.RequireRole(domain.RoleKasir), h.createOrder)
		orders.POST("/:orderID/payments", middleware.RequireRole(domain.RoleKasir), h.recordPayment)
		orders.POST("/:orderID/status",
			middleware.RequireRole(domain.RoleKasir, domain.RoleOperator, domain.RoleDesainer),
			h.transitionOrder)
	}
}

// createOrder godoc
// @Summary Create a new order
// @Description Creates an order with frozen item prices, assigns the next invoice number and optionally records a first payment
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 409 {object} map[string]string "Invoice sequence exhausted"
// @Failure 500 {object} map[string]string "Failed to create order"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, domain.ErrEmptyOrder),
			errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrOverpayment),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvoiceSequenceExhausted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	logger.Info("Order created",
		slog.String("order_id", order.OrderID),
		slog.String("invoice_number", order.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// getOrder godoc
// @Summary Get an order by ID
// @Description Retrieves the full order aggregate with items, payment ledger and materials snapshot
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID (UUID)"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logger.Error("Failed to get order", slog.String("order_id", orderID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List orders
// @Description Retrieves a token-paginated order list, newest first, optionally filtered by status or customer
// @Tags orders
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Param   status query string false "Filter by order status"
// @Param   customerId query string false "Filter by customer ID (UUID)"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list orders"
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// recordPayment godoc
// @Summary Record a payment on an order
// @Description Appends a payment to the order's money ledger and updates derived balances
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID (UUID)"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid amount or overpayment"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retry"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /orders/{orderID}/payments [post]
func (h *orderHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	order, err := h.orderService.RecordPayment(c.Request.Context(), orderID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrOverpayment),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Order was modified concurrently, retry"})
		default:
			logger.Error("Failed to record payment", slog.String("order_id", orderID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Payment recorded",
		slog.String("order_id", orderID),
		slog.String("payment_status", string(order.PaymentStatus)))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// transitionOrder godoc
// @Summary Transition an order to a new status
// @Description Moves the order along one lifecycle edge. The edge into Processing consumes the declared materials; handover requires a settled balance
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID (UUID)"
// @Param   transition body dto.TransitionOrderRequest true "Target status and, for Processing, materials to consume"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid target or materials"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Illegal transition, unpaid balance or insufficient stock"
// @Failure 500 {object} map[string]string "Failed to transition order"
// @Security BearerAuth
// @Router /orders/{orderID}/status [post]
func (h *orderHandler) transitionOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.TransitionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	order, err := h.orderService.TransitionOrder(c.Request.Context(), orderID, req, userID)
	if err != nil {
		var illegal *domain.IllegalTransitionError
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &illegal),
			errors.Is(err, domain.ErrUnpaidBalance),
			errors.Is(err, domain.ErrNotReady),
			errors.Is(err, domain.ErrInsufficientStock),
			errors.Is(err, domain.ErrMaterialsAlreadyRecorded),
			errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to transition order",
				slog.String("order_id", orderID),
				slog.String("target", req.Target),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transition order"})
		}
		return
	}

	logger.Info("Order transitioned",
		slog.String("order_id", orderID),
		slog.String("order_status", string(order.OrderStatus)))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
