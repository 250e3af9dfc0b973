package dto

import (
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest is one line of a new order. Price may be omitted,
// in which case it is resolved from the packaging catalog and frozen.
type CreateOrderItemRequest struct {
	ProductName   string           `json:"productName" binding:"required"`
	PackagingType string           `json:"packagingType" binding:"required"`
	PackagingSize string           `json:"packagingSize" binding:"required"`
	PricePerUnit  *decimal.Decimal `json:"pricePerUnit,omitempty"`
	Qty           int64            `json:"qty" binding:"required,gt=0"`
	HasDesign     bool             `json:"hasDesign"`
	Note          string           `json:"note,omitempty"`
}

// InitialPaymentRequest is an optional payment taken at order creation.
// A zero amount means the customer pays later.
type InitialPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgte0"`
	Method string          `json:"method" binding:"required,oneof=Cash Transfer"`
	Note   string          `json:"note,omitempty"`
}

// CreateOrderRequest is the request body for creating an order.
type CreateOrderRequest struct {
	CustomerID     string                   `json:"customerId" binding:"required,uuid"`
	Items          []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	InitialPayment *InitialPaymentRequest   `json:"initialPayment,omitempty"`
}

// RecordPaymentRequest is the request body for appending a payment.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Method string          `json:"method" binding:"required,oneof=Cash Transfer"`
	Note   string          `json:"note,omitempty"`
}

// MaterialRequestDTO declares one inventory deduction for the production step.
type MaterialRequestDTO struct {
	InventoryItemID string          `json:"inventoryItemId" binding:"required,uuid"`
	Amount          decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// TransitionOrderRequest is the request body for a status transition.
// Materials is required only on the edge into Processing.
type TransitionOrderRequest struct {
	Target    string               `json:"target" binding:"required"`
	Materials []MaterialRequestDTO `json:"materials,omitempty" binding:"omitempty,dive"`
}

// ListOrdersParams captures query parameters for listing orders.
type ListOrdersParams struct {
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken" binding:"omitempty"`
	Status     *string `form:"status" binding:"omitempty"`
	CustomerID *string `form:"customerId" binding:"omitempty,uuid"`
}

// OrderItemResponse is one frozen order line.
type OrderItemResponse struct {
	ProductName   string          `json:"productName"`
	PackagingType string          `json:"packagingType"`
	PackagingSize string          `json:"packagingSize"`
	PricePerUnit  decimal.Decimal `json:"pricePerUnit"`
	Qty           int64           `json:"qty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	HasDesign     bool            `json:"hasDesign"`
	Note          string          `json:"note,omitempty"`
}

// PaymentResponse is one entry of the order's money ledger.
type PaymentResponse struct {
	PaymentID string          `json:"paymentId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Note      string          `json:"note,omitempty"`
	PaidAt    time.Time       `json:"paidAt"`
	CreatedBy string          `json:"createdBy"`
}

// MaterialUsageResponse is one line of the frozen materials snapshot.
type MaterialUsageResponse struct {
	InventoryItemID string          `json:"inventoryItemId"`
	MaterialName    string          `json:"materialName"`
	Amount          decimal.Decimal `json:"amount"`
	Unit            string          `json:"unit"`
}

// OrderResponse is the full order aggregate as returned by the API.
type OrderResponse struct {
	OrderID          string                  `json:"orderId"`
	InvoiceNumber    string                  `json:"invoiceNumber"`
	CustomerID       string                  `json:"customerId"`
	Items            []OrderItemResponse     `json:"items"`
	TotalAmount      decimal.Decimal         `json:"totalAmount"`
	Payments         []PaymentResponse       `json:"payments"`
	TotalPaid        decimal.Decimal         `json:"totalPaid"`
	RemainingBalance decimal.Decimal         `json:"remainingBalance"`
	PaymentStatus    string                  `json:"paymentStatus"`
	OrderStatus      string                  `json:"orderStatus"`
	MaterialsUsed    []MaterialUsageResponse `json:"materialsUsed,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
	LastUpdatedAt    time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy    string                  `json:"lastUpdatedBy"`
}

// ListOrdersResponse is a page of orders.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToOrderResponse converts a domain order aggregate to its API shape.
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductName:   it.ProductName,
			PackagingType: it.PackagingType,
			PackagingSize: it.PackagingSize,
			PricePerUnit:  it.PricePerUnit,
			Qty:           it.Qty,
			Subtotal:      it.Subtotal,
			HasDesign:     it.HasDesign,
			Note:          it.Note,
		})
	}
	payments := make([]PaymentResponse, 0, len(o.Payments))
	for _, p := range o.Payments {
		payments = append(payments, PaymentResponse{
			PaymentID: p.PaymentID,
			Amount:    p.Amount,
			Method:    string(p.Method),
			Note:      p.Note,
			PaidAt:    p.PaidAt,
			CreatedBy: p.CreatedBy,
		})
	}
	var materials []MaterialUsageResponse
	for _, m := range o.MaterialsUsed {
		materials = append(materials, MaterialUsageResponse{
			InventoryItemID: m.InventoryItemID,
			MaterialName:    m.MaterialName,
			Amount:          m.Amount,
			Unit:            m.Unit,
		})
	}
	return OrderResponse{
		OrderID:          o.OrderID,
		InvoiceNumber:    o.InvoiceNumber,
		CustomerID:       o.CustomerID,
		Items:            items,
		TotalAmount:      o.TotalAmount,
		Payments:         payments,
		TotalPaid:        o.TotalPaid,
		RemainingBalance: o.RemainingBalance,
		PaymentStatus:    string(o.PaymentStatus),
		OrderStatus:      string(o.OrderStatus),
		MaterialsUsed:    materials,
		CreatedAt:        o.CreatedAt,
		CreatedBy:        o.CreatedBy,
		LastUpdatedAt:    o.LastUpdatedAt,
		LastUpdatedBy:    o.LastUpdatedBy,
	}
}
