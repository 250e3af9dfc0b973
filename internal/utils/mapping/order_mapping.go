package mapping

import (
	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/kemasku/packshop_backend/internal/models"
)

// ToModelOrder converts a domain Order to its orders-row model. Child
// collections are mapped separately.
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:          d.OrderID,
		InvoiceNumber:    d.InvoiceNumber,
		CustomerID:       d.CustomerID,
		TotalAmount:      d.TotalAmount,
		TotalPaid:        d.TotalPaid,
		RemainingBalance: d.RemainingBalance,
		PaymentStatus:    models.PaymentStatus(d.PaymentStatus),
		OrderStatus:      models.OrderStatus(d.OrderStatus),
		Version:          d.Version,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts an orders-row model to a domain Order shell.
// Items, payments and materials are attached by the repository.
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:          m.OrderID,
		InvoiceNumber:    m.InvoiceNumber,
		CustomerID:       m.CustomerID,
		TotalAmount:      m.TotalAmount,
		TotalPaid:        m.TotalPaid,
		RemainingBalance: m.RemainingBalance,
		PaymentStatus:    domain.PaymentStatus(m.PaymentStatus),
		OrderStatus:      domain.OrderStatus(m.OrderStatus),
		Version:          m.Version,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrderItem converts a domain OrderItem to its order_items row.
func ToModelOrderItem(orderID string, lineNo int, d domain.OrderItem) models.OrderItem {
	return models.OrderItem{
		OrderID:       orderID,
		LineNo:        lineNo,
		ProductName:   d.ProductName,
		PackagingType: d.PackagingType,
		PackagingSize: d.PackagingSize,
		PricePerUnit:  d.PricePerUnit,
		Qty:           d.Qty,
		Subtotal:      d.Subtotal,
		HasDesign:     d.HasDesign,
		Note:          d.Note,
	}
}

// ToDomainOrderItem converts an order_items row to a domain OrderItem.
func ToDomainOrderItem(m models.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ProductName:   m.ProductName,
		PackagingType: m.PackagingType,
		PackagingSize: m.PackagingSize,
		PricePerUnit:  m.PricePerUnit,
		Qty:           m.Qty,
		Subtotal:      m.Subtotal,
		HasDesign:     m.HasDesign,
		Note:          m.Note,
	}
}

// ToModelPayment converts a domain Payment to its payments row.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID: d.PaymentID,
		OrderID:   d.OrderID,
		Amount:    d.Amount,
		Method:    string(d.Method),
		Note:      d.Note,
		PaidAt:    d.PaidAt,
		CreatedBy: d.CreatedBy,
	}
}

// ToDomainPayment converts a payments row to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID: m.PaymentID,
		OrderID:   m.OrderID,
		Amount:    m.Amount,
		Method:    domain.PaymentMethod(m.Method),
		Note:      m.Note,
		PaidAt:    m.PaidAt,
		CreatedBy: m.CreatedBy,
	}
}

// ToDomainMaterialUsage converts an order_materials row to a domain MaterialUsage.
func ToDomainMaterialUsage(m models.OrderMaterial) domain.MaterialUsage {
	return domain.MaterialUsage{
		InventoryItemID: m.InventoryItemID,
		MaterialName:    m.MaterialName,
		Amount:          m.Amount,
		Unit:            m.Unit,
	}
}
