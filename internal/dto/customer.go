package dto

import (
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
)

// CreateCustomerRequest is the request body for registering a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone" binding:"required"`
}

// UpdateCustomerRequest updates customer contact fields.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// CustomerResponse is the API shape of one customer.
type CustomerResponse struct {
	CustomerID    string    `json:"customerId"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCustomerResponse converts a domain customer to its API shape.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		Address:       c.Address,
		Phone:         c.Phone,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}
