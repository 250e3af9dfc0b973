package dto

import (
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
)

// CreateProductRequest registers a product under a customer. Registration
// numbers default to "N/A" when omitted.
type CreateProductRequest struct {
	CustomerID    string `json:"customerId" binding:"required,uuid"`
	ProductName   string `json:"productName" binding:"required"`
	ProductLabel  string `json:"productLabel,omitempty"`
	NIB           string `json:"nib,omitempty"`
	NoPIRT        string `json:"noPirt,omitempty"`
	NoHalal       string `json:"noHalal,omitempty"`
	PackagingType string `json:"packagingType,omitempty"`
	PackagingSize string `json:"packagingSize,omitempty"`
}

// UpdateProductRequest updates a product's descriptive fields.
type UpdateProductRequest struct {
	ProductName   *string `json:"productName,omitempty"`
	ProductLabel  *string `json:"productLabel,omitempty"`
	NIB           *string `json:"nib,omitempty"`
	NoPIRT        *string `json:"noPirt,omitempty"`
	NoHalal       *string `json:"noHalal,omitempty"`
	PackagingType *string `json:"packagingType,omitempty"`
	PackagingSize *string `json:"packagingSize,omitempty"`
}

// ProductResponse is the API shape of one product.
type ProductResponse struct {
	ProductID     string    `json:"productId"`
	CustomerID    string    `json:"customerId"`
	ProductName   string    `json:"productName"`
	ProductLabel  string    `json:"productLabel,omitempty"`
	NIB           string    `json:"nib,omitempty"`
	NoPIRT        string    `json:"noPirt,omitempty"`
	NoHalal       string    `json:"noHalal,omitempty"`
	PackagingType string    `json:"packagingType,omitempty"`
	PackagingSize string    `json:"packagingSize,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain product to its API shape.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		CustomerID:    p.CustomerID,
		ProductName:   p.ProductName,
		ProductLabel:  p.ProductLabel,
		NIB:           p.NIB,
		NoPIRT:        p.NoPIRT,
		NoHalal:       p.NoHalal,
		PackagingType: p.PackagingType,
		PackagingSize: p.PackagingSize,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}
