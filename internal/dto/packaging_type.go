package dto

import (
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PackagingSizeDTO is one size/price row of the catalog.
type PackagingSizeDTO struct {
	Size  string          `json:"size" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
}

// CreatePackagingTypeRequest is the request body for a new catalog entry.
type CreatePackagingTypeRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description,omitempty"`
	Sizes       []PackagingSizeDTO `json:"sizes" binding:"required,min=1,dive"`
}

// UpdatePackagingTypeRequest updates a catalog entry. A non-nil Sizes
// replaces the whole size list.
type UpdatePackagingTypeRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Sizes       []PackagingSizeDTO `json:"sizes,omitempty" binding:"omitempty,min=1,dive"`
}

// PackagingTypeResponse is the API shape of one catalog entry.
type PackagingTypeResponse struct {
	PackagingTypeID string             `json:"packagingTypeId"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	Sizes           []PackagingSizeDTO `json:"sizes"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// ToPackagingTypeResponse converts a domain catalog entry to its API shape.
func ToPackagingTypeResponse(p *domain.PackagingType) PackagingTypeResponse {
	sizes := make([]PackagingSizeDTO, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, PackagingSizeDTO{Size: s.Size, Price: s.Price})
	}
	return PackagingTypeResponse{
		PackagingTypeID: p.PackagingTypeID,
		Name:            p.Name,
		Description:     p.Description,
		Sizes:           sizes,
		CreatedAt:       p.CreatedAt,
		LastUpdatedAt:   p.LastUpdatedAt,
	}
}
