package services

import (
	"context"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/kemasku/packshop_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// PackagingTypeSvcFacade defines packaging catalog operations.
type PackagingTypeSvcFacade interface {
	CreatePackagingType(ctx context.Context, req dto.CreatePackagingTypeRequest, creatorUserID string) (*domain.PackagingType, error)
	GetPackagingTypeByID(ctx context.Context, packagingTypeID string) (*domain.PackagingType, error)
	ListPackagingTypes(ctx context.Context) ([]domain.PackagingType, error)
	UpdatePackagingType(ctx context.Context, packagingTypeID string, req dto.UpdatePackagingTypeRequest, userID string) (*domain.PackagingType, error)
	DeletePackagingType(ctx context.Context, packagingTypeID string) error

	// ResolvePrice returns the catalog unit price for a {type, size} pair.
	// Orders snapshot this value at creation and never re-query it.
	ResolvePrice(ctx context.Context, name, size string) (decimal.Decimal, error)
}
