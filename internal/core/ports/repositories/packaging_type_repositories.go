package repositories

import (
	"context"

	"github.com/kemasku/packshop_backend/internal/core/domain"
)

// PackagingTypeRepositoryFacade defines persistence operations for the packaging catalog.
type PackagingTypeRepositoryFacade interface {
	SavePackagingType(ctx context.Context, pt domain.PackagingType) error
	FindPackagingTypeByID(ctx context.Context, packagingTypeID string) (*domain.PackagingType, error)
	FindPackagingTypeByName(ctx context.Context, name string) (*domain.PackagingType, error)
	ListPackagingTypes(ctx context.Context) ([]domain.PackagingType, error)
	UpdatePackagingType(ctx context.Context, pt domain.PackagingType) error
	DeletePackagingType(ctx context.Context, packagingTypeID string) error
}
