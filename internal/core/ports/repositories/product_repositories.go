package repositories

import (
	"context"

	"github.com/kemasku/packshop_backend/internal/core/domain"
)

// ProductRepositoryFacade defines persistence operations for customer products.
type ProductRepositoryFacade interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProductsByCustomer(ctx context.Context, customerID string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	// MarkProductDeleted soft-deletes; history referencing the product stays intact.
	MarkProductDeleted(ctx context.Context, productID string, userID string) error
}
