package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/dto"
	"github.com/kemasku/packshop_backend/internal/middleware"
)

// productService provides the per-customer product registry.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	customerSvc portssvc.CustomerSvcFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, customerSvc portssvc.CustomerSvcFacade) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
		customerSvc: customerSvc,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// orNA substitutes the registration-number placeholder for blank values.
func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerSvc.GetCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to resolve customer %s: %w", req.CustomerID, err)
	}

	now := time.Now()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		CustomerID:    req.CustomerID,
		ProductName:   req.ProductName,
		ProductLabel:  req.ProductLabel,
		NIB:           orNA(req.NIB),
		NoPIRT:        orNA(req.NoPIRT),
		NoHalal:       orNA(req.NoHalal),
		PackagingType: req.PackagingType,
		PackagingSize: req.PackagingSize,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("customer_id", product.CustomerID))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

func (s *productService) ListProductsByCustomer(ctx context.Context, customerID string) ([]domain.Product, error) {
	products, err := s.productRepo.ListProductsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for customer %s: %w", customerID, err)
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	if req.ProductName != nil {
		product.ProductName = *req.ProductName
	}
	if req.ProductLabel != nil {
		product.ProductLabel = *req.ProductLabel
	}
	if req.NIB != nil {
		product.NIB = orNA(*req.NIB)
	}
	if req.NoPIRT != nil {
		product.NoPIRT = orNA(*req.NoPIRT)
	}
	if req.NoHalal != nil {
		product.NoHalal = orNA(*req.NoHalal)
	}
	if req.PackagingType != nil {
		product.PackagingType = *req.PackagingType
	}
	if req.PackagingSize != nil {
		product.PackagingSize = *req.PackagingSize
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	return product, nil
}

// DeleteProduct soft-deletes so orders referencing the product keep their history.
func (s *productService) DeleteProduct(ctx context.Context, productID string, userID string) error {
	if err := s.productRepo.MarkProductDeleted(ctx, productID, userID); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	return nil
}
