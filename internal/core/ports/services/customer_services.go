package services

import (
	"context"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/kemasku/packshop_backend/internal/dto"
)

// CustomerSvcFacade defines customer directory operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}
