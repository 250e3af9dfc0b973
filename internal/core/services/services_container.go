package services

import (
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Master data services come first since the order service depends on them
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.PackagingType = NewPackagingTypeService(repos.PackagingTypeRepo)
	container.Product = NewProductService(repos.ProductRepo, container.Customer)
	container.Inventory = NewInventoryService(repos.InventoryRepo)
	container.Finance = NewFinanceService(repos.FinanceRepo)

	container.Order = NewOrderService(repos.OrderRepo, container.Customer, container.PackagingType, container.Finance)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	return container
}
