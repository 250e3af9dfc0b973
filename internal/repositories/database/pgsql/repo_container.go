package pgsql

import (
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	inventoryRepo := newPgxInventoryRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	packagingTypeRepo := newPgxPackagingTypeRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	financeRepo := newPgxFinanceRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool, inventoryRepo)

	return portsrepo.RepositoryProvider{
		OrderRepo:         orderRepo,
		InventoryRepo:     inventoryRepo,
		CustomerRepo:      customerRepo,
		PackagingTypeRepo: packagingTypeRepo,
		ProductRepo:       productRepo,
		UserRepo:          userRepo,
		FinanceRepo:       financeRepo,
	}
}
