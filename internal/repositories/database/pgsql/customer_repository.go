package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	"github.com/kemasku/packshop_backend/internal/models"
	"github.com/kemasku/packshop_backend/internal/utils/mapping"
)

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, address, phone, created_at, created_by, last_updated_at, last_updated_by`

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Address:     m.Address,
		Phone:       m.Phone,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
	}
}

// SaveCustomer inserts a new customer. The phone number is unique.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		customer.CustomerID, customer.Name, customer.Address, customer.Phone,
		customer.CreatedAt, customer.CreatedBy, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: customer with phone %s already exists", apperrors.ErrDuplicate, customer.Phone)
		}
		return fmt.Errorf("failed to save customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var m models.Customer
	err := r.Pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1;`, customerID).Scan(
		&m.CustomerID, &m.Name, &m.Address, &m.Phone,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	customer := toDomainCustomer(m)
	return &customer, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var m models.Customer
		if err := rows.Scan(
			&m.CustomerID, &m.Name, &m.Address, &m.Phone,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, toDomainCustomer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	ct, err := r.Pool.Exec(ctx, `
		UPDATE customers
		SET name = $2, address = $3, phone = $4, last_updated_at = $5, last_updated_by = $6
		WHERE customer_id = $1;
	`,
		customer.CustomerID, customer.Name, customer.Address, customer.Phone,
		customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: customer with phone %s already exists", apperrors.ErrDuplicate, customer.Phone)
		}
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Orders reference the customer; deleting would orphan history.
			return fmt.Errorf("%w: customer %s has orders", apperrors.ErrConflict, customerID)
		}
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
