package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
	"github.com/rkalra23/workshop_mgmt_app/internal/utils/mapping"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	modelCustomer := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, name, document, phone, email, address, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCustomer.CustomerID,
		modelCustomer.Name,
		modelCustomer.Document,
		modelCustomer.Phone,
		modelCustomer.Email,
		modelCustomer.Address,
		modelCustomer.IsActive,
		modelCustomer.CreatedAt,
		modelCustomer.CreatedBy,
		modelCustomer.LastUpdatedAt,
		modelCustomer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save customer %s: %w", modelCustomer.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, name, document, phone, email, address, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE customer_id = $1;
	`
	var modelCustomer models.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&modelCustomer.CustomerID,
		&modelCustomer.Name,
		&modelCustomer.Document,
		&modelCustomer.Phone,
		&modelCustomer.Email,
		&modelCustomer.Address,
		&modelCustomer.IsActive,
		&modelCustomer.CreatedAt,
		&modelCustomer.CreatedBy,
		&modelCustomer.LastUpdatedAt,
		&modelCustomer.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}

	domainCustomer := mapping.ToDomainCustomer(modelCustomer)
	return &domainCustomer, nil
}

// ListCustomers retrieves a paginated list of active customers.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	query := `
		SELECT customer_id, name, document, phone, email, address, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE is_active = TRUE
		ORDER BY name, customer_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	modelCustomers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Customer, error) {
		var customer models.Customer
		err := row.Scan(
			&customer.CustomerID,
			&customer.Name,
			&customer.Document,
			&customer.Phone,
			&customer.Email,
			&customer.Address,
			&customer.IsActive,
			&customer.CreatedAt,
			&customer.CreatedBy,
			&customer.LastUpdatedAt,
			&customer.LastUpdatedBy,
		)
		return customer, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}

	return mapping.ToDomainCustomerSlice(modelCustomers), nil
}

// UpdateCustomer updates an existing customer's details.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	modelCustomer := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET name = $2, document = $3, phone = $4, email = $5, address = $6, last_updated_at = $7, last_updated_by = $8
		WHERE customer_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelCustomer.CustomerID,
		modelCustomer.Name,
		modelCustomer.Document,
		modelCustomer.Phone,
		modelCustomer.Email,
		modelCustomer.Address,
		modelCustomer.LastUpdatedAt,
		modelCustomer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", modelCustomer.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCustomer marks a customer as inactive.
func (r *PgxCustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error {
	query := `
		UPDATE customers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE customer_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, customerID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate customer %s: %w", customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
