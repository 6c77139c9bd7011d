package repositories

import (
	"context"
	"time"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of active customers.
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeactivateCustomer marks a customer as inactive.
	DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}

// VehicleReader defines read operations for vehicle data
type VehicleReader interface {
	// FindVehicleByID retrieves a vehicle by its unique identifier.
	FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)

	// ListVehiclesByCustomer retrieves all vehicles registered to a customer.
	ListVehiclesByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error)
}

// VehicleWriter defines write operations for vehicle data
type VehicleWriter interface {
	// SaveVehicle persists a new vehicle.
	SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error

	// UpdateVehicle updates an existing vehicle's details.
	UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error
}

// VehicleRepositoryFacade combines all vehicle-related repository interfaces
type VehicleRepositoryFacade interface {
	VehicleReader
	VehicleWriter
}
