package services

import (
	"context"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
)

// CustomerSvcFacade manages customer records.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, customerID string, userID string) error
}

// VehicleSvcFacade manages vehicle records.
type VehicleSvcFacade interface {
	CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, userID string) (*domain.Vehicle, error)
	GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListVehiclesByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicleID string, req dto.UpdateVehicleRequest, userID string) (*domain.Vehicle, error)
}
