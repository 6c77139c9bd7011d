package mapping

import (
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Document:    d.Document,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Document:    m.Document,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts a slice of model Customers to domain Customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}

// ToModelVehicle converts a domain Vehicle to a model Vehicle
func ToModelVehicle(d domain.Vehicle) models.Vehicle {
	return models.Vehicle{
		VehicleID:   d.VehicleID,
		CustomerID:  d.CustomerID,
		Plate:       d.Plate,
		Make:        d.Make,
		Model:       d.Model,
		Year:        d.Year,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVehicle converts a model Vehicle to a domain Vehicle
func ToDomainVehicle(m models.Vehicle) domain.Vehicle {
	return domain.Vehicle{
		VehicleID:   m.VehicleID,
		CustomerID:  m.CustomerID,
		Plate:       m.Plate,
		Make:        m.Make,
		Model:       m.Model,
		Year:        m.Year,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVehicleSlice converts a slice of model Vehicles to domain Vehicles
func ToDomainVehicleSlice(ms []models.Vehicle) []domain.Vehicle {
	ds := make([]domain.Vehicle, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVehicle(m)
	}
	return ds
}
