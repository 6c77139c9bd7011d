package dto

import (
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
)

// CreateVehicleRequest defines the payload for registering a vehicle.
type CreateVehicleRequest struct {
	CustomerID string `json:"customerID" binding:"required"`
	Plate      string `json:"plate" binding:"required"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Year       int    `json:"year"`
	Notes      string `json:"notes"`
}

// UpdateVehicleRequest defines the payload for updating a vehicle.
type UpdateVehicleRequest struct {
	Plate *string `json:"plate,omitempty"`
	Make  *string `json:"make,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *int    `json:"year,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// VehicleResponse defines the data returned for a vehicle.
type VehicleResponse struct {
	VehicleID  string `json:"vehicleID"`
	CustomerID string `json:"customerID"`
	Plate      string `json:"plate"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Year       int    `json:"year"`
	Notes      string `json:"notes"`
}

// ToVehicleResponse converts a domain.Vehicle to VehicleResponse DTO.
func ToVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:  v.VehicleID,
		CustomerID: v.CustomerID,
		Plate:      v.Plate,
		Make:       v.Make,
		Model:      v.Model,
		Year:       v.Year,
		Notes:      v.Notes,
	}
}

// ToVehicleResponses converts a slice of domain.Vehicle to []VehicleResponse.
func ToVehicleResponses(vs []domain.Vehicle) []VehicleResponse {
	responses := make([]VehicleResponse, len(vs))
	for i := range vs {
		responses[i] = ToVehicleResponse(&vs[i])
	}
	return responses
}
