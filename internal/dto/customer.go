package dto

import (
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
)

// CreateCustomerRequest defines the payload for creating a customer.
type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"omitempty,email"`
	Address  string `json:"address"`
}

// UpdateCustomerRequest defines the payload for updating a customer.
// Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Address *string `json:"address,omitempty"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Document   string `json:"document"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	IsActive   bool   `json:"isActive"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Document:   c.Document,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		IsActive:   c.IsActive,
	}
}

// ToCustomerResponses converts a slice of domain.Customer to []CustomerResponse.
func ToCustomerResponses(cs []domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(cs))
	for i := range cs {
		responses[i] = ToCustomerResponse(&cs[i])
	}
	return responses
}
