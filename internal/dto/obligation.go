package dto

import (
	"time"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenObligationRequest defines the payload for opening a standalone obligation.
type OpenObligationRequest struct {
	Direction   string          `json:"direction" binding:"required,oneof=PAYABLE RECEIVABLE"`
	CustomerID  string          `json:"customerID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     time.Time       `json:"dueDate" binding:"required"`
	OrderID     *string         `json:"orderID,omitempty"`
	Description string          `json:"description"`
}

// SettleObligationRequest defines the payload for settling an obligation.
type SettleObligationRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required"`
}

// CancelObligationRequest defines the payload for cancelling a pending obligation.
type CancelObligationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListObligationsParams holds the filters for listing obligations.
type ListObligationsParams struct {
	Status    *string `form:"status" binding:"omitempty,oneof=PENDING SETTLED CANCELLED"`
	Direction *string `form:"direction" binding:"omitempty,oneof=PAYABLE RECEIVABLE"`
	Limit     int     `form:"limit"`
	Offset    int     `form:"offset"`
}

// ObligationResponse defines the data returned for an obligation.
type ObligationResponse struct {
	ObligationID      string           `json:"obligationID"`
	Direction         string           `json:"direction"`
	CustomerID        string           `json:"customerID"`
	Amount            decimal.Decimal  `json:"amount"`
	DueDate           time.Time        `json:"dueDate"`
	Status            string           `json:"status"`
	SettledAmount     *decimal.Decimal `json:"settledAmount,omitempty"`
	SettledAt         *time.Time       `json:"settledAt,omitempty"`
	SettlementMethod  string           `json:"settlementMethod,omitempty"`
	InstallmentNumber int              `json:"installmentNumber"`
	OrderID           *string          `json:"orderID,omitempty"`
	Description       string           `json:"description"`
}

// SettlementResponse pairs the settled obligation with the generated cash movement.
type SettlementResponse struct {
	Obligation   ObligationResponse   `json:"obligation"`
	CashMovement CashMovementResponse `json:"cashMovement"`
}

// ToObligationResponse converts a domain.Obligation to ObligationResponse DTO.
func ToObligationResponse(o *domain.Obligation) ObligationResponse {
	return ObligationResponse{
		ObligationID:      o.ObligationID,
		Direction:         string(o.Direction),
		CustomerID:        o.CustomerID,
		Amount:            o.Amount,
		DueDate:           o.DueDate,
		Status:            string(o.Status),
		SettledAmount:     o.SettledAmount,
		SettledAt:         o.SettledAt,
		SettlementMethod:  o.SettlementMethod,
		InstallmentNumber: o.InstallmentNumber,
		OrderID:           o.OrderID,
		Description:       o.Description,
	}
}

// ToObligationResponses converts a slice of domain.Obligation to []ObligationResponse.
func ToObligationResponses(os []domain.Obligation) []ObligationResponse {
	responses := make([]ObligationResponse, len(os))
	for i := range os {
		responses[i] = ToObligationResponse(&os[i])
	}
	return responses
}
