package dto

import (
	"time"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCashMovementRequest defines the payload for recording a direct
// income/expense event (not tied to an order or obligation settlement).
type CreateCashMovementRequest struct {
	Direction  string          `json:"direction" binding:"required,oneof=INCOME EXPENSE"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Category   string          `json:"category" binding:"required"`
	OccurredAt *time.Time      `json:"occurredAt,omitempty"` // Defaults to now
}

// ListCashMovementsParams holds pagination for listing cash movements.
type ListCashMovementsParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ListMovementsByReferenceParams identifies the order or obligation whose
// ledger entries are wanted.
type ListMovementsByReferenceParams struct {
	Kind        string `form:"kind" binding:"required,oneof=ORDER OBLIGATION MANUAL"`
	ReferenceID string `form:"referenceID" binding:"required"`
}

// CashMovementResponse defines the data returned for a cash movement.
type CashMovementResponse struct {
	CashMovementID string          `json:"cashMovementID"`
	Direction      string          `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	ReferenceKind  string          `json:"referenceKind"`
	ReferenceID    *string         `json:"referenceID,omitempty"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

// BalanceResponse defines the cash balance as of a point in time.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
	AsOf    time.Time       `json:"asOf"`
}

// ToCashMovementResponse converts a domain.CashMovement to CashMovementResponse DTO.
func ToCashMovementResponse(m *domain.CashMovement) CashMovementResponse {
	return CashMovementResponse{
		CashMovementID: m.CashMovementID,
		Direction:      string(m.Direction),
		Amount:         m.Amount,
		Category:       m.Category,
		ReferenceKind:  string(m.ReferenceKind),
		ReferenceID:    m.ReferenceID,
		OccurredAt:     m.OccurredAt,
	}
}

// ToCashMovementResponses converts a slice of domain.CashMovement to []CashMovementResponse.
func ToCashMovementResponses(ms []domain.CashMovement) []CashMovementResponse {
	responses := make([]CashMovementResponse, len(ms))
	for i := range ms {
		responses[i] = ToCashMovementResponse(&ms[i])
	}
	return responses
}
