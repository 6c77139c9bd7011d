package services

import (
	"context"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
)

// AccountsSvcFacade manages payable/receivable obligations and their settlement.
type AccountsSvcFacade interface {
	// OpenObligation creates a standalone obligation in PENDING state.
	OpenObligation(ctx context.Context, req dto.OpenObligationRequest, userID string) (*domain.Obligation, error)

	GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)
	ListObligations(ctx context.Context, params dto.ListObligationsParams) ([]domain.Obligation, error)

	// ListObligationsByOrder retrieves the installment receivables opened
	// when an order was completed, ordered by installment number.
	ListObligationsByOrder(ctx context.Context, orderID string) ([]domain.Obligation, error)

	// SettleObligation settles at most once, posting exactly one cash
	// movement (receivable -> income, payable -> expense) atomically with
	// the settlement. Typed failures: ErrAlreadySettled, ErrOverSettlement.
	SettleObligation(ctx context.Context, obligationID string, req dto.SettleObligationRequest, userID string) (*domain.Obligation, *domain.CashMovement, error)

	// CancelObligation cancels a pending obligation with no ledger effect.
	CancelObligation(ctx context.Context, obligationID string, reason string, userID string) (*domain.Obligation, error)
}
