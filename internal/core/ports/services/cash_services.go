package services

import (
	"context"
	"time"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CashSvcFacade exposes the append-only cash ledger.
type CashSvcFacade interface {
	// RecordMovement appends a direct income/expense entry.
	RecordMovement(ctx context.Context, req dto.CreateCashMovementRequest, userID string) (*domain.CashMovement, error)

	ListMovements(ctx context.Context, params dto.ListCashMovementsParams) ([]domain.CashMovement, error)

	// ListMovementsByReference retrieves the ledger entries posted against a
	// specific order or obligation.
	ListMovementsByReference(ctx context.Context, params dto.ListMovementsByReferenceParams) ([]domain.CashMovement, error)

	// Balance computes sum(income) - sum(expense) over entries with
	// occurred_at <= asOf. A nil asOf means now.
	Balance(ctx context.Context, asOf *time.Time) (decimal.Decimal, time.Time, error)
}
