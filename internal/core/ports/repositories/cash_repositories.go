package repositories

import (
	"context"
	"time"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashReader defines read operations for the cash ledger
type CashReader interface {
	// ListCashMovements retrieves a paginated list of movements, newest first.
	ListCashMovements(ctx context.Context, limit int, offset int) ([]domain.CashMovement, error)

	// FindCashMovementsByReference retrieves all movements referencing an entity.
	FindCashMovementsByReference(ctx context.Context, kind domain.CashReferenceKind, referenceID string) ([]domain.CashMovement, error)

	// BalanceAsOf computes sum(income) - sum(expense) over movements with
	// occurred_at <= asOf.
	BalanceAsOf(ctx context.Context, asOf time.Time) (decimal.Decimal, error)
}

// CashWriter defines write operations for the cash ledger. The ledger is
// append-only; there is deliberately no update or delete operation.
type CashWriter interface {
	// AppendCashMovement persists a new immutable ledger entry.
	AppendCashMovement(ctx context.Context, movement domain.CashMovement) error
}

// CashRepositoryFacade combines all cash-ledger repository interfaces
type CashRepositoryFacade interface {
	CashReader
	CashWriter
}
