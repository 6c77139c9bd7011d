package repositories

import (
	"context"
	"time"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ObligationReader defines read operations for obligation data
type ObligationReader interface {
	// FindObligationByID retrieves an obligation by its unique identifier.
	FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// ListObligations retrieves obligations filtered by optional status and direction.
	ListObligations(ctx context.Context, status *domain.ObligationStatus, direction *domain.ObligationDirection, limit int, offset int) ([]domain.Obligation, error)

	// FindObligationsByOrderID retrieves all obligations originating from an order.
	FindObligationsByOrderID(ctx context.Context, orderID string) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for obligation data
type ObligationWriter interface {
	// SaveObligation persists a new obligation in PENDING state.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error

	// SettleObligation marks the obligation settled and appends the matching
	// cash movement in one transaction. The PENDING -> SETTLED flip is a
	// compare-and-swap: if another settlement won, ErrAlreadySettled is
	// returned and no movement is written.
	SettleObligation(ctx context.Context, obligationID string, settledAmount decimal.Decimal, method string, movement domain.CashMovement, userID string, now time.Time) error

	// CancelObligation flips PENDING -> CANCELLED with no ledger effect.
	// Returns ErrAlreadySettled if the obligation left PENDING already.
	CancelObligation(ctx context.Context, obligationID string, reason string, userID string, now time.Time) error
}

// ObligationRepositoryFacade combines all obligation-related repository interfaces
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
}

// ObligationRepositoryWithTx extends ObligationRepositoryFacade with transaction capabilities
type ObligationRepositoryWithTx interface {
	ObligationRepositoryFacade
	TransactionManager
}
