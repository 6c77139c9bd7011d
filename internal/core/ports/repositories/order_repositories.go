package repositories

import (
	"context"
	"time"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
)

// StockAdjustment is a single quantity change against one stock item.
type StockAdjustment struct {
	StockItemID string
	Quantity    int64
}

// TransitionSideEffects is the plan of mutations a lifecycle transition must
// apply atomically together with the status change. The repository applies
// the whole plan in one database transaction; if any part fails, none of it
// is observable.
type TransitionSideEffects struct {
	// ConsumeReservations converts reservations into permanent deductions
	// (on_hand -= qty, reserved -= qty). Fails with ErrInsufficientStock if
	// the item no longer covers the quantity.
	ConsumeReservations []StockAdjustment

	// ReleaseReservations gives reserved quantity back (reserved -= qty).
	ReleaseReservations []StockAdjustment

	// Restock returns previously deducted quantity (on_hand += qty), used
	// when cancelling after stock was consumed.
	Restock []StockAdjustment

	// CashMovement, if set, is appended to the cash ledger.
	CashMovement *domain.CashMovement

	// Obligations are opened in the accounts registry (installment terms).
	Obligations []domain.Obligation

	// MarkStockApplied records that the order's goods lines have been
	// deducted, so no later transition deducts them again.
	MarkStockApplied bool

	// CompletedAt, if set, stamps the order's immutable completion time.
	CompletedAt *time.Time
}

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves an order with its lines.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves orders filtered by optional kind and status.
	ListOrders(ctx context.Context, kind *domain.OrderKind, status *domain.OrderStatus, limit int, offset int) ([]domain.Order, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// SaveOrder persists a new order, its lines, and the stock reservations
	// for its goods lines in a single transaction, allocating the order's
	// kind-scoped sequence number. Returns the allocated sequence number.
	// A failed reservation aborts everything; the burned sequence value is
	// an acceptable gap.
	SaveOrder(ctx context.Context, order domain.Order, lines []domain.OrderLine, reservations []StockAdjustment) (int64, error)

	// ApplyTransition commits the status change from -> target together with
	// the side-effect plan in one transaction. The order row is locked and
	// its status re-checked under the lock, so concurrent transitions on the
	// same order serialize; the loser gets ErrConflict (or ErrAlreadyTerminal
	// when the winner reached a terminal status).
	ApplyTransition(ctx context.Context, orderID string, from domain.OrderStatus, target domain.OrderStatus, effects TransitionSideEffects, userID string, now time.Time) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager
}
