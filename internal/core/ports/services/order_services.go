package services

import (
	"context"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
)

// OrderCreatorSvc creates orders.
type OrderCreatorSvc interface {
	// CreateOrder validates the request, computes totals, allocates the
	// kind-scoped sequence number, and reserves stock for goods lines in
	// one transaction. A cash sale may be created directly in COMPLETED.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error)
}

// OrderTransitionerSvc drives the order lifecycle state machine.
type OrderTransitionerSvc interface {
	// RequestTransition moves the order to target, applying the transition's
	// side effects (stock deduction, cash posting, obligation creation)
	// exactly once and atomically with the status change. Typed failures:
	// ErrAlreadyTerminal, ErrInvalidTransition, ErrInsufficientStock.
	RequestTransition(ctx context.Context, orderID string, target domain.OrderStatus, userID string) (*domain.Order, error)
}

// OrderReaderSvc reads orders.
type OrderReaderSvc interface {
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, error)
}

// OrderSvcFacade combines all order service interfaces.
type OrderSvcFacade interface {
	OrderCreatorSvc
	OrderTransitionerSvc
	OrderReaderSvc
}
