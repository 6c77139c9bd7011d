package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind distinguishes counter sales from workshop service orders.
type OrderKind string

const (
	Sale         OrderKind = "SALE"
	ServiceOrder OrderKind = "SERVICE_ORDER"
)

// OrderStatus is a state in the order lifecycle machine.
type OrderStatus string

const (
	StatusPending         OrderStatus = "PENDING"
	StatusApproved        OrderStatus = "APPROVED" // Sales only
	StatusInProgress      OrderStatus = "IN_PROGRESS"
	StatusWaitingParts    OrderStatus = "WAITING_PARTS"
	StatusWaitingApproval OrderStatus = "WAITING_APPROVAL"
	StatusCompleted       OrderStatus = "COMPLETED"
	StatusDelivered       OrderStatus = "DELIVERED" // Service orders only
	StatusCancelled       OrderStatus = "CANCELLED"
)

// PaymentTerms selects how a completed order is paid.
type PaymentTerms string

const (
	TermsCash         PaymentTerms = "CASH"
	TermsInstallments PaymentTerms = "INSTALLMENTS"
)

// saleTransitions is the allowed-next set per status for sales.
var saleTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:  {StatusApproved, StatusCompleted, StatusCancelled},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

// serviceOrderTransitions is the allowed-next set per status for service orders.
var serviceOrderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:         {StatusInProgress, StatusCancelled},
	StatusInProgress:      {StatusWaitingParts, StatusWaitingApproval, StatusCompleted, StatusCancelled},
	StatusWaitingParts:    {StatusInProgress, StatusWaitingApproval, StatusCompleted, StatusCancelled},
	StatusWaitingApproval: {StatusInProgress, StatusWaitingParts, StatusCompleted, StatusCancelled},
	StatusCompleted:       {StatusDelivered},
}

// OrderLine is one line of an order, referencing a catalog item.
type OrderLine struct {
	OrderLineID  string          `json:"orderLineID"` // Primary Key (UUID)
	OrderID      string          `json:"orderID"`
	StockItemID  string          `json:"stockItemID"`
	Description  string          `json:"description"`
	Quantity     int64           `json:"quantity"`  // Must be > 0
	UnitPrice    decimal.Decimal `json:"unitPrice"` // Must be >= 0
	LineDiscount decimal.Decimal `json:"lineDiscount"`
	LineTotal    decimal.Decimal `json:"lineTotal"` // max(0, qty*price - discount), rounded to 2dp
}

// Order is the transactional document driving the workshop workflow. It
// generalizes a counter sale and a service order.
type Order struct {
	OrderID        string          `json:"orderID"` // Primary Key (UUID)
	Kind           OrderKind       `json:"kind"`
	SequenceNumber int64           `json:"sequenceNumber"` // Kind-scoped, monotonically increasing
	CustomerID     string          `json:"customerID"`
	VehicleID      *string         `json:"vehicleID,omitempty"` // Service orders only
	Lines          []OrderLine     `json:"lines,omitempty"`
	LaborCost      decimal.Decimal `json:"laborCost"` // Service orders only
	OrderDiscount  decimal.Decimal `json:"orderDiscount"`
	Total          decimal.Decimal `json:"total"` // max(0, sum(lineTotal) - discount) + labor
	PaymentTerms   PaymentTerms    `json:"paymentTerms"`
	Installments   int             `json:"installments"` // Meaningful when PaymentTerms is INSTALLMENTS
	Status         OrderStatus     `json:"status"`
	StockApplied   bool            `json:"stockApplied"` // Reservations converted to deductions
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
	Notes          string          `json:"notes"`
	AuditFields
}

// transitionTable returns the allowed-next map for the order's kind.
func (o Order) transitionTable() map[OrderStatus][]OrderStatus {
	if o.Kind == Sale {
		return saleTransitions
	}
	return serviceOrderTransitions
}

// IsTerminal reports whether the order's current status accepts no further transitions.
func (o Order) IsTerminal() bool {
	if o.Status == StatusCancelled {
		return true
	}
	if o.Kind == Sale {
		return o.Status == StatusCompleted
	}
	return o.Status == StatusDelivered
}

// CanTransitionTo reports whether target is directly reachable from the
// order's current status.
func (o Order) CanTransitionTo(target OrderStatus) bool {
	for _, next := range o.transitionTable()[o.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// ConsumesStockAt reports whether reaching target is the point where the
// order's goods lines are deducted from stock. Sales consume at the earlier
// of APPROVED or COMPLETED; service orders consume at COMPLETED.
func (o Order) ConsumesStockAt(target OrderStatus) bool {
	if o.StockApplied {
		return false
	}
	if o.Kind == Sale {
		return target == StatusApproved || target == StatusCompleted
	}
	return target == StatusCompleted
}
