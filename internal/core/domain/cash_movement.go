package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashDirection indicates whether money came in or went out.
type CashDirection string

const (
	Income  CashDirection = "INCOME"
	Expense CashDirection = "EXPENSE"
)

// CashReferenceKind identifies what a cash movement originated from.
type CashReferenceKind string

const (
	RefOrder      CashReferenceKind = "ORDER"
	RefObligation CashReferenceKind = "OBLIGATION"
	RefManual     CashReferenceKind = "MANUAL"
)

// Cash movement categories used by the lifecycle engine and settlements.
// Direct movements recorded by hand carry free-form categories.
const (
	CategorySales       = "SALES"
	CategoryServices    = "SERVICES"
	CategoryReceivables = "RECEIVABLES"
	CategoryPayables    = "PAYABLES"
)

// CashMovement is an immutable record of money received or paid. Entries are
// never edited or deleted; corrections are made with an offsetting entry.
type CashMovement struct {
	CashMovementID string            `json:"cashMovementID"` // Primary Key (UUID)
	Direction      CashDirection     `json:"direction"`
	Amount         decimal.Decimal   `json:"amount"` // Must be > 0
	Category       string            `json:"category"`
	ReferenceKind  CashReferenceKind `json:"referenceKind"`
	ReferenceID    *string           `json:"referenceID,omitempty"`
	OccurredAt     time.Time         `json:"occurredAt"`
	CreatedAt      time.Time         `json:"createdAt"`
	CreatedBy      string            `json:"createdBy"`
}
