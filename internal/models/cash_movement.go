package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashDirection mirrors domain.CashDirection at the persistence layer.
type CashDirection string

// CashReferenceKind mirrors domain.CashReferenceKind at the persistence layer.
type CashReferenceKind string

// CashMovement represents a row in the cash_movements table. The table is
// append-only; there are no update or delete statements against it.
type CashMovement struct {
	CashMovementID string            `db:"cash_movement_id"`
	Direction      CashDirection     `db:"direction"`
	Amount         decimal.Decimal   `db:"amount"`
	Category       string            `db:"category"`
	ReferenceKind  CashReferenceKind `db:"reference_kind"`
	ReferenceID    *string           `db:"reference_id"`
	OccurredAt     time.Time         `db:"occurred_at"`
	CreatedAt      time.Time         `db:"created_at"`
	CreatedBy      string            `db:"created_by"`
}
