package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObligationDirection mirrors domain.ObligationDirection at the persistence layer.
type ObligationDirection string

// ObligationStatus mirrors domain.ObligationStatus at the persistence layer.
type ObligationStatus string

// Obligation represents a row in the obligations table.
type Obligation struct {
	ObligationID      string              `db:"obligation_id"`
	Direction         ObligationDirection `db:"direction"`
	CustomerID        string              `db:"customer_id"`
	Amount            decimal.Decimal     `db:"amount"`
	DueDate           time.Time           `db:"due_date"`
	Status            ObligationStatus    `db:"status"`
	SettledAmount     *decimal.Decimal    `db:"settled_amount"`
	SettledAt         *time.Time          `db:"settled_at"`
	SettlementMethod  string              `db:"settlement_method"`
	InstallmentNumber int                 `db:"installment_number"`
	OrderID           *string             `db:"order_id"`
	Description       string              `db:"description"`
	AuditFields
}
