package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObligationDirection indicates who owes whom.
type ObligationDirection string

const (
	Payable    ObligationDirection = "PAYABLE"    // We owe the counterparty
	Receivable ObligationDirection = "RECEIVABLE" // The counterparty owes us
)

// ObligationStatus is the settlement state of an obligation.
type ObligationStatus string

const (
	ObligationPending   ObligationStatus = "PENDING"
	ObligationSettled   ObligationStatus = "SETTLED"
	ObligationCancelled ObligationStatus = "CANCELLED"
)

// Obligation is a pending amount owed by or to a counterparty. Created
// standalone or as a side effect of an order completing under installment
// terms; settled at most once.
type Obligation struct {
	ObligationID      string              `json:"obligationID"` // Primary Key (UUID)
	Direction         ObligationDirection `json:"direction"`
	CustomerID        string              `json:"customerID"`
	Amount            decimal.Decimal     `json:"amount"`
	DueDate           time.Time           `json:"dueDate"`
	Status            ObligationStatus    `json:"status"`
	SettledAmount     *decimal.Decimal    `json:"settledAmount,omitempty"`
	SettledAt         *time.Time          `json:"settledAt,omitempty"`
	SettlementMethod  string              `json:"settlementMethod,omitempty"`
	InstallmentNumber int                 `json:"installmentNumber"` // 0 for standalone obligations
	OrderID           *string             `json:"orderID,omitempty"` // Originating order, if any
	Description       string              `json:"description"`
	AuditFields
}
