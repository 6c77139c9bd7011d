package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind mirrors domain.OrderKind at the persistence layer.
type OrderKind string

// OrderStatus mirrors domain.OrderStatus at the persistence layer.
type OrderStatus string

// PaymentTerms mirrors domain.PaymentTerms at the persistence layer.
type PaymentTerms string

// Order represents a row in the orders table.
type Order struct {
	OrderID        string          `db:"order_id"`
	Kind           OrderKind       `db:"kind"`
	SequenceNumber int64           `db:"sequence_number"`
	CustomerID     string          `db:"customer_id"`
	VehicleID      *string         `db:"vehicle_id"`
	LaborCost      decimal.Decimal `db:"labor_cost"`
	OrderDiscount  decimal.Decimal `db:"order_discount"`
	Total          decimal.Decimal `db:"total"`
	PaymentTerms   PaymentTerms    `db:"payment_terms"`
	Installments   int             `db:"installments"`
	Status         OrderStatus     `db:"status"`
	StockApplied   bool            `db:"stock_applied"`
	CompletedAt    *time.Time      `db:"completed_at"`
	Notes          string          `db:"notes"`
	AuditFields
}

// OrderLine represents a row in the order_lines table.
type OrderLine struct {
	OrderLineID  string          `db:"order_line_id"`
	OrderID      string          `db:"order_id"`
	StockItemID  string          `db:"stock_item_id"`
	Description  string          `db:"description"`
	Quantity     int64           `db:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	LineDiscount decimal.Decimal `db:"line_discount"`
	LineTotal    decimal.Decimal `db:"line_total"`
}
