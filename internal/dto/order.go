package dto

import (
	"time"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one line of a create-order payload.
type OrderLineRequest struct {
	StockItemID  string          `json:"stockItemID" binding:"required"`
	Quantity     int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice    *decimal.Decimal `json:"unitPrice,omitempty"` // Defaults to the catalog price
	LineDiscount decimal.Decimal `json:"lineDiscount"`
	Description  string          `json:"description"`
}

// CreateOrderRequest defines the payload for creating a sale or service order.
type CreateOrderRequest struct {
	Kind          string             `json:"kind" binding:"required,oneof=SALE SERVICE_ORDER"`
	CustomerID    string             `json:"customerID" binding:"required"`
	VehicleID     *string            `json:"vehicleID,omitempty"`
	Lines         []OrderLineRequest `json:"lines" binding:"omitempty,dive"`
	LaborCost     decimal.Decimal    `json:"laborCost"`
	OrderDiscount decimal.Decimal    `json:"orderDiscount"`
	PaymentTerms  string             `json:"paymentTerms" binding:"required,oneof=CASH INSTALLMENTS"`
	Installments  int                `json:"installments" binding:"omitempty,gte=1"`
	Notes         string             `json:"notes"`

	// CompleteImmediately creates a cash sale directly in COMPLETED status.
	CompleteImmediately bool `json:"completeImmediately"`
}

// TransitionRequest defines the payload for requesting a status transition.
type TransitionRequest struct {
	Target string `json:"target" binding:"required"`
}

// ListOrdersParams holds the filters for listing orders.
type ListOrdersParams struct {
	Kind   *string `form:"kind" binding:"omitempty,oneof=SALE SERVICE_ORDER"`
	Status *string `form:"status"`
	Limit  int     `form:"limit"`
	Offset int     `form:"offset"`
}

// OrderLineResponse defines the data returned for an order line.
type OrderLineResponse struct {
	OrderLineID  string          `json:"orderLineID"`
	StockItemID  string          `json:"stockItemID"`
	Description  string          `json:"description"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	LineDiscount decimal.Decimal `json:"lineDiscount"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID        string              `json:"orderID"`
	Kind           string              `json:"kind"`
	SequenceNumber int64               `json:"sequenceNumber"`
	CustomerID     string              `json:"customerID"`
	VehicleID      *string             `json:"vehicleID,omitempty"`
	Lines          []OrderLineResponse `json:"lines"`
	LaborCost      decimal.Decimal     `json:"laborCost"`
	OrderDiscount  decimal.Decimal     `json:"orderDiscount"`
	Total          decimal.Decimal     `json:"total"`
	PaymentTerms   string              `json:"paymentTerms"`
	Installments   int                 `json:"installments"`
	Status         string              `json:"status"`
	CompletedAt    *time.Time          `json:"completedAt,omitempty"`
	Notes          string              `json:"notes"`
	CreatedAt      time.Time           `json:"createdAt"`
	LastUpdatedAt  time.Time           `json:"lastUpdatedAt"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			OrderLineID:  l.OrderLineID,
			StockItemID:  l.StockItemID,
			Description:  l.Description,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			LineDiscount: l.LineDiscount,
			LineTotal:    l.LineTotal,
		}
	}
	return OrderResponse{
		OrderID:        o.OrderID,
		Kind:           string(o.Kind),
		SequenceNumber: o.SequenceNumber,
		CustomerID:     o.CustomerID,
		VehicleID:      o.VehicleID,
		Lines:          lines,
		LaborCost:      o.LaborCost,
		OrderDiscount:  o.OrderDiscount,
		Total:          o.Total,
		PaymentTerms:   string(o.PaymentTerms),
		Installments:   o.Installments,
		Status:         string(o.Status),
		CompletedAt:    o.CompletedAt,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		LastUpdatedAt:  o.LastUpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain.Order to []OrderResponse.
func ToOrderResponses(os []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(os))
	for i := range os {
		responses[i] = ToOrderResponse(&os[i])
	}
	return responses
}
