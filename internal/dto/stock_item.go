package dto

import (
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStockItemRequest defines the payload for creating a catalog entry.
type CreateStockItemRequest struct {
	SKU       string          `json:"sku" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Kind      string          `json:"kind" binding:"required,oneof=GOODS SERVICE"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	OnHand    int64           `json:"onHand" binding:"omitempty,gte=0"`
}

// UpdateStockItemRequest defines the payload for updating a catalog entry.
// Quantities are never edited this way; use restock or order transitions.
type UpdateStockItemRequest struct {
	SKU       *string          `json:"sku,omitempty"`
	Name      *string          `json:"name,omitempty"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}

// RestockRequest defines the payload for adding on-hand quantity.
type RestockRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// StockItemResponse defines the data returned for a stock item.
type StockItemResponse struct {
	StockItemID string          `json:"stockItemID"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	OnHand      int64           `json:"onHand"`
	Reserved    int64           `json:"reserved"`
	Available   int64           `json:"available"`
	IsActive    bool            `json:"isActive"`
}

// ToStockItemResponse converts a domain.StockItem to StockItemResponse DTO.
func ToStockItemResponse(s *domain.StockItem) StockItemResponse {
	return StockItemResponse{
		StockItemID: s.StockItemID,
		SKU:         s.SKU,
		Name:        s.Name,
		Kind:        string(s.Kind),
		UnitPrice:   s.UnitPrice,
		OnHand:      s.OnHand,
		Reserved:    s.Reserved,
		Available:   s.Available(),
		IsActive:    s.IsActive,
	}
}

// ToStockItemResponses converts a slice of domain.StockItem to []StockItemResponse.
func ToStockItemResponses(ss []domain.StockItem) []StockItemResponse {
	responses := make([]StockItemResponse, len(ss))
	for i := range ss {
		responses[i] = ToStockItemResponse(&ss[i])
	}
	return responses
}
