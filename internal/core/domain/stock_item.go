package domain

import "github.com/shopspring/decimal"

// StockItemKind distinguishes physical goods from labor/service catalog entries.
type StockItemKind string

const (
	Goods   StockItemKind = "GOODS"
	Service StockItemKind = "SERVICE"
)

// StockItem is a catalog entry. OnHand and Reserved are only meaningful for
// GOODS items; quantity is never tracked for SERVICE items.
type StockItem struct {
	StockItemID string          `json:"stockItemID"` // Primary Key (UUID)
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Kind        StockItemKind   `json:"kind"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	OnHand      int64           `json:"onHand"`   // Invariant: never negative
	Reserved    int64           `json:"reserved"` // Invariant: 0 <= reserved <= onHand
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// Available returns the quantity not yet committed to open orders.
func (s StockItem) Available() int64 {
	return s.OnHand - s.Reserved
}
