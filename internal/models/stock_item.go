package models

import "github.com/shopspring/decimal"

// StockItemKind mirrors domain.StockItemKind at the persistence layer.
type StockItemKind string

const (
	Goods   StockItemKind = "GOODS"
	Service StockItemKind = "SERVICE"
)

// StockItem represents a row in the stock_items table.
type StockItem struct {
	StockItemID string          `db:"stock_item_id"`
	SKU         string          `db:"sku"`
	Name        string          `db:"name"`
	Kind        StockItemKind   `db:"kind"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	OnHand      int64           `db:"on_hand"`
	Reserved    int64           `db:"reserved"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
