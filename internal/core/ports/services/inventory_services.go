package services

import (
	"context"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
)

// InventorySvcFacade manages the stock item catalog and on-hand quantities.
type InventorySvcFacade interface {
	CreateStockItem(ctx context.Context, req dto.CreateStockItemRequest, userID string) (*domain.StockItem, error)
	GetStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error)
	ListStockItems(ctx context.Context, limit int, offset int) ([]domain.StockItem, error)

	// UpdateStockItem edits catalog fields (SKU, name, unit price).
	// Quantities are never written through this path.
	UpdateStockItem(ctx context.Context, stockItemID string, req dto.UpdateStockItemRequest, userID string) (*domain.StockItem, error)

	// CheckAvailability reports whether the item has at least qty available
	// (on hand minus reserved). SERVICE items are always available.
	CheckAvailability(ctx context.Context, stockItemID string, qty int64) (bool, error)

	// Restock atomically increments on-hand quantity.
	Restock(ctx context.Context, stockItemID string, qty int64, userID string) (*domain.StockItem, error)

	DeactivateStockItem(ctx context.Context, stockItemID string, userID string) error
}
