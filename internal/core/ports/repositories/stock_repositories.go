package repositories

import (
	"context"
	"time"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
)

// StockReader defines read operations for stock item data
type StockReader interface {
	// FindStockItemByID retrieves a stock item by its unique identifier.
	FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error)

	// FindStockItemsByIDs retrieves multiple stock items keyed by ID.
	FindStockItemsByIDs(ctx context.Context, stockItemIDs []string) (map[string]domain.StockItem, error)

	// ListStockItems retrieves a paginated list of active stock items.
	ListStockItems(ctx context.Context, limit int, offset int) ([]domain.StockItem, error)
}

// StockWriter defines write operations for stock item data
type StockWriter interface {
	// SaveStockItem persists a new stock item.
	SaveStockItem(ctx context.Context, item domain.StockItem) error

	// UpdateStockItem updates a stock item's catalog fields. Quantities are
	// never written through this method.
	UpdateStockItem(ctx context.Context, item domain.StockItem) error

	// Restock atomically increments on-hand quantity.
	Restock(ctx context.Context, stockItemID string, quantity int64, userID string, now time.Time) error

	// DeactivateStockItem marks a stock item as inactive.
	DeactivateStockItem(ctx context.Context, stockItemID string, userID string, now time.Time) error
}

// StockRepositoryFacade combines all stock-related repository interfaces
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}
