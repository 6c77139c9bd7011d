package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
	"github.com/rkalra23/workshop_mgmt_app/internal/utils/mapping"
)

const stockItemColumns = `stock_item_id, sku, name, kind, unit_price, on_hand, reserved, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxStockRepository struct {
	BaseRepository
}

// newPgxStockRepository creates a new repository for stock item data.
func newPgxStockRepository(pool *pgxpool.Pool) *PgxStockRepository {
	return &PgxStockRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

func scanStockItem(row pgx.Row) (models.StockItem, error) {
	var item models.StockItem
	err := row.Scan(
		&item.StockItemID,
		&item.SKU,
		&item.Name,
		&item.Kind,
		&item.UnitPrice,
		&item.OnHand,
		&item.Reserved,
		&item.IsActive,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	return item, err
}

// SaveStockItem inserts a new stock item.
func (r *PgxStockRepository) SaveStockItem(ctx context.Context, item domain.StockItem) error {
	modelItem := mapping.ToModelStockItem(item)
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelItem.StockItemID,
		modelItem.SKU,
		modelItem.Name,
		modelItem.Kind,
		modelItem.UnitPrice,
		modelItem.OnHand,
		modelItem.Reserved,
		modelItem.IsActive,
		modelItem.CreatedAt,
		modelItem.CreatedBy,
		modelItem.LastUpdatedAt,
		modelItem.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save stock item %s: %w", modelItem.StockItemID, err)
	}
	return nil
}

// FindStockItemByID retrieves a stock item by its ID.
func (r *PgxStockRepository) FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE stock_item_id = $1;`
	modelItem, err := scanStockItem(r.Pool.QueryRow(ctx, query, stockItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock item by ID %s: %w", stockItemID, err)
	}

	domainItem := mapping.ToDomainStockItem(modelItem)
	return &domainItem, nil
}

// FindStockItemsByIDs retrieves multiple stock items keyed by ID.
func (r *PgxStockRepository) FindStockItemsByIDs(ctx context.Context, stockItemIDs []string) (map[string]domain.StockItem, error) {
	if len(stockItemIDs) == 0 {
		return map[string]domain.StockItem{}, nil
	}

	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE stock_item_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, stockItemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock items by IDs: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.StockItem, len(stockItemIDs))
	for rows.Next() {
		modelItem, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock item: %w", err)
		}
		result[modelItem.StockItemID] = mapping.ToDomainStockItem(modelItem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading stock item rows: %w", err)
	}
	return result, nil
}

// ListStockItems retrieves a paginated list of active stock items.
func (r *PgxStockRepository) ListStockItems(ctx context.Context, limit int, offset int) ([]domain.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE is_active = TRUE
		ORDER BY name, stock_item_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock items: %w", err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StockItem, error) {
		return scanStockItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan stock items: %w", err)
	}

	return mapping.ToDomainStockItemSlice(modelItems), nil
}

// UpdateStockItem updates a stock item's catalog fields. Quantities are only
// ever changed through Restock or order transitions, never through here.
func (r *PgxStockRepository) UpdateStockItem(ctx context.Context, item domain.StockItem) error {
	modelItem := mapping.ToModelStockItem(item)
	query := `
		UPDATE stock_items
		SET sku = $2, name = $3, unit_price = $4, last_updated_at = $5, last_updated_by = $6
		WHERE stock_item_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelItem.StockItemID,
		modelItem.SKU,
		modelItem.Name,
		modelItem.UnitPrice,
		modelItem.LastUpdatedAt,
		modelItem.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update stock item %s: %w", modelItem.StockItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Restock atomically increments on-hand quantity.
func (r *PgxStockRepository) Restock(ctx context.Context, stockItemID string, quantity int64, userID string, now time.Time) error {
	query := `
		UPDATE stock_items
		SET on_hand = on_hand + $2, last_updated_at = $3, last_updated_by = $4
		WHERE stock_item_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, stockItemID, quantity, now, userID)
	if err != nil {
		return fmt.Errorf("failed to restock item %s: %w", stockItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateStockItem marks a stock item as inactive.
func (r *PgxStockRepository) DeactivateStockItem(ctx context.Context, stockItemID string, userID string, now time.Time) error {
	query := `
		UPDATE stock_items
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE stock_item_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, stockItemID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate stock item %s: %w", stockItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
