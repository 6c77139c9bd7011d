package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/services"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
	"github.com/rkalra23/workshop_mgmt_app/internal/middleware"
)

// inventoryService manages the stock item catalog. Quantity mutations tied to
// order transitions never go through here; they are applied by the order
// repository inside the transition's transaction.
type inventoryService struct {
	stockRepo portsrepo.StockRepositoryFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(stockRepo portsrepo.StockRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{stockRepo: stockRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) CreateStockItem(ctx context.Context, req dto.CreateStockItemRequest, userID string) (*domain.StockItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}
	kind := domain.StockItemKind(req.Kind)
	if kind == domain.Service && req.OnHand != 0 {
		return nil, fmt.Errorf("%w: quantity is not tracked for service items", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.StockItem{
		StockItemID: uuid.NewString(),
		SKU:         req.SKU,
		Name:        req.Name,
		Kind:        kind,
		UnitPrice:   req.UnitPrice.Round(2),
		OnHand:      req.OnHand,
		Reserved:    0,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.stockRepo.SaveStockItem(ctx, item); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save stock item", slog.String("error", err.Error()), slog.String("sku", req.SKU))
		}
		return nil, err
	}

	logger.Info("Stock item created", slog.String("stock_item_id", item.StockItemID), slog.String("sku", item.SKU))
	return &item, nil
}

func (s *inventoryService) GetStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	item, err := s.stockRepo.FindStockItemByID(ctx, stockItemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find stock item", slog.String("error", err.Error()), slog.String("stock_item_id", stockItemID))
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ListStockItems(ctx context.Context, limit int, offset int) ([]domain.StockItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if limit <= 0 {
		limit = 20
	}
	items, err := s.stockRepo.ListStockItems(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list stock items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list stock items: %w", err)
	}
	if items == nil {
		return []domain.StockItem{}, nil
	}
	return items, nil
}

func (s *inventoryService) UpdateStockItem(ctx context.Context, stockItemID string, req dto.UpdateStockItemRequest, userID string) (*domain.StockItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.stockRepo.FindStockItemByID(ctx, stockItemID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.SKU != nil {
		item.SKU = *req.SKU
		updated = true
	}
	if req.Name != nil {
		item.Name = *req.Name
		updated = true
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
		}
		item.UnitPrice = req.UnitPrice.Round(2)
		updated = true
	}
	if !updated {
		return item, nil
	}

	now := time.Now().UTC()
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.stockRepo.UpdateStockItem(ctx, *item); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to update stock item", slog.String("error", err.Error()), slog.String("stock_item_id", stockItemID))
		}
		return nil, err
	}

	logger.Info("Stock item updated", slog.String("stock_item_id", stockItemID))
	return item, nil
}

// CheckAvailability reports whether qty of the item can currently be
// reserved. The answer is advisory; the authoritative check happens inside
// the reservation's own transaction.
func (s *inventoryService) CheckAvailability(ctx context.Context, stockItemID string, qty int64) (bool, error) {
	item, err := s.stockRepo.FindStockItemByID(ctx, stockItemID)
	if err != nil {
		return false, err
	}
	if item.Kind == domain.Service {
		return true, nil
	}
	return item.Available() >= qty, nil
}

func (s *inventoryService) Restock(ctx context.Context, stockItemID string, qty int64, userID string) (*domain.StockItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if qty <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", apperrors.ErrValidation)
	}
	item, err := s.stockRepo.FindStockItemByID(ctx, stockItemID)
	if err != nil {
		return nil, err
	}
	if item.Kind != domain.Goods {
		return nil, fmt.Errorf("%w: only goods can be restocked", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.stockRepo.Restock(ctx, stockItemID, qty, userID, now); err != nil {
		logger.Error("Failed to restock item", slog.String("error", err.Error()), slog.String("stock_item_id", stockItemID))
		return nil, err
	}

	logger.Info("Stock item restocked", slog.String("stock_item_id", stockItemID), slog.Int64("quantity", qty))
	return s.stockRepo.FindStockItemByID(ctx, stockItemID)
}

func (s *inventoryService) DeactivateStockItem(ctx context.Context, stockItemID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	if err := s.stockRepo.DeactivateStockItem(ctx, stockItemID, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate stock item", slog.String("error", err.Error()), slog.String("stock_item_id", stockItemID))
		}
		return err
	}
	logger.Info("Stock item deactivated", slog.String("stock_item_id", stockItemID))
	return nil
}
