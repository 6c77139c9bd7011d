package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/services"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
	"github.com/rkalra23/workshop_mgmt_app/internal/middleware"
)

// cashService exposes the append-only cash ledger. Corrections are made by
// recording an offsetting movement, never by editing an existing one.
type cashService struct {
	cashRepo portsrepo.CashRepositoryFacade
}

// NewCashService creates a new CashService.
func NewCashService(cashRepo portsrepo.CashRepositoryFacade) portssvc.CashSvcFacade {
	return &cashService{cashRepo: cashRepo}
}

var _ portssvc.CashSvcFacade = (*cashService)(nil)

func (s *cashService) RecordMovement(ctx context.Context, req dto.CreateCashMovementRequest, userID string) (*domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: movement amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	movement := domain.CashMovement{
		CashMovementID: uuid.NewString(),
		Direction:      domain.CashDirection(req.Direction),
		Amount:         req.Amount.Round(2),
		Category:       req.Category,
		ReferenceKind:  domain.RefManual,
		OccurredAt:     occurredAt,
		CreatedAt:      now,
		CreatedBy:      userID,
	}

	if err := s.cashRepo.AppendCashMovement(ctx, movement); err != nil {
		logger.Error("Failed to append cash movement", slog.String("error", err.Error()), slog.String("cash_movement_id", movement.CashMovementID))
		return nil, err
	}

	logger.Info("Cash movement recorded",
		slog.String("cash_movement_id", movement.CashMovementID),
		slog.String("direction", string(movement.Direction)),
		slog.String("amount", movement.Amount.String()),
	)
	return &movement, nil
}

func (s *cashService) ListMovements(ctx context.Context, params dto.ListCashMovementsParams) ([]domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	movements, err := s.cashRepo.ListCashMovements(ctx, limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list cash movements", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list cash movements: %w", err)
	}
	if movements == nil {
		return []domain.CashMovement{}, nil
	}
	return movements, nil
}

func (s *cashService) ListMovementsByReference(ctx context.Context, params dto.ListMovementsByReferenceParams) ([]domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	movements, err := s.cashRepo.FindCashMovementsByReference(ctx, domain.CashReferenceKind(params.Kind), params.ReferenceID)
	if err != nil {
		logger.Error("Failed to find cash movements by reference", slog.String("error", err.Error()), slog.String("reference_id", params.ReferenceID))
		return nil, fmt.Errorf("failed to find cash movements by reference: %w", err)
	}
	if movements == nil {
		return []domain.CashMovement{}, nil
	}
	return movements, nil
}

func (s *cashService) Balance(ctx context.Context, asOf *time.Time) (decimal.Decimal, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	at := time.Now().UTC()
	if asOf != nil {
		at = asOf.UTC()
	}

	balance, err := s.cashRepo.BalanceAsOf(ctx, at)
	if err != nil {
		logger.Error("Failed to compute cash balance", slog.String("error", err.Error()))
		return decimal.Zero, at, fmt.Errorf("failed to compute cash balance: %w", err)
	}
	return balance, at, nil
}
