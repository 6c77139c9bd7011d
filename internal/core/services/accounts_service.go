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

// accountsService manages payable/receivable obligations. Settlement flips
// the obligation and posts its cash movement in one repository transaction,
// so an obligation can never settle twice or settle without its ledger entry.
type accountsService struct {
	obligationRepo portsrepo.ObligationRepositoryFacade
	customerSvc    portssvc.CustomerSvcFacade
}

// NewAccountsService creates a new AccountsService.
func NewAccountsService(obligationRepo portsrepo.ObligationRepositoryFacade, customerSvc portssvc.CustomerSvcFacade) portssvc.AccountsSvcFacade {
	return &accountsService{
		obligationRepo: obligationRepo,
		customerSvc:    customerSvc,
	}
}

var _ portssvc.AccountsSvcFacade = (*accountsService)(nil)

func (s *accountsService) OpenObligation(ctx context.Context, req dto.OpenObligationRequest, userID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: obligation amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.customerSvc.GetCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	obligation := domain.Obligation{
		ObligationID: uuid.NewString(),
		Direction:    domain.ObligationDirection(req.Direction),
		CustomerID:   req.CustomerID,
		Amount:       req.Amount.Round(2),
		DueDate:      req.DueDate,
		Status:       domain.ObligationPending,
		OrderID:      req.OrderID,
		Description:  req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
		logger.Error("Failed to save obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligation.ObligationID))
		return nil, err
	}

	logger.Info("Obligation opened",
		slog.String("obligation_id", obligation.ObligationID),
		slog.String("direction", string(obligation.Direction)),
		slog.String("amount", obligation.Amount.String()),
	)
	return &obligation, nil
}

func (s *accountsService) GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		}
		return nil, err
	}
	return obligation, nil
}

func (s *accountsService) ListObligations(ctx context.Context, params dto.ListObligationsParams) ([]domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var status *domain.ObligationStatus
	if params.Status != nil {
		st := domain.ObligationStatus(*params.Status)
		status = &st
	}
	var direction *domain.ObligationDirection
	if params.Direction != nil {
		d := domain.ObligationDirection(*params.Direction)
		direction = &d
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	obligations, err := s.obligationRepo.ListObligations(ctx, status, direction, limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list obligations", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list obligations: %w", err)
	}
	if obligations == nil {
		return []domain.Obligation{}, nil
	}
	return obligations, nil
}

func (s *accountsService) ListObligationsByOrder(ctx context.Context, orderID string) ([]domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	obligations, err := s.obligationRepo.FindObligationsByOrderID(ctx, orderID)
	if err != nil {
		logger.Error("Failed to find obligations by order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to find obligations by order: %w", err)
	}
	if obligations == nil {
		return []domain.Obligation{}, nil
	}
	return obligations, nil
}

// SettleObligation settles the obligation at most once. The settled amount
// may be below the face amount (early-payment discounts) but never above it.
func (s *accountsService) SettleObligation(ctx context.Context, obligationID string, req dto.SettleObligationRequest, userID string) (*domain.Obligation, *domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: settlement amount must be positive", apperrors.ErrValidation)
	}

	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load obligation for settlement", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		}
		return nil, nil, err
	}

	if obligation.Status != domain.ObligationPending {
		return nil, nil, fmt.Errorf("%w: obligation %s is %s", apperrors.ErrAlreadySettled, obligationID, obligation.Status)
	}
	settledAmount := req.Amount.Round(2)
	if settledAmount.GreaterThan(obligation.Amount) {
		return nil, nil, fmt.Errorf("%w: %s > %s", apperrors.ErrOverSettlement, settledAmount, obligation.Amount)
	}

	now := time.Now().UTC()
	movement := domain.CashMovement{
		CashMovementID: uuid.NewString(),
		Direction:      domain.Income,
		Amount:         settledAmount,
		Category:       domain.CategoryReceivables,
		ReferenceKind:  domain.RefObligation,
		ReferenceID:    &obligation.ObligationID,
		OccurredAt:     now,
		CreatedAt:      now,
		CreatedBy:      userID,
	}
	if obligation.Direction == domain.Payable {
		movement.Direction = domain.Expense
		movement.Category = domain.CategoryPayables
	}

	// The repository's compare-and-swap decides the winner under concurrency.
	if err := s.obligationRepo.SettleObligation(ctx, obligationID, settledAmount, req.Method, movement, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadySettled) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to settle obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		}
		return nil, nil, err
	}

	logger.Info("Obligation settled",
		slog.String("obligation_id", obligationID),
		slog.String("settled_amount", settledAmount.String()),
		slog.String("method", req.Method),
	)

	settled, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, nil, err
	}
	return settled, &movement, nil
}

func (s *accountsService) CancelObligation(ctx context.Context, obligationID string, reason string, userID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.obligationRepo.CancelObligation(ctx, obligationID, reason, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadySettled) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to cancel obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		}
		return nil, err
	}

	logger.Info("Obligation cancelled", slog.String("obligation_id", obligationID), slog.String("reason", reason))
	return s.obligationRepo.FindObligationByID(ctx, obligationID)
}
