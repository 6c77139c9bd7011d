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

type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Document:   req.Document,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save customer", slog.String("error", err.Error()), slog.String("customer_id", customer.CustomerID))
		}
		return nil, err
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find customer by ID", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if limit <= 0 {
		limit = 20
	}
	customers, err := s.customerRepo.ListCustomers(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		customer.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
		updated = true
	}
	if req.Email != nil {
		customer.Email = *req.Email
		updated = true
	}
	if req.Address != nil {
		customer.Address = *req.Address
		updated = true
	}
	if !updated {
		return customer, nil
	}

	now := time.Now().UTC()
	customer.LastUpdatedAt = now
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, err
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

func (s *customerService) DeactivateCustomer(ctx context.Context, customerID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	if err := s.customerRepo.DeactivateCustomer(ctx, customerID, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return err
	}
	logger.Info("Customer deactivated", slog.String("customer_id", customerID))
	return nil
}
