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

type vehicleService struct {
	vehicleRepo portsrepo.VehicleRepositoryFacade
	customerSvc portssvc.CustomerSvcFacade
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo portsrepo.VehicleRepositoryFacade, customerSvc portssvc.CustomerSvcFacade) portssvc.VehicleSvcFacade {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		customerSvc: customerSvc,
	}
}

var _ portssvc.VehicleSvcFacade = (*vehicleService)(nil)

func (s *vehicleService) CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, userID string) (*domain.Vehicle, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// The owning customer must exist.
	if _, err := s.customerSvc.GetCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vehicle := domain.Vehicle{
		VehicleID:  uuid.NewString(),
		CustomerID: req.CustomerID,
		Plate:      req.Plate,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.vehicleRepo.SaveVehicle(ctx, vehicle); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save vehicle", slog.String("error", err.Error()), slog.String("vehicle_id", vehicle.VehicleID))
		}
		return nil, err
	}

	logger.Info("Vehicle created", slog.String("vehicle_id", vehicle.VehicleID), slog.String("plate", vehicle.Plate))
	return &vehicle, nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find vehicle by ID", slog.String("error", err.Error()), slog.String("vehicle_id", vehicleID))
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) ListVehiclesByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerSvc.GetCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	vehicles, err := s.vehicleRepo.ListVehiclesByCustomer(ctx, customerID)
	if err != nil {
		logger.Error("Failed to list vehicles", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	if vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req dto.UpdateVehicleRequest, userID string) (*domain.Vehicle, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Plate != nil {
		vehicle.Plate = *req.Plate
		updated = true
	}
	if req.Make != nil {
		vehicle.Make = *req.Make
		updated = true
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
		updated = true
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
		updated = true
	}
	if req.Notes != nil {
		vehicle.Notes = *req.Notes
		updated = true
	}
	if !updated {
		return vehicle, nil
	}

	now := time.Now().UTC()
	vehicle.LastUpdatedAt = now
	vehicle.LastUpdatedBy = userID

	if err := s.vehicleRepo.UpdateVehicle(ctx, *vehicle); err != nil {
		logger.Error("Failed to update vehicle", slog.String("error", err.Error()), slog.String("vehicle_id", vehicleID))
		return nil, err
	}

	logger.Info("Vehicle updated", slog.String("vehicle_id", vehicleID))
	return vehicle, nil
}
