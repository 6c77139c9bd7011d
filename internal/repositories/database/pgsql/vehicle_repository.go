package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
	"github.com/rkalra23/workshop_mgmt_app/internal/utils/mapping"
)

type PgxVehicleRepository struct {
	BaseRepository
}

// newPgxVehicleRepository creates a new repository for vehicle data.
func newPgxVehicleRepository(pool *pgxpool.Pool) *PgxVehicleRepository {
	return &PgxVehicleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.VehicleRepositoryFacade = (*PgxVehicleRepository)(nil)

// SaveVehicle inserts a new vehicle.
func (r *PgxVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	modelVehicle := mapping.ToModelVehicle(vehicle)
	query := `
		INSERT INTO vehicles (vehicle_id, customer_id, plate, make, model, year, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelVehicle.VehicleID,
		modelVehicle.CustomerID,
		modelVehicle.Plate,
		modelVehicle.Make,
		modelVehicle.Model,
		modelVehicle.Year,
		modelVehicle.Notes,
		modelVehicle.CreatedAt,
		modelVehicle.CreatedBy,
		modelVehicle.LastUpdatedAt,
		modelVehicle.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save vehicle %s: %w", modelVehicle.VehicleID, err)
	}
	return nil
}

// FindVehicleByID retrieves a vehicle by its ID.
func (r *PgxVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	query := `
		SELECT vehicle_id, customer_id, plate, make, model, year, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM vehicles
		WHERE vehicle_id = $1;
	`
	var modelVehicle models.Vehicle
	err := r.Pool.QueryRow(ctx, query, vehicleID).Scan(
		&modelVehicle.VehicleID,
		&modelVehicle.CustomerID,
		&modelVehicle.Plate,
		&modelVehicle.Make,
		&modelVehicle.Model,
		&modelVehicle.Year,
		&modelVehicle.Notes,
		&modelVehicle.CreatedAt,
		&modelVehicle.CreatedBy,
		&modelVehicle.LastUpdatedAt,
		&modelVehicle.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vehicle by ID %s: %w", vehicleID, err)
	}

	domainVehicle := mapping.ToDomainVehicle(modelVehicle)
	return &domainVehicle, nil
}

// ListVehiclesByCustomer retrieves all vehicles registered to a customer.
func (r *PgxVehicleRepository) ListVehiclesByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error) {
	query := `
		SELECT vehicle_id, customer_id, plate, make, model, year, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM vehicles
		WHERE customer_id = $1
		ORDER BY created_at, vehicle_id;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	modelVehicles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Vehicle, error) {
		var vehicle models.Vehicle
		err := row.Scan(
			&vehicle.VehicleID,
			&vehicle.CustomerID,
			&vehicle.Plate,
			&vehicle.Make,
			&vehicle.Model,
			&vehicle.Year,
			&vehicle.Notes,
			&vehicle.CreatedAt,
			&vehicle.CreatedBy,
			&vehicle.LastUpdatedAt,
			&vehicle.LastUpdatedBy,
		)
		return vehicle, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan vehicles: %w", err)
	}

	return mapping.ToDomainVehicleSlice(modelVehicles), nil
}

// UpdateVehicle updates an existing vehicle's details.
func (r *PgxVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	modelVehicle := mapping.ToModelVehicle(vehicle)
	query := `
		UPDATE vehicles
		SET plate = $2, make = $3, model = $4, year = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE vehicle_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelVehicle.VehicleID,
		modelVehicle.Plate,
		modelVehicle.Make,
		modelVehicle.Model,
		modelVehicle.Year,
		modelVehicle.Notes,
		modelVehicle.LastUpdatedAt,
		modelVehicle.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle %s: %w", modelVehicle.VehicleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
