package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
	"github.com/rkalra23/workshop_mgmt_app/internal/utils/mapping"
)

const cashMovementColumns = `cash_movement_id, direction, amount, category, reference_kind, reference_id, occurred_at, created_at, created_by`

type PgxCashRepository struct {
	BaseRepository
}

// newPgxCashRepository creates a new repository for the cash ledger.
func newPgxCashRepository(pool *pgxpool.Pool) *PgxCashRepository {
	return &PgxCashRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CashRepositoryFacade = (*PgxCashRepository)(nil)

func scanCashMovement(row pgx.Row) (models.CashMovement, error) {
	var movement models.CashMovement
	err := row.Scan(
		&movement.CashMovementID,
		&movement.Direction,
		&movement.Amount,
		&movement.Category,
		&movement.ReferenceKind,
		&movement.ReferenceID,
		&movement.OccurredAt,
		&movement.CreatedAt,
		&movement.CreatedBy,
	)
	return movement, err
}

// AppendCashMovement persists a new immutable ledger entry.
func (r *PgxCashRepository) AppendCashMovement(ctx context.Context, movement domain.CashMovement) error {
	modelMovement := mapping.ToModelCashMovement(movement)
	query := `
		INSERT INTO cash_movements (` + cashMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelMovement.CashMovementID,
		modelMovement.Direction,
		modelMovement.Amount,
		modelMovement.Category,
		modelMovement.ReferenceKind,
		modelMovement.ReferenceID,
		modelMovement.OccurredAt,
		modelMovement.CreatedAt,
		modelMovement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to append cash movement %s: %w", modelMovement.CashMovementID, err)
	}
	return nil
}

// ListCashMovements retrieves a paginated list of movements, newest first.
func (r *PgxCashRepository) ListCashMovements(ctx context.Context, limit int, offset int) ([]domain.CashMovement, error) {
	query := `
		SELECT ` + cashMovementColumns + `
		FROM cash_movements
		ORDER BY occurred_at DESC, cash_movement_id DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash movements: %w", err)
	}
	defer rows.Close()

	modelMovements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CashMovement, error) {
		return scanCashMovement(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cash movements: %w", err)
	}

	return mapping.ToDomainCashMovementSlice(modelMovements), nil
}

// FindCashMovementsByReference retrieves all movements referencing an entity.
func (r *PgxCashRepository) FindCashMovementsByReference(ctx context.Context, kind domain.CashReferenceKind, referenceID string) ([]domain.CashMovement, error) {
	query := `
		SELECT ` + cashMovementColumns + `
		FROM cash_movements
		WHERE reference_kind = $1 AND reference_id = $2
		ORDER BY occurred_at, cash_movement_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(kind), referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash movements by reference: %w", err)
	}
	defer rows.Close()

	modelMovements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CashMovement, error) {
		return scanCashMovement(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cash movements: %w", err)
	}

	return mapping.ToDomainCashMovementSlice(modelMovements), nil
}

// BalanceAsOf computes sum(income) - sum(expense) over movements occurring at
// or before the given instant.
func (r *PgxCashRepository) BalanceAsOf(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = $1 THEN amount ELSE -amount END), 0)
		FROM cash_movements
		WHERE occurred_at <= $2;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, string(domain.Income), asOf).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute cash balance: %w", err)
	}
	return balance, nil
}
