package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
	"github.com/rkalra23/workshop_mgmt_app/internal/utils/mapping"
)

const obligationColumns = `obligation_id, direction, customer_id, amount, due_date, status, settled_amount, settled_at, settlement_method, installment_number, order_id, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxObligationRepository struct {
	BaseRepository
}

// newPgxObligationRepository creates a new repository for obligation data.
func newPgxObligationRepository(pool *pgxpool.Pool) portsrepo.ObligationRepositoryWithTx {
	return &PgxObligationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ObligationRepositoryWithTx = (*PgxObligationRepository)(nil)

func scanObligation(row pgx.Row) (models.Obligation, error) {
	var obligation models.Obligation
	err := row.Scan(
		&obligation.ObligationID,
		&obligation.Direction,
		&obligation.CustomerID,
		&obligation.Amount,
		&obligation.DueDate,
		&obligation.Status,
		&obligation.SettledAmount,
		&obligation.SettledAt,
		&obligation.SettlementMethod,
		&obligation.InstallmentNumber,
		&obligation.OrderID,
		&obligation.Description,
		&obligation.CreatedAt,
		&obligation.CreatedBy,
		&obligation.LastUpdatedAt,
		&obligation.LastUpdatedBy,
	)
	return obligation, err
}

// SaveObligation inserts a new obligation.
func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	modelObligation := mapping.ToModelObligation(obligation)
	query := `
		INSERT INTO obligations (` + obligationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelObligation.ObligationID,
		modelObligation.Direction,
		modelObligation.CustomerID,
		modelObligation.Amount,
		modelObligation.DueDate,
		modelObligation.Status,
		modelObligation.SettledAmount,
		modelObligation.SettledAt,
		modelObligation.SettlementMethod,
		modelObligation.InstallmentNumber,
		modelObligation.OrderID,
		modelObligation.Description,
		modelObligation.CreatedAt,
		modelObligation.CreatedBy,
		modelObligation.LastUpdatedAt,
		modelObligation.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save obligation %s: %w", modelObligation.ObligationID, err)
	}
	return nil
}

// FindObligationByID retrieves an obligation by its ID.
func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE obligation_id = $1;`
	modelObligation, err := scanObligation(r.Pool.QueryRow(ctx, query, obligationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find obligation by ID %s: %w", obligationID, err)
	}

	domainObligation := mapping.ToDomainObligation(modelObligation)
	return &domainObligation, nil
}

// ListObligations retrieves obligations filtered by optional status and direction.
func (r *PgxObligationRepository) ListObligations(ctx context.Context, status *domain.ObligationStatus, direction *domain.ObligationDirection, limit int, offset int) ([]domain.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR direction = $2)
		ORDER BY due_date, obligation_id
		LIMIT $3 OFFSET $4;
	`
	var statusArg, directionArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	if direction != nil {
		d := string(*direction)
		directionArg = &d
	}

	rows, err := r.Pool.Query(ctx, query, statusArg, directionArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query obligations: %w", err)
	}
	defer rows.Close()

	modelObligations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Obligation, error) {
		return scanObligation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan obligations: %w", err)
	}

	return mapping.ToDomainObligationSlice(modelObligations), nil
}

// FindObligationsByOrderID retrieves all obligations originating from an order.
func (r *PgxObligationRepository) FindObligationsByOrderID(ctx context.Context, orderID string) ([]domain.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE order_id = $1
		ORDER BY installment_number, obligation_id;
	`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query obligations for order %s: %w", orderID, err)
	}
	defer rows.Close()

	modelObligations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Obligation, error) {
		return scanObligation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan obligations: %w", err)
	}

	return mapping.ToDomainObligationSlice(modelObligations), nil
}

// SettleObligation flips PENDING -> SETTLED and appends the matching cash
// movement in one transaction. The conditional UPDATE is the compare-and-swap:
// a concurrent settlement that already won leaves zero rows affected here, so
// the loser rolls back without writing a movement.
func (r *PgxObligationRepository) SettleObligation(ctx context.Context, obligationID string, settledAmount decimal.Decimal, method string, movement domain.CashMovement, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	settleQuery := `
		UPDATE obligations
		SET status = $2, settled_amount = $3, settled_at = $4, settlement_method = $5, last_updated_at = $6, last_updated_by = $7
		WHERE obligation_id = $1 AND status = $8;
	`
	cmdTag, err := tx.Exec(ctx, settleQuery,
		obligationID,
		string(domain.ObligationSettled),
		settledAmount,
		now,
		method,
		now,
		userID,
		string(domain.ObligationPending),
	)
	if err != nil {
		return fmt.Errorf("failed to settle obligation %s: %w", obligationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either missing or no longer PENDING; look to tell the two apart.
		var status string
		err := tx.QueryRow(ctx, `SELECT status FROM obligations WHERE obligation_id = $1;`, obligationID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check obligation %s status: %w", obligationID, err)
		}
		return apperrors.ErrAlreadySettled
	}

	modelMovement := mapping.ToModelCashMovement(movement)
	movementQuery := `
		INSERT INTO cash_movements (` + cashMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, movementQuery,
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
		return fmt.Errorf("failed to append settlement movement for obligation %s: %w", obligationID, err)
	}

	return r.Commit(ctx, tx)
}

// CancelObligation flips PENDING -> CANCELLED with no ledger effect.
func (r *PgxObligationRepository) CancelObligation(ctx context.Context, obligationID string, reason string, userID string, now time.Time) error {
	query := `
		UPDATE obligations
		SET status = $2, description = CASE WHEN $3 = '' THEN description ELSE description || ' [cancelled: ' || $3 || ']' END,
		    last_updated_at = $4, last_updated_by = $5
		WHERE obligation_id = $1 AND status = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		obligationID,
		string(domain.ObligationCancelled),
		reason,
		now,
		userID,
		string(domain.ObligationPending),
	)
	if err != nil {
		return fmt.Errorf("failed to cancel obligation %s: %w", obligationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var status string
		err := r.Pool.QueryRow(ctx, `SELECT status FROM obligations WHERE obligation_id = $1;`, obligationID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check obligation %s status: %w", obligationID, err)
		}
		return apperrors.ErrAlreadySettled
	}
	return nil
}
