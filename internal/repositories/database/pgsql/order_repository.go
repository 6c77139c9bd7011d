package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
	"github.com/rkalra23/workshop_mgmt_app/internal/utils/mapping"
)

const orderColumns = `order_id, kind, sequence_number, customer_id, vehicle_id, labor_cost, order_discount, total, payment_terms, installments, status, stock_applied, completed_at, notes, created_at, created_by, last_updated_at, last_updated_by`

const orderLineColumns = `order_line_id, order_id, stock_item_id, description, quantity, unit_price, line_discount, line_total`

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for order data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryWithTx {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

func scanOrder(row pgx.Row) (models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.OrderID,
		&order.Kind,
		&order.SequenceNumber,
		&order.CustomerID,
		&order.VehicleID,
		&order.LaborCost,
		&order.OrderDiscount,
		&order.Total,
		&order.PaymentTerms,
		&order.Installments,
		&order.Status,
		&order.StockApplied,
		&order.CompletedAt,
		&order.Notes,
		&order.CreatedAt,
		&order.CreatedBy,
		&order.LastUpdatedAt,
		&order.LastUpdatedBy,
	)
	return order, err
}

// SaveOrder persists a new order, its lines, and the stock reservations for
// its goods lines in a single transaction. The kind-scoped sequence number is
// allocated inside the same transaction; a reservation failure aborts the
// whole insert and the burned sequence value is an acceptable gap.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order, lines []domain.OrderLine, reservations []portsrepo.StockAdjustment) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	// 1. Allocate the next sequence number for this order kind.
	var sequenceNumber int64
	seqQuery := `
		INSERT INTO order_sequences (kind, last_value)
		VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET last_value = order_sequences.last_value + 1
		RETURNING last_value;
	`
	if err := tx.QueryRow(ctx, seqQuery, string(order.Kind)).Scan(&sequenceNumber); err != nil {
		return 0, fmt.Errorf("failed to allocate sequence number for kind %s: %w", order.Kind, err)
	}

	// 2. Insert the order row.
	modelOrder := mapping.ToModelOrder(order)
	modelOrder.SequenceNumber = sequenceNumber
	orderQuery := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, orderQuery,
		modelOrder.OrderID,
		modelOrder.Kind,
		modelOrder.SequenceNumber,
		modelOrder.CustomerID,
		modelOrder.VehicleID,
		modelOrder.LaborCost,
		modelOrder.OrderDiscount,
		modelOrder.Total,
		modelOrder.PaymentTerms,
		modelOrder.Installments,
		modelOrder.Status,
		modelOrder.StockApplied,
		modelOrder.CompletedAt,
		modelOrder.Notes,
		modelOrder.CreatedAt,
		modelOrder.CreatedBy,
		modelOrder.LastUpdatedAt,
		modelOrder.LastUpdatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order %s: %w", modelOrder.OrderID, err)
	}

	// 3. Insert the lines as a batch.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO order_lines (` + orderLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelOrderLine(line)
		batch.Queue(lineQuery,
			modelLine.OrderLineID,
			modelLine.OrderID,
			modelLine.StockItemID,
			modelLine.Description,
			modelLine.Quantity,
			modelLine.UnitPrice,
			modelLine.LineDiscount,
			modelLine.LineTotal,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to insert lines for order %s: %w", modelOrder.OrderID, err)
	}

	// 4. Reserve stock for each goods line. The availability check lives in
	// the WHERE clause, so a concurrent order cannot reserve the same units.
	reserveQuery := `
		UPDATE stock_items
		SET reserved = reserved + $2, last_updated_at = $3, last_updated_by = $4
		WHERE stock_item_id = $1 AND is_active = TRUE AND on_hand - reserved >= $2;
	`
	for _, res := range reservations {
		cmdTag, err := tx.Exec(ctx, reserveQuery, res.StockItemID, res.Quantity, modelOrder.CreatedAt, modelOrder.CreatedBy)
		if err != nil {
			return 0, fmt.Errorf("failed to reserve stock item %s: %w", res.StockItemID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return 0, apperrors.NewAppError(422, fmt.Sprintf("insufficient stock for item %s", res.StockItemID), apperrors.ErrInsufficientStock)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return sequenceNumber, nil
}

// ApplyTransition commits the status change together with its side-effect
// plan in one transaction. The order row is locked first and its status
// re-checked under the lock, so concurrent transitions on the same order
// serialize and the loser fails cleanly.
func (r *PgxOrderRepository) ApplyTransition(ctx context.Context, orderID string, from domain.OrderStatus, target domain.OrderStatus, effects portsrepo.TransitionSideEffects, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// 1. Lock the order row and re-check the status we transitioned from.
	var currentKind, currentStatus string
	lockQuery := `SELECT kind, status FROM orders WHERE order_id = $1 FOR UPDATE;`
	err = tx.QueryRow(ctx, lockQuery, orderID).Scan(&currentKind, &currentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock order %s: %w", orderID, err)
	}
	if domain.OrderStatus(currentStatus) != from {
		observed := domain.Order{Kind: domain.OrderKind(currentKind), Status: domain.OrderStatus(currentStatus)}
		if observed.IsTerminal() {
			return apperrors.ErrAlreadyTerminal
		}
		return apperrors.ErrConflict
	}

	// 2. Flip the status and stamp the flags the plan carries.
	updateQuery := `
		UPDATE orders
		SET status = $2,
		    stock_applied = stock_applied OR $3,
		    completed_at = COALESCE(completed_at, $4),
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE order_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery, orderID, string(target), effects.MarkStockApplied, effects.CompletedAt, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update order %s status: %w", orderID, err)
	}

	// 3. Stock effects. Consumption re-checks coverage in the WHERE clause;
	// zero rows means the reservation no longer covers the quantity.
	consumeQuery := `
		UPDATE stock_items
		SET on_hand = on_hand - $2, reserved = reserved - $2, last_updated_at = $3, last_updated_by = $4
		WHERE stock_item_id = $1 AND on_hand >= $2 AND reserved >= $2;
	`
	for _, adj := range effects.ConsumeReservations {
		cmdTag, err := tx.Exec(ctx, consumeQuery, adj.StockItemID, adj.Quantity, now, userID)
		if err != nil {
			return fmt.Errorf("failed to consume reservation for item %s: %w", adj.StockItemID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewAppError(422, fmt.Sprintf("insufficient stock for item %s", adj.StockItemID), apperrors.ErrInsufficientStock)
		}
	}

	releaseQuery := `
		UPDATE stock_items
		SET reserved = reserved - $2, last_updated_at = $3, last_updated_by = $4
		WHERE stock_item_id = $1 AND reserved >= $2;
	`
	for _, adj := range effects.ReleaseReservations {
		cmdTag, err := tx.Exec(ctx, releaseQuery, adj.StockItemID, adj.Quantity, now, userID)
		if err != nil {
			return fmt.Errorf("failed to release reservation for item %s: %w", adj.StockItemID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewAppError(500, fmt.Sprintf("reservation underflow for item %s", adj.StockItemID), apperrors.ErrConflict)
		}
	}

	restockQuery := `
		UPDATE stock_items
		SET on_hand = on_hand + $2, last_updated_at = $3, last_updated_by = $4
		WHERE stock_item_id = $1;
	`
	for _, adj := range effects.Restock {
		if _, err := tx.Exec(ctx, restockQuery, adj.StockItemID, adj.Quantity, now, userID); err != nil {
			return fmt.Errorf("failed to restock item %s: %w", adj.StockItemID, err)
		}
	}

	// 4. Ledger and registry effects.
	if effects.CashMovement != nil {
		modelMovement := mapping.ToModelCashMovement(*effects.CashMovement)
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
			return fmt.Errorf("failed to append cash movement for order %s: %w", orderID, err)
		}
	}

	if len(effects.Obligations) > 0 {
		batch := &pgx.Batch{}
		obligationQuery := `
			INSERT INTO obligations (` + obligationColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
		`
		for _, obligation := range effects.Obligations {
			modelObligation := mapping.ToModelObligation(obligation)
			batch.Queue(obligationQuery,
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
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert obligations for order %s: %w", orderID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindOrderByID retrieves an order with its lines.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`
	modelOrder, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}

	lines, err := r.findLinesByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	domainOrder := mapping.ToDomainOrder(modelOrder)
	domainOrder.Lines = lines
	return &domainOrder, nil
}

func (r *PgxOrderRepository) findLinesByOrderID(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE order_id = $1 ORDER BY order_line_id;`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for order %s: %w", orderID, err)
	}
	defer rows.Close()

	modelLines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OrderLine, error) {
		var line models.OrderLine
		err := row.Scan(
			&line.OrderLineID,
			&line.OrderID,
			&line.StockItemID,
			&line.Description,
			&line.Quantity,
			&line.UnitPrice,
			&line.LineDiscount,
			&line.LineTotal,
		)
		return line, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan order lines: %w", err)
	}

	return mapping.ToDomainOrderLineSlice(modelLines), nil
}

// ListOrders retrieves orders filtered by optional kind and status, newest first.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, kind *domain.OrderKind, status *domain.OrderStatus, limit int, offset int) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::text IS NULL OR kind = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, order_id DESC
		LIMIT $3 OFFSET $4;
	`
	var kindArg, statusArg *string
	if kind != nil {
		k := string(*kind)
		kindArg = &k
	}
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, kindArg, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	modelOrders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(modelOrders))
	for _, modelOrder := range modelOrders {
		orders = append(orders, mapping.ToDomainOrder(modelOrder))
	}
	return orders, nil
}
