package services

import (
	"context"
	"errors"
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
	"github.com/rkalra23/workshop_mgmt_app/internal/utils/pricing"
)

// orderService is the lifecycle engine for sales and service orders. Each
// transition's side effects are planned here and applied atomically by the
// order repository together with the status change.
type orderService struct {
	orderRepo   portsrepo.OrderRepositoryFacade
	stockRepo   portsrepo.StockReader
	customerSvc portssvc.CustomerSvcFacade
	vehicleSvc  portssvc.VehicleSvcFacade
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, stockRepo portsrepo.StockReader, customerSvc portssvc.CustomerSvcFacade, vehicleSvc portssvc.VehicleSvcFacade) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:   orderRepo,
		stockRepo:   stockRepo,
		customerSvc: customerSvc,
		vehicleSvc:  vehicleSvc,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// CreateOrder validates the request, prices the order, and persists it with
// its stock reservations in one transaction. A cash sale flagged
// CompleteImmediately is then driven through the normal COMPLETED transition.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kind := domain.OrderKind(req.Kind)

	if len(req.Lines) == 0 && !req.LaborCost.IsPositive() {
		return nil, fmt.Errorf("%w: order needs at least one line or a labor cost", apperrors.ErrValidation)
	}
	if kind == domain.Sale && req.VehicleID != nil {
		return nil, fmt.Errorf("%w: a sale cannot reference a vehicle", apperrors.ErrValidation)
	}
	if kind == domain.Sale && req.LaborCost.IsPositive() {
		return nil, fmt.Errorf("%w: labor cost applies only to service orders", apperrors.ErrValidation)
	}
	if req.LaborCost.IsNegative() || req.OrderDiscount.IsNegative() {
		return nil, fmt.Errorf("%w: labor cost and discount must not be negative", apperrors.ErrValidation)
	}

	terms := domain.PaymentTerms(req.PaymentTerms)
	installments := req.Installments
	if terms == domain.TermsInstallments {
		if installments < 1 {
			return nil, fmt.Errorf("%w: installment terms require an installment count", apperrors.ErrValidation)
		}
	} else {
		installments = 0
	}
	if req.CompleteImmediately {
		if kind != domain.Sale {
			return nil, fmt.Errorf("%w: only a sale can be created already completed", apperrors.ErrValidation)
		}
	}

	// Counterparty must exist and be active.
	customer, err := s.customerSvc.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, customer.CustomerID)
	}
	if req.VehicleID != nil {
		vehicle, err := s.vehicleSvc.GetVehicleByID(ctx, *req.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle.CustomerID != req.CustomerID {
			return nil, fmt.Errorf("%w: vehicle %s does not belong to customer %s", apperrors.ErrValidation, vehicle.VehicleID, req.CustomerID)
		}
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()

	lines, reservations, err := s.buildLines(ctx, orderID, req.Lines)
	if err != nil {
		return nil, err
	}

	lineTotals := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		lineTotals[i] = l.LineTotal
	}

	order := domain.Order{
		OrderID:       orderID,
		Kind:          kind,
		CustomerID:    req.CustomerID,
		VehicleID:     req.VehicleID,
		Lines:         lines,
		LaborCost:     req.LaborCost.Round(2),
		OrderDiscount: req.OrderDiscount.Round(2),
		Total:         pricing.OrderTotal(lineTotals, req.OrderDiscount, req.LaborCost),
		PaymentTerms:  terms,
		Installments:  installments,
		Status:        domain.StatusPending,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Each installment must come to at least one cent, or the completion
	// transition could never open valid obligations for this order.
	if terms == domain.TermsInstallments && order.Total.IsPositive() {
		if totalCents := order.Total.Mul(decimal.NewFromInt(100)).IntPart(); int64(installments) > totalCents {
			return nil, fmt.Errorf("%w: %d installments cannot split a total of %s", apperrors.ErrValidation, installments, order.Total)
		}
	}

	seq, err := s.orderRepo.SaveOrder(ctx, order, lines, reservations)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientStock) {
			logger.Error("Failed to save order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, err
	}
	order.SequenceNumber = seq

	logger.Info("Order created",
		slog.String("order_id", orderID),
		slog.String("kind", string(kind)),
		slog.Int64("sequence_number", seq),
		slog.String("total", order.Total.String()),
	)

	if req.CompleteImmediately {
		return s.RequestTransition(ctx, orderID, domain.StatusCompleted, creatorUserID)
	}
	return &order, nil
}

// buildLines prices the requested lines against the catalog and collects the
// reservations needed for goods lines. SERVICE catalog items carry no stock
// and produce no reservation.
func (s *orderService) buildLines(ctx context.Context, orderID string, reqLines []dto.OrderLineRequest) ([]domain.OrderLine, []portsrepo.StockAdjustment, error) {
	if len(reqLines) == 0 {
		return nil, nil, nil
	}

	itemIDs := make([]string, 0, len(reqLines))
	for _, lr := range reqLines {
		itemIDs = append(itemIDs, lr.StockItemID)
	}
	itemsMap, err := s.stockRepo.FindStockItemsByIDs(ctx, uniqueStrings(itemIDs))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch stock items: %w", err)
	}

	lines := make([]domain.OrderLine, len(reqLines))
	// Quantities per goods item, merged across lines referencing the same item.
	reservedQty := make(map[string]int64)
	reservedOrder := make([]string, 0, len(reqLines))

	for i, lr := range reqLines {
		item, found := itemsMap[lr.StockItemID]
		if !found {
			return nil, nil, fmt.Errorf("%w: stock item %s", apperrors.ErrNotFound, lr.StockItemID)
		}
		if !item.IsActive {
			return nil, nil, fmt.Errorf("%w: stock item %s is inactive", apperrors.ErrValidation, item.StockItemID)
		}
		if lr.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: quantity must be positive for stock item %s", apperrors.ErrValidation, item.StockItemID)
		}
		if lr.LineDiscount.IsNegative() {
			return nil, nil, fmt.Errorf("%w: line discount must not be negative for stock item %s", apperrors.ErrValidation, item.StockItemID)
		}

		unitPrice := item.UnitPrice
		if lr.UnitPrice != nil {
			if lr.UnitPrice.IsNegative() {
				return nil, nil, fmt.Errorf("%w: unit price must not be negative for stock item %s", apperrors.ErrValidation, item.StockItemID)
			}
			unitPrice = *lr.UnitPrice
		}

		description := lr.Description
		if description == "" {
			description = item.Name
		}

		lines[i] = domain.OrderLine{
			OrderLineID:  uuid.NewString(),
			OrderID:      orderID,
			StockItemID:  item.StockItemID,
			Description:  description,
			Quantity:     lr.Quantity,
			UnitPrice:    unitPrice,
			LineDiscount: lr.LineDiscount,
			LineTotal:    pricing.LineTotal(lr.Quantity, unitPrice, lr.LineDiscount),
		}

		if item.Kind == domain.Goods {
			if _, seen := reservedQty[item.StockItemID]; !seen {
				reservedOrder = append(reservedOrder, item.StockItemID)
			}
			reservedQty[item.StockItemID] += lr.Quantity
		}
	}

	reservations := make([]portsrepo.StockAdjustment, 0, len(reservedOrder))
	for _, id := range reservedOrder {
		reservations = append(reservations, portsrepo.StockAdjustment{StockItemID: id, Quantity: reservedQty[id]})
	}
	return lines, reservations, nil
}

// RequestTransition validates the move against the order's state machine,
// plans its side effects, and hands the plan to the repository for atomic
// application. On any failure the order is left untouched.
func (s *orderService) RequestTransition(ctx context.Context, orderID string, target domain.OrderStatus, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load order for transition", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, err
	}

	if order.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is %s", apperrors.ErrAlreadyTerminal, orderID, order.Status)
	}
	if !order.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s is not allowed for a %s", apperrors.ErrInvalidTransition, order.Status, target, order.Kind)
	}

	now := time.Now().UTC()
	effects, err := s.planSideEffects(ctx, order, target, now, userID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.ApplyTransition(ctx, orderID, order.Status, target, effects, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientStock) && !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrAlreadyTerminal) {
			logger.Error("Failed to apply transition", slog.String("error", err.Error()), slog.String("order_id", orderID), slog.String("target", string(target)))
		}
		return nil, err
	}

	logger.Info("Order transitioned",
		slog.String("order_id", orderID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(target)),
	)
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

// planSideEffects builds the mutation plan for moving order to target.
func (s *orderService) planSideEffects(ctx context.Context, order *domain.Order, target domain.OrderStatus, now time.Time, userID string) (portsrepo.TransitionSideEffects, error) {
	var effects portsrepo.TransitionSideEffects

	goods, err := s.goodsAdjustments(ctx, order)
	if err != nil {
		return effects, err
	}

	if order.ConsumesStockAt(target) {
		effects.ConsumeReservations = goods
		effects.MarkStockApplied = true
	}

	if target == domain.StatusCancelled {
		if order.StockApplied {
			// Stock was already deducted (sale cancelled after approval);
			// cancelling puts the goods back on the shelf.
			effects.Restock = goods
		} else {
			effects.ReleaseReservations = goods
		}
	}

	if target == domain.StatusCompleted {
		if order.Kind == domain.ServiceOrder && order.CompletedAt == nil {
			completedAt := now
			effects.CompletedAt = &completedAt
		}
		if order.Total.IsPositive() {
			if order.PaymentTerms == domain.TermsCash {
				effects.CashMovement = s.cashMovementForOrder(order, now, userID)
			} else {
				effects.Obligations = s.installmentObligations(order, now, userID)
			}
		}
	}

	return effects, nil
}

// goodsAdjustments returns the per-item quantities of the order's goods
// lines. Pure service lines are skipped, not errors.
func (s *orderService) goodsAdjustments(ctx context.Context, order *domain.Order) ([]portsrepo.StockAdjustment, error) {
	if len(order.Lines) == 0 {
		return nil, nil
	}
	itemIDs := make([]string, 0, len(order.Lines))
	for _, l := range order.Lines {
		itemIDs = append(itemIDs, l.StockItemID)
	}
	itemsMap, err := s.stockRepo.FindStockItemsByIDs(ctx, uniqueStrings(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock items for order %s: %w", order.OrderID, err)
	}

	qty := make(map[string]int64)
	idOrder := make([]string, 0, len(order.Lines))
	for _, l := range order.Lines {
		item, found := itemsMap[l.StockItemID]
		if !found {
			return nil, fmt.Errorf("%w: stock item %s", apperrors.ErrNotFound, l.StockItemID)
		}
		if item.Kind != domain.Goods {
			continue
		}
		if _, seen := qty[l.StockItemID]; !seen {
			idOrder = append(idOrder, l.StockItemID)
		}
		qty[l.StockItemID] += l.Quantity
	}

	adjustments := make([]portsrepo.StockAdjustment, 0, len(idOrder))
	for _, id := range idOrder {
		adjustments = append(adjustments, portsrepo.StockAdjustment{StockItemID: id, Quantity: qty[id]})
	}
	return adjustments, nil
}

// cashMovementForOrder builds the single income entry for a cash completion.
func (s *orderService) cashMovementForOrder(order *domain.Order, now time.Time, userID string) *domain.CashMovement {
	category := domain.CategorySales
	if order.Kind == domain.ServiceOrder {
		category = domain.CategoryServices
	}
	orderID := order.OrderID
	return &domain.CashMovement{
		CashMovementID: uuid.NewString(),
		Direction:      domain.Income,
		Amount:         order.Total,
		Category:       category,
		ReferenceKind:  domain.RefOrder,
		ReferenceID:    &orderID,
		OccurredAt:     now,
		CreatedAt:      now,
		CreatedBy:      userID,
	}
}

// installmentObligations splits the order total into one receivable per
// installment, due at monthly steps. The split always sums to the total.
func (s *orderService) installmentObligations(order *domain.Order, now time.Time, userID string) []domain.Obligation {
	parts := pricing.SplitInstallments(order.Total, order.Installments)
	orderID := order.OrderID
	obligations := make([]domain.Obligation, len(parts))
	for i, amount := range parts {
		obligations[i] = domain.Obligation{
			ObligationID:      uuid.NewString(),
			Direction:         domain.Receivable,
			CustomerID:        order.CustomerID,
			Amount:            amount,
			DueDate:           now.AddDate(0, i+1, 0),
			Status:            domain.ObligationPending,
			InstallmentNumber: i + 1,
			OrderID:           &orderID,
			Description:       fmt.Sprintf("Installment %d/%d", i+1, len(parts)),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return obligations
}

// GetOrderByID retrieves an order with its lines.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find order by ID", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, err
	}
	return order, nil
}

// ListOrders retrieves orders filtered by optional kind and status.
func (s *orderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var kind *domain.OrderKind
	if params.Kind != nil {
		k := domain.OrderKind(*params.Kind)
		kind = &k
	}
	var status *domain.OrderStatus
	if params.Status != nil {
		st := domain.OrderStatus(*params.Status)
		status = &st
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	orders, err := s.orderRepo.ListOrders(ctx, kind, status, limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list orders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
