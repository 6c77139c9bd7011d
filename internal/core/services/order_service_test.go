package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/services"
	"github.com/rkalra23/workshop_mgmt_app/internal/core/services"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
)

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, kind *domain.OrderKind, status *domain.OrderStatus, limit int, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, kind, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order, lines []domain.OrderLine, reservations []portsrepo.StockAdjustment) (int64, error) {
	args := m.Called(ctx, order, lines, reservations)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ApplyTransition(ctx context.Context, orderID string, from domain.OrderStatus, target domain.OrderStatus, effects portsrepo.TransitionSideEffects, userID string, now time.Time) error {
	args := m.Called(ctx, orderID, from, target, effects, userID, now)
	return args.Error(0)
}

// --- Mock StockReader ---
type MockStockReader struct {
	mock.Mock
}

var _ portsrepo.StockReader = (*MockStockReader)(nil)

func (m *MockStockReader) FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error) {
	args := m.Called(ctx, stockItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

func (m *MockStockReader) FindStockItemsByIDs(ctx context.Context, stockItemIDs []string) (map[string]domain.StockItem, error) {
	args := m.Called(ctx, stockItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.StockItem), args.Error(1)
}

func (m *MockStockReader) ListStockItems(ctx context.Context, limit int, offset int) ([]domain.StockItem, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockItem), args.Error(1)
}

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) DeactivateCustomer(ctx context.Context, customerID string, userID string) error {
	args := m.Called(ctx, customerID, userID)
	return args.Error(0)
}

// --- Mock VehicleService ---
type MockVehicleService struct {
	mock.Mock
}

var _ portssvc.VehicleSvcFacade = (*MockVehicleService)(nil)

func (m *MockVehicleService) CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, userID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleService) ListVehiclesByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req dto.UpdateVehicleRequest, userID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, vehicleID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

// --- Test Suite ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo   *MockOrderRepository
	mockStockReader *MockStockReader
	mockCustomerSvc *MockCustomerService
	mockVehicleSvc  *MockVehicleService
	service         portssvc.OrderSvcFacade

	customer  domain.Customer
	goodsItem domain.StockItem
	laborItem domain.StockItem
	userID    string
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.mockOrderRepo = new(MockOrderRepository)
	s.mockStockReader = new(MockStockReader)
	s.mockCustomerSvc = new(MockCustomerService)
	s.mockVehicleSvc = new(MockVehicleService)
	s.service = services.NewOrderService(s.mockOrderRepo, s.mockStockReader, s.mockCustomerSvc, s.mockVehicleSvc)

	s.userID = uuid.NewString()
	s.customer = domain.Customer{CustomerID: uuid.NewString(), Name: "Ana Souza", IsActive: true}
	s.goodsItem = domain.StockItem{
		StockItemID: uuid.NewString(),
		SKU:         "BRK-PAD-01",
		Name:        "Brake pad set",
		Kind:        domain.Goods,
		UnitPrice:   decimal.RequireFromString("50.00"),
		OnHand:      10,
		IsActive:    true,
	}
	s.laborItem = domain.StockItem{
		StockItemID: uuid.NewString(),
		SKU:         "SVC-ALIGN",
		Name:        "Wheel alignment",
		Kind:        domain.Service,
		UnitPrice:   decimal.RequireFromString("30.00"),
		IsActive:    true,
	}
}

func (s *OrderServiceTestSuite) TestCreateOrder_Sale_Success() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		Kind:       "SALE",
		CustomerID: s.customer.CustomerID,
		Lines: []dto.OrderLineRequest{
			{StockItemID: s.goodsItem.StockItemID, Quantity: 2, LineDiscount: decimal.RequireFromString("5.00")},
			{StockItemID: s.laborItem.StockItemID, Quantity: 1},
		},
		OrderDiscount: decimal.RequireFromString("5.00"),
		PaymentTerms:  "CASH",
	}

	s.mockCustomerSvc.On("GetCustomerByID", ctx, s.customer.CustomerID).Return(&s.customer, nil).Once()
	s.mockStockReader.On("FindStockItemsByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.StockItem{
		s.goodsItem.StockItemID: s.goodsItem,
		s.laborItem.StockItemID: s.laborItem,
	}, nil).Once()

	var savedReservations []portsrepo.StockAdjustment
	s.mockOrderRepo.On("SaveOrder", ctx, mock.AnythingOfType("domain.Order"), mock.AnythingOfType("[]domain.OrderLine"), mock.AnythingOfType("[]repositories.StockAdjustment")).
		Run(func(args mock.Arguments) {
			savedReservations = args.Get(3).([]portsrepo.StockAdjustment)
		}).
		Return(int64(7), nil).Once()

	order, err := s.service.CreateOrder(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(order)
	s.Equal(domain.Sale, order.Kind)
	s.Equal(domain.StatusPending, order.Status)
	s.Equal(int64(7), order.SequenceNumber)
	// 2*50 - 5 = 95, 1*30 = 30, (125 - 5) = 120
	s.True(order.Total.Equal(decimal.RequireFromString("120.00")), "total was %s", order.Total)
	s.Len(order.Lines, 2)
	s.True(order.Lines[0].LineTotal.Equal(decimal.RequireFromString("95.00")))
	s.True(order.Lines[1].LineTotal.Equal(decimal.RequireFromString("30.00")))
	// Only the goods line reserves stock.
	s.Require().Len(savedReservations, 1)
	s.Equal(s.goodsItem.StockItemID, savedReservations[0].StockItemID)
	s.Equal(int64(2), savedReservations[0].Quantity)
	s.mockOrderRepo.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestCreateOrder_InsufficientStock() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		Kind:       "SALE",
		CustomerID: s.customer.CustomerID,
		Lines: []dto.OrderLineRequest{
			{StockItemID: s.goodsItem.StockItemID, Quantity: 99},
		},
		PaymentTerms: "CASH",
	}

	s.mockCustomerSvc.On("GetCustomerByID", ctx, s.customer.CustomerID).Return(&s.customer, nil).Once()
	s.mockStockReader.On("FindStockItemsByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.StockItem{
		s.goodsItem.StockItemID: s.goodsItem,
	}, nil).Once()
	s.mockOrderRepo.On("SaveOrder", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), apperrors.NewAppError(422, "insufficient stock", apperrors.ErrInsufficientStock)).Once()

	order, err := s.service.CreateOrder(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInsufficientStock)
	s.Nil(order)
}

func (s *OrderServiceTestSuite) TestCreateOrder_ValidationFailures() {
	ctx := context.Background()
	vehicleID := uuid.NewString()

	testCases := []struct {
		name string
		req  dto.CreateOrderRequest
	}{
		{
			name: "empty order",
			req:  dto.CreateOrderRequest{Kind: "SALE", CustomerID: s.customer.CustomerID, PaymentTerms: "CASH"},
		},
		{
			name: "sale with vehicle",
			req: dto.CreateOrderRequest{
				Kind: "SALE", CustomerID: s.customer.CustomerID, VehicleID: &vehicleID, PaymentTerms: "CASH",
				Lines: []dto.OrderLineRequest{{StockItemID: s.goodsItem.StockItemID, Quantity: 1}},
			},
		},
		{
			name: "sale with labor cost",
			req: dto.CreateOrderRequest{
				Kind: "SALE", CustomerID: s.customer.CustomerID, PaymentTerms: "CASH",
				LaborCost: decimal.RequireFromString("10.00"),
				Lines:     []dto.OrderLineRequest{{StockItemID: s.goodsItem.StockItemID, Quantity: 1}},
			},
		},
		{
			name: "complete immediately on service order",
			req: dto.CreateOrderRequest{
				Kind: "SERVICE_ORDER", CustomerID: s.customer.CustomerID, PaymentTerms: "CASH",
				LaborCost: decimal.RequireFromString("10.00"), CompleteImmediately: true,
			},
		},
		{
			name: "installment terms without count",
			req: dto.CreateOrderRequest{
				Kind: "SALE", CustomerID: s.customer.CustomerID, PaymentTerms: "INSTALLMENTS",
				Lines: []dto.OrderLineRequest{{StockItemID: s.goodsItem.StockItemID, Quantity: 1}},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			order, err := s.service.CreateOrder(ctx, tc.req, s.userID)
			s.Require().Error(err)
			s.ErrorIs(err, apperrors.ErrValidation)
			s.Nil(order)
		})
	}
	s.mockOrderRepo.AssertNotCalled(s.T(), "SaveOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestCreateOrder_InstallmentsExceedTotalCents() {
	ctx := context.Background()
	cheapItem := domain.StockItem{
		StockItemID: uuid.NewString(),
		SKU:         "WSH-M6",
		Name:        "M6 washer",
		Kind:        domain.Goods,
		UnitPrice:   decimal.RequireFromString("0.05"),
		OnHand:      100,
		IsActive:    true,
	}
	req := dto.CreateOrderRequest{
		Kind:         "SALE",
		CustomerID:   s.customer.CustomerID,
		PaymentTerms: "INSTALLMENTS",
		Installments: 10,
		Lines: []dto.OrderLineRequest{
			{StockItemID: cheapItem.StockItemID, Quantity: 1},
		},
	}

	s.mockCustomerSvc.On("GetCustomerByID", ctx, s.customer.CustomerID).Return(&s.customer, nil).Once()
	s.mockStockReader.On("FindStockItemsByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.StockItem{
		cheapItem.StockItemID: cheapItem,
	}, nil).Once()

	order, err := s.service.CreateOrder(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(order)
	s.mockOrderRepo.AssertNotCalled(s.T(), "SaveOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestCreateOrder_InactiveCustomer() {
	ctx := context.Background()
	inactive := s.customer
	inactive.IsActive = false

	s.mockCustomerSvc.On("GetCustomerByID", ctx, inactive.CustomerID).Return(&inactive, nil).Once()

	order, err := s.service.CreateOrder(ctx, dto.CreateOrderRequest{
		Kind: "SALE", CustomerID: inactive.CustomerID, PaymentTerms: "CASH",
		Lines: []dto.OrderLineRequest{{StockItemID: s.goodsItem.StockItemID, Quantity: 1}},
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(order)
}

func (s *OrderServiceTestSuite) pendingSale(total string, terms domain.PaymentTerms, installments int) *domain.Order {
	orderID := uuid.NewString()
	return &domain.Order{
		OrderID:      orderID,
		Kind:         domain.Sale,
		CustomerID:   s.customer.CustomerID,
		Status:       domain.StatusPending,
		PaymentTerms: terms,
		Installments: installments,
		Total:        decimal.RequireFromString(total),
		Lines: []domain.OrderLine{
			{
				OrderLineID: uuid.NewString(),
				OrderID:     orderID,
				StockItemID: s.goodsItem.StockItemID,
				Quantity:    2,
				UnitPrice:   s.goodsItem.UnitPrice,
				LineTotal:   decimal.RequireFromString(total),
			},
		},
	}
}

func (s *OrderServiceTestSuite) stockLookupForGoods(ctx context.Context) {
	s.mockStockReader.On("FindStockItemsByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.StockItem{
		s.goodsItem.StockItemID: s.goodsItem,
	}, nil).Once()
}

func (s *OrderServiceTestSuite) TestRequestTransition_CashCompletion_PostsOneMovement() {
	ctx := context.Background()
	order := s.pendingSale("100.00", domain.TermsCash, 0)

	completed := *order
	completed.Status = domain.StatusCompleted
	completed.StockApplied = true

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	s.stockLookupForGoods(ctx)

	var effects portsrepo.TransitionSideEffects
	s.mockOrderRepo.On("ApplyTransition", ctx, order.OrderID, domain.StatusPending, domain.StatusCompleted, mock.AnythingOfType("repositories.TransitionSideEffects"), s.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			effects = args.Get(4).(portsrepo.TransitionSideEffects)
		}).
		Return(nil).Once()
	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(&completed, nil).Once()

	result, err := s.service.RequestTransition(ctx, order.OrderID, domain.StatusCompleted, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.StatusCompleted, result.Status)

	// Exactly one income entry for the full total, nothing else on the ledger.
	s.Require().NotNil(effects.CashMovement)
	s.True(effects.CashMovement.Amount.Equal(order.Total))
	s.Equal(domain.Income, effects.CashMovement.Direction)
	s.Equal(domain.CategorySales, effects.CashMovement.Category)
	s.Equal(domain.RefOrder, effects.CashMovement.ReferenceKind)
	s.Empty(effects.Obligations)

	// Reservations become permanent deductions.
	s.True(effects.MarkStockApplied)
	s.Require().Len(effects.ConsumeReservations, 1)
	s.Equal(int64(2), effects.ConsumeReservations[0].Quantity)
	s.Empty(effects.ReleaseReservations)
	s.Empty(effects.Restock)
}

func (s *OrderServiceTestSuite) TestRequestTransition_InstallmentCompletion_SplitsTotal() {
	ctx := context.Background()
	orderID := uuid.NewString()
	order := &domain.Order{
		OrderID:      orderID,
		Kind:         domain.ServiceOrder,
		CustomerID:   s.customer.CustomerID,
		Status:       domain.StatusInProgress,
		PaymentTerms: domain.TermsInstallments,
		Installments: 3,
		LaborCost:    decimal.RequireFromString("100.00"),
		Total:        decimal.RequireFromString("100.00"),
	}
	completed := *order
	completed.Status = domain.StatusCompleted

	s.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(order, nil).Once()

	var effects portsrepo.TransitionSideEffects
	s.mockOrderRepo.On("ApplyTransition", ctx, orderID, domain.StatusInProgress, domain.StatusCompleted, mock.AnythingOfType("repositories.TransitionSideEffects"), s.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			effects = args.Get(4).(portsrepo.TransitionSideEffects)
		}).
		Return(nil).Once()
	s.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(&completed, nil).Once()

	_, err := s.service.RequestTransition(ctx, orderID, domain.StatusCompleted, s.userID)

	s.Require().NoError(err)
	s.Nil(effects.CashMovement)
	s.Require().Len(effects.Obligations, 3)

	sum := decimal.Zero
	for i, o := range effects.Obligations {
		s.Equal(domain.Receivable, o.Direction)
		s.Equal(domain.ObligationPending, o.Status)
		s.Equal(i+1, o.InstallmentNumber)
		s.Require().NotNil(o.OrderID)
		s.Equal(orderID, *o.OrderID)
		s.WithinDuration(time.Now().AddDate(0, i+1, 0), o.DueDate, time.Minute)
		sum = sum.Add(o.Amount)
	}
	s.True(sum.Equal(order.Total), "installments sum %s, total %s", sum, order.Total)
	s.True(effects.Obligations[0].Amount.Equal(decimal.RequireFromString("33.33")))
	s.True(effects.Obligations[2].Amount.Equal(decimal.RequireFromString("33.34")))

	// Service order completion stamps the completion time once.
	s.Require().NotNil(effects.CompletedAt)
}

func (s *OrderServiceTestSuite) TestRequestTransition_CancelPendingSale_ReleasesReservations() {
	ctx := context.Background()
	order := s.pendingSale("100.00", domain.TermsCash, 0)
	cancelled := *order
	cancelled.Status = domain.StatusCancelled

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	s.stockLookupForGoods(ctx)

	var effects portsrepo.TransitionSideEffects
	s.mockOrderRepo.On("ApplyTransition", ctx, order.OrderID, domain.StatusPending, domain.StatusCancelled, mock.AnythingOfType("repositories.TransitionSideEffects"), s.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			effects = args.Get(4).(portsrepo.TransitionSideEffects)
		}).
		Return(nil).Once()
	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(&cancelled, nil).Once()

	result, err := s.service.RequestTransition(ctx, order.OrderID, domain.StatusCancelled, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.StatusCancelled, result.Status)
	// No ledger or registry writes, reservations just come back.
	s.Nil(effects.CashMovement)
	s.Empty(effects.Obligations)
	s.Require().Len(effects.ReleaseReservations, 1)
	s.Equal(int64(2), effects.ReleaseReservations[0].Quantity)
	s.Empty(effects.Restock)
	s.Empty(effects.ConsumeReservations)
}

func (s *OrderServiceTestSuite) TestRequestTransition_CancelAfterStockApplied_Restocks() {
	ctx := context.Background()
	order := s.pendingSale("100.00", domain.TermsCash, 0)
	order.Status = domain.StatusApproved
	order.StockApplied = true
	cancelled := *order
	cancelled.Status = domain.StatusCancelled

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	s.stockLookupForGoods(ctx)

	var effects portsrepo.TransitionSideEffects
	s.mockOrderRepo.On("ApplyTransition", ctx, order.OrderID, domain.StatusApproved, domain.StatusCancelled, mock.AnythingOfType("repositories.TransitionSideEffects"), s.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			effects = args.Get(4).(portsrepo.TransitionSideEffects)
		}).
		Return(nil).Once()
	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(&cancelled, nil).Once()

	_, err := s.service.RequestTransition(ctx, order.OrderID, domain.StatusCancelled, s.userID)

	s.Require().NoError(err)
	s.Require().Len(effects.Restock, 1)
	s.Equal(int64(2), effects.Restock[0].Quantity)
	s.Empty(effects.ReleaseReservations)
}

func (s *OrderServiceTestSuite) TestRequestTransition_InvalidTransition() {
	ctx := context.Background()
	order := s.pendingSale("100.00", domain.TermsCash, 0)

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	result, err := s.service.RequestTransition(ctx, order.OrderID, domain.StatusDelivered, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidTransition)
	s.Nil(result)
	s.mockOrderRepo.AssertNotCalled(s.T(), "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestRequestTransition_AlreadyTerminal() {
	ctx := context.Background()
	order := s.pendingSale("100.00", domain.TermsCash, 0)
	order.Status = domain.StatusCancelled

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	result, err := s.service.RequestTransition(ctx, order.OrderID, domain.StatusCompleted, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadyTerminal)
	s.Nil(result)
	s.mockOrderRepo.AssertNotCalled(s.T(), "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestRequestTransition_LoserGetsConflict() {
	ctx := context.Background()
	order := s.pendingSale("100.00", domain.TermsCash, 0)

	s.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	s.stockLookupForGoods(ctx)
	s.mockOrderRepo.On("ApplyTransition", ctx, order.OrderID, domain.StatusPending, domain.StatusCompleted, mock.Anything, s.userID, mock.Anything).
		Return(apperrors.ErrConflict).Once()

	result, err := s.service.RequestTransition(ctx, order.OrderID, domain.StatusCompleted, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Nil(result)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
