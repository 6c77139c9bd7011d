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

// --- Mock ObligationRepository ---
type MockObligationRepository struct {
	mock.Mock
}

var _ portsrepo.ObligationRepositoryFacade = (*MockObligationRepository)(nil)

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ListObligations(ctx context.Context, status *domain.ObligationStatus, direction *domain.ObligationDirection, limit int, offset int) ([]domain.Obligation, error) {
	args := m.Called(ctx, status, direction, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) FindObligationsByOrderID(ctx context.Context, orderID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) SettleObligation(ctx context.Context, obligationID string, settledAmount decimal.Decimal, method string, movement domain.CashMovement, userID string, now time.Time) error {
	args := m.Called(ctx, obligationID, settledAmount, method, movement, userID, now)
	return args.Error(0)
}

func (m *MockObligationRepository) CancelObligation(ctx context.Context, obligationID string, reason string, userID string, now time.Time) error {
	args := m.Called(ctx, obligationID, reason, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type AccountsServiceTestSuite struct {
	suite.Suite
	mockObligationRepo *MockObligationRepository
	mockCustomerSvc    *MockCustomerService
	service            portssvc.AccountsSvcFacade

	customer domain.Customer
	userID   string
}

func (s *AccountsServiceTestSuite) SetupTest() {
	s.mockObligationRepo = new(MockObligationRepository)
	s.mockCustomerSvc = new(MockCustomerService)
	s.service = services.NewAccountsService(s.mockObligationRepo, s.mockCustomerSvc)

	s.userID = uuid.NewString()
	s.customer = domain.Customer{CustomerID: uuid.NewString(), Name: "Carlos Lima", IsActive: true}
}

func (s *AccountsServiceTestSuite) pendingObligation(direction domain.ObligationDirection, amount string) *domain.Obligation {
	return &domain.Obligation{
		ObligationID: uuid.NewString(),
		Direction:    direction,
		CustomerID:   s.customer.CustomerID,
		Amount:       decimal.RequireFromString(amount),
		DueDate:      time.Now().AddDate(0, 1, 0),
		Status:       domain.ObligationPending,
	}
}

func (s *AccountsServiceTestSuite) TestOpenObligation_Success() {
	ctx := context.Background()
	req := dto.OpenObligationRequest{
		Direction:   "PAYABLE",
		CustomerID:  s.customer.CustomerID,
		Amount:      decimal.RequireFromString("250.505"),
		DueDate:     time.Now().AddDate(0, 1, 0),
		Description: "Parts supplier invoice",
	}

	s.mockCustomerSvc.On("GetCustomerByID", ctx, s.customer.CustomerID).Return(&s.customer, nil).Once()

	var saved domain.Obligation
	s.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Obligation)
		}).
		Return(nil).Once()

	obligation, err := s.service.OpenObligation(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(obligation)
	s.Equal(domain.Payable, obligation.Direction)
	s.Equal(domain.ObligationPending, obligation.Status)
	s.True(obligation.Amount.Equal(decimal.RequireFromString("250.51")), "amount was %s", obligation.Amount)
	s.Equal(saved.ObligationID, obligation.ObligationID)
	s.mockObligationRepo.AssertExpectations(s.T())
}

func (s *AccountsServiceTestSuite) TestOpenObligation_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.OpenObligationRequest{
		Direction:  "RECEIVABLE",
		CustomerID: s.customer.CustomerID,
		Amount:     decimal.Zero,
		DueDate:    time.Now(),
	}

	obligation, err := s.service.OpenObligation(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(obligation)
	s.mockObligationRepo.AssertNotCalled(s.T(), "SaveObligation", mock.Anything, mock.Anything)
}

func (s *AccountsServiceTestSuite) TestOpenObligation_UnknownCustomer() {
	ctx := context.Background()
	req := dto.OpenObligationRequest{
		Direction:  "RECEIVABLE",
		CustomerID: s.customer.CustomerID,
		Amount:     decimal.RequireFromString("10.00"),
		DueDate:    time.Now(),
	}

	s.mockCustomerSvc.On("GetCustomerByID", ctx, s.customer.CustomerID).Return(nil, apperrors.ErrNotFound).Once()

	obligation, err := s.service.OpenObligation(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(obligation)
}

func (s *AccountsServiceTestSuite) TestSettleObligation_Receivable_PostsIncome() {
	ctx := context.Background()
	pending := s.pendingObligation(domain.Receivable, "100.00")
	settledAmount := decimal.RequireFromString("95.00")

	settled := *pending
	settled.Status = domain.ObligationSettled
	settled.SettledAmount = &settledAmount

	s.mockObligationRepo.On("FindObligationByID", ctx, pending.ObligationID).Return(pending, nil).Once()

	var movement domain.CashMovement
	s.mockObligationRepo.On("SettleObligation", ctx, pending.ObligationID, settledAmount, "PIX", mock.AnythingOfType("domain.CashMovement"), s.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			movement = args.Get(4).(domain.CashMovement)
		}).
		Return(nil).Once()
	s.mockObligationRepo.On("FindObligationByID", ctx, pending.ObligationID).Return(&settled, nil).Once()

	result, resultMovement, err := s.service.SettleObligation(ctx, pending.ObligationID, dto.SettleObligationRequest{
		Amount: settledAmount,
		Method: "PIX",
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ObligationSettled, result.Status)
	s.Require().NotNil(resultMovement)

	// Settling a receivable brings money in, referenced back to the obligation.
	s.Equal(domain.Income, movement.Direction)
	s.Equal(domain.CategoryReceivables, movement.Category)
	s.True(movement.Amount.Equal(settledAmount))
	s.Equal(domain.RefObligation, movement.ReferenceKind)
	s.Require().NotNil(movement.ReferenceID)
	s.Equal(pending.ObligationID, *movement.ReferenceID)
}

func (s *AccountsServiceTestSuite) TestSettleObligation_Payable_PostsExpense() {
	ctx := context.Background()
	pending := s.pendingObligation(domain.Payable, "80.00")
	settledAmount := decimal.RequireFromString("80.00")

	settled := *pending
	settled.Status = domain.ObligationSettled

	s.mockObligationRepo.On("FindObligationByID", ctx, pending.ObligationID).Return(pending, nil).Once()

	var movement domain.CashMovement
	s.mockObligationRepo.On("SettleObligation", ctx, pending.ObligationID, settledAmount, "CASH", mock.AnythingOfType("domain.CashMovement"), s.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			movement = args.Get(4).(domain.CashMovement)
		}).
		Return(nil).Once()
	s.mockObligationRepo.On("FindObligationByID", ctx, pending.ObligationID).Return(&settled, nil).Once()

	_, _, err := s.service.SettleObligation(ctx, pending.ObligationID, dto.SettleObligationRequest{
		Amount: settledAmount,
		Method: "CASH",
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Expense, movement.Direction)
	s.Equal(domain.CategoryPayables, movement.Category)
}

func (s *AccountsServiceTestSuite) TestSettleObligation_AlreadySettled() {
	ctx := context.Background()
	pending := s.pendingObligation(domain.Receivable, "100.00")
	pending.Status = domain.ObligationSettled

	s.mockObligationRepo.On("FindObligationByID", ctx, pending.ObligationID).Return(pending, nil).Once()

	result, movement, err := s.service.SettleObligation(ctx, pending.ObligationID, dto.SettleObligationRequest{
		Amount: decimal.RequireFromString("100.00"),
		Method: "CASH",
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadySettled)
	s.Nil(result)
	s.Nil(movement)
	s.mockObligationRepo.AssertNotCalled(s.T(), "SettleObligation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountsServiceTestSuite) TestSettleObligation_OverSettlement() {
	ctx := context.Background()
	pending := s.pendingObligation(domain.Receivable, "100.00")

	s.mockObligationRepo.On("FindObligationByID", ctx, pending.ObligationID).Return(pending, nil).Once()

	result, movement, err := s.service.SettleObligation(ctx, pending.ObligationID, dto.SettleObligationRequest{
		Amount: decimal.RequireFromString("100.01"),
		Method: "CASH",
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrOverSettlement)
	s.Nil(result)
	s.Nil(movement)
}

func (s *AccountsServiceTestSuite) TestSettleObligation_NonPositiveAmount() {
	ctx := context.Background()

	result, movement, err := s.service.SettleObligation(ctx, uuid.NewString(), dto.SettleObligationRequest{
		Amount: decimal.Zero,
		Method: "CASH",
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(result)
	s.Nil(movement)
}

func (s *AccountsServiceTestSuite) TestSettleObligation_LoserGetsAlreadySettled() {
	ctx := context.Background()
	pending := s.pendingObligation(domain.Receivable, "100.00")
	amount := decimal.RequireFromString("100.00")

	s.mockObligationRepo.On("FindObligationByID", ctx, pending.ObligationID).Return(pending, nil).Once()
	s.mockObligationRepo.On("SettleObligation", ctx, pending.ObligationID, amount, "CASH", mock.Anything, s.userID, mock.Anything).
		Return(apperrors.ErrAlreadySettled).Once()

	result, movement, err := s.service.SettleObligation(ctx, pending.ObligationID, dto.SettleObligationRequest{
		Amount: amount,
		Method: "CASH",
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadySettled)
	s.Nil(result)
	s.Nil(movement)
}

func (s *AccountsServiceTestSuite) TestListObligationsByOrder() {
	ctx := context.Background()
	orderID := uuid.NewString()
	installments := []domain.Obligation{
		{
			ObligationID:      uuid.NewString(),
			Direction:         domain.Receivable,
			CustomerID:        s.customer.CustomerID,
			Amount:            decimal.RequireFromString("33.33"),
			Status:            domain.ObligationPending,
			InstallmentNumber: 1,
			OrderID:           &orderID,
		},
		{
			ObligationID:      uuid.NewString(),
			Direction:         domain.Receivable,
			CustomerID:        s.customer.CustomerID,
			Amount:            decimal.RequireFromString("33.34"),
			Status:            domain.ObligationPending,
			InstallmentNumber: 2,
			OrderID:           &orderID,
		},
	}

	s.mockObligationRepo.On("FindObligationsByOrderID", ctx, orderID).Return(installments, nil).Once()

	result, err := s.service.ListObligationsByOrder(ctx, orderID)

	s.Require().NoError(err)
	s.Require().Len(result, 2)
	s.Equal(1, result[0].InstallmentNumber)
	s.Equal(2, result[1].InstallmentNumber)
}

func (s *AccountsServiceTestSuite) TestListObligationsByOrder_NoneBecomesEmpty() {
	ctx := context.Background()
	orderID := uuid.NewString()

	s.mockObligationRepo.On("FindObligationsByOrderID", ctx, orderID).Return([]domain.Obligation(nil), nil).Once()

	result, err := s.service.ListObligationsByOrder(ctx, orderID)

	s.Require().NoError(err)
	s.NotNil(result)
	s.Empty(result)
}

func (s *AccountsServiceTestSuite) TestCancelObligation_Success() {
	ctx := context.Background()
	pending := s.pendingObligation(domain.Receivable, "50.00")
	cancelled := *pending
	cancelled.Status = domain.ObligationCancelled

	s.mockObligationRepo.On("CancelObligation", ctx, pending.ObligationID, "customer returned goods", s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	s.mockObligationRepo.On("FindObligationByID", ctx, pending.ObligationID).Return(&cancelled, nil).Once()

	result, err := s.service.CancelObligation(ctx, pending.ObligationID, "customer returned goods", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ObligationCancelled, result.Status)
}

func TestAccountsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountsServiceTestSuite))
}
