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

// --- Mock CashRepository ---
type MockCashRepository struct {
	mock.Mock
}

var _ portsrepo.CashRepositoryFacade = (*MockCashRepository)(nil)

func (m *MockCashRepository) ListCashMovements(ctx context.Context, limit int, offset int) ([]domain.CashMovement, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashMovement), args.Error(1)
}

func (m *MockCashRepository) FindCashMovementsByReference(ctx context.Context, kind domain.CashReferenceKind, referenceID string) ([]domain.CashMovement, error) {
	args := m.Called(ctx, kind, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashMovement), args.Error(1)
}

func (m *MockCashRepository) BalanceAsOf(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCashRepository) AppendCashMovement(ctx context.Context, movement domain.CashMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

// --- Test Suite ---
type CashServiceTestSuite struct {
	suite.Suite
	mockCashRepo *MockCashRepository
	service      portssvc.CashSvcFacade
	userID       string
}

func (s *CashServiceTestSuite) SetupTest() {
	s.mockCashRepo = new(MockCashRepository)
	s.service = services.NewCashService(s.mockCashRepo)
	s.userID = uuid.NewString()
}

func (s *CashServiceTestSuite) TestRecordMovement_Success() {
	ctx := context.Background()
	occurred := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	req := dto.CreateCashMovementRequest{
		Direction:  "EXPENSE",
		Amount:     decimal.RequireFromString("120.499"),
		Category:   "RENT",
		OccurredAt: &occurred,
	}

	var appended domain.CashMovement
	s.mockCashRepo.On("AppendCashMovement", ctx, mock.AnythingOfType("domain.CashMovement")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(domain.CashMovement)
		}).
		Return(nil).Once()

	movement, err := s.service.RecordMovement(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Expense, movement.Direction)
	s.True(movement.Amount.Equal(decimal.RequireFromString("120.50")), "amount was %s", movement.Amount)
	s.Equal(domain.RefManual, movement.ReferenceKind)
	s.Equal(occurred, movement.OccurredAt)
	s.Equal(appended.CashMovementID, movement.CashMovementID)
}

func (s *CashServiceTestSuite) TestRecordMovement_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateCashMovementRequest{
		Direction: "INCOME",
		Amount:    decimal.Zero,
		Category:  "OTHER",
	}

	movement, err := s.service.RecordMovement(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(movement)
	s.mockCashRepo.AssertNotCalled(s.T(), "AppendCashMovement", mock.Anything, mock.Anything)
}

func (s *CashServiceTestSuite) TestBalance_DefaultsToNow() {
	ctx := context.Background()

	s.mockCashRepo.On("BalanceAsOf", ctx, mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("1234.56"), nil).Once()

	balance, asOf, err := s.service.Balance(ctx, nil)

	s.Require().NoError(err)
	s.True(balance.Equal(decimal.RequireFromString("1234.56")))
	s.WithinDuration(time.Now().UTC(), asOf, time.Minute)
}

func (s *CashServiceTestSuite) TestBalance_AsOf() {
	ctx := context.Background()
	asOf := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)

	s.mockCashRepo.On("BalanceAsOf", ctx, asOf).
		Return(decimal.RequireFromString("-40.00"), nil).Once()

	balance, at, err := s.service.Balance(ctx, &asOf)

	s.Require().NoError(err)
	s.True(balance.IsNegative())
	s.Equal(asOf, at)
}

func (s *CashServiceTestSuite) TestListMovements_NilBecomesEmpty() {
	ctx := context.Background()

	s.mockCashRepo.On("ListCashMovements", ctx, 20, 0).Return([]domain.CashMovement(nil), nil).Once()

	movements, err := s.service.ListMovements(ctx, dto.ListCashMovementsParams{})

	s.Require().NoError(err)
	s.NotNil(movements)
	s.Empty(movements)
}

func (s *CashServiceTestSuite) TestListMovementsByReference() {
	ctx := context.Background()
	orderID := uuid.NewString()
	posted := []domain.CashMovement{
		{
			CashMovementID: uuid.NewString(),
			Direction:      domain.Income,
			Amount:         decimal.RequireFromString("320.00"),
			Category:       domain.CategorySales,
			ReferenceKind:  domain.RefOrder,
			ReferenceID:    &orderID,
		},
	}

	s.mockCashRepo.On("FindCashMovementsByReference", ctx, domain.RefOrder, orderID).Return(posted, nil).Once()

	movements, err := s.service.ListMovementsByReference(ctx, dto.ListMovementsByReferenceParams{
		Kind:        "ORDER",
		ReferenceID: orderID,
	})

	s.Require().NoError(err)
	s.Require().Len(movements, 1)
	s.Equal(posted[0].CashMovementID, movements[0].CashMovementID)
}

func (s *CashServiceTestSuite) TestListMovementsByReference_NilBecomesEmpty() {
	ctx := context.Background()
	obligationID := uuid.NewString()

	s.mockCashRepo.On("FindCashMovementsByReference", ctx, domain.RefObligation, obligationID).
		Return([]domain.CashMovement(nil), nil).Once()

	movements, err := s.service.ListMovementsByReference(ctx, dto.ListMovementsByReferenceParams{
		Kind:        "OBLIGATION",
		ReferenceID: obligationID,
	})

	s.Require().NoError(err)
	s.NotNil(movements)
	s.Empty(movements)
}

func TestCashServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashServiceTestSuite))
}
