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

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

var _ portsrepo.StockRepositoryFacade = (*MockStockRepository)(nil)

func (m *MockStockRepository) FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error) {
	args := m.Called(ctx, stockItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindStockItemsByIDs(ctx context.Context, stockItemIDs []string) (map[string]domain.StockItem, error) {
	args := m.Called(ctx, stockItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) ListStockItems(ctx context.Context, limit int, offset int) ([]domain.StockItem, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) SaveStockItem(ctx context.Context, item domain.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockRepository) UpdateStockItem(ctx context.Context, item domain.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockRepository) Restock(ctx context.Context, stockItemID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, stockItemID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockStockRepository) DeactivateStockItem(ctx context.Context, stockItemID string, userID string, now time.Time) error {
	args := m.Called(ctx, stockItemID, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockStockRepo *MockStockRepository
	service       portssvc.InventorySvcFacade
	userID        string
}

func (s *InventoryServiceTestSuite) SetupTest() {
	s.mockStockRepo = new(MockStockRepository)
	s.service = services.NewInventoryService(s.mockStockRepo)
	s.userID = uuid.NewString()
}

func (s *InventoryServiceTestSuite) TestCreateStockItem_Goods() {
	ctx := context.Background()
	req := dto.CreateStockItemRequest{
		SKU:       "OIL-5W30",
		Name:      "Engine oil 5W30",
		Kind:      "GOODS",
		UnitPrice: decimal.RequireFromString("45.905"),
		OnHand:    12,
	}

	s.mockStockRepo.On("SaveStockItem", ctx, mock.AnythingOfType("domain.StockItem")).Return(nil).Once()

	item, err := s.service.CreateStockItem(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Goods, item.Kind)
	s.Equal(int64(12), item.OnHand)
	s.Equal(int64(0), item.Reserved)
	s.True(item.IsActive)
	s.True(item.UnitPrice.Equal(decimal.RequireFromString("45.91")), "price was %s", item.UnitPrice)
}

func (s *InventoryServiceTestSuite) TestCreateStockItem_ServiceWithQuantity() {
	ctx := context.Background()
	req := dto.CreateStockItemRequest{
		SKU:       "SVC-DIAG",
		Name:      "Engine diagnostics",
		Kind:      "SERVICE",
		UnitPrice: decimal.RequireFromString("80.00"),
		OnHand:    3,
	}

	item, err := s.service.CreateStockItem(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(item)
	s.mockStockRepo.AssertNotCalled(s.T(), "SaveStockItem", mock.Anything, mock.Anything)
}

func (s *InventoryServiceTestSuite) TestCreateStockItem_DuplicateSKU() {
	ctx := context.Background()
	req := dto.CreateStockItemRequest{
		SKU:       "OIL-5W30",
		Name:      "Engine oil 5W30",
		Kind:      "GOODS",
		UnitPrice: decimal.RequireFromString("45.90"),
	}

	s.mockStockRepo.On("SaveStockItem", ctx, mock.AnythingOfType("domain.StockItem")).Return(apperrors.ErrDuplicate).Once()

	item, err := s.service.CreateStockItem(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(item)
}

func (s *InventoryServiceTestSuite) TestUpdateStockItem_Success() {
	ctx := context.Background()
	item := &domain.StockItem{
		StockItemID: uuid.NewString(),
		SKU:         "OIL-5W30",
		Name:        "Engine oil 5W30",
		Kind:        domain.Goods,
		UnitPrice:   decimal.RequireFromString("45.90"),
		OnHand:      12,
		IsActive:    true,
	}
	newName := "Engine oil 5W30 synthetic"
	newPrice := decimal.RequireFromString("52.995")
	req := dto.UpdateStockItemRequest{
		Name:      &newName,
		UnitPrice: &newPrice,
	}

	s.mockStockRepo.On("FindStockItemByID", ctx, item.StockItemID).Return(item, nil).Once()
	s.mockStockRepo.On("UpdateStockItem", ctx, mock.MatchedBy(func(updated domain.StockItem) bool {
		return updated.Name == newName &&
			updated.UnitPrice.Equal(decimal.RequireFromString("53.00")) &&
			updated.SKU == "OIL-5W30" &&
			updated.LastUpdatedBy == s.userID
	})).Return(nil).Once()

	result, err := s.service.UpdateStockItem(ctx, item.StockItemID, req, s.userID)

	s.Require().NoError(err)
	s.Equal(newName, result.Name)
	s.True(result.UnitPrice.Equal(decimal.RequireFromString("53.00")), "price was %s", result.UnitPrice)
	s.Equal(int64(12), result.OnHand)
	s.mockStockRepo.AssertExpectations(s.T())
}

func (s *InventoryServiceTestSuite) TestUpdateStockItem_NoFields() {
	ctx := context.Background()
	item := &domain.StockItem{
		StockItemID: uuid.NewString(),
		SKU:         "OIL-5W30",
		Kind:        domain.Goods,
		IsActive:    true,
	}

	s.mockStockRepo.On("FindStockItemByID", ctx, item.StockItemID).Return(item, nil).Once()

	result, err := s.service.UpdateStockItem(ctx, item.StockItemID, dto.UpdateStockItemRequest{}, s.userID)

	s.Require().NoError(err)
	s.Equal(item.StockItemID, result.StockItemID)
	s.mockStockRepo.AssertNotCalled(s.T(), "UpdateStockItem", mock.Anything, mock.Anything)
}

func (s *InventoryServiceTestSuite) TestUpdateStockItem_NegativePrice() {
	ctx := context.Background()
	item := &domain.StockItem{
		StockItemID: uuid.NewString(),
		Kind:        domain.Goods,
		IsActive:    true,
	}
	badPrice := decimal.RequireFromString("-1.00")

	s.mockStockRepo.On("FindStockItemByID", ctx, item.StockItemID).Return(item, nil).Once()

	result, err := s.service.UpdateStockItem(ctx, item.StockItemID, dto.UpdateStockItemRequest{UnitPrice: &badPrice}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(result)
	s.mockStockRepo.AssertNotCalled(s.T(), "UpdateStockItem", mock.Anything, mock.Anything)
}

func (s *InventoryServiceTestSuite) TestUpdateStockItem_DuplicateSKU() {
	ctx := context.Background()
	item := &domain.StockItem{
		StockItemID: uuid.NewString(),
		SKU:         "OIL-5W30",
		Kind:        domain.Goods,
		IsActive:    true,
	}
	takenSKU := "OIL-5W40"

	s.mockStockRepo.On("FindStockItemByID", ctx, item.StockItemID).Return(item, nil).Once()
	s.mockStockRepo.On("UpdateStockItem", ctx, mock.AnythingOfType("domain.StockItem")).Return(apperrors.ErrDuplicate).Once()

	result, err := s.service.UpdateStockItem(ctx, item.StockItemID, dto.UpdateStockItemRequest{SKU: &takenSKU}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(result)
}

func (s *InventoryServiceTestSuite) TestCheckAvailability() {
	ctx := context.Background()
	goods := &domain.StockItem{
		StockItemID: uuid.NewString(),
		Kind:        domain.Goods,
		OnHand:      10,
		Reserved:    4,
		IsActive:    true,
	}
	service := &domain.StockItem{
		StockItemID: uuid.NewString(),
		Kind:        domain.Service,
		IsActive:    true,
	}

	s.mockStockRepo.On("FindStockItemByID", ctx, goods.StockItemID).Return(goods, nil)
	s.mockStockRepo.On("FindStockItemByID", ctx, service.StockItemID).Return(service, nil)

	ok, err := s.service.CheckAvailability(ctx, goods.StockItemID, 6)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.service.CheckAvailability(ctx, goods.StockItemID, 7)
	s.Require().NoError(err)
	s.False(ok)

	// Service items are never constrained by quantity.
	ok, err = s.service.CheckAvailability(ctx, service.StockItemID, 9999)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *InventoryServiceTestSuite) TestRestock_Success() {
	ctx := context.Background()
	item := &domain.StockItem{
		StockItemID: uuid.NewString(),
		Kind:        domain.Goods,
		OnHand:      2,
		IsActive:    true,
	}
	restocked := *item
	restocked.OnHand = 7

	s.mockStockRepo.On("FindStockItemByID", ctx, item.StockItemID).Return(item, nil).Once()
	s.mockStockRepo.On("Restock", ctx, item.StockItemID, int64(5), s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockStockRepo.On("FindStockItemByID", ctx, item.StockItemID).Return(&restocked, nil).Once()

	result, err := s.service.Restock(ctx, item.StockItemID, 5, s.userID)

	s.Require().NoError(err)
	s.Equal(int64(7), result.OnHand)
}

func (s *InventoryServiceTestSuite) TestRestock_ServiceItem() {
	ctx := context.Background()
	item := &domain.StockItem{
		StockItemID: uuid.NewString(),
		Kind:        domain.Service,
		IsActive:    true,
	}

	s.mockStockRepo.On("FindStockItemByID", ctx, item.StockItemID).Return(item, nil).Once()

	result, err := s.service.Restock(ctx, item.StockItemID, 5, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(result)
	s.mockStockRepo.AssertNotCalled(s.T(), "Restock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *InventoryServiceTestSuite) TestRestock_NonPositiveQuantity() {
	ctx := context.Background()

	result, err := s.service.Restock(ctx, uuid.NewString(), 0, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(result)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
