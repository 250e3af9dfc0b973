package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/core/services"
	"github.com/kemasku/packshop_backend/internal/dto"
)

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.InventoryItem, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListLogEntries(ctx context.Context, itemID *string, limit int, nextToken *string) ([]domain.InventoryLogEntry, *string, error) {
	args := m.Called(ctx, itemID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.InventoryLogEntry), returnedNextToken, args.Error(2)
}

func (m *MockInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) Adjust(ctx context.Context, itemID string, direction domain.LogDirection, amount decimal.Decimal, note string, userID string, now time.Time) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID, direction, amount, note, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindItemsByIDsForUpdate(ctx context.Context, tx pgx.Tx, itemIDs []string) (map[string]domain.InventoryItem, error) {
	args := m.Called(ctx, tx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ApplyStockChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) InsertLogEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.InventoryLogEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

// --- Test Suite Setup ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInventoryRepository
	service  portssvc.InventorySvcFacade
	userID   string
	ctx      context.Context
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInventoryRepository)
	suite.service = services.NewInventoryService(suite.mockRepo)
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

func (suite *InventoryServiceTestSuite) TestCreateItem_WithoutOpeningStock() {
	req := dto.CreateInventoryItemRequest{
		Name:     "Plastik PP",
		Category: "plastik",
		Size:     "10x20",
		Unit:     "pcs",
	}
	suite.mockRepo.On("SaveItem", suite.ctx, mock.AnythingOfType("domain.InventoryItem")).
		Run(func(args mock.Arguments) {
			item := args.Get(1).(domain.InventoryItem)
			suite.True(item.Stock.IsZero())
			suite.Equal("Plastik PP", item.Name)
		}).
		Return(nil).Once()

	item, err := suite.service.CreateItem(suite.ctx, req, suite.userID)

	suite.NoError(err)
	suite.True(item.Stock.IsZero())
	suite.mockRepo.AssertNotCalled(suite.T(), "Adjust",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestCreateItem_OpeningStockGoesThroughLedger() {
	req := dto.CreateInventoryItemRequest{
		Name:     "Kertas Stiker",
		Category: "kertas",
		Unit:     "lembar",
		Stock:    decimal.NewFromInt(200),
	}
	adjusted := &domain.InventoryItem{
		Name:  "Kertas Stiker",
		Unit:  "lembar",
		Stock: decimal.NewFromInt(200),
	}
	suite.mockRepo.On("SaveItem", suite.ctx, mock.AnythingOfType("domain.InventoryItem")).Return(nil).Once()
	suite.mockRepo.On("Adjust", suite.ctx, mock.AnythingOfType("string"), domain.DirectionIn,
		decimal.NewFromInt(200), "Stok awal", suite.userID, mock.AnythingOfType("time.Time")).
		Return(adjusted, nil).Once()

	item, err := suite.service.CreateItem(suite.ctx, req, suite.userID)

	suite.NoError(err)
	suite.True(item.Stock.Equal(decimal.NewFromInt(200)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestCreateItem_NegativeStockRejected() {
	req := dto.CreateInventoryItemRequest{
		Name:     "Plastik PP",
		Category: "plastik",
		Unit:     "pcs",
		Stock:    decimal.NewFromInt(-5),
	}

	_, err := suite.service.CreateItem(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveItem", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_Out() {
	itemID := uuid.NewString()
	adjusted := &domain.InventoryItem{
		ItemID:   itemID,
		Name:     "Plastik PP",
		Stock:    decimal.NewFromInt(50),
		MinStock: decimal.NewFromInt(10),
	}
	suite.mockRepo.On("Adjust", suite.ctx, itemID, domain.DirectionOut,
		decimal.NewFromInt(25), "rusak", suite.userID, mock.AnythingOfType("time.Time")).
		Return(adjusted, nil).Once()

	item, err := suite.service.AdjustStock(suite.ctx, itemID, dto.AdjustStockRequest{
		Direction: "out",
		Amount:    decimal.NewFromInt(25),
		Note:      "rusak",
	}, suite.userID)

	suite.NoError(err)
	suite.True(item.Stock.Equal(decimal.NewFromInt(50)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_UnknownDirection() {
	_, err := suite.service.AdjustStock(suite.ctx, uuid.NewString(), dto.AdjustStockRequest{
		Direction: "sideways",
		Amount:    decimal.NewFromInt(5),
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_NonPositiveAmount() {
	_, err := suite.service.AdjustStock(suite.ctx, uuid.NewString(), dto.AdjustStockRequest{
		Direction: "in",
		Amount:    decimal.Zero,
	}, suite.userID)

	suite.ErrorIs(err, domain.ErrInvalidAmount)
	suite.mockRepo.AssertNotCalled(suite.T(), "Adjust",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_InsufficientStock() {
	itemID := uuid.NewString()
	suite.mockRepo.On("Adjust", suite.ctx, itemID, domain.DirectionOut,
		decimal.NewFromInt(100), "", suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil, domain.ErrInsufficientStock).Once()

	_, err := suite.service.AdjustStock(suite.ctx, itemID, dto.AdjustStockRequest{
		Direction: "out",
		Amount:    decimal.NewFromInt(100),
	}, suite.userID)

	suite.ErrorIs(err, domain.ErrInsufficientStock)
}

func (suite *InventoryServiceTestSuite) TestUpdateItem_StockFieldUntouched() {
	itemID := uuid.NewString()
	existing := &domain.InventoryItem{
		ItemID: itemID,
		Name:   "Plastik PP",
		Stock:  decimal.NewFromInt(80),
		Unit:   "pcs",
	}
	newName := "Plastik PP Tebal"
	suite.mockRepo.On("FindItemByID", suite.ctx, itemID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateItem", suite.ctx, mock.AnythingOfType("domain.InventoryItem")).
		Run(func(args mock.Arguments) {
			item := args.Get(1).(domain.InventoryItem)
			suite.Equal("Plastik PP Tebal", item.Name)
			suite.True(item.Stock.Equal(decimal.NewFromInt(80)))
		}).
		Return(nil).Once()

	item, err := suite.service.UpdateItem(suite.ctx, itemID, dto.UpdateInventoryItemRequest{
		Name: &newName,
	}, suite.userID)

	suite.NoError(err)
	suite.Equal("Plastik PP Tebal", item.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestListLogEntries() {
	entries := []domain.InventoryLogEntry{
		{LogID: uuid.NewString(), Direction: domain.DirectionIn, Amount: decimal.NewFromInt(10)},
		{LogID: uuid.NewString(), Direction: domain.DirectionOut, Amount: decimal.NewFromInt(3)},
	}
	suite.mockRepo.On("ListLogEntries", suite.ctx, (*string)(nil), 20, (*string)(nil)).
		Return(entries, nil, nil).Once()

	resp, err := suite.service.ListLogEntries(suite.ctx, dto.ListInventoryLogsParams{Limit: 20})

	suite.NoError(err)
	suite.Len(resp.Logs, 2)
	suite.Nil(resp.NextToken)
}

// --- Run Test Suite ---
func TestInventoryService(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
