package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
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

// --- Mock PackagingTypeRepository ---
type MockPackagingTypeRepository struct {
	mock.Mock
}

var _ portsrepo.PackagingTypeRepositoryFacade = (*MockPackagingTypeRepository)(nil)

func (m *MockPackagingTypeRepository) SavePackagingType(ctx context.Context, pt domain.PackagingType) error {
	args := m.Called(ctx, pt)
	return args.Error(0)
}

func (m *MockPackagingTypeRepository) FindPackagingTypeByID(ctx context.Context, packagingTypeID string) (*domain.PackagingType, error) {
	args := m.Called(ctx, packagingTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PackagingType), args.Error(1)
}

func (m *MockPackagingTypeRepository) FindPackagingTypeByName(ctx context.Context, name string) (*domain.PackagingType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PackagingType), args.Error(1)
}

func (m *MockPackagingTypeRepository) ListPackagingTypes(ctx context.Context) ([]domain.PackagingType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PackagingType), args.Error(1)
}

func (m *MockPackagingTypeRepository) UpdatePackagingType(ctx context.Context, pt domain.PackagingType) error {
	args := m.Called(ctx, pt)
	return args.Error(0)
}

func (m *MockPackagingTypeRepository) DeletePackagingType(ctx context.Context, packagingTypeID string) error {
	args := m.Called(ctx, packagingTypeID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PackagingTypeServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPackagingTypeRepository
	service  portssvc.PackagingTypeSvcFacade
	userID   string
	ctx      context.Context
}

func (suite *PackagingTypeServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPackagingTypeRepository)
	suite.service = services.NewPackagingTypeService(suite.mockRepo)
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

func (suite *PackagingTypeServiceTestSuite) catalogEntry() *domain.PackagingType {
	return &domain.PackagingType{
		PackagingTypeID: uuid.NewString(),
		Name:            "Standing Pouch",
		Sizes: []domain.PackagingSize{
			{Size: "100g", Price: decimal.NewFromInt(500)},
			{Size: "250g", Price: decimal.NewFromInt(700)},
		},
	}
}

func (suite *PackagingTypeServiceTestSuite) TestCreatePackagingType_Success() {
	req := dto.CreatePackagingTypeRequest{
		Name: "Standing Pouch",
		Sizes: []dto.PackagingSizeDTO{
			{Size: "100g", Price: decimal.NewFromInt(500)},
			{Size: "250g", Price: decimal.NewFromInt(700)},
		},
	}
	suite.mockRepo.On("SavePackagingType", suite.ctx, mock.AnythingOfType("domain.PackagingType")).
		Run(func(args mock.Arguments) {
			pt := args.Get(1).(domain.PackagingType)
			suite.Equal("Standing Pouch", pt.Name)
			suite.Len(pt.Sizes, 2)
		}).
		Return(nil).Once()

	pt, err := suite.service.CreatePackagingType(suite.ctx, req, suite.userID)

	suite.NoError(err)
	suite.NotEmpty(pt.PackagingTypeID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PackagingTypeServiceTestSuite) TestCreatePackagingType_NonPositivePrice() {
	req := dto.CreatePackagingTypeRequest{
		Name: "Standing Pouch",
		Sizes: []dto.PackagingSizeDTO{
			{Size: "100g", Price: decimal.Zero},
		},
	}

	_, err := suite.service.CreatePackagingType(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePackagingType", mock.Anything, mock.Anything)
}

func (suite *PackagingTypeServiceTestSuite) TestCreatePackagingType_DuplicateSize() {
	req := dto.CreatePackagingTypeRequest{
		Name: "Standing Pouch",
		Sizes: []dto.PackagingSizeDTO{
			{Size: "100g", Price: decimal.NewFromInt(500)},
			{Size: "100g", Price: decimal.NewFromInt(600)},
		},
	}

	_, err := suite.service.CreatePackagingType(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PackagingTypeServiceTestSuite) TestResolvePrice_Success() {
	entry := suite.catalogEntry()
	suite.mockRepo.On("FindPackagingTypeByName", suite.ctx, "Standing Pouch").Return(entry, nil).Once()

	price, err := suite.service.ResolvePrice(suite.ctx, "Standing Pouch", "250g")

	suite.NoError(err)
	suite.True(price.Equal(decimal.NewFromInt(700)))
}

func (suite *PackagingTypeServiceTestSuite) TestResolvePrice_UnknownSize() {
	entry := suite.catalogEntry()
	suite.mockRepo.On("FindPackagingTypeByName", suite.ctx, "Standing Pouch").Return(entry, nil).Once()

	_, err := suite.service.ResolvePrice(suite.ctx, "Standing Pouch", "5kg")

	suite.ErrorIs(err, services.ErrUnknownPackagingSize)
}

func (suite *PackagingTypeServiceTestSuite) TestResolvePrice_UnknownType() {
	suite.mockRepo.On("FindPackagingTypeByName", suite.ctx, "Box").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolvePrice(suite.ctx, "Box", "100g")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PackagingTypeServiceTestSuite) TestUpdatePackagingType_ReplacesSizes() {
	entry := suite.catalogEntry()
	suite.mockRepo.On("FindPackagingTypeByID", suite.ctx, entry.PackagingTypeID).Return(entry, nil).Once()
	suite.mockRepo.On("UpdatePackagingType", suite.ctx, mock.AnythingOfType("domain.PackagingType")).
		Run(func(args mock.Arguments) {
			pt := args.Get(1).(domain.PackagingType)
			suite.Len(pt.Sizes, 1)
			suite.Equal("500g", pt.Sizes[0].Size)
		}).
		Return(nil).Once()

	updated, err := suite.service.UpdatePackagingType(suite.ctx, entry.PackagingTypeID, dto.UpdatePackagingTypeRequest{
		Sizes: []dto.PackagingSizeDTO{
			{Size: "500g", Price: decimal.NewFromInt(1200)},
		},
	}, suite.userID)

	suite.NoError(err)
	suite.Len(updated.Sizes, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPackagingTypeService(t *testing.T) {
	suite.Run(t, new(PackagingTypeServiceTestSuite))
}
