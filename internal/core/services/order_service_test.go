package services_test

import (
	"context"
	"errors"
	"fmt"
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

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryWithTx = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, params portsrepo.ListOrdersParams) ([]domain.Order, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Order), nextToken, args.Error(2)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) AppendPayment(ctx context.Context, order domain.Order, payment domain.Payment) error {
	args := m.Called(ctx, order, payment)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, userID string, now time.Time) error {
	args := m.Called(ctx, orderID, from, to, userID, now)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveProcessingStart(ctx context.Context, order domain.Order, requests []domain.MaterialRequest, userID string, now time.Time) (*domain.Order, error) {
	args := m.Called(ctx, order, requests, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockOrderRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOrderRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, creatorUserID)
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

func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
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

func (m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Mock PackagingTypeService ---
type MockPackagingTypeService struct {
	mock.Mock
}

var _ portssvc.PackagingTypeSvcFacade = (*MockPackagingTypeService)(nil)

func (m *MockPackagingTypeService) CreatePackagingType(ctx context.Context, req dto.CreatePackagingTypeRequest, creatorUserID string) (*domain.PackagingType, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PackagingType), args.Error(1)
}

func (m *MockPackagingTypeService) GetPackagingTypeByID(ctx context.Context, packagingTypeID string) (*domain.PackagingType, error) {
	args := m.Called(ctx, packagingTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PackagingType), args.Error(1)
}

func (m *MockPackagingTypeService) ListPackagingTypes(ctx context.Context) ([]domain.PackagingType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PackagingType), args.Error(1)
}

func (m *MockPackagingTypeService) UpdatePackagingType(ctx context.Context, packagingTypeID string, req dto.UpdatePackagingTypeRequest, userID string) (*domain.PackagingType, error) {
	args := m.Called(ctx, packagingTypeID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PackagingType), args.Error(1)
}

func (m *MockPackagingTypeService) DeletePackagingType(ctx context.Context, packagingTypeID string) error {
	args := m.Called(ctx, packagingTypeID)
	return args.Error(0)
}

func (m *MockPackagingTypeService) ResolvePrice(ctx context.Context, name, size string) (decimal.Decimal, error) {
	args := m.Called(ctx, name, size)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock FinanceService ---
type MockFinanceService struct {
	mock.Mock
}

var _ portssvc.FinanceSvcFacade = (*MockFinanceService)(nil)

func (m *MockFinanceService) RecordIncome(ctx context.Context, entry domain.FinanceLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFinanceService) ListEntries(ctx context.Context, params dto.ListFinanceEntriesParams) (*dto.ListFinanceEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListFinanceEntriesResponse), args.Error(1)
}

func (m *MockFinanceService) SummarizeIncome(ctx context.Context, params dto.FinanceSummaryParams) (*dto.FinanceSummaryResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FinanceSummaryResponse), args.Error(1)
}

// --- Test Suite Setup ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo    *MockOrderRepository
	mockCustomerSvc  *MockCustomerService
	mockPackagingSvc *MockPackagingTypeService
	mockFinanceSvc   *MockFinanceService
	service          portssvc.OrderSvcFacade
	customer         domain.Customer
	userID           string
	ctx              context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockCustomerSvc = new(MockCustomerService)
	suite.mockPackagingSvc = new(MockPackagingTypeService)
	suite.mockFinanceSvc = new(MockFinanceService)
	suite.service = services.NewOrderService(
		suite.mockOrderRepo,
		suite.mockCustomerSvc,
		suite.mockPackagingSvc,
		suite.mockFinanceSvc,
	)
	suite.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Bu Sari",
		Phone:      "081234567890",
	}
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

func (suite *OrderServiceTestSuite) validCreateRequest() dto.CreateOrderRequest {
	price := decimal.NewFromInt(500)
	return dto.CreateOrderRequest{
		CustomerID: suite.customer.CustomerID,
		Items: []dto.CreateOrderItemRequest{
			{
				ProductName:   "Keripik Pisang",
				PackagingType: "Standing Pouch",
				PackagingSize: "250g",
				PricePerUnit:  &price,
				Qty:           5,
			},
		},
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	req := suite.validCreateRequest()
	suite.mockCustomerSvc.On("GetCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", suite.ctx, mock.AnythingOfType("domain.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(domain.Order)
			suite.True(order.TotalAmount.Equal(decimal.NewFromInt(2500)))
			suite.True(order.RemainingBalance.Equal(decimal.NewFromInt(2500)))
			suite.Equal(domain.PaymentPending, order.PaymentStatus)
			suite.Equal(domain.StatusQueue, order.OrderStatus)
			suite.Equal(int64(1), order.Version)
			suite.Len(order.Items, 1)
			suite.True(order.Items[0].Subtotal.Equal(decimal.NewFromInt(2500)))
		}).
		Return(&domain.Order{OrderID: uuid.NewString(), InvoiceNumber: "INV-20250131-0001"}, nil).Once()

	order, err := suite.service.CreateOrder(suite.ctx, req, suite.userID)

	suite.NoError(err)
	suite.Equal("INV-20250131-0001", order.InvoiceNumber)
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockFinanceSvc.AssertNotCalled(suite.T(), "RecordIncome", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ResolvesCatalogPrice() {
	req := suite.validCreateRequest()
	req.Items[0].PricePerUnit = nil
	suite.mockCustomerSvc.On("GetCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockPackagingSvc.On("ResolvePrice", suite.ctx, "Standing Pouch", "250g").
		Return(decimal.NewFromInt(700), nil).Once()
	suite.mockOrderRepo.On("SaveOrder", suite.ctx, mock.AnythingOfType("domain.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(domain.Order)
			suite.True(order.Items[0].PricePerUnit.Equal(decimal.NewFromInt(700)))
			suite.True(order.TotalAmount.Equal(decimal.NewFromInt(3500)))
		}).
		Return(&domain.Order{OrderID: uuid.NewString(), InvoiceNumber: "INV-20250131-0002"}, nil).Once()

	_, err := suite.service.CreateOrder(suite.ctx, req, suite.userID)

	suite.NoError(err)
	suite.mockPackagingSvc.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_WithInitialPayment() {
	req := suite.validCreateRequest()
	req.InitialPayment = &dto.InitialPaymentRequest{
		Amount: decimal.NewFromInt(1000),
		Method: "Cash",
		Note:   "DP Awal",
	}
	saved := &domain.Order{
		OrderID:       uuid.NewString(),
		InvoiceNumber: "INV-20250131-0003",
		PaymentStatus: domain.PaymentDownPayment,
	}
	suite.mockCustomerSvc.On("GetCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", suite.ctx, mock.AnythingOfType("domain.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(domain.Order)
			suite.Equal(domain.PaymentDownPayment, order.PaymentStatus)
			suite.True(order.TotalPaid.Equal(decimal.NewFromInt(1000)))
			suite.True(order.RemainingBalance.Equal(decimal.NewFromInt(1500)))
			suite.Len(order.Payments, 1)
		}).
		Return(saved, nil).Once()
	suite.mockFinanceSvc.On("RecordIncome", suite.ctx, mock.AnythingOfType("domain.FinanceLogEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.FinanceLogEntry)
			suite.Equal(domain.FinanceIncome, entry.Type)
			suite.Equal("DP", entry.Category)
			suite.Equal("INV-20250131-0003", entry.InvoiceNumber)
			suite.True(entry.Amount.Equal(decimal.NewFromInt(1000)))
		}).
		Return(nil).Once()

	_, err := suite.service.CreateOrder(suite.ctx, req, suite.userID)

	suite.NoError(err)
	suite.mockFinanceSvc.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ZeroInitialPaymentIsPayLater() {
	req := suite.validCreateRequest()
	req.InitialPayment = &dto.InitialPaymentRequest{
		Amount: decimal.Zero,
		Method: "Cash",
	}
	saved := &domain.Order{
		OrderID:       uuid.NewString(),
		InvoiceNumber: "INV-20250131-0004",
		PaymentStatus: domain.PaymentPending,
	}
	suite.mockCustomerSvc.On("GetCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", suite.ctx, mock.AnythingOfType("domain.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(domain.Order)
			suite.Equal(domain.PaymentPending, order.PaymentStatus)
			suite.True(order.TotalPaid.IsZero())
			suite.Empty(order.Payments)
		}).
		Return(saved, nil).Once()

	_, err := suite.service.CreateOrder(suite.ctx, req, suite.userID)

	suite.NoError(err)
	suite.mockFinanceSvc.AssertNotCalled(suite.T(), "RecordIncome", mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InitialOverpayment() {
	req := suite.validCreateRequest()
	req.InitialPayment = &dto.InitialPaymentRequest{
		Amount: decimal.NewFromInt(9999),
		Method: "Cash",
	}
	suite.mockCustomerSvc.On("GetCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()

	_, err := suite.service.CreateOrder(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, domain.ErrOverpayment)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_CustomerNotFound() {
	req := suite.validCreateRequest()
	suite.mockCustomerSvc.On("GetCustomerByID", suite.ctx, suite.customer.CustomerID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateOrder(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NoItems() {
	req := suite.validCreateRequest()
	req.Items = nil

	_, err := suite.service.CreateOrder(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, domain.ErrEmptyOrder)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NonPositivePrice() {
	req := suite.validCreateRequest()
	zero := decimal.Zero
	req.Items[0].PricePerUnit = &zero
	suite.mockCustomerSvc.On("GetCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()

	_, err := suite.service.CreateOrder(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, domain.ErrInvalidAmount)
}

func (suite *OrderServiceTestSuite) existingOrder(total, paid int64) *domain.Order {
	totalDec := decimal.NewFromInt(total)
	paidDec := decimal.NewFromInt(paid)
	order := &domain.Order{
		OrderID:          uuid.NewString(),
		InvoiceNumber:    "INV-20250131-0007",
		CustomerID:       suite.customer.CustomerID,
		TotalAmount:      totalDec,
		TotalPaid:        paidDec,
		RemainingBalance: totalDec.Sub(paidDec),
		PaymentStatus:    domain.PaymentPending,
		OrderStatus:      domain.StatusQueue,
		Version:          1,
	}
	if paid > 0 {
		order.Payments = []domain.Payment{{PaymentID: uuid.NewString(), Amount: paidDec}}
		order.PaymentStatus = domain.PaymentDownPayment
	}
	return order
}

func (suite *OrderServiceTestSuite) TestRecordPayment_SettlesOrder() {
	order := suite.existingOrder(2500, 1500)
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("AppendPayment", suite.ctx, mock.AnythingOfType("domain.Order"), mock.AnythingOfType("domain.Payment")).
		Return(nil).Once()
	suite.mockFinanceSvc.On("RecordIncome", suite.ctx, mock.AnythingOfType("domain.FinanceLogEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.FinanceLogEntry)
			suite.Equal("Pelunasan", entry.Category)
			suite.Equal("Pembayaran Pelunasan INV-20250131-0007", entry.Description)
		}).
		Return(nil).Once()

	updated, err := suite.service.RecordPayment(suite.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(1000),
		Method: "Transfer",
	}, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.PaymentPaid, updated.PaymentStatus)
	suite.True(updated.RemainingBalance.IsZero())
	suite.Equal(int64(2), updated.Version)
	suite.mockFinanceSvc.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestRecordPayment_Overpayment() {
	order := suite.existingOrder(2500, 2000)
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()

	_, err := suite.service.RecordPayment(suite.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(600),
		Method: "Cash",
	}, suite.userID)

	suite.ErrorIs(err, domain.ErrOverpayment)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "AppendPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestRecordPayment_VersionConflict() {
	order := suite.existingOrder(2500, 0)
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("AppendPayment", suite.ctx, mock.AnythingOfType("domain.Order"), mock.AnythingOfType("domain.Payment")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.RecordPayment(suite.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(500),
		Method: "Cash",
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockFinanceSvc.AssertNotCalled(suite.T(), "RecordIncome", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestRecordPayment_CompletedOrderRefused() {
	order := suite.existingOrder(2500, 2500)
	order.PaymentStatus = domain.PaymentPaid
	order.OrderStatus = domain.StatusCompleted
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()

	_, err := suite.service.RecordPayment(suite.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(500),
		Method: "Cash",
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "AppendPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestRecordPayment_BalanceDriftRefused() {
	order := suite.existingOrder(2500, 0)
	order.TotalPaid = decimal.NewFromInt(100) // ledger is empty, totals drifted
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()

	_, err := suite.service.RecordPayment(suite.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(500),
		Method: "Cash",
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "AppendPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestRecordPayment_FinanceLogFailureIsNonFatal() {
	order := suite.existingOrder(2500, 0)
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("AppendPayment", suite.ctx, mock.AnythingOfType("domain.Order"), mock.AnythingOfType("domain.Payment")).
		Return(nil).Once()
	suite.mockFinanceSvc.On("RecordIncome", suite.ctx, mock.AnythingOfType("domain.FinanceLogEntry")).
		Return(errors.New("finance log unavailable")).Once()

	updated, err := suite.service.RecordPayment(suite.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(500),
		Method: "Cash",
	}, suite.userID)

	suite.NoError(err)
	suite.True(updated.TotalPaid.Equal(decimal.NewFromInt(500)))
}

func (suite *OrderServiceTestSuite) TestTransitionOrder_Success() {
	order := suite.existingOrder(2500, 0)
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderStatus", suite.ctx, order.OrderID,
		domain.StatusQueue, domain.StatusDesigning, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	updated, err := suite.service.TransitionOrder(suite.ctx, order.OrderID, dto.TransitionOrderRequest{
		Target: "Designing",
	}, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.StatusDesigning, updated.OrderStatus)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestTransitionOrder_UnknownTarget() {
	_, err := suite.service.TransitionOrder(suite.ctx, uuid.NewString(), dto.TransitionOrderRequest{
		Target: "Shipped",
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "FindOrderByID", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestTransitionOrder_IllegalEdge() {
	order := suite.existingOrder(2500, 0)
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()

	_, err := suite.service.TransitionOrder(suite.ctx, order.OrderID, dto.TransitionOrderRequest{
		Target: "Ready",
	}, suite.userID)

	var illegal *domain.IllegalTransitionError
	suite.ErrorAs(err, &illegal)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestTransitionOrder_ProcessingWithoutMaterials() {
	// The operator may start a run without declaring materials; the snapshot
	// is simply empty and no stock is touched.
	order := suite.existingOrder(2500, 0)
	order.OrderStatus = domain.StatusProduction
	processed := &domain.Order{
		OrderID:     order.OrderID,
		OrderStatus: domain.StatusProcessing,
	}
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("SaveProcessingStart", suite.ctx, mock.AnythingOfType("domain.Order"),
		mock.AnythingOfType("[]domain.MaterialRequest"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			requests := args.Get(2).([]domain.MaterialRequest)
			suite.Empty(requests)
		}).
		Return(processed, nil).Once()

	updated, err := suite.service.TransitionOrder(suite.ctx, order.OrderID, dto.TransitionOrderRequest{
		Target: "Processing",
	}, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.StatusProcessing, updated.OrderStatus)
	suite.Empty(updated.MaterialsUsed)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestTransitionOrder_ProcessingInsufficientStock() {
	order := suite.existingOrder(2500, 0)
	order.OrderStatus = domain.StatusProduction
	itemID := uuid.NewString()
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("SaveProcessingStart", suite.ctx, mock.AnythingOfType("domain.Order"),
		mock.AnythingOfType("[]domain.MaterialRequest"), suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil, fmt.Errorf("%w: Tinta, requested 5, available 3", domain.ErrInsufficientStock)).Once()

	updated, err := suite.service.TransitionOrder(suite.ctx, order.OrderID, dto.TransitionOrderRequest{
		Target: "Processing",
		Materials: []dto.MaterialRequestDTO{
			{InventoryItemID: itemID, Amount: decimal.NewFromInt(5)},
		},
	}, suite.userID)

	suite.ErrorIs(err, domain.ErrInsufficientStock)
	suite.Nil(updated)
}

func (suite *OrderServiceTestSuite) TestTransitionOrder_ProcessingConsumesMaterials() {
	order := suite.existingOrder(2500, 0)
	order.OrderStatus = domain.StatusProduction
	itemID := uuid.NewString()
	processed := &domain.Order{
		OrderID:     order.OrderID,
		OrderStatus: domain.StatusProcessing,
		MaterialsUsed: []domain.MaterialUsage{
			{InventoryItemID: itemID, MaterialName: "Plastik PP", Amount: decimal.NewFromInt(100), Unit: "pcs"},
		},
	}
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("SaveProcessingStart", suite.ctx, mock.AnythingOfType("domain.Order"),
		mock.AnythingOfType("[]domain.MaterialRequest"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			requests := args.Get(2).([]domain.MaterialRequest)
			suite.Len(requests, 1)
			suite.Equal(itemID, requests[0].InventoryItemID)
		}).
		Return(processed, nil).Once()

	updated, err := suite.service.TransitionOrder(suite.ctx, order.OrderID, dto.TransitionOrderRequest{
		Target: "Processing",
		Materials: []dto.MaterialRequestDTO{
			{InventoryItemID: itemID, Amount: decimal.NewFromInt(100)},
		},
	}, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.StatusProcessing, updated.OrderStatus)
	suite.Len(updated.MaterialsUsed, 1)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestTransitionOrder_ProcessingNonPositiveAmount() {
	order := suite.existingOrder(2500, 0)
	order.OrderStatus = domain.StatusProduction
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()

	_, err := suite.service.TransitionOrder(suite.ctx, order.OrderID, dto.TransitionOrderRequest{
		Target: "Processing",
		Materials: []dto.MaterialRequestDTO{
			{InventoryItemID: uuid.NewString(), Amount: decimal.Zero},
		},
	}, suite.userID)

	suite.ErrorIs(err, domain.ErrInvalidAmount)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveProcessingStart",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestTransitionOrder_HandoverBlockedOnUnpaid() {
	order := suite.existingOrder(2500, 1000)
	order.OrderStatus = domain.StatusReady
	suite.mockOrderRepo.On("FindOrderByID", suite.ctx, order.OrderID).Return(order, nil).Once()

	_, err := suite.service.TransitionOrder(suite.ctx, order.OrderID, dto.TransitionOrderRequest{
		Target: "Completed",
	}, suite.userID)

	suite.ErrorIs(err, domain.ErrUnpaidBalance)
}

// --- Run Test Suite ---
func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
