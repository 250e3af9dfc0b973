package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/dto"
	"github.com/kemasku/packshop_backend/internal/middleware"
	"github.com/kemasku/packshop_backend/internal/utils"
)

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

var _ portssvc.OrderSvcFacade = (*MockOrderService)(nil)

func (m *MockOrderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListOrdersResponse), args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) RecordPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, userID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) TransitionOrder(ctx context.Context, orderID string, req dto.TransitionOrderRequest, userID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

// --- Test Suite Setup ---
type OrderHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockOrderService
	jwtSecret string
	userID    string
}

func (suite *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerCustomValidators()

	suite.mockSvc = new(MockOrderService)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	registerOrderRoutes(v1, suite.mockSvc)
}

// generateTestToken signs a short-lived token carrying the given role claim.
func (suite *OrderHandlerTestSuite) generateTestToken(role domain.UserRole) string {
	token, _, err := utils.GenerateJWT(suite.userID, string(role), suite.jwtSecret, time.Hour, "packshop-test")
	suite.Require().NoError(err)
	return token
}

func (suite *OrderHandlerTestSuite) performRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrderHandlerTestSuite) sampleOrder() *domain.Order {
	return &domain.Order{
		OrderID:       uuid.NewString(),
		InvoiceNumber: "INV-20250131-0001",
		CustomerID:    uuid.NewString(),
		Items: []domain.OrderItem{
			{
				ProductName:   "Keripik Singkong",
				PackagingType: "Standing Pouch",
				PackagingSize: "250g",
				PricePerUnit:  decimal.NewFromInt(700),
				Qty:           5,
				Subtotal:      decimal.NewFromInt(3500),
			},
		},
		TotalAmount:      decimal.NewFromInt(3500),
		TotalPaid:        decimal.Zero,
		RemainingBalance: decimal.NewFromInt(3500),
		PaymentStatus:    domain.PaymentPending,
		OrderStatus:      domain.StatusQueue,
		Version:          1,
	}
}

func (suite *OrderHandlerTestSuite) createOrderBody(customerID string) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerID: customerID,
		Items: []dto.CreateOrderItemRequest{
			{
				ProductName:   "Keripik Singkong",
				PackagingType: "Standing Pouch",
				PackagingSize: "250g",
				Qty:           5,
			},
		},
	}
}

// --- Tests ---

func (suite *OrderHandlerTestSuite) TestCreateOrder_Success() {
	order := suite.sampleOrder()
	body := suite.createOrderBody(order.CustomerID)
	suite.mockSvc.On("CreateOrder",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(req dto.CreateOrderRequest) bool {
			return req.CustomerID == order.CustomerID && len(req.Items) == 1
		}),
		suite.userID,
	).Return(order, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders", suite.generateTestToken(domain.RoleKasir), body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INV-20250131-0001", resp.InvoiceNumber)
	suite.Equal(string(domain.StatusQueue), resp.OrderStatus)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_CustomerNotFound() {
	body := suite.createOrderBody(uuid.NewString())
	suite.mockSvc.On("CreateOrder",
		mock.AnythingOfType("*context.valueCtx"), mock.Anything, suite.userID,
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders", suite.generateTestToken(domain.RoleKasir), body)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "Customer not found")
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_MissingToken() {
	w := suite.performRequest(http.MethodPost, "/api/v1/orders", "", suite.createOrderBody(uuid.NewString()))

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_ForbiddenForOperator() {
	w := suite.performRequest(http.MethodPost, "/api/v1/orders",
		suite.generateTestToken(domain.RoleOperator), suite.createOrderBody(uuid.NewString()))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "Insufficient permissions")
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_AdminBypassesRoleGate() {
	order := suite.sampleOrder()
	suite.mockSvc.On("CreateOrder",
		mock.AnythingOfType("*context.valueCtx"), mock.Anything, suite.userID,
	).Return(order, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders",
		suite.generateTestToken(domain.RoleAdmin), suite.createOrderBody(order.CustomerID))

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_NegativeInitialPaymentFailsBinding() {
	body := suite.createOrderBody(uuid.NewString())
	body.InitialPayment = &dto.InitialPaymentRequest{
		Amount: decimal.NewFromInt(-100),
		Method: "Cash",
	}

	w := suite.performRequest(http.MethodPost, "/api/v1/orders", suite.generateTestToken(domain.RoleKasir), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_ZeroInitialPaymentPassesBinding() {
	// Zero means pay later and must reach the service instead of being
	// rejected at bind time.
	order := suite.sampleOrder()
	body := suite.createOrderBody(order.CustomerID)
	body.InitialPayment = &dto.InitialPaymentRequest{
		Amount: decimal.Zero,
		Method: "Cash",
	}
	suite.mockSvc.On("CreateOrder",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(req dto.CreateOrderRequest) bool {
			return req.InitialPayment != nil && req.InitialPayment.Amount.IsZero()
		}),
		suite.userID,
	).Return(order, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders", suite.generateTestToken(domain.RoleKasir), body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *OrderHandlerTestSuite) TestGetOrder_Success() {
	order := suite.sampleOrder()
	suite.mockSvc.On("GetOrderByID", mock.AnythingOfType("*context.valueCtx"), order.OrderID).
		Return(order, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/orders/"+order.OrderID,
		suite.generateTestToken(domain.RoleDesainer), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(order.OrderID, resp.OrderID)
}

func (suite *OrderHandlerTestSuite) TestGetOrder_NotFound() {
	orderID := uuid.NewString()
	suite.mockSvc.On("GetOrderByID", mock.AnythingOfType("*context.valueCtx"), orderID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/orders/"+orderID,
		suite.generateTestToken(domain.RoleKasir), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "Order not found")
}

func (suite *OrderHandlerTestSuite) TestListOrders_Success() {
	order := suite.sampleOrder()
	resp := &dto.ListOrdersResponse{Orders: []dto.OrderResponse{dto.ToOrderResponse(order)}}
	suite.mockSvc.On("ListOrders",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(params dto.ListOrdersParams) bool {
			return params.Limit == 20 && params.Status == nil
		}),
	).Return(resp, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/orders",
		suite.generateTestToken(domain.RoleManajer), nil)

	suite.Equal(http.StatusOK, w.Code)
	var page dto.ListOrdersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	suite.Len(page.Orders, 1)
	suite.Nil(page.NextToken)
}

func (suite *OrderHandlerTestSuite) TestRecordPayment_Success() {
	order := suite.sampleOrder()
	order.TotalPaid = decimal.NewFromInt(3500)
	order.RemainingBalance = decimal.Zero
	order.PaymentStatus = domain.PaymentPaid
	body := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(3500), Method: "Transfer"}
	suite.mockSvc.On("RecordPayment",
		mock.AnythingOfType("*context.valueCtx"), order.OrderID,
		mock.MatchedBy(func(req dto.RecordPaymentRequest) bool {
			return req.Amount.Equal(decimal.NewFromInt(3500)) && req.Method == "Transfer"
		}),
		suite.userID,
	).Return(order, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders/"+order.OrderID+"/payments",
		suite.generateTestToken(domain.RoleKasir), body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.PaymentPaid), resp.PaymentStatus)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *OrderHandlerTestSuite) TestRecordPayment_VersionConflict() {
	orderID := uuid.NewString()
	body := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(1000), Method: "Cash"}
	suite.mockSvc.On("RecordPayment",
		mock.AnythingOfType("*context.valueCtx"), orderID, mock.Anything, suite.userID,
	).Return(nil, apperrors.ErrConflict).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/payments",
		suite.generateTestToken(domain.RoleKasir), body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "modified concurrently")
}

func (suite *OrderHandlerTestSuite) TestRecordPayment_Overpayment() {
	orderID := uuid.NewString()
	body := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(999999), Method: "Cash"}
	suite.mockSvc.On("RecordPayment",
		mock.AnythingOfType("*context.valueCtx"), orderID, mock.Anything, suite.userID,
	).Return(nil, domain.ErrOverpayment).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/payments",
		suite.generateTestToken(domain.RoleKasir), body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *OrderHandlerTestSuite) TestTransitionOrder_Success() {
	order := suite.sampleOrder()
	order.OrderStatus = domain.StatusDesigning
	body := dto.TransitionOrderRequest{Target: string(domain.StatusDesigning)}
	suite.mockSvc.On("TransitionOrder",
		mock.AnythingOfType("*context.valueCtx"), order.OrderID,
		mock.MatchedBy(func(req dto.TransitionOrderRequest) bool {
			return req.Target == string(domain.StatusDesigning)
		}),
		suite.userID,
	).Return(order, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders/"+order.OrderID+"/status",
		suite.generateTestToken(domain.RoleDesainer), body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.StatusDesigning), resp.OrderStatus)
}

func (suite *OrderHandlerTestSuite) TestTransitionOrder_IllegalEdge() {
	orderID := uuid.NewString()
	body := dto.TransitionOrderRequest{Target: string(domain.StatusReady)}
	suite.mockSvc.On("TransitionOrder",
		mock.AnythingOfType("*context.valueCtx"), orderID, mock.Anything, suite.userID,
	).Return(nil, &domain.IllegalTransitionError{From: domain.StatusQueue, To: domain.StatusReady}).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/status",
		suite.generateTestToken(domain.RoleOperator), body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "illegal order status transition")
}

func (suite *OrderHandlerTestSuite) TestTransitionOrder_UnpaidBalance() {
	orderID := uuid.NewString()
	body := dto.TransitionOrderRequest{Target: string(domain.StatusCompleted)}
	suite.mockSvc.On("TransitionOrder",
		mock.AnythingOfType("*context.valueCtx"), orderID, mock.Anything, suite.userID,
	).Return(nil, domain.ErrUnpaidBalance).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/status",
		suite.generateTestToken(domain.RoleKasir), body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *OrderHandlerTestSuite) TestTransitionOrder_ForbiddenForManajer() {
	body := dto.TransitionOrderRequest{Target: string(domain.StatusDesigning)}

	w := suite.performRequest(http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/status",
		suite.generateTestToken(domain.RoleManajer), body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "TransitionOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestOrderHandler(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}
