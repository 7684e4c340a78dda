package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/savr_backend/internal/apperrors"
	"github.com/SscSPs/savr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/dto"
	"github.com/SscSPs/savr_backend/internal/handlers"
	"github.com/SscSPs/savr_backend/internal/middleware"
	"github.com/SscSPs/savr_backend/internal/utils"
)

// --- Mock SavingsService ---

type MockSavingsService struct {
	mock.Mock
}

func (m *MockSavingsService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSavingsService) GetHistory(ctx context.Context, userID string, page, limit int) (*domain.TransactionPage, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionPage), args.Error(1)
}

func (m *MockSavingsService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockSavingsService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockSavingsService) VerifyDevice(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.SavingsSvcFacade = (*MockSavingsService)(nil)

// --- Test Suite Setup ---

type SavingsHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	jwtSecret   string
	mockSavings *MockSavingsService
}

func (suite *SavingsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidations()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockSavings = new(MockSavingsService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterSavingsRoutes(v1, suite.mockSavings)
}

// generateTestToken creates a user JWT for testing.
func (suite *SavingsHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, false, suite.jwtSecret, time.Hour, "savr-backend-test")
	suite.Require().NoError(err)
	return token
}

func (suite *SavingsHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *SavingsHandlerTestSuite) TestDeposit_Success() {
	userID := uuid.NewString()
	amount := decimal.NewFromInt(50)
	token := suite.generateTestToken(userID)

	suite.mockSavings.On("Deposit", mock.Anything, userID, mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(amount)
	})).Return(&domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.Deposit,
		Amount:        amount,
		BalanceAfter:  decimal.NewFromInt(150),
	}, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/savings/deposit", token, gin.H{"amount": 50})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MutationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.NewFromInt(150)))
	suite.Equal("deposit", resp.Transaction.Type)
	suite.mockSavings.AssertExpectations(suite.T())
}

func (suite *SavingsHandlerTestSuite) TestDeposit_MissingToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/savings/deposit", "", gin.H{"amount": 50})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSavings.AssertNotCalled(suite.T(), "Deposit")
}

func (suite *SavingsHandlerTestSuite) TestDeposit_NonPositiveAmountRejectedAtBinding() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	for _, amount := range []any{0, -5, "abc"} {
		w := suite.doRequest(http.MethodPost, "/api/v1/savings/deposit", token, gin.H{"amount": amount})
		suite.Equal(http.StatusBadRequest, w.Code, fmt.Sprintf("amount %v", amount))
	}
	suite.mockSavings.AssertNotCalled(suite.T(), "Deposit")
}

func (suite *SavingsHandlerTestSuite) TestDeposit_DeviceNotVerified() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockSavings.On("Deposit", mock.Anything, userID, mock.Anything).
		Return(nil, apperrors.ErrDeviceNotVerified).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/savings/deposit", token, gin.H{"amount": 10})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *SavingsHandlerTestSuite) TestWithdraw_InsufficientBalance() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockSavings.On("Withdraw", mock.Anything, userID, mock.Anything).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/savings/withdraw", token, gin.H{"amount": 1000})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *SavingsHandlerTestSuite) TestWithdraw_ConflictAfterRetries() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockSavings.On("Withdraw", mock.Anything, userID, mock.Anything).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/savings/withdraw", token, gin.H{"amount": 10})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *SavingsHandlerTestSuite) TestDeposit_StorageUnavailable() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockSavings.On("Deposit", mock.Anything, userID, mock.Anything).
		Return(nil, apperrors.ErrStorageUnavailable).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/savings/deposit", token, gin.H{"amount": 10})

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *SavingsHandlerTestSuite) TestGetBalance_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockSavings.On("GetBalance", mock.Anything, userID).
		Return(decimal.NewFromFloat(42.5), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/savings/balance", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.NewFromFloat(42.5)))
}

func (suite *SavingsHandlerTestSuite) TestGetHistory_DefaultsApplied() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockSavings.On("GetHistory", mock.Anything, userID, 1, 20).
		Return(&domain.TransactionPage{
			Transactions: []domain.Transaction{},
			Total:        0,
			TotalPages:   0,
			CurrentPage:  1,
		}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/savings/history", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSavings.AssertExpectations(suite.T())
}

func (suite *SavingsHandlerTestSuite) TestGetHistory_LimitAboveMaxRejected() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	w := suite.doRequest(http.MethodGet, "/api/v1/savings/history?limit=500", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSavings.AssertNotCalled(suite.T(), "GetHistory")
}

func TestSavingsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SavingsHandlerTestSuite))
}
