package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pachecofc/verde-financas-sub001/internal/apperrors"
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portssvc "github.com/pachecofc/verde-financas-sub001/internal/core/ports/services"
	"github.com/pachecofc/verde-financas-sub001/internal/dto"
	"github.com/pachecofc/verde-financas-sub001/internal/handlers"
	"github.com/pachecofc/verde-financas-sub001/pkg/config"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, ownerID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, ownerID string, accountID string) error {
	args := m.Called(ctx, ownerID, accountID)
	return args.Error(0)
}

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
	ownerID            string
}

// generateTestToken creates a signed JWT for the given user.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "verde-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.ownerID = uuid.NewString()

	suite.mockAccountService = new(MockAccountService)

	// Only the account service is exercised here; the remaining routes are
	// registered but never hit.
	services := &portssvc.ServiceContainer{Account: suite.mockAccountService}
	handlers.RegisterRoutes(suite.router, &config.Config{JWTSecret: suite.jwtSecret}, services)
}

func (suite *AccountHandlerTestSuite) authorizedRequest(method, url string, body []byte) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.ownerID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	expected := &domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      suite.ownerID,
		Name:         "Checking",
		Kind:         domain.Ordinary,
		CurrencyCode: "BRL",
		Balance:      decimal.NewFromInt(100),
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.ownerID, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Name == "Checking" && req.Kind == domain.Ordinary
	})).Return(expected, nil).Once()

	body, _ := json.Marshal(gin.H{
		"name":           "Checking",
		"kind":           "ORDINARY",
		"currencyCode":   "BRL",
		"initialBalance": "100",
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, "/api/v1/accounts", body))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.AccountID, resp.AccountID)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidKind() {
	body, _ := json.Marshal(gin.H{
		"name":         "Checking",
		"kind":         "SAVINGS",
		"currencyCode": "BRL",
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, "/api/v1/accounts", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingToken() {
	body, _ := json.Marshal(gin.H{
		"name":         "Checking",
		"kind":         "ORDINARY",
		"currencyCode": "BRL",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_Success() {
	expected := &domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      suite.ownerID,
		Name:         "Brokerage",
		Kind:         domain.Investment,
		CurrencyCode: "BRL",
	}
	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.ownerID, expected.AccountID).Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/accounts/"+expected.AccountID, nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Investment, resp.Kind)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.ownerID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), OwnerID: suite.ownerID, Name: "Checking", Kind: domain.Ordinary, CurrencyCode: "BRL"},
		{AccountID: uuid.NewString(), OwnerID: suite.ownerID, Name: "Savings", Kind: domain.Ordinary, CurrencyCode: "BRL"},
	}
	suite.mockAccountService.On("ListAccounts", mock.Anything, suite.ownerID, 20, 0).Return(accounts, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/accounts", nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Success() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("DeleteAccount", mock.Anything, suite.ownerID, accountID).Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil))

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_StillReferenced() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("DeleteAccount", mock.Anything, suite.ownerID, accountID).Return(apperrors.ErrConflict).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil))

	suite.Equal(http.StatusConflict, w.Code)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
