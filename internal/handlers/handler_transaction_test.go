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

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/dto"
	"github.com/edupulse/institute_portal_backend/internal/handlers"
	"github.com/edupulse/institute_portal_backend/internal/middleware"
	"github.com/edupulse/institute_portal_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BillingService ---
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) CreateTransaction(ctx context.Context, studentID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, studentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockBillingService) UpdateTransactionStatus(ctx context.Context, adminUserID string, transactionID string, newStatus domain.TransactionStatus) (*domain.Transaction, error) {
	args := m.Called(ctx, adminUserID, transactionID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockBillingService) GetTransactionByID(ctx context.Context, requestingUser domain.User, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, requestingUser, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockBillingService) ListTransactions(ctx context.Context, requestingUser domain.User, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, requestingUser, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockBillingService) GetCourseProgress(ctx context.Context, studentID, courseID string) (*portssvc.CourseProgress, error) {
	args := m.Called(ctx, studentID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CourseProgress), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.BillingSvcFacade = (*MockBillingService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockBillingService *MockBillingService
	jwtSecret          string
}

// generateTestToken creates a signed JWT carrying the given identity and role.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	claims := middleware.PortalClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "portal-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockBillingService = new(MockBillingService)

	cfg := &config.Config{
		JWTSecret:     suite.jwtSecret,
		AuthRateLimit: "10-M",
		IsProduction:  true, // skip swagger route wiring
	}
	serviceContainer := &portssvc.ServiceContainer{
		Billing: suite.mockBillingService,
	}
	handlers.RegisterRoutes(suite.router, cfg, serviceContainer)
}

func (suite *TransactionHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	studentID := uuid.NewString()
	courseID := uuid.NewString()
	body := dto.CreateTransactionRequest{
		CourseID:      courseID,
		Months:        6,
		ModeOfPayment: domain.PaymentOffline,
	}
	created := &domain.Transaction{
		TransactionID: uuid.NewString(),
		BillNo:        "BILL-005001",
		StudentID:     studentID,
		CourseID:      courseID,
		Months:        6,
		Amount:        decimal.NewFromInt(30000),
		Discount:      decimal.NewFromInt(3000),
		NetPayable:    decimal.NewFromInt(27000),
		ModeOfPayment: domain.PaymentOffline,
		Status:        domain.StatusPendingApproval,
	}

	suite.mockBillingService.On("CreateTransaction",
		mock.Anything,
		studentID,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.CourseID == courseID && req.Months == 6
		}),
	).Return(created, nil).Once()

	token := suite.generateTestToken(studentID, domain.RoleStudent)
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", token, body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("BILL-005001", resp.BillNo)
	suite.Equal(string(domain.StatusPendingApproval), string(resp.Status))
	suite.mockBillingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MonthsExceedRemaining() {
	studentID := uuid.NewString()
	body := dto.CreateTransactionRequest{
		CourseID:      uuid.NewString(),
		Months:        5,
		ModeOfPayment: domain.PaymentOffline,
	}

	suite.mockBillingService.On("CreateTransaction", mock.Anything, studentID, mock.Anything).
		Return(nil, fmt.Errorf("%w: months exceeds remaining balance (remaining 2)", apperrors.ErrValidation)).Once()

	token := suite.generateTestToken(studentID, domain.RoleStudent)
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", token, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "remaining 2")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Unauthenticated() {
	body := dto.CreateTransactionRequest{
		CourseID:      uuid.NewString(),
		Months:        1,
		ModeOfPayment: domain.PaymentOffline,
	}
	raw, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBuffer(raw))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBillingService.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransactionStatus_AdminApproves() {
	adminID := uuid.NewString()
	txnID := uuid.NewString()
	approved := &domain.Transaction{
		TransactionID: txnID,
		BillNo:        "BILL-005002",
		Status:        domain.StatusPaid,
	}

	suite.mockBillingService.On("UpdateTransactionStatus", mock.Anything, adminID, txnID, domain.StatusPaid).
		Return(approved, nil).Once()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	url := fmt.Sprintf("/api/v1/transactions/%s/status", txnID)
	w := suite.doJSON(http.MethodPatch, url, token, dto.UpdateTransactionStatusRequest{Status: domain.StatusPaid})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.StatusPaid), string(resp.Status))
	suite.mockBillingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransactionStatus_StudentForbidden() {
	studentID := uuid.NewString()
	txnID := uuid.NewString()

	token := suite.generateTestToken(studentID, domain.RoleStudent)
	url := fmt.Sprintf("/api/v1/transactions/%s/status", txnID)
	w := suite.doJSON(http.MethodPatch, url, token, dto.UpdateTransactionStatusRequest{Status: domain.StatusPaid})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockBillingService.AssertNotCalled(suite.T(), "UpdateTransactionStatus")
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransactionStatus_AlreadyDecided() {
	adminID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockBillingService.On("UpdateTransactionStatus", mock.Anything, adminID, txnID, domain.StatusRejected).
		Return(nil, apperrors.ErrConflict).Once()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	url := fmt.Sprintf("/api/v1/transactions/%s/status", txnID)
	w := suite.doJSON(http.MethodPatch, url, token, dto.UpdateTransactionStatusRequest{Status: domain.StatusRejected})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_ForbiddenForOtherStudent() {
	studentID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockBillingService.On("GetTransactionByID",
		mock.Anything,
		mock.MatchedBy(func(u domain.User) bool {
			return u.UserID == studentID && u.Role == domain.RoleStudent
		}),
		txnID,
	).Return(nil, apperrors.ErrForbidden).Once()

	token := suite.generateTestToken(studentID, domain.RoleStudent)
	w := suite.doJSON(http.MethodGet, "/api/v1/transactions/"+txnID, token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	studentID := uuid.NewString()
	nextToken := "b3BhcXVl"
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{
				TransactionID: uuid.NewString(),
				BillNo:        "BILL-005003",
				StudentID:     studentID,
				Months:        3,
				Amount:        decimal.NewFromInt(15000),
				NetPayable:    decimal.NewFromInt(15000),
				Status:        domain.StatusPaid,
				CreatedAt:     time.Now(),
			},
		},
		NextToken: &nextToken,
	}

	suite.mockBillingService.On("ListTransactions",
		mock.Anything,
		mock.MatchedBy(func(u domain.User) bool { return u.UserID == studentID }),
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool { return p.Limit == 10 }),
	).Return(expected, nil).Once()

	token := suite.generateTestToken(studentID, domain.RoleStudent)
	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?limit=10", token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)
}

func (suite *TransactionHandlerTestSuite) TestGetCourseProgress_Success() {
	studentID := uuid.NewString()
	courseID := uuid.NewString()

	suite.mockBillingService.On("GetCourseProgress", mock.Anything, studentID, courseID).
		Return(&portssvc.CourseProgress{DurationMonths: 6, MonthsPaid: 4, RemainingMonths: 2}, nil).Once()

	token := suite.generateTestToken(studentID, domain.RoleStudent)
	w := suite.doJSON(http.MethodGet, "/api/v1/courses/"+courseID+"/progress", token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.CourseProgressResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(4, resp.MonthsPaid)
	suite.Equal(2, resp.RemainingMonths)
	suite.Equal(studentID, resp.StudentID)
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
