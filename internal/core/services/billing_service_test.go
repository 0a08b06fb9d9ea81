package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portsrepo "github.com/edupulse/institute_portal_backend/internal/core/ports/repositories"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/core/services"
	"github.com/edupulse/institute_portal_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) SumPaidMonths(ctx context.Context, studentID, courseID string) (int, error) {
	args := m.Called(ctx, studentID, courseID)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, newStatus domain.TransactionStatus, updatedBy string, updatedAt time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, newStatus, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// MockCourseService is a mock type for the CourseSvcFacade interface
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest, creatorUserID string) (*domain.Course, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseService) GetCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseService) ListCourses(ctx context.Context, limit int, offset int) ([]domain.Course, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseService) UpdateCourse(ctx context.Context, courseID string, req dto.UpdateCourseRequest, updaterUserID string) (*domain.Course, error) {
	args := m.Called(ctx, courseID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

var _ portssvc.CourseSvcFacade = (*MockCourseService)(nil)

// MockEnrollmentService is a mock type for the EnrollmentSvcFacade interface
type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) EnrollStudent(ctx context.Context, studentID, courseID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, studentID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentService) ListStudentEnrollments(ctx context.Context, studentID string) ([]domain.Enrollment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentService) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	args := m.Called(ctx, studentID, courseID)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.EnrollmentSvcFacade = (*MockEnrollmentService)(nil)

// MockPaymentNotifier records approval notifications. It is safe for use from
// the service's detached notification goroutine.
type MockPaymentNotifier struct {
	mu       sync.Mutex
	notified []domain.Transaction
	done     chan struct{}
}

func NewMockPaymentNotifier() *MockPaymentNotifier {
	return &MockPaymentNotifier{done: make(chan struct{}, 1)}
}

func (m *MockPaymentNotifier) NotifyPaymentApproved(ctx context.Context, txn domain.Transaction) {
	m.mu.Lock()
	m.notified = append(m.notified, txn)
	m.mu.Unlock()
	m.done <- struct{}{}
}

func (m *MockPaymentNotifier) Notified() []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Transaction, len(m.notified))
	copy(out, m.notified)
	return out
}

var _ portssvc.PaymentNotifier = (*MockPaymentNotifier)(nil)

// --- Test Suite Setup ---

type BillingServiceTestSuite struct {
	suite.Suite
	mockTxnRepo   *MockTransactionRepository
	mockCourseSvc *MockCourseService
	mockEnrollSvc *MockEnrollmentService
	mockNotifier  *MockPaymentNotifier
	service       portssvc.BillingSvcFacade

	studentID string
	course    *domain.Course
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCourseSvc = new(MockCourseService)
	suite.mockEnrollSvc = new(MockEnrollmentService)
	suite.mockNotifier = NewMockPaymentNotifier()
	suite.service = services.NewBillingService(suite.mockTxnRepo, suite.mockCourseSvc, suite.mockEnrollSvc, suite.mockNotifier)

	suite.studentID = uuid.NewString()
	suite.course = &domain.Course{
		CourseID:           uuid.NewString(),
		Title:              "Data Structures",
		FeePerMonth:        decimal.NewFromInt(5000),
		DurationMonths:     6,
		DiscountPercentage: decimal.NewFromInt(10),
		Status:             domain.CourseLive,
	}
}

// --- CreateTransaction ---

func (suite *BillingServiceTestSuite) TestCreateTransaction_FullDurationGetsDiscount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CourseID:      suite.course.CourseID,
		Months:        6,
		ModeOfPayment: domain.PaymentOffline,
	}

	suite.mockCourseSvc.On("GetCourseByID", ctx, suite.course.CourseID).Return(suite.course, nil).Once()
	suite.mockEnrollSvc.On("IsEnrolled", ctx, suite.studentID, suite.course.CourseID).Return(true, nil).Once()
	suite.mockTxnRepo.On("SumPaidMonths", ctx, suite.studentID, suite.course.CourseID).Return(0, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.StudentID == suite.studentID &&
			txn.Months == 6 &&
			txn.Amount.Equal(decimal.NewFromInt(30000)) &&
			txn.Discount.Equal(decimal.NewFromInt(3000)) &&
			txn.NetPayable.Equal(decimal.NewFromInt(27000)) &&
			txn.Status == domain.StatusPendingApproval
	})).Return(&domain.Transaction{TransactionID: uuid.NewString(), BillNo: "BILL-005001"}, nil).Once()

	saved, err := suite.service.CreateTransaction(ctx, suite.studentID, req)

	suite.NoError(err)
	suite.NotNil(saved)
	suite.Equal("BILL-005001", saved.BillNo)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestCreateTransaction_PartialMonthsNoDiscount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CourseID:      suite.course.CourseID,
		Months:        3,
		ModeOfPayment: domain.PaymentOffline,
	}

	suite.mockCourseSvc.On("GetCourseByID", ctx, suite.course.CourseID).Return(suite.course, nil).Once()
	suite.mockEnrollSvc.On("IsEnrolled", ctx, suite.studentID, suite.course.CourseID).Return(true, nil).Once()
	suite.mockTxnRepo.On("SumPaidMonths", ctx, suite.studentID, suite.course.CourseID).Return(0, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Amount.Equal(decimal.NewFromInt(15000)) &&
			txn.Discount.IsZero() &&
			txn.NetPayable.Equal(decimal.NewFromInt(15000))
	})).Return(&domain.Transaction{TransactionID: uuid.NewString(), BillNo: "BILL-005002"}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.studentID, req)

	suite.NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestCreateTransaction_MonthsEqualToRemainingSucceeds() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CourseID:      suite.course.CourseID,
		Months:        2,
		ModeOfPayment: domain.PaymentOffline,
	}

	suite.mockCourseSvc.On("GetCourseByID", ctx, suite.course.CourseID).Return(suite.course, nil).Once()
	suite.mockEnrollSvc.On("IsEnrolled", ctx, suite.studentID, suite.course.CourseID).Return(true, nil).Once()
	suite.mockTxnRepo.On("SumPaidMonths", ctx, suite.studentID, suite.course.CourseID).Return(4, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.studentID, req)

	suite.NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestCreateTransaction_MonthsExceedRemaining() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CourseID:      suite.course.CourseID,
		Months:        3,
		ModeOfPayment: domain.PaymentOffline,
	}

	suite.mockCourseSvc.On("GetCourseByID", ctx, suite.course.CourseID).Return(suite.course, nil).Once()
	suite.mockEnrollSvc.On("IsEnrolled", ctx, suite.studentID, suite.course.CourseID).Return(true, nil).Once()
	suite.mockTxnRepo.On("SumPaidMonths", ctx, suite.studentID, suite.course.CourseID).Return(4, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.studentID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "remaining 2")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *BillingServiceTestSuite) TestCreateTransaction_OnlineRequiresProofRef() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CourseID:      suite.course.CourseID,
		Months:        1,
		ModeOfPayment: domain.PaymentOnline,
	}

	suite.mockCourseSvc.On("GetCourseByID", ctx, suite.course.CourseID).Return(suite.course, nil).Once()
	suite.mockEnrollSvc.On("IsEnrolled", ctx, suite.studentID, suite.course.CourseID).Return(true, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.studentID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *BillingServiceTestSuite) TestCreateTransaction_OfflineDropsProofRef() {
	ctx := context.Background()
	proof := "upload-ref-123"
	req := dto.CreateTransactionRequest{
		CourseID:        suite.course.CourseID,
		Months:          1,
		ModeOfPayment:   domain.PaymentOffline,
		PaymentProofRef: &proof,
	}

	suite.mockCourseSvc.On("GetCourseByID", ctx, suite.course.CourseID).Return(suite.course, nil).Once()
	suite.mockEnrollSvc.On("IsEnrolled", ctx, suite.studentID, suite.course.CourseID).Return(true, nil).Once()
	suite.mockTxnRepo.On("SumPaidMonths", ctx, suite.studentID, suite.course.CourseID).Return(0, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.PaymentProofRef == nil
	})).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.studentID, req)

	suite.NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestCreateTransaction_NotEnrolled() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CourseID:      suite.course.CourseID,
		Months:        1,
		ModeOfPayment: domain.PaymentOffline,
	}

	suite.mockCourseSvc.On("GetCourseByID", ctx, suite.course.CourseID).Return(suite.course, nil).Once()
	suite.mockEnrollSvc.On("IsEnrolled", ctx, suite.studentID, suite.course.CourseID).Return(false, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.studentID, req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

// --- UpdateTransactionStatus ---

func (suite *BillingServiceTestSuite) TestUpdateTransactionStatus_ApproveNotifies() {
	ctx := context.Background()
	adminID := uuid.NewString()
	txnID := uuid.NewString()
	approved := &domain.Transaction{
		TransactionID: txnID,
		BillNo:        "BILL-005010",
		StudentID:     suite.studentID,
		CourseID:      suite.course.CourseID,
		Months:        6,
		NetPayable:    decimal.NewFromInt(27000),
		Status:        domain.StatusPaid,
	}

	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txnID, domain.StatusPaid, adminID, mock.AnythingOfType("time.Time")).
		Return(approved, nil).Once()

	updated, err := suite.service.UpdateTransactionStatus(ctx, adminID, txnID, domain.StatusPaid)

	suite.NoError(err)
	suite.Equal(domain.StatusPaid, updated.Status)

	select {
	case <-suite.mockNotifier.done:
	case <-time.After(2 * time.Second):
		suite.FailNow("expected approval notification")
	}
	notified := suite.mockNotifier.Notified()
	suite.Len(notified, 1)
	suite.Equal("BILL-005010", notified[0].BillNo)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestUpdateTransactionStatus_RejectDoesNotNotify() {
	ctx := context.Background()
	adminID := uuid.NewString()
	txnID := uuid.NewString()
	rejected := &domain.Transaction{TransactionID: txnID, Status: domain.StatusRejected}

	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txnID, domain.StatusRejected, adminID, mock.AnythingOfType("time.Time")).
		Return(rejected, nil).Once()

	updated, err := suite.service.UpdateTransactionStatus(ctx, adminID, txnID, domain.StatusRejected)

	suite.NoError(err)
	suite.Equal(domain.StatusRejected, updated.Status)
	suite.Empty(suite.mockNotifier.Notified())
}

func (suite *BillingServiceTestSuite) TestUpdateTransactionStatus_NonTerminalTarget() {
	ctx := context.Background()

	_, err := suite.service.UpdateTransactionStatus(ctx, uuid.NewString(), uuid.NewString(), domain.StatusPendingApproval)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus")
}

func (suite *BillingServiceTestSuite) TestUpdateTransactionStatus_AlreadyDecided() {
	ctx := context.Background()
	adminID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txnID, domain.StatusRejected, adminID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrConflict).Once()

	_, err := suite.service.UpdateTransactionStatus(ctx, adminID, txnID, domain.StatusRejected)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(suite.mockNotifier.Notified())
}

// --- GetTransactionByID ---

func (suite *BillingServiceTestSuite) TestGetTransactionByID_StudentCannotReadOthers() {
	ctx := context.Background()
	txn := &domain.Transaction{TransactionID: uuid.NewString(), StudentID: uuid.NewString()}
	requestingUser := domain.User{UserID: suite.studentID, Role: domain.RoleStudent}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, requestingUser, txn.TransactionID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BillingServiceTestSuite) TestGetTransactionByID_AdminReadsAny() {
	ctx := context.Background()
	txn := &domain.Transaction{TransactionID: uuid.NewString(), StudentID: uuid.NewString()}
	admin := domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	got, err := suite.service.GetTransactionByID(ctx, admin, txn.TransactionID)

	suite.NoError(err)
	suite.Equal(txn.TransactionID, got.TransactionID)
}

// --- ListTransactions ---

func (suite *BillingServiceTestSuite) TestListTransactions_StudentScopedToOwnRows() {
	ctx := context.Background()
	student := domain.User{UserID: suite.studentID, Role: domain.RoleStudent}

	suite.mockTxnRepo.On("ListTransactions", ctx, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.StudentID != nil && *f.StudentID == suite.studentID
	}), 20, (*string)(nil)).Return([]domain.Transaction{}, nil, nil).Once()

	_, err := suite.service.ListTransactions(ctx, student, dto.ListTransactionsParams{})

	suite.NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestListTransactions_StudentCannotFilterOnOthers() {
	ctx := context.Background()
	student := domain.User{UserID: suite.studentID, Role: domain.RoleStudent}
	other := uuid.NewString()

	_, err := suite.service.ListTransactions(ctx, student, dto.ListTransactionsParams{StudentID: &other})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactions")
}

// --- GetCourseProgress ---

func (suite *BillingServiceTestSuite) TestGetCourseProgress_DerivedFromPaidMonths() {
	ctx := context.Background()

	suite.mockCourseSvc.On("GetCourseByID", ctx, suite.course.CourseID).Return(suite.course, nil).Once()
	suite.mockTxnRepo.On("SumPaidMonths", ctx, suite.studentID, suite.course.CourseID).Return(4, nil).Once()

	progress, err := suite.service.GetCourseProgress(ctx, suite.studentID, suite.course.CourseID)

	suite.NoError(err)
	suite.Equal(6, progress.DurationMonths)
	suite.Equal(4, progress.MonthsPaid)
	suite.Equal(2, progress.RemainingMonths)
}

func (suite *BillingServiceTestSuite) TestGetCourseProgress_NothingPaid() {
	ctx := context.Background()

	suite.mockCourseSvc.On("GetCourseByID", ctx, suite.course.CourseID).Return(suite.course, nil).Once()
	suite.mockTxnRepo.On("SumPaidMonths", ctx, suite.studentID, suite.course.CourseID).Return(0, nil).Once()

	progress, err := suite.service.GetCourseProgress(ctx, suite.studentID, suite.course.CourseID)

	suite.NoError(err)
	suite.Equal(0, progress.MonthsPaid)
	suite.Equal(6, progress.RemainingMonths)
}

// --- Run Test Suite ---
func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
