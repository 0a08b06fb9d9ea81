package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portsrepo "github.com/edupulse/institute_portal_backend/internal/core/ports/repositories"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/dto"
	"github.com/edupulse/institute_portal_backend/internal/middleware"
	"github.com/edupulse/institute_portal_backend/internal/utils/billing"
)

const defaultListLimit = 20

// billingService owns the fee transaction lifecycle: creation, approval
// workflow and the derived months-paid view. All writes to transaction
// records flow through here.
type billingService struct {
	txnRepo   portsrepo.TransactionRepositoryFacade
	courseSvc portssvc.CourseSvcFacade
	enrollSvc portssvc.EnrollmentSvcFacade
	notifier  portssvc.PaymentNotifier
}

// NewBillingService creates a new BillingService.
func NewBillingService(txnRepo portsrepo.TransactionRepositoryFacade, courseSvc portssvc.CourseSvcFacade, enrollSvc portssvc.EnrollmentSvcFacade, notifier portssvc.PaymentNotifier) portssvc.BillingSvcFacade {
	return &billingService{
		txnRepo:   txnRepo,
		courseSvc: courseSvc,
		enrollSvc: enrollSvc,
		notifier:  notifier,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// CreateTransaction implements portssvc.BillingSvcFacade.
func (s *billingService) CreateTransaction(ctx context.Context, studentID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	course, err := s.courseSvc.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollSvc.IsEnrolled(ctx, studentID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: student %s has no enrollment for course %s", apperrors.ErrNotFound, studentID, req.CourseID)
	}

	// ONLINE payments must carry the upload collaborator's proof reference;
	// OFFLINE payments never store one.
	var proofRef *string
	switch req.ModeOfPayment {
	case domain.PaymentOnline:
		if req.PaymentProofRef == nil || *req.PaymentProofRef == "" {
			return nil, fmt.Errorf("%w: paymentProofRef is required for online payments", apperrors.ErrValidation)
		}
		proofRef = req.PaymentProofRef
	case domain.PaymentOffline:
		proofRef = nil
	default:
		return nil, fmt.Errorf("%w: invalid mode of payment %q", apperrors.ErrValidation, req.ModeOfPayment)
	}

	monthsPaid, err := s.txnRepo.SumPaidMonths(ctx, studentID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute months paid: %w", err)
	}
	remaining := course.DurationMonths - monthsPaid
	if remaining < 0 {
		remaining = 0
	}
	if req.Months < 1 || req.Months > remaining {
		return nil, fmt.Errorf("%w: months exceeds remaining balance (remaining %d)", apperrors.ErrValidation, remaining)
	}

	breakdown := billing.ComputeFee(course.FeePerMonth, req.Months, course.DurationMonths, course.DiscountPercentage)

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		StudentID:       studentID,
		CourseID:        course.CourseID,
		Months:          req.Months,
		Amount:          breakdown.Amount,
		Discount:        breakdown.Discount,
		NetPayable:      breakdown.NetPayable,
		ModeOfPayment:   req.ModeOfPayment,
		PaymentProofRef: proofRef,
		Status:          domain.StatusPendingApproval,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     studentID,
			LastUpdatedAt: now,
			LastUpdatedBy: studentID,
		},
	}

	// Bill number allocation and the insert share one database transaction
	// inside the repository, so a failure here leaves no record and at worst
	// a gap in the sequence.
	saved, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Fee transaction created",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("bill_no", saved.BillNo),
		slog.String("course_id", saved.CourseID),
		slog.Int("months", saved.Months),
	)
	return saved, nil
}

// UpdateTransactionStatus implements portssvc.BillingSvcFacade.
func (s *billingService) UpdateTransactionStatus(ctx context.Context, adminUserID string, transactionID string, newStatus domain.TransactionStatus) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !newStatus.IsTerminal() {
		return nil, fmt.Errorf("%w: status must be %s or %s", apperrors.ErrValidation, domain.StatusPaid, domain.StatusRejected)
	}

	updated, err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, newStatus, adminUserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction status updated",
		slog.String("transaction_id", updated.TransactionID),
		slog.String("status", string(updated.Status)),
	)

	// Notification is fire-and-forget: a failure to notify must never roll
	// back the status change, so it runs detached from the request lifetime.
	if updated.Status == domain.StatusPaid && s.notifier != nil {
		go s.notifier.NotifyPaymentApproved(context.WithoutCancel(ctx), *updated)
	}

	return updated, nil
}

// GetTransactionByID implements portssvc.BillingSvcFacade.
func (s *billingService) GetTransactionByID(ctx context.Context, requestingUser domain.User, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if requestingUser.Role != domain.RoleAdmin && txn.StudentID != requestingUser.UserID {
		return nil, fmt.Errorf("%w: transaction belongs to another student", apperrors.ErrForbidden)
	}
	return txn, nil
}

// ListTransactions implements portssvc.BillingSvcFacade.
func (s *billingService) ListTransactions(ctx context.Context, requestingUser domain.User, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := portsrepo.TransactionFilter{
		StudentID: params.StudentID,
		CourseID:  params.CourseID,
		Status:    params.Status,
	}

	// Students only ever see their own ledger rows.
	if requestingUser.Role != domain.RoleAdmin {
		if params.StudentID != nil && *params.StudentID != requestingUser.UserID {
			return nil, fmt.Errorf("%w: cannot list another student's transactions", apperrors.ErrForbidden)
		}
		own := requestingUser.UserID
		filter.StudentID = &own
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// GetCourseProgress implements portssvc.BillingSvcFacade.
func (s *billingService) GetCourseProgress(ctx context.Context, studentID, courseID string) (*portssvc.CourseProgress, error) {
	course, err := s.courseSvc.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	monthsPaid, err := s.txnRepo.SumPaidMonths(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute months paid: %w", err)
	}

	remaining := course.DurationMonths - monthsPaid
	if remaining < 0 {
		remaining = 0
	}

	return &portssvc.CourseProgress{
		DurationMonths:  course.DurationMonths,
		MonthsPaid:      monthsPaid,
		RemainingMonths: remaining,
	}, nil
}
