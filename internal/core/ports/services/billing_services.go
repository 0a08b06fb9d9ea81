package services

import (
	"context"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	"github.com/edupulse/institute_portal_backend/internal/dto"
)

// CourseProgress is the derived "months paid" view for a (student, course)
// pair, recomputed from the ledger on every read.
type CourseProgress struct {
	DurationMonths  int
	MonthsPaid      int
	RemainingMonths int
}

// BillingSvcFacade defines the transaction ledger operations. All mutation of
// transaction records flows through this facade.
type BillingSvcFacade interface {
	// CreateTransaction validates the payment request against the student's
	// enrollment and remaining months, computes the fee breakdown, allocates
	// the next bill number and persists the transaction as PENDING_APPROVAL.
	// All-or-nothing: any failure leaves no record behind.
	CreateTransaction(ctx context.Context, studentID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransactionStatus transitions a pending transaction to PAID or
	// REJECTED. Transitions out of a terminal status fail with
	// apperrors.ErrConflict. Admin only.
	UpdateTransactionStatus(ctx context.Context, adminUserID string, transactionID string, newStatus domain.TransactionStatus) (*domain.Transaction, error)

	// GetTransactionByID retrieves one transaction. Students may only read
	// their own transactions.
	GetTransactionByID(ctx context.Context, requestingUser domain.User, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, newest-first page of transactions.
	ListTransactions(ctx context.Context, requestingUser domain.User, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetCourseProgress derives monthsPaid and remainingMonths for a
	// (student, course) pair from PAID transactions.
	GetCourseProgress(ctx context.Context, studentID, courseID string) (*CourseProgress, error)
}
