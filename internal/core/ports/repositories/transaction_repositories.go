package repositories

import (
	"context"
	"time"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
)

// TransactionFilter narrows ListTransactions results. Nil fields match everything.
type TransactionFilter struct {
	StudentID *string
	CourseID  *string
	Status    *domain.TransactionStatus
}

// TransactionReader defines read operations for fee transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, created_at-descending page of
	// transactions using token-based pagination. It returns the page, a token
	// for the next page (nil when exhausted), and an error.
	ListTransactions(ctx context.Context, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SumPaidMonths returns the total months across PAID transactions for a
	// (student, course) pair. Derived on read, never stored.
	SumPaidMonths(ctx context.Context, studentID, courseID string) (int, error)
}

// TransactionWriter defines write operations for fee transaction data
type TransactionWriter interface {
	// SaveTransaction allocates the next bill number and inserts the
	// transaction in a single database transaction, so an aborted insert can
	// leave a gap in the sequence but never a duplicate or an unnumbered row.
	// It returns the persisted transaction including its bill number.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransactionStatus transitions a PENDING_APPROVAL transaction to a
	// terminal status. A missing transaction returns apperrors.ErrNotFound; a
	// transaction already in a terminal status returns apperrors.ErrConflict.
	// Approving re-checks the course's remaining months under lock and returns
	// apperrors.ErrValidation when the approval would exceed the duration.
	UpdateTransactionStatus(ctx context.Context, transactionID string, newStatus domain.TransactionStatus, updatedBy string, updatedAt time.Time) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
