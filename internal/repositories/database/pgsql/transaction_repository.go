package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portsrepo "github.com/edupulse/institute_portal_backend/internal/core/ports/repositories"
	"github.com/edupulse/institute_portal_backend/internal/models"
	"github.com/edupulse/institute_portal_backend/internal/utils/mapping"
	"github.com/edupulse/institute_portal_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// billCounterName is the bill_counters row backing the bill number sequence.
const billCounterName = "bill_no"

const transactionColumns = `transaction_id, bill_no, student_id, course_id, months, amount, discount, net_payable, mode_of_payment, payment_proof_ref, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	billNoPrefix string
	billSeqStart int64
}

// newPgxTransactionRepository creates a new repository for fee transaction
// data. billNoPrefix and billSeqStart configure the bill number format and
// the value the sequence starts from when no bill has ever been issued.
func newPgxTransactionRepository(pool *pgxpool.Pool, billNoPrefix string, billSeqStart int64) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		billNoPrefix:   billNoPrefix,
		billSeqStart:   billSeqStart,
	}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// SaveTransaction allocates the next bill number and inserts the transaction
// under a single database transaction.
//
// The allocation is a single atomic upsert on the counter row; the row-level
// lock serializes concurrent allocators, so two requests can never draw the
// same value. Because allocation and insert commit together, an aborted
// creation can leave a gap in the sequence but never a duplicate, and no
// transaction row is ever visible without its bill number.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	// Allocate the next sequence value. The first allocation seeds the
	// counter at the configured base.
	allocQuery := `
		INSERT INTO bill_counters (counter_name, next_value)
		VALUES ($1, $2 + 1)
		ON CONFLICT (counter_name)
		DO UPDATE SET next_value = bill_counters.next_value + 1
		RETURNING next_value - 1;
	`
	var seq int64
	if err := tx.QueryRow(ctx, allocQuery, billCounterName, r.billSeqStart).Scan(&seq); err != nil {
		return nil, apperrors.NewAppError(500, "failed to allocate bill number", err)
	}
	txn.BillNo = fmt.Sprintf("%s%06d", r.billNoPrefix, seq)

	m := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID,
		m.BillNo,
		m.StudentID,
		m.CourseID,
		m.Months,
		m.Amount,
		m.Discount,
		m.NetPayable,
		m.ModeOfPayment,
		m.PaymentProofRef,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, fmt.Errorf("%w: bill number %s already issued", apperrors.ErrConflict, m.BillNo)
		}
		return nil, apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateTransactionStatus transitions a pending transaction to a terminal
// status. The pending row and the pair's enrollment row are locked so that
// two admins racing on the same transaction, or approvals racing on the same
// (student, course) pair, resolve to one winner.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, newStatus domain.TransactionStatus, updatedBy string, updatedAt time.Time) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var m models.Transaction
	lockQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, lockQuery, transactionID).Scan(
		&m.TransactionID,
		&m.BillNo,
		&m.StudentID,
		&m.CourseID,
		&m.Months,
		&m.Amount,
		&m.Discount,
		&m.NetPayable,
		&m.ModeOfPayment,
		&m.PaymentProofRef,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock transaction "+transactionID, err)
	}

	if m.Status != models.StatusPendingApproval {
		return nil, fmt.Errorf("%w: transaction %s is already %s", apperrors.ErrConflict, transactionID, m.Status)
	}

	if newStatus == domain.StatusPaid {
		// Serialize approvals per (student, course) pair on the enrollment
		// row, then re-check that this approval keeps months paid within the
		// course duration.
		var enrollmentID string
		err = tx.QueryRow(ctx,
			`SELECT enrollment_id FROM enrollments WHERE student_id = $1 AND course_id = $2 FOR UPDATE;`,
			m.StudentID, m.CourseID,
		).Scan(&enrollmentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, apperrors.NewAppError(500, "failed to lock enrollment for approval", err)
		}

		var duration, monthsPaid int
		err = tx.QueryRow(ctx, `
			SELECT c.duration_months,
			       COALESCE((SELECT SUM(t.months) FROM transactions t
			                 WHERE t.student_id = $1 AND t.course_id = $2 AND t.status = 'PAID'), 0)
			FROM courses c
			WHERE c.course_id = $2;
		`, m.StudentID, m.CourseID).Scan(&duration, &monthsPaid)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, apperrors.NewAppError(500, "failed to check remaining months for approval", err)
		}
		if monthsPaid+m.Months > duration {
			remaining := duration - monthsPaid
			if remaining < 0 {
				remaining = 0
			}
			return nil, fmt.Errorf("%w: approval would exceed course duration (remaining %d)", apperrors.ErrValidation, remaining)
		}
	}

	updateQuery := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = 'PENDING_APPROVAL';
	`
	tag, err := tx.Exec(ctx, updateQuery, transactionID, string(newStatus), updatedAt, updatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update transaction status", err)
	}
	if tag.RowsAffected() == 0 {
		// Guarded by the row lock above; kept as a safety net.
		return nil, fmt.Errorf("%w: transaction %s is no longer pending", apperrors.ErrConflict, transactionID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = models.TransactionStatus(newStatus)
	m.LastUpdatedAt = updatedAt
	m.LastUpdatedBy = updatedBy
	updated := mapping.ToDomainTransaction(m)
	return &updated, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.BillNo,
		&m.StudentID,
		&m.CourseID,
		&m.Months,
		&m.Amount,
		&m.Discount,
		&m.NetPayable,
		&m.ModeOfPayment,
		&m.PaymentProofRef,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves a filtered page of transactions ordered by
// created_at descending, using (created_at, transaction_id) keyset
// pagination so the listing restarts cleanly from any returned token.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	conditions := []string{}
	args := []interface{}{}

	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.StudentID != nil {
		conditions = append(conditions, "student_id = "+addArg(*filter.StudentID))
	}
	if filter.CourseID != nil {
		conditions = append(conditions, "course_id = "+addArg(*filter.CourseID))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = "+addArg(string(*filter.Status)))
	}
	if nextToken != nil {
		createdAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		conditions = append(conditions, fmt.Sprintf("(created_at, transaction_id) < (%s, %s)", addArg(createdAt), addArg(lastID)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	// Fetch one extra row to know whether another page exists
	query += " ORDER BY created_at DESC, transaction_id DESC LIMIT " + addArg(limit+1) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.BillNo,
			&m.StudentID,
			&m.CourseID,
			&m.Months,
			&m.Amount,
			&m.Discount,
			&m.NetPayable,
			&m.ModeOfPayment,
			&m.PaymentProofRef,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		token = &t
	}

	return mapping.ToDomainTransactions(txns), token, nil
}

// SumPaidMonths returns the total months across PAID transactions for a
// (student, course) pair. The value is derived on every read; it is never
// stored on the enrollment.
func (r *PgxTransactionRepository) SumPaidMonths(ctx context.Context, studentID, courseID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(months), 0)
		FROM transactions
		WHERE student_id = $1 AND course_id = $2 AND status = 'PAID';
	`
	var sum int
	if err := r.Pool.QueryRow(ctx, query, studentID, courseID).Scan(&sum); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum paid months", err)
	}
	return sum, nil
}
