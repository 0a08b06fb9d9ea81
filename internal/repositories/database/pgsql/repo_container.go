package pgsql

import (
	portsrepo "github.com/edupulse/institute_portal_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider constructs all pgsql repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool, billNoPrefix string, billSeqStart int64) portsrepo.RepositoryProvider {
	courseRepo := newPgxCourseRepository(dbPool)
	enrollmentRepo := newPgxEnrollmentRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, billNoPrefix, billSeqStart)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CourseRepo:      courseRepo,
		EnrollmentRepo:  enrollmentRepo,
		TransactionRepo: transactionRepo,
		UserRepo:        userRepo,
	}
}
