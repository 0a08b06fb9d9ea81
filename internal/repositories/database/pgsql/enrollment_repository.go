package pgsql

import (
	"context"
	"errors"

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portsrepo "github.com/edupulse/institute_portal_backend/internal/core/ports/repositories"
	"github.com/edupulse/institute_portal_backend/internal/models"
	"github.com/edupulse/institute_portal_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEnrollmentRepository struct {
	BaseRepository
}

// newPgxEnrollmentRepository creates a new repository for enrollment data.
func newPgxEnrollmentRepository(pool *pgxpool.Pool) portsrepo.EnrollmentRepositoryFacade {
	return &PgxEnrollmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EnrollmentRepositoryFacade = (*PgxEnrollmentRepository)(nil)

// SaveEnrollment persists a new enrollment. The (student_id, course_id)
// unique constraint surfaces duplicates as apperrors.ErrDuplicate.
func (r *PgxEnrollmentRepository) SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	m := mapping.ToModelEnrollment(enrollment)
	query := `
		INSERT INTO enrollments (enrollment_id, student_id, course_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EnrollmentID,
		m.StudentID,
		m.CourseID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
		}
		return apperrors.NewAppError(500, "failed to insert enrollment "+m.EnrollmentID, err)
	}
	return nil
}

// FindEnrollment retrieves the enrollment for a (student, course) pair.
func (r *PgxEnrollmentRepository) FindEnrollment(ctx context.Context, studentID, courseID string) (*domain.Enrollment, error) {
	query := `
		SELECT enrollment_id, student_id, course_id, created_at, created_by, last_updated_at, last_updated_by
		FROM enrollments
		WHERE student_id = $1 AND course_id = $2;
	`
	var m models.Enrollment
	err := r.Pool.QueryRow(ctx, query, studentID, courseID).Scan(
		&m.EnrollmentID,
		&m.StudentID,
		&m.CourseID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find enrollment", err)
	}

	enrollment := mapping.ToDomainEnrollment(m)
	return &enrollment, nil
}

// ListEnrollmentsByStudent retrieves all enrollments of one student.
func (r *PgxEnrollmentRepository) ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error) {
	query := `
		SELECT enrollment_id, student_id, course_id, created_at, created_by, last_updated_at, last_updated_by
		FROM enrollments
		WHERE student_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query enrollments for student "+studentID, err)
	}
	defer rows.Close()

	enrollments := []domain.Enrollment{}
	for rows.Next() {
		var m models.Enrollment
		err := rows.Scan(
			&m.EnrollmentID,
			&m.StudentID,
			&m.CourseID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan enrollment row", err)
		}
		enrollments = append(enrollments, mapping.ToDomainEnrollment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating enrollment rows", err)
	}
	return enrollments, nil
}
