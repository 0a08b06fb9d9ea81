package repositories

import (
	"context"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
)

// EnrollmentReader defines read operations for enrollment data
type EnrollmentReader interface {
	// FindEnrollment retrieves the enrollment for a (student, course) pair.
	// Returns apperrors.ErrNotFound when the student is not enrolled.
	FindEnrollment(ctx context.Context, studentID, courseID string) (*domain.Enrollment, error)

	// ListEnrollmentsByStudent retrieves all enrollments of one student.
	ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error)
}

// EnrollmentWriter defines write operations for enrollment data
type EnrollmentWriter interface {
	// SaveEnrollment persists a new enrollment. The (student, course) pair is
	// unique; a second enrollment attempt returns apperrors.ErrDuplicate.
	SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error
}

// EnrollmentRepositoryFacade combines all enrollment-related repository interfaces
type EnrollmentRepositoryFacade interface {
	EnrollmentReader
	EnrollmentWriter
}
