package services

import (
	"context"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
)

// EnrollmentSvcFacade defines the operations of the enrollment registry.
type EnrollmentSvcFacade interface {
	// EnrollStudent creates the (student, course) enrollment. A second
	// enrollment for the same pair fails with apperrors.ErrDuplicate.
	EnrollStudent(ctx context.Context, studentID, courseID string) (*domain.Enrollment, error)

	// ListStudentEnrollments retrieves all enrollments of one student.
	ListStudentEnrollments(ctx context.Context, studentID string) ([]domain.Enrollment, error)

	// IsEnrolled reports whether the student holds an enrollment for the course.
	IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error)
}
