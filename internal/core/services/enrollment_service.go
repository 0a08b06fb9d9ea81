package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portsrepo "github.com/edupulse/institute_portal_backend/internal/core/ports/repositories"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/middleware"
)

// enrollmentService provides the enrollment registry operations.
type enrollmentService struct {
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade
	courseSvc      portssvc.CourseSvcFacade
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(enrollmentRepo portsrepo.EnrollmentRepositoryFacade, courseSvc portssvc.CourseSvcFacade) portssvc.EnrollmentSvcFacade {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseSvc:      courseSvc,
	}
}

var _ portssvc.EnrollmentSvcFacade = (*enrollmentService)(nil)

// EnrollStudent implements portssvc.EnrollmentSvcFacade.
func (s *enrollmentService) EnrollStudent(ctx context.Context, studentID, courseID string) (*domain.Enrollment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Course must exist before an enrollment references it
	if _, err := s.courseSvc.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	enrollment := domain.Enrollment{
		EnrollmentID: uuid.NewString(),
		StudentID:    studentID,
		CourseID:     courseID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     studentID,
			LastUpdatedAt: now,
			LastUpdatedBy: studentID,
		},
	}

	if err := s.enrollmentRepo.SaveEnrollment(ctx, enrollment); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: student already enrolled in course %s", apperrors.ErrDuplicate, courseID)
		}
		return nil, fmt.Errorf("failed to save enrollment: %w", err)
	}

	logger.Info("Student enrolled", slog.String("enrollment_id", enrollment.EnrollmentID), slog.String("course_id", courseID))
	return &enrollment, nil
}

// ListStudentEnrollments implements portssvc.EnrollmentSvcFacade.
func (s *enrollmentService) ListStudentEnrollments(ctx context.Context, studentID string) ([]domain.Enrollment, error) {
	return s.enrollmentRepo.ListEnrollmentsByStudent(ctx, studentID)
}

// IsEnrolled implements portssvc.EnrollmentSvcFacade.
func (s *enrollmentService) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	_, err := s.enrollmentRepo.FindEnrollment(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
