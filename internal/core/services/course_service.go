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
)

// courseService provides the course registry operations.
type courseService struct {
	courseRepo portsrepo.CourseRepositoryFacade
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo portsrepo.CourseRepositoryFacade) portssvc.CourseSvcFacade {
	return &courseService{courseRepo: courseRepo}
}

var _ portssvc.CourseSvcFacade = (*courseService)(nil)

// CreateCourse implements portssvc.CourseSvcFacade.
func (s *courseService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest, creatorUserID string) (*domain.Course, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FeePerMonth.IsNegative() {
		return nil, fmt.Errorf("%w: feePerMonth must not be negative", apperrors.ErrValidation)
	}
	if req.DiscountPercentage.IsNegative() || req.DiscountPercentage.GreaterThan(oneHundredPct) {
		return nil, fmt.Errorf("%w: discountPercentage must be between 0 and 100", apperrors.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = domain.CourseUpcoming
	}

	now := time.Now().UTC()
	course := domain.Course{
		CourseID:           uuid.NewString(),
		Title:              req.Title,
		FeePerMonth:        req.FeePerMonth,
		DurationMonths:     req.DurationMonths,
		DiscountPercentage: req.DiscountPercentage,
		Status:             status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.courseRepo.SaveCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	logger.Info("Course created", slog.String("course_id", course.CourseID), slog.String("title", course.Title))
	return &course, nil
}

// GetCourseByID implements portssvc.CourseSvcFacade.
func (s *courseService) GetCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	course, err := s.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses implements portssvc.CourseSvcFacade.
func (s *courseService) ListCourses(ctx context.Context, limit int, offset int) ([]domain.Course, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.courseRepo.ListCourses(ctx, limit, offset)
}

// UpdateCourse implements portssvc.CourseSvcFacade. Course edits never touch
// transactions already created against the course.
func (s *courseService) UpdateCourse(ctx context.Context, courseID string, req dto.UpdateCourseRequest, updaterUserID string) (*domain.Course, error) {
	course, err := s.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.FeePerMonth != nil {
		if req.FeePerMonth.IsNegative() {
			return nil, fmt.Errorf("%w: feePerMonth must not be negative", apperrors.ErrValidation)
		}
		course.FeePerMonth = *req.FeePerMonth
	}
	if req.DurationMonths != nil {
		if *req.DurationMonths < 1 {
			return nil, fmt.Errorf("%w: durationMonths must be positive", apperrors.ErrValidation)
		}
		course.DurationMonths = *req.DurationMonths
	}
	if req.DiscountPercentage != nil {
		if req.DiscountPercentage.IsNegative() || req.DiscountPercentage.GreaterThan(oneHundredPct) {
			return nil, fmt.Errorf("%w: discountPercentage must be between 0 and 100", apperrors.ErrValidation)
		}
		course.DiscountPercentage = *req.DiscountPercentage
	}
	if req.Status != nil {
		course.Status = *req.Status
	}

	course.LastUpdatedAt = time.Now().UTC()
	course.LastUpdatedBy = updaterUserID

	if err := s.courseRepo.UpdateCourse(ctx, *course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}
