package services

import (
	"context"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	"github.com/edupulse/institute_portal_backend/internal/dto"
)

// CourseSvcFacade defines the operations of the course registry consumed by
// handlers and by the billing service.
type CourseSvcFacade interface {
	// CreateCourse creates a new course. Admin only.
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest, creatorUserID string) (*domain.Course, error)

	// GetCourseByID retrieves the course terms (fee, duration, discount, status).
	GetCourseByID(ctx context.Context, courseID string) (*domain.Course, error)

	// ListCourses retrieves a paginated list of courses.
	ListCourses(ctx context.Context, limit int, offset int) ([]domain.Course, error)

	// UpdateCourse applies administrative edits. Existing transactions keep
	// their snapshotted amounts.
	UpdateCourse(ctx context.Context, courseID string, req dto.UpdateCourseRequest, updaterUserID string) (*domain.Course, error)
}
