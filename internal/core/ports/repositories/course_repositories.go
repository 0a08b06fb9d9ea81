package repositories

import (
	"context"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
)

// CourseReader defines read operations for course data
type CourseReader interface {
	// FindCourseByID retrieves a specific course by its ID.
	// Returns apperrors.ErrNotFound when no such course exists.
	FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error)

	// ListCourses retrieves a paginated list of courses, newest first.
	ListCourses(ctx context.Context, limit int, offset int) ([]domain.Course, error)
}

// CourseWriter defines write operations for course data
type CourseWriter interface {
	// SaveCourse persists a new course.
	SaveCourse(ctx context.Context, course domain.Course) error

	// UpdateCourse updates an existing course's details. Existing
	// transactions keep the amounts snapshotted at their creation.
	UpdateCourse(ctx context.Context, course domain.Course) error
}

// CourseRepositoryFacade combines all course-related repository interfaces
type CourseRepositoryFacade interface {
	CourseReader
	CourseWriter
}
