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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCourseRepository struct {
	BaseRepository
}

// newPgxCourseRepository creates a new repository for course data.
func newPgxCourseRepository(pool *pgxpool.Pool) portsrepo.CourseRepositoryFacade {
	return &PgxCourseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CourseRepositoryFacade = (*PgxCourseRepository)(nil)

// SaveCourse persists a new course.
func (r *PgxCourseRepository) SaveCourse(ctx context.Context, course domain.Course) error {
	modelCourse := mapping.ToModelCourse(course)
	query := `
		INSERT INTO courses (course_id, title, fee_per_month, duration_months, discount_percentage, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCourse.CourseID,
		modelCourse.Title,
		modelCourse.FeePerMonth,
		modelCourse.DurationMonths,
		modelCourse.DiscountPercentage,
		modelCourse.Status,
		modelCourse.CreatedAt,
		modelCourse.CreatedBy,
		modelCourse.LastUpdatedAt,
		modelCourse.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert course "+modelCourse.CourseID, err)
	}
	return nil
}

// FindCourseByID retrieves a course by its ID.
func (r *PgxCourseRepository) FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	query := `
		SELECT course_id, title, fee_per_month, duration_months, discount_percentage, status, created_at, created_by, last_updated_at, last_updated_by
		FROM courses
		WHERE course_id = $1;
	`
	var m models.Course
	err := r.Pool.QueryRow(ctx, query, courseID).Scan(
		&m.CourseID,
		&m.Title,
		&m.FeePerMonth,
		&m.DurationMonths,
		&m.DiscountPercentage,
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
		return nil, apperrors.NewAppError(500, "failed to find course by ID "+courseID, err)
	}

	course := mapping.ToDomainCourse(m)
	return &course, nil
}

// ListCourses retrieves a page of courses, newest first.
func (r *PgxCourseRepository) ListCourses(ctx context.Context, limit int, offset int) ([]domain.Course, error) {
	query := `
		SELECT course_id, title, fee_per_month, duration_months, discount_percentage, status, created_at, created_by, last_updated_at, last_updated_by
		FROM courses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query courses", err)
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		var m models.Course
		err := rows.Scan(
			&m.CourseID,
			&m.Title,
			&m.FeePerMonth,
			&m.DurationMonths,
			&m.DiscountPercentage,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan course row", err)
		}
		courses = append(courses, mapping.ToDomainCourse(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating course rows", err)
	}
	return courses, nil
}

// UpdateCourse updates an existing course's details. Transactions already
// created against the course keep their snapshotted amounts.
func (r *PgxCourseRepository) UpdateCourse(ctx context.Context, course domain.Course) error {
	modelCourse := mapping.ToModelCourse(course)
	query := `
		UPDATE courses
		SET title = $2, fee_per_month = $3, duration_months = $4, discount_percentage = $5, status = $6, last_updated_at = $7, last_updated_by = $8
		WHERE course_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelCourse.CourseID,
		modelCourse.Title,
		modelCourse.FeePerMonth,
		modelCourse.DurationMonths,
		modelCourse.DiscountPercentage,
		modelCourse.Status,
		modelCourse.LastUpdatedAt,
		modelCourse.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update course "+modelCourse.CourseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
