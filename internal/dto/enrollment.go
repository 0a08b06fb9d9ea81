package dto

import (
	"time"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
)

// CreateEnrollmentRequest defines the payload for enrolling into a course.
// The student identity comes from the authenticated context, not the body.
type CreateEnrollmentRequest struct {
	CourseID string `json:"courseID" binding:"required,uuid"`
}

// EnrollmentResponse defines the data returned for an enrollment.
type EnrollmentResponse struct {
	EnrollmentID string    `json:"enrollmentID"`
	StudentID    string    `json:"studentID"`
	CourseID     string    `json:"courseID"`
	EnrolledAt   time.Time `json:"enrolledAt"`
}

// ToEnrollmentResponse converts a domain.Enrollment to EnrollmentResponse DTO.
func ToEnrollmentResponse(e *domain.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID: e.EnrollmentID,
		StudentID:    e.StudentID,
		CourseID:     e.CourseID,
		EnrolledAt:   e.CreatedAt,
	}
}

// ToEnrollmentResponses converts a slice of domain.Enrollment to []EnrollmentResponse.
func ToEnrollmentResponses(enrollments []domain.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, len(enrollments))
	for i, e := range enrollments {
		responses[i] = ToEnrollmentResponse(&e)
	}
	return responses
}

// CourseProgressResponse reports how much of a course a student has paid for.
// RemainingMonths is what the UI should clamp new payment requests to.
type CourseProgressResponse struct {
	CourseID        string `json:"courseID"`
	StudentID       string `json:"studentID"`
	DurationMonths  int    `json:"durationMonths"`
	MonthsPaid      int    `json:"monthsPaid"`
	RemainingMonths int    `json:"remainingMonths"`
}
