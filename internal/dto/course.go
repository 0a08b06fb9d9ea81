package dto

import (
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCourseRequest defines the payload for creating a course.
type CreateCourseRequest struct {
	Title              string              `json:"title" binding:"required"`
	FeePerMonth        decimal.Decimal     `json:"feePerMonth" binding:"required,gte=0"`
	DurationMonths     int                 `json:"durationMonths" binding:"required,min=1"`
	DiscountPercentage decimal.Decimal     `json:"discountPercentage" binding:"omitempty,gte=0,lte=100"`
	Status             domain.CourseStatus `json:"status" binding:"omitempty,oneof=UPCOMING LIVE COMPLETED"`
}

// UpdateCourseRequest defines the payload for administrative course edits.
// Nil fields are left unchanged. Edits never rewrite existing transactions.
type UpdateCourseRequest struct {
	Title              *string              `json:"title,omitempty"`
	FeePerMonth        *decimal.Decimal     `json:"feePerMonth,omitempty" binding:"omitempty,gte=0"`
	DurationMonths     *int                 `json:"durationMonths,omitempty" binding:"omitempty,min=1"`
	DiscountPercentage *decimal.Decimal     `json:"discountPercentage,omitempty" binding:"omitempty,gte=0,lte=100"`
	Status             *domain.CourseStatus `json:"status,omitempty" binding:"omitempty,oneof=UPCOMING LIVE COMPLETED"`
}

// CourseResponse defines the data returned for a course.
type CourseResponse struct {
	CourseID           string              `json:"courseID"`
	Title              string              `json:"title"`
	FeePerMonth        decimal.Decimal     `json:"feePerMonth"`
	DurationMonths     int                 `json:"durationMonths"`
	DiscountPercentage decimal.Decimal     `json:"discountPercentage"`
	Status             domain.CourseStatus `json:"status"`
}

// ToCourseResponse converts a domain.Course to CourseResponse DTO.
func ToCourseResponse(c *domain.Course) CourseResponse {
	return CourseResponse{
		CourseID:           c.CourseID,
		Title:              c.Title,
		FeePerMonth:        c.FeePerMonth,
		DurationMonths:     c.DurationMonths,
		DiscountPercentage: c.DiscountPercentage,
		Status:             c.Status,
	}
}

// ToCourseResponses converts a slice of domain.Course to []CourseResponse.
func ToCourseResponses(courses []domain.Course) []CourseResponse {
	responses := make([]CourseResponse, len(courses))
	for i, c := range courses {
		responses[i] = ToCourseResponse(&c)
	}
	return responses
}
