package models

import "github.com/shopspring/decimal"

// CourseStatus mirrors the course_status enum in the database.
type CourseStatus string

const (
	CourseUpcoming  CourseStatus = "UPCOMING"
	CourseLive      CourseStatus = "LIVE"
	CourseCompleted CourseStatus = "COMPLETED"
)

// Course maps a row of the courses table.
type Course struct {
	CourseID           string          `json:"courseID"`
	Title              string          `json:"title"`
	FeePerMonth        decimal.Decimal `json:"feePerMonth"`
	DurationMonths     int             `json:"durationMonths"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Status             CourseStatus    `json:"status"`
	AuditFields
}
