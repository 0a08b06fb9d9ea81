package domain

import "github.com/shopspring/decimal"

// CourseStatus represents the lifecycle stage of a course.
type CourseStatus string

const (
	CourseUpcoming  CourseStatus = "UPCOMING"
	CourseLive      CourseStatus = "LIVE"
	CourseCompleted CourseStatus = "COMPLETED"
)

// Course represents a course offered by the institute.
// FeePerMonth and DiscountPercentage use a precise decimal type; fee or
// duration edits never rewrite transactions already created against the
// course (amounts are snapshotted at transaction creation).
type Course struct {
	CourseID           string          `json:"courseID"` // Primary Key (UUID)
	Title              string          `json:"title"`
	FeePerMonth        decimal.Decimal `json:"feePerMonth"`        // Non-negative
	DurationMonths     int             `json:"durationMonths"`     // Positive whole months
	DiscountPercentage decimal.Decimal `json:"discountPercentage"` // 0-100, full-duration payments only
	Status             CourseStatus    `json:"status"`
	AuditFields
}
