package mapping

import (
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	"github.com/edupulse/institute_portal_backend/internal/models"
)

// ToModelCourse converts a domain Course to a model Course
func ToModelCourse(d domain.Course) models.Course {
	return models.Course{
		CourseID:           d.CourseID,
		Title:              d.Title,
		FeePerMonth:        d.FeePerMonth,
		DurationMonths:     d.DurationMonths,
		DiscountPercentage: d.DiscountPercentage,
		Status:             models.CourseStatus(d.Status),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCourse converts a model Course to a domain Course
func ToDomainCourse(m models.Course) domain.Course {
	return domain.Course{
		CourseID:           m.CourseID,
		Title:              m.Title,
		FeePerMonth:        m.FeePerMonth,
		DurationMonths:     m.DurationMonths,
		DiscountPercentage: m.DiscountPercentage,
		Status:             domain.CourseStatus(m.Status),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
