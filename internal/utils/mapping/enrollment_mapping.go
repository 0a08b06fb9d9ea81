package mapping

import (
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	"github.com/edupulse/institute_portal_backend/internal/models"
)

// ToModelEnrollment converts a domain Enrollment to a model Enrollment
func ToModelEnrollment(d domain.Enrollment) models.Enrollment {
	return models.Enrollment{
		EnrollmentID: d.EnrollmentID,
		StudentID:    d.StudentID,
		CourseID:     d.CourseID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEnrollment converts a model Enrollment to a domain Enrollment
func ToDomainEnrollment(m models.Enrollment) domain.Enrollment {
	return domain.Enrollment{
		EnrollmentID: m.EnrollmentID,
		StudentID:    m.StudentID,
		CourseID:     m.CourseID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
