package models

// Enrollment maps a row of the enrollments table.
// (student_id, course_id) carries a unique constraint.
type Enrollment struct {
	EnrollmentID string `json:"enrollmentID"`
	StudentID    string `json:"studentID"`
	CourseID     string `json:"courseID"`
	AuditFields
}
