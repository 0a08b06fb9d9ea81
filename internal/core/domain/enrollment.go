package domain

// Enrollment is a confirmed (student, course) relationship, unique per pair.
// Its existence is the precondition for any fee transaction; it carries no
// payment state itself.
type Enrollment struct {
	EnrollmentID string `json:"enrollmentID"` // Primary Key (UUID)
	StudentID    string `json:"studentID"`    // FK -> User.userID
	CourseID     string `json:"courseID"`     // FK -> Course.courseID
	AuditFields
}
