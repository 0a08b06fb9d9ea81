package domain

// UserRole distinguishes students from portal administrators.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleAdmin   UserRole = "ADMIN"
)

// User represents a registered portal user (student or admin).
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // bcrypt hash, never serialized
	Role         UserRole `json:"role"`
	AuditFields
}
