package services

import (
	"context"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	"github.com/edupulse/institute_portal_backend/internal/dto"
)

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	// RegisterUser creates a new STUDENT user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// GetUserByID retrieves a specific user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users. Admin only.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// AuthSvcFacade defines authentication operations.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a signed JWT carrying the user's
	// ID (subject) and role.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
