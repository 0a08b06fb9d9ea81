package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	portsrepo "github.com/edupulse/institute_portal_backend/internal/core/ports/repositories"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/dto"
	"github.com/edupulse/institute_portal_backend/internal/middleware"
	"github.com/edupulse/institute_portal_backend/internal/utils"
)

// ErrInvalidCredentials is returned when email or password do not match.
// The same error covers an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// authService verifies credentials and issues bearer tokens.
type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login implements portssvc.AuthSvcFacade.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed: password mismatch")
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := middleware.PortalClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    s.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token: signed,
		User:  dto.ToUserResponse(user),
	}, nil
}
