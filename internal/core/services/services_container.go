package services

import (
	portsrepo "github.com/edupulse/institute_portal_backend/internal/core/ports/repositories"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/platform/config"
	"github.com/edupulse/institute_portal_backend/internal/platform/notify"
	"github.com/edupulse/institute_portal_backend/internal/utils"
)

// NewServiceContainer wires all application services from the repository
// provider and configuration.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config, posthogClient *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	courseSvc := NewCourseService(repos.CourseRepo)
	enrollmentSvc := NewEnrollmentService(repos.EnrollmentRepo, courseSvc)
	notifier := notify.NewPaymentNotifier(posthogClient)
	billingSvc := NewBillingService(repos.TransactionRepo, courseSvc, enrollmentSvc, notifier)
	userSvc := NewUserService(repos.UserRepo)
	authSvc := NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return &portssvc.ServiceContainer{
		Course:     courseSvc,
		Enrollment: enrollmentSvc,
		Billing:    billingSvc,
		User:       userSvc,
		Auth:       authSvc,
	}
}
