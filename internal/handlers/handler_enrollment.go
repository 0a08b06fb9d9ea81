package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/dto"
	"github.com/edupulse/institute_portal_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// enrollmentHandler handles HTTP requests related to enrollments.
type enrollmentHandler struct {
	enrollmentService portssvc.EnrollmentSvcFacade
}

// newEnrollmentHandler creates a new enrollmentHandler.
func newEnrollmentHandler(es portssvc.EnrollmentSvcFacade) *enrollmentHandler {
	return &enrollmentHandler{
		enrollmentService: es,
	}
}

// registerEnrollmentRoutes registers routes related to enrollments.
func registerEnrollmentRoutes(rg *gin.RouterGroup, enrollmentService portssvc.EnrollmentSvcFacade) {
	h := newEnrollmentHandler(enrollmentService)

	enrollments := rg.Group("/enrollments")
	{
		enrollments.POST("", h.createEnrollment)
		enrollments.GET("", h.listEnrollments)
	}
}

// createEnrollment godoc
// @Summary Enroll in a course
// @Description Enrolls the logged-in student into a course. Enrolling twice in the same course fails.
// @Tags enrollments
// @Accept  json
// @Produce  json
// @Param   enrollment body dto.CreateEnrollmentRequest true "Enrollment details"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Already enrolled"
// @Failure 500 {object} map[string]string "Failed to enroll"
// @Security BearerAuth
// @Router /enrollments [post]
func (h *enrollmentHandler) createEnrollment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEnrollment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	studentID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Student user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	enrollment, err := h.enrollmentService.EnrollStudent(c.Request.Context(), studentID, req.CourseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already enrolled in this course"})
		} else {
			logger.Error("Failed to enroll student", slog.String("course_id", req.CourseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll"})
		}
		return
	}

	logger.Info("Enrollment created successfully", slog.String("enrollment_id", enrollment.EnrollmentID))
	c.JSON(http.StatusCreated, dto.ToEnrollmentResponse(enrollment))
}

// listEnrollments godoc
// @Summary List enrollments
// @Description Retrieves the caller's enrollments. Admins may list any student's enrollments via the studentID query parameter.
// @Tags enrollments
// @Produce  json
// @Param   studentID query string false "Student ID (admin only, defaults to the caller)"
// @Success 200 {array} dto.EnrollmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (listing another student)"
// @Failure 500 {object} map[string]string "Failed to list enrollments"
// @Security BearerAuth
// @Router /enrollments [get]
func (h *enrollmentHandler) listEnrollments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUser, ok := requestingUserFromCtx(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	studentID := requestingUser.UserID
	if q := c.Query("studentID"); q != "" && q != requestingUser.UserID {
		if requestingUser.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot list another student's enrollments"})
			return
		}
		studentID = q
	}

	enrollments, err := h.enrollmentService.ListStudentEnrollments(c.Request.Context(), studentID)
	if err != nil {
		logger.Error("Failed to list enrollments", slog.String("student_id", studentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list enrollments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEnrollmentResponses(enrollments))
}
