package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/dto"
	"github.com/edupulse/institute_portal_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// courseHandler handles HTTP requests related to courses.
type courseHandler struct {
	courseService  portssvc.CourseSvcFacade
	billingService portssvc.BillingSvcFacade
}

// newCourseHandler creates a new courseHandler.
func newCourseHandler(cs portssvc.CourseSvcFacade, bs portssvc.BillingSvcFacade) *courseHandler {
	return &courseHandler{
		courseService:  cs,
		billingService: bs,
	}
}

// registerCourseRoutes registers routes related to courses.
func registerCourseRoutes(rg *gin.RouterGroup, courseService portssvc.CourseSvcFacade, billingService portssvc.BillingSvcFacade) {
	h := newCourseHandler(courseService, billingService)

	courses := rg.Group("/courses")
	{
		courses.POST("", middleware.RequireAdmin(), h.createCourse)
		courses.GET("", h.listCourses)
		courses.GET("/:courseID", h.getCourse)
		courses.PUT("/:courseID", middleware.RequireAdmin(), h.updateCourse)
		courses.GET("/:courseID/progress", h.getCourseProgress)
	}
}

// createCourse godoc
// @Summary Create a new course
// @Description Creates a course with its fee terms. Admin only.
// @Tags courses
// @Accept  json
// @Produce  json
// @Param   course body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to create course"
// @Security BearerAuth
// @Router /courses [post]
func (h *courseHandler) createCourse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCourse", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	newCourse, err := h.courseService.CreateCourse(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating course", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create course in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		}
		return
	}

	logger.Info("Course created successfully", slog.String("course_id", newCourse.CourseID))
	c.JSON(http.StatusCreated, dto.ToCourseResponse(newCourse))
}

// getCourse godoc
// @Summary Get a course by ID
// @Description Retrieves the fee terms of a specific course
// @Tags courses
// @Produce  json
// @Param   courseID path string true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Failed to retrieve course"
// @Security BearerAuth
// @Router /courses/{courseID} [get]
func (h *courseHandler) getCourse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	courseID := c.Param("courseID")

	course, err := h.courseService.GetCourseByID(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else {
			logger.Error("Failed to get course", slog.String("course_id", courseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve course"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCourseResponse(course))
}

// listCourses godoc
// @Summary List courses
// @Description Retrieves a paginated list of courses
// @Tags courses
// @Produce  json
// @Param   limit query int false "Maximum number of courses to return (default 20)"
// @Param   offset query int false "Number of courses to skip (default 0)"
// @Success 200 {array} dto.CourseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list courses"
// @Security BearerAuth
// @Router /courses [get]
func (h *courseHandler) listCourses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	courses, err := h.courseService.ListCourses(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list courses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list courses"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCourseResponses(courses))
}

// updateCourse godoc
// @Summary Update a course
// @Description Applies administrative edits to a course. Existing transactions keep their recorded amounts. Admin only.
// @Tags courses
// @Accept  json
// @Produce  json
// @Param   courseID path string true "Course ID"
// @Param   course body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.CourseResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Failed to update course"
// @Security BearerAuth
// @Router /courses/{courseID} [put]
func (h *courseHandler) updateCourse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	courseID := c.Param("courseID")

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCourse", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.courseService.UpdateCourse(c.Request.Context(), courseID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating course", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update course", slog.String("course_id", courseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		}
		return
	}

	logger.Info("Course updated successfully", slog.String("course_id", courseID))
	c.JSON(http.StatusOK, dto.ToCourseResponse(updated))
}

// getCourseProgress godoc
// @Summary Get payment progress for a course
// @Description Derives monthsPaid and remainingMonths for the caller from approved transactions. Admins may inspect any student via the studentID query parameter.
// @Tags courses
// @Produce  json
// @Param   courseID path string true "Course ID"
// @Param   studentID query string false "Student ID (admin only, defaults to the caller)"
// @Success 200 {object} dto.CourseProgressResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (inspecting another student)"
// @Failure 404 {object} map[string]string "Course or enrollment not found"
// @Failure 500 {object} map[string]string "Failed to compute progress"
// @Security BearerAuth
// @Router /courses/{courseID}/progress [get]
func (h *courseHandler) getCourseProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	courseID := c.Param("courseID")

	requestingUser, ok := requestingUserFromCtx(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	studentID := requestingUser.UserID
	if q := c.Query("studentID"); q != "" && q != requestingUser.UserID {
		if requestingUser.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot view another student's progress"})
			return
		}
		studentID = q
	}

	progress, err := h.billingService.GetCourseProgress(c.Request.Context(), studentID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course or enrollment not found"})
		} else {
			logger.Error("Failed to compute course progress", slog.String("course_id", courseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute progress"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CourseProgressResponse{
		CourseID:        courseID,
		StudentID:       studentID,
		DurationMonths:  progress.DurationMonths,
		MonthsPaid:      progress.MonthsPaid,
		RemainingMonths: progress.RemainingMonths,
	})
}
