package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/course-progress-service/internal/services"
	"github.com/SAP-F-2025/course-progress-service/internal/utils"
	"github.com/SAP-F-2025/course-progress-service/internal/validator"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string      `json:"detail"`
	Errors interface{} `json:"errors,omitempty"`
}

const (
	detailNotEnrolled     = "You are not enrolled in this course."
	detailAlreadyEnrolled = "Already enrolled."
	detailForbidden       = "You do not have permission to perform this action."
)

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides request-scoped logging for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// log returns the request logger installed by utils.ContextLogger, or the
// handler's own logger outside of a request pipeline.
func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", h.extractUserID(c),
	}
	fields = append(fields, additionalFields...)

	h.log(c).Info(message, fields...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", h.extractUserID(c),
	}
	fields = append(fields, additionalFields...)

	h.log(c).LogError(err, message, fields...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", h.extractUserID(c),
	}
	fields = append(fields, additionalFields...)

	h.log(c).Warn(message, fields...)
}

func (h *BaseHandler) extractUserID(c *gin.Context) string {
	if user, ok := currentUser(c); ok {
		return user.ID
	}
	return ""
}

// RespondWithError sends an ErrorResponse and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, detail string, err error) {
	if err != nil {
		h.LogError(c, err, detail, "status_code", statusCode)
	} else {
		h.LogWarn(c, detail, "status_code", statusCode)
	}
	c.JSON(statusCode, ErrorResponse{Detail: detail})
}

// handleServiceError maps service errors onto HTTP statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Detail: "Validation failed",
			Errors: validationErrors,
		})
		return
	}

	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: notFoundDetail(err)})
	case errors.Is(err, services.ErrNotEnrolled):
		h.LogWarn(c, "Access denied", "reason", err.Error())
		c.JSON(http.StatusForbidden, ErrorResponse{Detail: detailNotEnrolled})
	case services.IsUnauthorized(err):
		h.LogWarn(c, "Access denied", "reason", err.Error())
		c.JSON(http.StatusForbidden, ErrorResponse{Detail: detailForbidden})
	case errors.Is(err, services.ErrAlreadyEnrolled):
		c.JSON(http.StatusConflict, ErrorResponse{Detail: detailAlreadyEnrolled})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Detail: "Resource conflict"})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Validation failed"})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Internal server error"})
	}
}

func notFoundDetail(err error) string {
	switch {
	case errors.Is(err, services.ErrCourseNotFound):
		return "Course not found."
	case errors.Is(err, services.ErrLevelNotFound):
		return "Level not found."
	case errors.Is(err, services.ErrVideoNotFound):
		return "Video not found."
	case errors.Is(err, services.ErrQuizNotFound):
		return "Quiz not found."
	case errors.Is(err, services.ErrExamNotFound):
		return "Exam not found."
	default:
		return "Not found."
	}
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "course-progress-service",
	})
}
