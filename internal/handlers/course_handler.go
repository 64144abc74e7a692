package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/course-progress-service/internal/services"
	"github.com/SAP-F-2025/course-progress-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CourseHandler struct {
	BaseHandler
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
	reportService     services.ReportService
}

func NewCourseHandler(
	courseService services.CourseService,
	enrollmentService services.EnrollmentService,
	reportService services.ReportService,
	logger utils.Logger,
) *CourseHandler {
	return &CourseHandler{
		BaseHandler:       NewBaseHandler(logger),
		courseService:     courseService,
		enrollmentService: enrollmentService,
		reportService:     reportService,
	}
}

// ListCourses lists every course. No enrollment is required.
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// Enroll enrolls the caller in a course.
// @Success 201 {object} services.EnrollmentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /courses/{course_id}/enroll [post]
func (h *CourseHandler) Enroll(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "course_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Enrolling in course", "course_id", courseID)

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), user.ID, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

// ListLevels lists the course's levels with the caller's percentage.
// @Router /courses/{course_id}/levels [get]
func (h *CourseHandler) ListLevels(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "course_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	levels, err := h.courseService.ListLevels(c.Request.Context(), user.ID, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

// ExportProgress streams the caller's progress workbook.
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /courses/{course_id}/progress/export [get]
func (h *CourseHandler) ExportProgress(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "course_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting course progress", "course_id", courseID)

	data, err := h.reportService.ExportCourseProgress(c.Request.Context(), user.ID, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("course-%d-progress.xlsx", courseID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
