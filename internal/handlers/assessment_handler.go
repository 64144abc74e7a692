package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/SAP-F-2025/course-progress-service/internal/services"
	"github.com/SAP-F-2025/course-progress-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// AssessmentHandler serves quizzes and level exams.
type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService, logger utils.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
	}
}

// GetQuiz returns the quiz without correctness flags.
// @Router /quizzes/{quiz_id} [get]
func (h *AssessmentHandler) GetQuiz(c *gin.Context) {
	quizID, ok := ParseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	quiz, err := h.assessmentService.GetQuiz(c.Request.Context(), user.ID, quizID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// SubmitQuiz scores a quiz submission and records the attempt.
// @Param answers body services.SubmitAnswersRequest true "Answer pairs"
// @Success 200 {object} services.SubmitResult
// @Router /quizzes/{quiz_id}/submit [post]
func (h *AssessmentHandler) SubmitQuiz(c *gin.Context) {
	quizID, ok := ParseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}
	req, ok := h.bindAnswers(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Submitting quiz", "quiz_id", quizID, "answers", len(req.Answers))

	result, err := h.assessmentService.SubmitQuiz(c.Request.Context(), user.ID, quizID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Router /levels/{level_id}/exam [get]
func (h *AssessmentHandler) GetExam(c *gin.Context) {
	levelID, ok := ParseIDParam(c, "level_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	exam, err := h.assessmentService.GetExam(c.Request.Context(), user.ID, levelID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exam)
}

// SubmitExam scores the level exam. The message names the unlocked level.
// @Param answers body services.SubmitAnswersRequest true "Answer pairs"
// @Success 200 {object} services.SubmitResult
// @Router /levels/{level_id}/exam/submit [post]
func (h *AssessmentHandler) SubmitExam(c *gin.Context) {
	levelID, ok := ParseIDParam(c, "level_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}
	req, ok := h.bindAnswers(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Submitting exam", "level_id", levelID, "answers", len(req.Answers))

	result, err := h.assessmentService.SubmitExam(c.Request.Context(), user.ID, levelID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// bindAnswers accepts an empty body as an empty submission. Only a body that
// is not JSON at all is rejected; malformed pairs are left to scoring.
func (h *AssessmentHandler) bindAnswers(c *gin.Context) (*services.SubmitAnswersRequest, bool) {
	req := &services.SubmitAnswersRequest{}
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return &services.SubmitAnswersRequest{}, true
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Detail: "Invalid request payload",
			Errors: err.Error(),
		})
		return nil, false
	}
	return req, true
}
