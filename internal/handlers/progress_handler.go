package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/course-progress-service/internal/services"
	"github.com/SAP-F-2025/course-progress-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ProgressHandler exposes the administrator override of level percentages.
type ProgressHandler struct {
	BaseHandler
	progressService services.ProgressAdminService
}

func NewProgressHandler(progressService services.ProgressAdminService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     NewBaseHandler(logger),
		progressService: progressService,
	}
}

// SetLevelProgress
// @Param progress body services.SetLevelProgressRequest true "Override"
// @Success 200 {object} services.LevelOverrideResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/users/{user_id}/levels/{level_id}/progress [put]
func (h *ProgressHandler) SetLevelProgress(c *gin.Context) {
	userID, ok := ParseStringIDParam(c, "user_id")
	if !ok {
		return
	}
	levelID, ok := ParseIDParam(c, "level_id")
	if !ok {
		return
	}
	admin, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.SetLevelProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Detail: "Invalid request payload",
			Errors: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Setting level progress override",
		"target_user_id", userID, "level_id", levelID, "progress", req.Progress)

	resp, err := h.progressService.SetLevelProgress(c.Request.Context(), admin, userID, levelID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Router /admin/users/{user_id}/levels/{level_id}/progress [delete]
func (h *ProgressHandler) ClearLevelProgress(c *gin.Context) {
	userID, ok := ParseStringIDParam(c, "user_id")
	if !ok {
		return
	}
	levelID, ok := ParseIDParam(c, "level_id")
	if !ok {
		return
	}
	admin, ok := requireUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Clearing level progress override", "target_user_id", userID, "level_id", levelID)

	if err := h.progressService.ClearLevelProgress(c.Request.Context(), admin, userID, levelID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
