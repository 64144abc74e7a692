package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/course-progress-service/internal/services"
	"github.com/SAP-F-2025/course-progress-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	BaseHandler
	videoService services.VideoService
}

func NewVideoHandler(videoService services.VideoService, logger utils.Logger) *VideoHandler {
	return &VideoHandler{
		BaseHandler:  NewBaseHandler(logger),
		videoService: videoService,
	}
}

// ListVideos lists a level's videos in order with their lock flags.
// @Router /levels/{level_id}/videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	levelID, ok := ParseIDParam(c, "level_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	videos, err := h.videoService.ListVideos(c.Request.Context(), user.ID, levelID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// @Router /videos/{video_id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID, ok := ParseIDParam(c, "video_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	video, err := h.videoService.GetVideo(c.Request.Context(), user.ID, videoID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// CompleteVideo marks a video as watched. Repeating it is harmless.
// @Router /videos/{video_id}/complete [post]
func (h *VideoHandler) CompleteVideo(c *gin.Context) {
	videoID, ok := ParseIDParam(c, "video_id")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Completing video", "video_id", videoID)

	resp, err := h.videoService.CompleteVideo(c.Request.Context(), user.ID, videoID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
