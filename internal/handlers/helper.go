package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// ParseIDParam reads a positive integer path parameter. On failure it
// writes a 400 response and returns false.
func ParseIDParam(c *gin.Context, param string) (uint, bool) {
	idStr := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Detail: "Invalid " + param,
		})
		return 0, false
	}
	return uint(id), true
}

// ParseStringIDParam reads a non-empty string path parameter.
func ParseStringIDParam(c *gin.Context, param string) (string, bool) {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Detail: "Invalid " + param,
		})
		return "", false
	}
	return idStr, true
}

func currentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// requireUser writes a 401 when no authenticated user is attached.
func requireUser(c *gin.Context) (models.User, bool) {
	user, ok := currentUser(c)
	if !ok || user.ID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: "Authentication credentials were not provided."})
		return models.User{}, false
	}
	return user, true
}
