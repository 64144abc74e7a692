package handlers

import (
	"slices"

	"github.com/SAP-F-2025/course-progress-service/internal/services"
	"github.com/SAP-F-2025/course-progress-service/internal/utils"
	"github.com/SAP-F-2025/course-progress-service/internal/validator"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	courseHandler     *CourseHandler
	videoHandler      *VideoHandler
	assessmentHandler *AssessmentHandler
	progressHandler   *ProgressHandler

	auth gin.HandlerFunc
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokenParser TokenParser,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		courseHandler: NewCourseHandler(
			serviceManager.Course(),
			serviceManager.Enrollment(),
			serviceManager.Report(),
			logger,
		),
		videoHandler:      NewVideoHandler(serviceManager.Video(), logger),
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), logger),
		progressHandler:   NewProgressHandler(serviceManager.ProgressAdmin(), logger),
		auth:              AuthMiddleware(tokenParser, validator, logger),
	}
}

// CORSMiddleware allows every origin when allowedOrigins is empty or "*".
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", userIDHeader, userRoleHeader, "X-Request-ID"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.ExposeHeaders = []string{"Content-Disposition", "X-Request-ID"}
	return cors.New(config)
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(hm.auth)
	{
		courses := v1.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.POST("/:course_id/enroll", hm.courseHandler.Enroll)
			courses.GET("/:course_id/levels", hm.courseHandler.ListLevels)
			courses.GET("/:course_id/progress/export", hm.courseHandler.ExportProgress)
		}

		levels := v1.Group("/levels")
		{
			levels.GET("/:level_id/videos", hm.videoHandler.ListVideos)
			levels.GET("/:level_id/exam", hm.assessmentHandler.GetExam)
			levels.POST("/:level_id/exam/submit", hm.assessmentHandler.SubmitExam)
		}

		videos := v1.Group("/videos")
		{
			videos.GET("/:video_id", hm.videoHandler.GetVideo)
			videos.POST("/:video_id/complete", hm.videoHandler.CompleteVideo)
		}

		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("/:quiz_id", hm.assessmentHandler.GetQuiz)
			quizzes.POST("/:quiz_id/submit", hm.assessmentHandler.SubmitQuiz)
		}

		// Role checks happen in ProgressAdminService.
		admin := v1.Group("/admin")
		{
			admin.PUT("/users/:user_id/levels/:level_id/progress", hm.progressHandler.SetLevelProgress)
			admin.DELETE("/users/:user_id/levels/:level_id/progress", hm.progressHandler.ClearLevelProgress)
		}
	}
}
