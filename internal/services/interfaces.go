package services

import (
	"context"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
)

// EnrollmentService is the gate in front of every level, video, quiz and
// exam operation.
type EnrollmentService interface {
	IsEnrolled(ctx context.Context, userID string, courseID uint) (bool, error)
	Enroll(ctx context.Context, userID string, courseID uint) (*EnrollmentResponse, error)

	// Require* resolve the owning course of a resource and fail with a
	// *PermissionError when the user is not enrolled in it.
	RequireCourse(ctx context.Context, userID string, courseID uint) (*models.Course, error)
	RequireLevel(ctx context.Context, userID string, levelID uint) (*models.CourseLevel, error)
	RequireVideo(ctx context.Context, userID string, videoID uint) (*models.Video, *models.CourseLevel, error)
	RequireQuiz(ctx context.Context, userID string, quizID uint) (*models.Quiz, error)
}

type CourseService interface {
	ListCourses(ctx context.Context) ([]CourseResponse, error)
	ListLevels(ctx context.Context, userID string, courseID uint) ([]LevelProgressResponse, error)
}

type VideoService interface {
	ListVideos(ctx context.Context, userID string, levelID uint) ([]VideoLockResponse, error)
	GetVideo(ctx context.Context, userID string, videoID uint) (*VideoResponse, error)
	CompleteVideo(ctx context.Context, userID string, videoID uint) (*CompleteVideoResponse, error)
}

type AssessmentService interface {
	GetQuiz(ctx context.Context, userID string, quizID uint) (*QuizView, error)
	SubmitQuiz(ctx context.Context, userID string, quizID uint, req *SubmitAnswersRequest) (*SubmitResult, error)
	GetExam(ctx context.Context, userID string, levelID uint) (*ExamView, error)
	SubmitExam(ctx context.Context, userID string, levelID uint, req *SubmitAnswersRequest) (*SubmitResult, error)
}

// ProgressAdminService manages manual level percentage overrides.
type ProgressAdminService interface {
	SetLevelProgress(ctx context.Context, admin models.User, userID string, levelID uint, req *SetLevelProgressRequest) (*LevelOverrideResponse, error)
	ClearLevelProgress(ctx context.Context, admin models.User, userID string, levelID uint) error
}

type ReportService interface {
	// ExportCourseProgress returns an xlsx workbook of the user's progress.
	ExportCourseProgress(ctx context.Context, userID string, courseID uint) ([]byte, error)
}

type ServiceManager interface {
	Enrollment() EnrollmentService
	Course() CourseService
	Video() VideoService
	Assessment() AssessmentService
	ProgressAdmin() ProgressAdminService
	Report() ReportService
}
