package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/services"
	"github.com/SAP-F-2025/course-progress-service/internal/utils"
	"github.com/SAP-F-2025/course-progress-service/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type mockServices struct {
	enrollment *mockEnrollmentService
	course     *mockCourseService
	video      *mockVideoService
	assessment *mockAssessmentService
	progress   *mockProgressAdminService
	report     *mockReportService
}

func newMockServices() *mockServices {
	return &mockServices{
		enrollment: &mockEnrollmentService{},
		course:     &mockCourseService{},
		video:      &mockVideoService{},
		assessment: &mockAssessmentService{},
		progress:   &mockProgressAdminService{},
		report:     &mockReportService{},
	}
}

func (m *mockServices) Enrollment() services.EnrollmentService       { return m.enrollment }
func (m *mockServices) Course() services.CourseService               { return m.course }
func (m *mockServices) Video() services.VideoService                 { return m.video }
func (m *mockServices) Assessment() services.AssessmentService       { return m.assessment }
func (m *mockServices) ProgressAdmin() services.ProgressAdminService { return m.progress }
func (m *mockServices) Report() services.ReportService               { return m.report }

// newTestRouter wires the real routes in header identity mode.
func newTestRouter(svc *mockServices, parser TokenParser) *gin.Engine {
	router := gin.New()
	NewHandlerManager(svc, parser, validator.New(), testLogger()).SetupRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, userID, role, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}
	if role != "" {
		req.Header.Set(userRoleHeader, role)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ===== SERVICE MOCKS =====

type mockEnrollmentService struct{ mock.Mock }

func (m *mockEnrollmentService) IsEnrolled(ctx context.Context, userID string, courseID uint) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEnrollmentService) Enroll(ctx context.Context, userID string, courseID uint) (*services.EnrollmentResponse, error) {
	args := m.Called(ctx, userID, courseID)
	resp, _ := args.Get(0).(*services.EnrollmentResponse)
	return resp, args.Error(1)
}

func (m *mockEnrollmentService) RequireCourse(ctx context.Context, userID string, courseID uint) (*models.Course, error) {
	args := m.Called(ctx, userID, courseID)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *mockEnrollmentService) RequireLevel(ctx context.Context, userID string, levelID uint) (*models.CourseLevel, error) {
	args := m.Called(ctx, userID, levelID)
	level, _ := args.Get(0).(*models.CourseLevel)
	return level, args.Error(1)
}

func (m *mockEnrollmentService) RequireVideo(ctx context.Context, userID string, videoID uint) (*models.Video, *models.CourseLevel, error) {
	args := m.Called(ctx, userID, videoID)
	video, _ := args.Get(0).(*models.Video)
	level, _ := args.Get(1).(*models.CourseLevel)
	return video, level, args.Error(2)
}

func (m *mockEnrollmentService) RequireQuiz(ctx context.Context, userID string, quizID uint) (*models.Quiz, error) {
	args := m.Called(ctx, userID, quizID)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

type mockCourseService struct{ mock.Mock }

func (m *mockCourseService) ListCourses(ctx context.Context) ([]services.CourseResponse, error) {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]services.CourseResponse)
	return courses, args.Error(1)
}

func (m *mockCourseService) ListLevels(ctx context.Context, userID string, courseID uint) ([]services.LevelProgressResponse, error) {
	args := m.Called(ctx, userID, courseID)
	levels, _ := args.Get(0).([]services.LevelProgressResponse)
	return levels, args.Error(1)
}

type mockVideoService struct{ mock.Mock }

func (m *mockVideoService) ListVideos(ctx context.Context, userID string, levelID uint) ([]services.VideoLockResponse, error) {
	args := m.Called(ctx, userID, levelID)
	videos, _ := args.Get(0).([]services.VideoLockResponse)
	return videos, args.Error(1)
}

func (m *mockVideoService) GetVideo(ctx context.Context, userID string, videoID uint) (*services.VideoResponse, error) {
	args := m.Called(ctx, userID, videoID)
	video, _ := args.Get(0).(*services.VideoResponse)
	return video, args.Error(1)
}

func (m *mockVideoService) CompleteVideo(ctx context.Context, userID string, videoID uint) (*services.CompleteVideoResponse, error) {
	args := m.Called(ctx, userID, videoID)
	resp, _ := args.Get(0).(*services.CompleteVideoResponse)
	return resp, args.Error(1)
}

type mockAssessmentService struct{ mock.Mock }

func (m *mockAssessmentService) GetQuiz(ctx context.Context, userID string, quizID uint) (*services.QuizView, error) {
	args := m.Called(ctx, userID, quizID)
	quiz, _ := args.Get(0).(*services.QuizView)
	return quiz, args.Error(1)
}

func (m *mockAssessmentService) SubmitQuiz(ctx context.Context, userID string, quizID uint, req *services.SubmitAnswersRequest) (*services.SubmitResult, error) {
	args := m.Called(ctx, userID, quizID, req)
	result, _ := args.Get(0).(*services.SubmitResult)
	return result, args.Error(1)
}

func (m *mockAssessmentService) GetExam(ctx context.Context, userID string, levelID uint) (*services.ExamView, error) {
	args := m.Called(ctx, userID, levelID)
	exam, _ := args.Get(0).(*services.ExamView)
	return exam, args.Error(1)
}

func (m *mockAssessmentService) SubmitExam(ctx context.Context, userID string, levelID uint, req *services.SubmitAnswersRequest) (*services.SubmitResult, error) {
	args := m.Called(ctx, userID, levelID, req)
	result, _ := args.Get(0).(*services.SubmitResult)
	return result, args.Error(1)
}

type mockProgressAdminService struct{ mock.Mock }

func (m *mockProgressAdminService) SetLevelProgress(ctx context.Context, admin models.User, userID string, levelID uint, req *services.SetLevelProgressRequest) (*services.LevelOverrideResponse, error) {
	args := m.Called(ctx, admin, userID, levelID, req)
	resp, _ := args.Get(0).(*services.LevelOverrideResponse)
	return resp, args.Error(1)
}

func (m *mockProgressAdminService) ClearLevelProgress(ctx context.Context, admin models.User, userID string, levelID uint) error {
	return m.Called(ctx, admin, userID, levelID).Error(0)
}

type mockReportService struct{ mock.Mock }

func (m *mockReportService) ExportCourseProgress(ctx context.Context, userID string, courseID uint) ([]byte, error) {
	args := m.Called(ctx, userID, courseID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
