package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===== REPOSITORY MOCKS =====

type mockRepository struct {
	course     *mockCourseRepo
	level      *mockLevelRepo
	video      *mockVideoRepo
	quiz       *mockQuizRepo
	exam       *mockExamRepo
	enrollment *mockEnrollmentRepo
	progress   *mockProgressRepo
	attempt    *mockAttemptRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		course:     &mockCourseRepo{},
		level:      &mockLevelRepo{},
		video:      &mockVideoRepo{},
		quiz:       &mockQuizRepo{},
		exam:       &mockExamRepo{},
		enrollment: &mockEnrollmentRepo{},
		progress:   &mockProgressRepo{},
		attempt:    &mockAttemptRepo{},
	}
}

func (m *mockRepository) Course() repositories.CourseRepository         { return m.course }
func (m *mockRepository) Level() repositories.LevelRepository           { return m.level }
func (m *mockRepository) Video() repositories.VideoRepository           { return m.video }
func (m *mockRepository) Quiz() repositories.QuizRepository             { return m.quiz }
func (m *mockRepository) Exam() repositories.ExamRepository             { return m.exam }
func (m *mockRepository) Enrollment() repositories.EnrollmentRepository { return m.enrollment }
func (m *mockRepository) Progress() repositories.ProgressRepository     { return m.progress }
func (m *mockRepository) Attempt() repositories.AttemptRepository       { return m.attempt }

type mockCourseRepo struct{ mock.Mock }

func (m *mockCourseRepo) List(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	args := m.Called(ctx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

type mockLevelRepo struct{ mock.Mock }

func (m *mockLevelRepo) GetByID(ctx context.Context, id uint) (*models.CourseLevel, error) {
	args := m.Called(ctx, id)
	level, _ := args.Get(0).(*models.CourseLevel)
	return level, args.Error(1)
}

func (m *mockLevelRepo) ListByCourse(ctx context.Context, courseID uint) ([]*models.CourseLevel, error) {
	args := m.Called(ctx, courseID)
	levels, _ := args.Get(0).([]*models.CourseLevel)
	return levels, args.Error(1)
}

type mockVideoRepo struct{ mock.Mock }

func (m *mockVideoRepo) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*models.Video)
	return video, args.Error(1)
}

func (m *mockVideoRepo) ListByLevel(ctx context.Context, levelID uint) ([]*models.Video, error) {
	args := m.Called(ctx, levelID)
	videos, _ := args.Get(0).([]*models.Video)
	return videos, args.Error(1)
}

type mockQuizRepo struct{ mock.Mock }

func (m *mockQuizRepo) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

func (m *mockQuizRepo) ListByLevel(ctx context.Context, levelID uint) ([]*models.Quiz, error) {
	args := m.Called(ctx, levelID)
	quizzes, _ := args.Get(0).([]*models.Quiz)
	return quizzes, args.Error(1)
}

type mockExamRepo struct{ mock.Mock }

func (m *mockExamRepo) GetByLevel(ctx context.Context, levelID uint) (*models.LevelExam, error) {
	args := m.Called(ctx, levelID)
	exam, _ := args.Get(0).(*models.LevelExam)
	return exam, args.Error(1)
}

func (m *mockExamRepo) GetByLevelWithQuestions(ctx context.Context, levelID uint) (*models.LevelExam, error) {
	args := m.Called(ctx, levelID)
	exam, _ := args.Get(0).(*models.LevelExam)
	return exam, args.Error(1)
}

type mockEnrollmentRepo struct{ mock.Mock }

func (m *mockEnrollmentRepo) Exists(ctx context.Context, userID string, courseID uint) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

type mockProgressRepo struct{ mock.Mock }

func (m *mockProgressRepo) CompleteVideo(ctx context.Context, userID string, videoID uint, at time.Time) (*models.UserVideoProgress, error) {
	args := m.Called(ctx, userID, videoID, at)
	progress, _ := args.Get(0).(*models.UserVideoProgress)
	return progress, args.Error(1)
}

func (m *mockProgressRepo) CompletedVideoIDs(ctx context.Context, userID string, videoIDs []uint) (map[uint]bool, error) {
	args := m.Called(ctx, userID, videoIDs)
	completed, _ := args.Get(0).(map[uint]bool)
	return completed, args.Error(1)
}

func (m *mockProgressRepo) GetLevelProgress(ctx context.Context, userID string, levelID uint) (*models.UserLevelProgress, error) {
	args := m.Called(ctx, userID, levelID)
	progress, _ := args.Get(0).(*models.UserLevelProgress)
	return progress, args.Error(1)
}

func (m *mockProgressRepo) UpsertLevelProgress(ctx context.Context, progress *models.UserLevelProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *mockProgressRepo) DeleteLevelProgress(ctx context.Context, userID string, levelID uint) error {
	args := m.Called(ctx, userID, levelID)
	return args.Error(0)
}

type mockAttemptRepo struct{ mock.Mock }

func (m *mockAttemptRepo) CreateQuizAttempt(ctx context.Context, attempt *models.UserQuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *mockAttemptRepo) CreateExamAttempt(ctx context.Context, attempt *models.UserExamAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *mockAttemptRepo) PassedQuizIDs(ctx context.Context, userID string, quizIDs []uint) (map[uint]bool, error) {
	args := m.Called(ctx, userID, quizIDs)
	passed, _ := args.Get(0).(map[uint]bool)
	return passed, args.Error(1)
}

func (m *mockAttemptRepo) HasPassedExam(ctx context.Context, userID string, examID uint) (bool, error) {
	args := m.Called(ctx, userID, examID)
	return args.Bool(0), args.Error(1)
}

// ===== CACHE MOCK =====

type mockCache struct{ mock.Mock }

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) DeletePattern(ctx context.Context, pattern string) error {
	return m.Called(ctx, pattern).Error(0)
}
