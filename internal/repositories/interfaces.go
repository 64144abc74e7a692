package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDuplicate is returned when a create would violate a uniqueness key.
	ErrDuplicate = errors.New("record already exists")
)

// IsNotFoundError reports whether err means the requested row does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Repository groups the per-entity repositories used by the services.
type Repository interface {
	Course() CourseRepository
	Level() LevelRepository
	Video() VideoRepository
	Quiz() QuizRepository
	Exam() ExamRepository
	Enrollment() EnrollmentRepository
	Progress() ProgressRepository
	Attempt() AttemptRepository
}

// ===== CATALOG =====

type CourseRepository interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id uint) (*models.Course, error)
}

type LevelRepository interface {
	GetByID(ctx context.Context, id uint) (*models.CourseLevel, error)
	// ListByCourse returns the course's levels ordered by Order ascending.
	ListByCourse(ctx context.Context, courseID uint) ([]*models.CourseLevel, error)
}

type VideoRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	// ListByLevel returns the level's videos ordered by Order ascending.
	ListByLevel(ctx context.Context, levelID uint) ([]*models.Video, error)
}

type QuizRepository interface {
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) // questions and answers in order
	// ListByLevel returns quizzes attached directly to the level, not those of its videos.
	ListByLevel(ctx context.Context, levelID uint) ([]*models.Quiz, error)
}

type ExamRepository interface {
	GetByLevel(ctx context.Context, levelID uint) (*models.LevelExam, error)
	GetByLevelWithQuestions(ctx context.Context, levelID uint) (*models.LevelExam, error)
}

// ===== LEDGER =====

type EnrollmentRepository interface {
	Exists(ctx context.Context, userID string, courseID uint) (bool, error)
	// Create inserts the enrollment or returns ErrDuplicate if the pair is
	// already enrolled. The check and insert are a single statement.
	Create(ctx context.Context, enrollment *models.Enrollment) error
}

type ProgressRepository interface {
	// CompleteVideo marks the video completed for the user, creating the row
	// on first call and refreshing completed_at on later calls.
	CompleteVideo(ctx context.Context, userID string, videoID uint, at time.Time) (*models.UserVideoProgress, error)
	CompletedVideoIDs(ctx context.Context, userID string, videoIDs []uint) (map[uint]bool, error)

	// GetLevelProgress returns nil, nil when no override exists.
	GetLevelProgress(ctx context.Context, userID string, levelID uint) (*models.UserLevelProgress, error)
	UpsertLevelProgress(ctx context.Context, progress *models.UserLevelProgress) error
	DeleteLevelProgress(ctx context.Context, userID string, levelID uint) error
}

type AttemptRepository interface {
	CreateQuizAttempt(ctx context.Context, attempt *models.UserQuizAttempt) error
	CreateExamAttempt(ctx context.Context, attempt *models.UserExamAttempt) error
	// PassedQuizIDs returns the quizzes among quizIDs with at least one passing attempt.
	PassedQuizIDs(ctx context.Context, userID string, quizIDs []uint) (map[uint]bool, error)
	HasPassedExam(ctx context.Context, userID string, examID uint) (bool, error)
}
