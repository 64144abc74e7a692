package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func uintPtr(v uint) *uint { return &v }

// seedCourse creates one course with two levels. The Beginner level has two
// videos, one level quiz with two questions and an exam.
func seedCourse(t *testing.T, db *gorm.DB) (models.Course, []models.CourseLevel) {
	t.Helper()

	course := models.Course{Title: "Go", Description: "Learn Go"}
	require.NoError(t, db.Create(&course).Error)

	levels := []models.CourseLevel{
		{CourseID: course.ID, Name: "Intermediate", Order: 20},
		{CourseID: course.ID, Name: "Beginner", Order: 10},
	}
	require.NoError(t, db.Create(&levels).Error)
	beginner := levels[1]

	videos := []models.Video{
		{LevelID: beginner.ID, Title: "Second", Order: 2},
		{LevelID: beginner.ID, Title: "First", Order: 1},
	}
	require.NoError(t, db.Create(&videos).Error)

	quiz := models.Quiz{
		LevelID:      uintPtr(beginner.ID),
		PassingScore: 50,
		Order:        1,
		Questions: []models.QuizQuestion{
			{QuestionText: "q2", Order: 2, Answers: []models.QuizAnswer{{AnswerText: "a", IsCorrect: true}}},
			{QuestionText: "q1", Order: 1, Answers: []models.QuizAnswer{{AnswerText: "b"}, {AnswerText: "c", IsCorrect: true}}},
		},
	}
	require.NoError(t, db.Create(&quiz).Error)

	videoQuiz := models.Quiz{VideoID: uintPtr(videos[1].ID), PassingScore: 100, Order: 1}
	require.NoError(t, db.Create(&videoQuiz).Error)

	exam := models.LevelExam{
		LevelID:      beginner.ID,
		PassingScore: 70,
		Questions: []models.ExamQuestion{
			{QuestionText: "e1", Order: 1, Answers: []models.ExamAnswer{{AnswerText: "x", IsCorrect: true}}},
		},
	}
	require.NoError(t, db.Create(&exam).Error)

	return course, levels
}

func TestCatalogRepositories(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	course, _ := seedCourse(t, db)

	courses, err := repo.Course().List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)

	_, err = repo.Course().GetByID(ctx, course.ID+100)
	assert.True(t, repositories.IsNotFoundError(err))

	levels, err := repo.Level().ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "Beginner", levels[0].Name)
	assert.Equal(t, "Intermediate", levels[1].Name)

	videos, err := repo.Video().ListByLevel(ctx, levels[0].ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "First", videos[0].Title)

	quizzes, err := repo.Quiz().ListByLevel(ctx, levels[0].ID)
	require.NoError(t, err)
	require.Len(t, quizzes, 1, "video quizzes are not level quizzes")

	quiz, err := repo.Quiz().GetByIDWithQuestions(ctx, quizzes[0].ID)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, "q1", quiz.Questions[0].QuestionText)
	assert.Len(t, quiz.Questions[0].Answers, 2)

	exam, err := repo.Exam().GetByLevelWithQuestions(ctx, levels[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 70, exam.PassingScore)
	assert.Len(t, exam.Questions, 1)

	_, err = repo.Exam().GetByLevel(ctx, levels[1].ID)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestEnrollment_DuplicateIsRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	course, _ := seedCourse(t, db)

	enrolled, err := repo.Enrollment().Exists(ctx, "user-1", course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	first := &models.Enrollment{UserID: "user-1", CourseID: course.ID, EnrolledAt: time.Now()}
	require.NoError(t, repo.Enrollment().Create(ctx, first))
	assert.NotZero(t, first.ID)

	second := &models.Enrollment{UserID: "user-1", CourseID: course.ID, EnrolledAt: time.Now()}
	assert.ErrorIs(t, repo.Enrollment().Create(ctx, second), repositories.ErrDuplicate)

	enrolled, err = repo.Enrollment().Exists(ctx, "user-1", course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompleteVideo_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	_, levels := seedCourse(t, db)

	videos, err := repo.Video().ListByLevel(ctx, levels[1].ID)
	require.NoError(t, err)
	videoID := videos[0].ID

	firstAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	progress, err := repo.Progress().CompleteVideo(ctx, "user-1", videoID, firstAt)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)

	secondAt := firstAt.Add(time.Hour)
	progress, err = repo.Progress().CompleteVideo(ctx, "user-1", videoID, secondAt)
	require.NoError(t, err)
	require.NotNil(t, progress.CompletedAt)
	assert.True(t, progress.CompletedAt.Equal(secondAt))

	var count int64
	require.NoError(t, db.Model(&models.UserVideoProgress{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	completed, err := repo.Progress().CompletedVideoIDs(ctx, "user-1", []uint{videoID, videos[1].ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{videoID: true}, completed)

	completed, err = repo.Progress().CompletedVideoIDs(ctx, "user-2", nil)
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestLevelProgressOverride(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	_, levels := seedCourse(t, db)
	levelID := levels[1].ID

	override, err := repo.Progress().GetLevelProgress(ctx, "user-1", levelID)
	require.NoError(t, err)
	assert.Nil(t, override)

	require.NoError(t, repo.Progress().UpsertLevelProgress(ctx, &models.UserLevelProgress{
		UserID: "user-1", CourseLevelID: levelID, Progress: 40,
	}))
	require.NoError(t, repo.Progress().UpsertLevelProgress(ctx, &models.UserLevelProgress{
		UserID: "user-1", CourseLevelID: levelID, Progress: 80,
	}))

	override, err = repo.Progress().GetLevelProgress(ctx, "user-1", levelID)
	require.NoError(t, err)
	require.NotNil(t, override)
	assert.Equal(t, 80, override.Progress)

	var count int64
	require.NoError(t, db.Model(&models.UserLevelProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Progress().DeleteLevelProgress(ctx, "user-1", levelID))
	override, err = repo.Progress().GetLevelProgress(ctx, "user-1", levelID)
	require.NoError(t, err)
	assert.Nil(t, override)
}

func TestAttempts(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	_, levels := seedCourse(t, db)

	quizzes, err := repo.Quiz().ListByLevel(ctx, levels[1].ID)
	require.NoError(t, err)
	quizID := quizzes[0].ID

	for _, passed := range []bool{false, true, true} {
		require.NoError(t, repo.Attempt().CreateQuizAttempt(ctx, &models.UserQuizAttempt{
			UserID: "user-1", QuizID: quizID, Score: 50, Passed: passed, AttemptedAt: time.Now(),
		}))
	}

	var count int64
	require.NoError(t, db.Model(&models.UserQuizAttempt{}).Count(&count).Error)
	assert.Equal(t, int64(3), count, "attempts are never merged")

	passed, err := repo.Attempt().PassedQuizIDs(ctx, "user-1", []uint{quizID, quizID + 99})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{quizID: true}, passed)

	passed, err = repo.Attempt().PassedQuizIDs(ctx, "user-2", []uint{quizID})
	require.NoError(t, err)
	assert.Empty(t, passed)

	exam, err := repo.Exam().GetByLevel(ctx, levels[1].ID)
	require.NoError(t, err)

	ok, err := repo.Attempt().HasPassedExam(ctx, "user-1", exam.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Attempt().CreateExamAttempt(ctx, &models.UserExamAttempt{
		UserID: "user-1", ExamID: exam.ID, Score: 100, Passed: true, AttemptedAt: time.Now(),
	}))
	ok, err = repo.Attempt().HasPassedExam(ctx, "user-1", exam.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
