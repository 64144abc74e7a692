package postgres

import (
	"context"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"gorm.io/gorm"
)

// ===== COURSES =====

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (c *CoursePostgreSQL) List(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	if err := c.db.WithContext(ctx).Order("id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// ===== LEVELS =====

type LevelPostgreSQL struct {
	db *gorm.DB
}

func NewLevelPostgreSQL(db *gorm.DB) repositories.LevelRepository {
	return &LevelPostgreSQL{db: db}
}

func (l *LevelPostgreSQL) GetByID(ctx context.Context, id uint) (*models.CourseLevel, error) {
	var level models.CourseLevel
	if err := l.db.WithContext(ctx).First(&level, id).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (l *LevelPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.CourseLevel, error) {
	var levels []*models.CourseLevel
	if err := l.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Scopes(orderBySequence).
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// ===== VIDEOS =====

type VideoPostgreSQL struct {
	db *gorm.DB
}

func NewVideoPostgreSQL(db *gorm.DB) repositories.VideoRepository {
	return &VideoPostgreSQL{db: db}
}

func (v *VideoPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := v.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (v *VideoPostgreSQL) ListByLevel(ctx context.Context, levelID uint) ([]*models.Video, error) {
	var videos []*models.Video
	if err := v.db.WithContext(ctx).
		Where("level_id = ?", levelID).
		Scopes(orderBySequence).
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// ===== QUIZZES =====

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (q *QuizPostgreSQL) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).
		Preload("Questions", orderBySequence).
		Preload("Questions.Answers", orderByID).
		First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q *QuizPostgreSQL) ListByLevel(ctx context.Context, levelID uint) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	if err := q.db.WithContext(ctx).
		Where("level_id = ?", levelID).
		Scopes(orderBySequence).
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// ===== EXAMS =====

type ExamPostgreSQL struct {
	db *gorm.DB
}

func NewExamPostgreSQL(db *gorm.DB) repositories.ExamRepository {
	return &ExamPostgreSQL{db: db}
}

func (e *ExamPostgreSQL) GetByLevel(ctx context.Context, levelID uint) (*models.LevelExam, error) {
	var exam models.LevelExam
	if err := e.db.WithContext(ctx).Where("level_id = ?", levelID).First(&exam).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (e *ExamPostgreSQL) GetByLevelWithQuestions(ctx context.Context, levelID uint) (*models.LevelExam, error) {
	var exam models.LevelExam
	if err := e.db.WithContext(ctx).
		Preload("Questions", orderBySequence).
		Preload("Questions.Answers", orderByID).
		Where("level_id = ?", levelID).
		First(&exam).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}
