package postgres

import (
	"context"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"gorm.io/gorm"
)

// AttemptPostgreSQL stores quiz and exam attempts. Attempts are append-only;
// there is no update or delete.
type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a *AttemptPostgreSQL) CreateQuizAttempt(ctx context.Context, attempt *models.UserQuizAttempt) error {
	return a.db.WithContext(ctx).Create(attempt).Error
}

func (a *AttemptPostgreSQL) CreateExamAttempt(ctx context.Context, attempt *models.UserExamAttempt) error {
	return a.db.WithContext(ctx).Create(attempt).Error
}

func (a *AttemptPostgreSQL) PassedQuizIDs(ctx context.Context, userID string, quizIDs []uint) (map[uint]bool, error) {
	passed := make(map[uint]bool, len(quizIDs))
	if len(quizIDs) == 0 {
		return passed, nil
	}

	var ids []uint
	if err := a.db.WithContext(ctx).
		Model(&models.UserQuizAttempt{}).
		Distinct("quiz_id").
		Where("user_id = ? AND quiz_id IN ? AND passed = ?", userID, quizIDs, true).
		Pluck("quiz_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		passed[id] = true
	}
	return passed, nil
}

func (a *AttemptPostgreSQL) HasPassedExam(ctx context.Context, userID string, examID uint) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.UserExamAttempt{}).
		Where("user_id = ? AND exam_id = ? AND passed = ?", userID, examID, true).
		Count(&count).Error
	return count > 0, err
}
