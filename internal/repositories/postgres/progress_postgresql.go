package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===== ENROLLMENTS =====

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

func (e *EnrollmentPostgreSQL) Exists(ctx context.Context, userID string, courseID uint) (bool, error) {
	var count int64
	if err := e.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (e *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.Enrollment) error {
	result := e.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(enrollment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrDuplicate
	}
	return nil
}

// ===== VIDEO AND LEVEL PROGRESS =====

type ProgressPostgreSQL struct {
	db *gorm.DB
}

func NewProgressPostgreSQL(db *gorm.DB) repositories.ProgressRepository {
	return &ProgressPostgreSQL{db: db}
}

func (p *ProgressPostgreSQL) CompleteVideo(ctx context.Context, userID string, videoID uint, at time.Time) (*models.UserVideoProgress, error) {
	progress := &models.UserVideoProgress{
		UserID:      userID,
		VideoID:     videoID,
		IsCompleted: true,
		CompletedAt: &at,
	}

	if err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_completed", "completed_at"}),
		}).
		Create(progress).Error; err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored row whether it was inserted or updated.
	var stored models.UserVideoProgress
	if err := p.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (p *ProgressPostgreSQL) CompletedVideoIDs(ctx context.Context, userID string, videoIDs []uint) (map[uint]bool, error) {
	completed := make(map[uint]bool, len(videoIDs))
	if len(videoIDs) == 0 {
		return completed, nil
	}

	var ids []uint
	if err := p.db.WithContext(ctx).
		Model(&models.UserVideoProgress{}).
		Where("user_id = ? AND video_id IN ? AND is_completed = ?", userID, videoIDs, true).
		Pluck("video_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

func (p *ProgressPostgreSQL) GetLevelProgress(ctx context.Context, userID string, levelID uint) (*models.UserLevelProgress, error) {
	var progress models.UserLevelProgress
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND course_level_id = ?", userID, levelID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (p *ProgressPostgreSQL) UpsertLevelProgress(ctx context.Context, progress *models.UserLevelProgress) error {
	if progress.UpdatedAt.IsZero() {
		progress.UpdatedAt = time.Now().UTC()
	}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_level_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"progress", "updated_at"}),
		}).
		Create(progress).Error
}

func (p *ProgressPostgreSQL) DeleteLevelProgress(ctx context.Context, userID string, levelID uint) error {
	return p.db.WithContext(ctx).
		Where("user_id = ? AND course_level_id = ?", userID, levelID).
		Delete(&models.UserLevelProgress{}).Error
}
