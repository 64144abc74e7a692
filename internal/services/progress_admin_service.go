package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"github.com/SAP-F-2025/course-progress-service/internal/validator"
)

type progressAdminService struct {
	repo      repositories.Repository
	validator *validator.Validator
	log       *ServiceLogger
	now       func() time.Time
}

func NewProgressAdminService(repo repositories.Repository, validator *validator.Validator, logger *slog.Logger) ProgressAdminService {
	return &progressAdminService{
		repo:      repo,
		validator: validator,
		log:       NewServiceLogger(logger, "progress_admin"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetLevelProgress stores an override that replaces the derived percentage
// for (userID, levelID). Repeated calls update the same row.
func (s *progressAdminService) SetLevelProgress(ctx context.Context, admin models.User, userID string, levelID uint, req *SetLevelProgressRequest) (resp *LevelOverrideResponse, err error) {
	op := s.log.WithOperation(ctx, "set_level_progress", admin.ID)
	defer func() { op.LogResult(levelID, "level", err) }()

	if err = s.requireAdmin(admin, levelID); err != nil {
		return nil, err
	}
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err = s.ensureLevel(ctx, levelID); err != nil {
		return nil, err
	}

	override := &models.UserLevelProgress{
		UserID:        userID,
		CourseLevelID: levelID,
		Progress:      req.Progress,
		UpdatedAt:     s.now(),
	}
	if err = s.repo.Progress().UpsertLevelProgress(ctx, override); err != nil {
		return nil, fmt.Errorf("failed to save level progress: %w", err)
	}

	return &LevelOverrideResponse{
		User:      userID,
		Level:     levelID,
		Progress:  override.Progress,
		UpdatedAt: override.UpdatedAt,
	}, nil
}

// ClearLevelProgress removes the override; clearing a missing one is a no-op.
func (s *progressAdminService) ClearLevelProgress(ctx context.Context, admin models.User, userID string, levelID uint) (err error) {
	op := s.log.WithOperation(ctx, "clear_level_progress", admin.ID)
	defer func() { op.LogResult(levelID, "level", err) }()

	if err = s.requireAdmin(admin, levelID); err != nil {
		return err
	}
	if err = s.ensureLevel(ctx, levelID); err != nil {
		return err
	}
	if err = s.repo.Progress().DeleteLevelProgress(ctx, userID, levelID); err != nil {
		return fmt.Errorf("failed to clear level progress: %w", err)
	}
	return nil
}

func (s *progressAdminService) requireAdmin(admin models.User, levelID uint) error {
	if !admin.IsAdmin() {
		return NewPermissionError(admin.ID, levelID, "level_progress", "override", ErrInsufficientRole)
	}
	return nil
}

func (s *progressAdminService) ensureLevel(ctx context.Context, levelID uint) error {
	if _, err := s.repo.Level().GetByID(ctx, levelID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrLevelNotFound
		}
		return fmt.Errorf("failed to get level: %w", err)
	}
	return nil
}
