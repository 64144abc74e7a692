package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/progression"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
)

const videoCompletedDetail = "Video marked as completed."

type videoService struct {
	repo   repositories.Repository
	gate   EnrollmentService
	events ProgressEventService
	log    *ServiceLogger
	now    func() time.Time
}

func NewVideoService(repo repositories.Repository, gate EnrollmentService, events ProgressEventService, logger *slog.Logger) VideoService {
	return &videoService{
		repo:   repo,
		gate:   gate,
		events: events,
		log:    NewServiceLogger(logger, "video"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *videoService) ListVideos(ctx context.Context, userID string, levelID uint) (resp []VideoLockResponse, err error) {
	op := s.log.WithOperation(ctx, "list_videos", userID)
	defer func() { op.LogResult(levelID, "level", err) }()

	if _, err = s.gate.RequireLevel(ctx, userID, levelID); err != nil {
		return nil, err
	}

	videoPtrs, err := s.repo.Video().ListByLevel(ctx, levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	videos := make([]models.Video, 0, len(videoPtrs))
	ids := make([]uint, 0, len(videoPtrs))
	for _, v := range videoPtrs {
		videos = append(videos, *v)
		ids = append(ids, v.ID)
	}

	completed, err := s.repo.Progress().CompletedVideoIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed videos: %w", err)
	}

	locks := progression.LockStates(videos, completed)
	resp = make([]VideoLockResponse, 0, len(locks))
	for _, lock := range locks {
		resp = append(resp, VideoLockResponse{
			VideoResponse: toVideoResponse(lock.Video),
			IsLocked:      lock.IsLocked,
		})
	}
	return resp, nil
}

func (s *videoService) GetVideo(ctx context.Context, userID string, videoID uint) (*VideoResponse, error) {
	video, _, err := s.gate.RequireVideo(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}
	resp := toVideoResponse(*video)
	return &resp, nil
}

// CompleteVideo is idempotent; a repeat call refreshes the completion time.
func (s *videoService) CompleteVideo(ctx context.Context, userID string, videoID uint) (resp *CompleteVideoResponse, err error) {
	op := s.log.WithOperation(ctx, "complete_video", userID)
	defer func() { op.LogResult(videoID, "video", err) }()

	video, level, err := s.gate.RequireVideo(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	progress, err := s.repo.Progress().CompleteVideo(ctx, userID, video.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to complete video: %w", err)
	}

	s.events.VideoCompleted(ctx, progress, level.ID)

	resp = &CompleteVideoResponse{
		Detail:  videoCompletedDetail,
		VideoID: video.ID,
	}
	if progress.CompletedAt != nil {
		resp.CompletedAt = *progress.CompletedAt
	}
	return resp, nil
}
