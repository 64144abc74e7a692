package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/course-progress-service/internal/events"
	"github.com/SAP-F-2025/course-progress-service/internal/models"
)

// ProgressEventService announces ledger changes to other services.
// Publishing is best effort: failures are logged and never reach the caller.
type ProgressEventService interface {
	EnrollmentCreated(ctx context.Context, enrollment *models.Enrollment)
	VideoCompleted(ctx context.Context, progress *models.UserVideoProgress, levelID uint)
	QuizSubmitted(ctx context.Context, attempt *models.UserQuizAttempt)
	// ExamSubmitted also announces the unlocked level, or course completion
	// when a passed exam had no next level.
	ExamSubmitted(ctx context.Context, attempt *models.UserExamAttempt, level *models.CourseLevel, next *models.CourseLevel)
}

type progressEventService struct {
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewProgressEventService(publisher events.EventPublisher, logger *slog.Logger) ProgressEventService {
	return &progressEventService{
		publisher: publisher,
		logger:    logger,
	}
}

func (s *progressEventService) EnrollmentCreated(ctx context.Context, enrollment *models.Enrollment) {
	s.publish(ctx, events.NewEnrollmentCreatedEvent(
		enrollment.UserID,
		enrollment.ID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
	))
}

func (s *progressEventService) VideoCompleted(ctx context.Context, progress *models.UserVideoProgress, levelID uint) {
	if progress.CompletedAt == nil {
		return
	}
	s.publish(ctx, events.NewVideoCompletedEvent(
		progress.UserID,
		progress.VideoID,
		levelID,
		*progress.CompletedAt,
	))
}

func (s *progressEventService) QuizSubmitted(ctx context.Context, attempt *models.UserQuizAttempt) {
	s.publish(ctx, events.NewQuizSubmittedEvent(
		attempt.UserID,
		attempt.ID,
		attempt.QuizID,
		attempt.Score,
		attempt.Passed,
	))
}

func (s *progressEventService) ExamSubmitted(ctx context.Context, attempt *models.UserExamAttempt, level *models.CourseLevel, next *models.CourseLevel) {
	s.publish(ctx, events.NewExamSubmittedEvent(
		attempt.UserID,
		attempt.ID,
		attempt.ExamID,
		level.ID,
		attempt.Score,
		attempt.Passed,
	))

	if !attempt.Passed {
		return
	}
	if next != nil {
		s.publish(ctx, events.NewLevelUnlockedEvent(attempt.UserID, level.CourseID, level.ID, next.ID, next.Name, next.Order))
		return
	}
	s.publish(ctx, events.NewCourseCompletedEvent(attempt.UserID, level.CourseID, level.ID))
}

func (s *progressEventService) publish(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish progress event",
			"event_id", event.ID,
			"event_type", event.Type,
			"user_id", event.UserID,
			"error", err)
	}
}
