package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
)

type enrollmentService struct {
	repo   repositories.Repository
	events ProgressEventService
	log    *ServiceLogger
}

func NewEnrollmentService(repo repositories.Repository, events ProgressEventService, logger *slog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:   repo,
		events: events,
		log:    NewServiceLogger(logger, "enrollment"),
	}
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, userID string, courseID uint) (bool, error) {
	enrolled, err := s.repo.Enrollment().Exists(ctx, userID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return enrolled, nil
}

func (s *enrollmentService) Enroll(ctx context.Context, userID string, courseID uint) (resp *EnrollmentResponse, err error) {
	op := s.log.WithOperation(ctx, "enroll", userID)
	defer func() { op.LogResult(courseID, "course", err) }()

	if _, err = s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}
	if err = s.repo.Enrollment().Create(ctx, enrollment); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.events.EnrollmentCreated(ctx, enrollment)

	return &EnrollmentResponse{
		ID:         enrollment.ID,
		User:       enrollment.UserID,
		Course:     enrollment.CourseID,
		EnrolledAt: enrollment.EnrolledAt,
	}, nil
}

func (s *enrollmentService) RequireCourse(ctx context.Context, userID string, courseID uint) (*models.Course, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, userID, courseID, courseID, "course"); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *enrollmentService) RequireLevel(ctx context.Context, userID string, levelID uint) (*models.CourseLevel, error) {
	level, err := s.getLevel(ctx, levelID)
	if err != nil {
		return nil, err
	}
	if err := s.require(ctx, userID, level.CourseID, levelID, "level"); err != nil {
		return nil, err
	}
	return level, nil
}

func (s *enrollmentService) RequireVideo(ctx context.Context, userID string, videoID uint) (*models.Video, *models.CourseLevel, error) {
	video, err := s.repo.Video().GetByID(ctx, videoID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, ErrVideoNotFound
		}
		return nil, nil, fmt.Errorf("failed to get video: %w", err)
	}

	level, err := s.getLevel(ctx, video.LevelID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.require(ctx, userID, level.CourseID, videoID, "video"); err != nil {
		return nil, nil, err
	}
	return video, level, nil
}

// RequireQuiz loads the quiz with its questions and answers. A quiz whose
// owner no longer resolves to a course is not gated.
func (s *enrollmentService) RequireQuiz(ctx context.Context, userID string, quizID uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	courseID, ok, err := s.quizCourse(ctx, quiz)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Logger().WarnContext(ctx, "Quiz has no resolvable course, skipping enrollment check", "quiz_id", quizID)
		return quiz, nil
	}
	if err := s.require(ctx, userID, courseID, quizID, "quiz"); err != nil {
		return nil, err
	}
	return quiz, nil
}

// quizCourse follows video->level->course or level->course.
func (s *enrollmentService) quizCourse(ctx context.Context, quiz *models.Quiz) (uint, bool, error) {
	attachment, ok := quiz.Attachment()
	if !ok {
		return 0, false, nil
	}

	levelID := attachment.ID
	if attachment.Kind == models.AttachedToVideo {
		video, err := s.repo.Video().GetByID(ctx, attachment.ID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return 0, false, nil
			}
			return 0, false, fmt.Errorf("failed to get quiz video: %w", err)
		}
		levelID = video.LevelID
	}

	level, err := s.repo.Level().GetByID(ctx, levelID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get quiz level: %w", err)
	}
	return level.CourseID, true, nil
}

func (s *enrollmentService) require(ctx context.Context, userID string, courseID, resourceID uint, resource string) error {
	enrolled, err := s.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return NewPermissionError(userID, resourceID, resource, "access", ErrNotEnrolled)
	}
	return nil
}

func (s *enrollmentService) getCourse(ctx context.Context, courseID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *enrollmentService) getLevel(ctx context.Context, levelID uint) (*models.CourseLevel, error) {
	level, err := s.repo.Level().GetByID(ctx, levelID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to get level: %w", err)
	}
	return level, nil
}
