package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/cache"
	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/progression"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
)

type courseService struct {
	repo     repositories.Repository
	gate     EnrollmentService
	cache    cache.CacheService
	cacheTTL time.Duration
	log      *ServiceLogger
}

// NewCourseService builds the course service. cacheService may be nil, in
// which case every listing reads the database.
func NewCourseService(repo repositories.Repository, gate EnrollmentService, cacheService cache.CacheService, cacheTTL time.Duration, logger *slog.Logger) CourseService {
	return &courseService{
		repo:     repo,
		gate:     gate,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		log:      NewServiceLogger(logger, "course"),
	}
}

func (s *courseService) ListCourses(ctx context.Context) ([]CourseResponse, error) {
	if s.cache != nil {
		var cached []CourseResponse
		err := s.cache.Get(ctx, cache.CourseListKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Logger().WarnContext(ctx, "Course cache unavailable, reading database", "error", err)
		}
	}

	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	resp := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, toCourseResponse(course))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.CourseListKey, resp, s.cacheTTL); err != nil {
			s.log.Logger().WarnContext(ctx, "Failed to cache course list", "error", err)
		}
	}
	return resp, nil
}

func (s *courseService) ListLevels(ctx context.Context, userID string, courseID uint) (resp []LevelProgressResponse, err error) {
	op := s.log.WithOperation(ctx, "list_levels", userID)
	defer func() { op.LogResult(courseID, "course", err) }()

	if _, err = s.gate.RequireCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}

	levels, err := s.repo.Level().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	resp = make([]LevelProgressResponse, 0, len(levels))
	for _, level := range levels {
		percentage, perr := levelPercentage(ctx, s.repo, userID, level.ID)
		if perr != nil {
			err = perr
			return nil, err
		}
		resp = append(resp, LevelProgressResponse{
			ID:                 level.ID,
			Course:             level.CourseID,
			Name:               level.Name,
			Order:              level.Order,
			ProgressPercentage: percentage,
		})
	}
	return resp, nil
}

// levelPercentage loads what the resolver needs for one level. The override
// short-circuits the quiz lookups.
func levelPercentage(ctx context.Context, repo repositories.Repository, userID string, levelID uint) (int, error) {
	override, err := repo.Progress().GetLevelProgress(ctx, userID, levelID)
	if err != nil {
		return 0, fmt.Errorf("failed to get level progress: %w", err)
	}
	if override != nil {
		return progression.LevelPercentage(override, nil, nil), nil
	}

	quizPtrs, err := repo.Quiz().ListByLevel(ctx, levelID)
	if err != nil {
		return 0, fmt.Errorf("failed to list level quizzes: %w", err)
	}
	if len(quizPtrs) == 0 {
		return 0, nil
	}

	quizzes := make([]models.Quiz, 0, len(quizPtrs))
	ids := make([]uint, 0, len(quizPtrs))
	for _, q := range quizPtrs {
		quizzes = append(quizzes, *q)
		ids = append(ids, q.ID)
	}

	passed, err := repo.Attempt().PassedQuizIDs(ctx, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to get passed quizzes: %w", err)
	}
	return progression.LevelPercentage(nil, quizzes, passed), nil
}
