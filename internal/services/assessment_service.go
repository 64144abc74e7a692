package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/progression"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"github.com/SAP-F-2025/course-progress-service/internal/scoring"
	"github.com/SAP-F-2025/course-progress-service/internal/validator"
	"gorm.io/datatypes"
)

type assessmentService struct {
	repo      repositories.Repository
	gate      EnrollmentService
	events    ProgressEventService
	validator *validator.Validator
	log       *ServiceLogger
	now       func() time.Time
}

func NewAssessmentService(repo repositories.Repository, gate EnrollmentService, events ProgressEventService, validator *validator.Validator, logger *slog.Logger) AssessmentService {
	return &assessmentService{
		repo:      repo,
		gate:      gate,
		events:    events,
		validator: validator,
		log:       NewServiceLogger(logger, "assessment"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ===== QUIZZES =====

func (s *assessmentService) GetQuiz(ctx context.Context, userID string, quizID uint) (*QuizView, error) {
	quiz, err := s.gate.RequireQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	return toQuizView(quiz), nil
}

func (s *assessmentService) SubmitQuiz(ctx context.Context, userID string, quizID uint, req *SubmitAnswersRequest) (resp *SubmitResult, err error) {
	op := s.log.WithOperation(ctx, "submit_quiz", userID)
	defer func() { op.LogResult(quizID, "quiz", err) }()

	quiz, err := s.gate.RequireQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	result := s.score(ctx, "quiz", quiz.ID, quiz.Assessment(), req)

	attempt := &models.UserQuizAttempt{
		UserID:      userID,
		QuizID:      quiz.ID,
		Score:       result.Score,
		Passed:      result.Passed,
		Submission:  submissionJSON(req),
		AttemptedAt: s.now(),
	}
	if err = s.repo.Attempt().CreateQuizAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to record quiz attempt: %w", err)
	}

	s.events.QuizSubmitted(ctx, attempt)

	return &SubmitResult{Score: result.Score, Passed: result.Passed}, nil
}

// ===== EXAMS =====

func (s *assessmentService) GetExam(ctx context.Context, userID string, levelID uint) (*ExamView, error) {
	if _, err := s.gate.RequireLevel(ctx, userID, levelID); err != nil {
		return nil, err
	}

	exam, err := s.getExam(ctx, levelID)
	if err != nil {
		return nil, err
	}
	return toExamView(exam), nil
}

// SubmitExam scores the exam and, when it passes, names the level that
// follows. Nothing is persisted about the unlock itself.
func (s *assessmentService) SubmitExam(ctx context.Context, userID string, levelID uint, req *SubmitAnswersRequest) (resp *SubmitResult, err error) {
	op := s.log.WithOperation(ctx, "submit_exam", userID)
	defer func() { op.LogResult(levelID, "level", err) }()

	level, err := s.gate.RequireLevel(ctx, userID, levelID)
	if err != nil {
		return nil, err
	}

	exam, err := s.getExam(ctx, levelID)
	if err != nil {
		return nil, err
	}

	result := s.score(ctx, "exam", exam.ID, exam.Assessment(), req)

	attempt := &models.UserExamAttempt{
		UserID:      userID,
		ExamID:      exam.ID,
		Score:       result.Score,
		Passed:      result.Passed,
		Submission:  submissionJSON(req),
		AttemptedAt: s.now(),
	}
	if err = s.repo.Attempt().CreateExamAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to record exam attempt: %w", err)
	}

	var next *models.CourseLevel
	if result.Passed {
		if next, err = s.nextLevel(ctx, level); err != nil {
			return nil, err
		}
	}

	s.events.ExamSubmitted(ctx, attempt, level, next)

	return &SubmitResult{
		Score:   result.Score,
		Passed:  result.Passed,
		Message: progression.ExamMessage(result.Passed, next),
	}, nil
}

// ===== HELPERS =====

func (s *assessmentService) score(ctx context.Context, kind string, id uint, assessment scoring.Assessment, req *SubmitAnswersRequest) scoring.Result {
	if unscorable := s.validator.Assessment().UnscorableQuestions(assessment); len(unscorable) > 0 {
		s.log.Logger().WarnContext(ctx, "Assessment has questions without a correct answer",
			"kind", kind, "id", id, "question_ids", unscorable)
	}

	var submission scoring.Submission
	if req != nil {
		submission = req.Answers
	}

	result := scoring.Score(assessment, submission)
	if result.Discounted > 0 {
		s.log.Logger().DebugContext(ctx, "Discounted unresolvable answer pairs",
			"kind", kind, "id", id, "discounted", result.Discounted)
	}
	return result
}

func (s *assessmentService) getExam(ctx context.Context, levelID uint) (*models.LevelExam, error) {
	exam, err := s.repo.Exam().GetByLevelWithQuestions(ctx, levelID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return exam, nil
}

func (s *assessmentService) nextLevel(ctx context.Context, level *models.CourseLevel) (*models.CourseLevel, error) {
	siblings, err := s.repo.Level().ListByCourse(ctx, level.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course levels: %w", err)
	}

	levels := make([]models.CourseLevel, 0, len(siblings))
	for _, l := range siblings {
		levels = append(levels, *l)
	}

	next, ok := progression.NextLevel(levels, *level)
	if !ok {
		return nil, nil
	}
	return &next, nil
}

// submissionJSON keeps a copy of what was sent. It never feeds back into
// scoring.
func submissionJSON(req *SubmitAnswersRequest) datatypes.JSON {
	pairs := scoring.Submission{}
	if req != nil && req.Answers != nil {
		pairs = req.Answers
	}
	payload, err := json.Marshal(pairs)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(payload)
}
