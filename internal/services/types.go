package services

import (
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/scoring"
)

// ===== REQUESTS =====

// SubmitAnswersRequest carries a quiz or exam submission. Pairs that do not
// resolve against the assessment, malformed ids included, are discounted,
// never rejected.
type SubmitAnswersRequest struct {
	Answers scoring.Submission `json:"answers"`
}

type SetLevelProgressRequest struct {
	Progress int `json:"progress" validate:"progress_percent"`
}

// ===== RESPONSES =====

type CourseResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type EnrollmentResponse struct {
	ID         uint      `json:"id"`
	User       string    `json:"user"`
	Course     uint      `json:"course"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type LevelProgressResponse struct {
	ID                 uint   `json:"id"`
	Course             uint   `json:"course"`
	Name               string `json:"name"`
	Order              int    `json:"order"`
	ProgressPercentage int    `json:"progress_percentage"`
}

type VideoResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Level     uint   `json:"level"`
	Order     int    `json:"order"`
	VideoFile string `json:"video_file"`
}

type VideoLockResponse struct {
	VideoResponse
	IsLocked bool `json:"is_locked"`
}

type CompleteVideoResponse struct {
	Detail      string    `json:"detail"`
	VideoID     uint      `json:"video_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// AnswerView is what a learner sees of an answer option. Correctness is
// deliberately absent.
type AnswerView struct {
	ID         uint   `json:"id"`
	AnswerText string `json:"answer_text"`
}

type QuestionView struct {
	ID           uint         `json:"id"`
	QuestionText string       `json:"question_text"`
	Order        int          `json:"order"`
	Answers      []AnswerView `json:"answers"`
}

type QuizView struct {
	ID           uint           `json:"id"`
	Video        *uint          `json:"video"`
	Level        *uint          `json:"level"`
	PassingScore int            `json:"passing_score"`
	Order        int            `json:"order"`
	Questions    []QuestionView `json:"questions"`
}

type ExamView struct {
	ID           uint           `json:"id"`
	Level        uint           `json:"level"`
	PassingScore int            `json:"passing_score"`
	Questions    []QuestionView `json:"questions"`
}

type SubmitResult struct {
	Score   int    `json:"score"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

type LevelOverrideResponse struct {
	User      string    `json:"user"`
	Level     uint      `json:"course_level"`
	Progress  int       `json:"progress"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ===== BUILDERS =====

func toCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func toVideoResponse(v models.Video) VideoResponse {
	return VideoResponse{
		ID:        v.ID,
		Title:     v.Title,
		Level:     v.LevelID,
		Order:     v.Order,
		VideoFile: v.VideoFile,
	}
}

func toQuizView(q *models.Quiz) *QuizView {
	view := &QuizView{
		ID:           q.ID,
		Video:        q.VideoID,
		Level:        q.LevelID,
		PassingScore: q.PassingScore,
		Order:        q.Order,
		Questions:    make([]QuestionView, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		answers := make([]AnswerView, 0, len(question.Answers))
		for _, a := range question.Answers {
			answers = append(answers, AnswerView{ID: a.ID, AnswerText: a.AnswerText})
		}
		view.Questions = append(view.Questions, QuestionView{
			ID:           question.ID,
			QuestionText: question.QuestionText,
			Order:        question.Order,
			Answers:      answers,
		})
	}
	return view
}

func toExamView(e *models.LevelExam) *ExamView {
	view := &ExamView{
		ID:           e.ID,
		Level:        e.LevelID,
		PassingScore: e.PassingScore,
		Questions:    make([]QuestionView, 0, len(e.Questions)),
	}
	for _, question := range e.Questions {
		answers := make([]AnswerView, 0, len(question.Answers))
		for _, a := range question.Answers {
			answers = append(answers, AnswerView{ID: a.ID, AnswerText: a.AnswerText})
		}
		view.Questions = append(view.Questions, QuestionView{
			ID:           question.ID,
			QuestionText: question.QuestionText,
			Order:        question.Order,
			Answers:      answers,
		})
	}
	return view
}
