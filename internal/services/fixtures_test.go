package services

import (
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/events"
	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/validator"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

const testUser = "user-1"

type testEnv struct {
	repo      *mockRepository
	cache     *mockCache
	publisher *events.MockEventPublisher
	services  ServiceManager
}

func newTestEnv(withCache bool) *testEnv {
	env := &testEnv{
		repo:      newMockRepository(),
		publisher: events.NewMockEventPublisher(discardLogger()),
	}

	cfg := ManagerConfig{
		Repo:           env.repo,
		CourseCacheTTL: time.Minute,
		Publisher:      env.publisher,
		Validator:      validator.New(),
		Logger:         discardLogger(),
	}
	if withCache {
		env.cache = &mockCache{}
		cfg.Cache = env.cache
	}
	env.services = NewServiceManager(cfg)
	return env
}

func (e *testEnv) withCourse(course *models.Course) {
	e.repo.course.On("GetByID", mock.Anything, course.ID).Return(course, nil)
}

func (e *testEnv) withLevel(level *models.CourseLevel) {
	e.repo.level.On("GetByID", mock.Anything, level.ID).Return(level, nil)
}

func (e *testEnv) withVideo(video *models.Video) {
	e.repo.video.On("GetByID", mock.Anything, video.ID).Return(video, nil)
}

func (e *testEnv) enrolled(userID string, courseID uint, ok bool) {
	e.repo.enrollment.On("Exists", mock.Anything, userID, courseID).Return(ok, nil)
}

func uintPtr(v uint) *uint { return &v }

// twoQuestionQuiz has questions 10 and 20. Answers 11 and 21 are correct.
func twoQuestionQuiz(id uint, passingScore int) *models.Quiz {
	return &models.Quiz{
		ID:           id,
		PassingScore: passingScore,
		Questions: []models.QuizQuestion{
			{ID: 10, QuizID: id, QuestionText: "first", Order: 1, Answers: []models.QuizAnswer{
				{ID: 11, QuestionID: 10, AnswerText: "right", IsCorrect: true},
				{ID: 12, QuestionID: 10, AnswerText: "wrong"},
			}},
			{ID: 20, QuizID: id, QuestionText: "second", Order: 2, Answers: []models.QuizAnswer{
				{ID: 21, QuestionID: 20, AnswerText: "right", IsCorrect: true},
				{ID: 22, QuestionID: 20, AnswerText: "wrong"},
			}},
		},
	}
}

// twoQuestionExam mirrors twoQuestionQuiz for a level exam.
func twoQuestionExam(id, levelID uint, passingScore int) *models.LevelExam {
	return &models.LevelExam{
		ID:           id,
		LevelID:      levelID,
		PassingScore: passingScore,
		Questions: []models.ExamQuestion{
			{ID: 10, ExamID: id, QuestionText: "first", Order: 1, Answers: []models.ExamAnswer{
				{ID: 11, QuestionID: 10, AnswerText: "right", IsCorrect: true},
				{ID: 12, QuestionID: 10, AnswerText: "wrong"},
			}},
			{ID: 20, ExamID: id, QuestionText: "second", Order: 2, Answers: []models.ExamAnswer{
				{ID: 21, QuestionID: 20, AnswerText: "right", IsCorrect: true},
				{ID: 22, QuestionID: 20, AnswerText: "wrong"},
			}},
		},
	}
}

var errRecordNotFound = gorm.ErrRecordNotFound
