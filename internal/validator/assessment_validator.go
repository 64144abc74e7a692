package validator

import (
	"github.com/SAP-F-2025/course-progress-service/internal/scoring"
)

// AssessmentValidator inspects authored quizzes and exams. Authoring happens
// outside this service, so findings are reported rather than rejected.
type AssessmentValidator struct{}

func NewAssessmentValidator() *AssessmentValidator {
	return &AssessmentValidator{}
}

// UnscorableQuestions returns the ids of questions without any correct
// answer. Such questions always contribute 0 to a score.
func (v *AssessmentValidator) UnscorableQuestions(assessment scoring.Assessment) []uint {
	var ids []uint
	for _, question := range assessment.Questions {
		if !hasCorrectAnswer(question) {
			ids = append(ids, question.ID)
		}
	}
	return ids
}

// PassingScoreInRange reports whether the threshold is a valid percentage.
func (v *AssessmentValidator) PassingScoreInRange(assessment scoring.Assessment) bool {
	return assessment.PassingScore >= 0 && assessment.PassingScore <= 100
}

func hasCorrectAnswer(question scoring.Question) bool {
	for _, answer := range question.Answers {
		if answer.IsCorrect {
			return true
		}
	}
	return false
}
