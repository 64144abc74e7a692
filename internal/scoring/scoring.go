// Package scoring turns an assessment definition and a learner's submitted
// answers into a percentage score and a pass/fail verdict.
//
// Score is a pure function. Submitted pairs that cannot be resolved against
// the assessment are discounted rather than rejected: a question id that does
// not belong to the assessment, or an answer id that does not belong to that
// question, contributes nothing to the score.
package scoring

import (
	"encoding/json"
	"strconv"
)

// Answer is one selectable option of a question.
type Answer struct {
	ID        uint
	IsCorrect bool
}

type Question struct {
	ID      uint
	Answers []Answer
}

// FindAnswer looks the answer up among this question's options only.
func (q Question) FindAnswer(id uint) (Answer, bool) {
	for _, a := range q.Answers {
		if a.ID == id {
			return a, true
		}
	}
	return Answer{}, false
}

// Assessment is the part of a quiz or exam the engine needs.
type Assessment struct {
	PassingScore int
	Questions    []Question
}

// FindQuestion looks the question up among this assessment's questions only.
func (a Assessment) FindQuestion(id uint) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// AnswerPair is one submitted choice.
type AnswerPair struct {
	QuestionID uint `json:"question_id"`
	AnswerID   uint `json:"answer_id"`
}

// UnmarshalJSON never fails. An id that is not a non-negative integer (or a
// string holding one) decodes to 0, which no stored question or answer has,
// so the pair is discounted when scored.
func (p *AnswerPair) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*p = AnswerPair{}
		return nil
	}
	*p = AnswerPair{
		QuestionID: parseID(fields["question_id"]),
		AnswerID:   parseID(fields["answer_id"]),
	}
	return nil
}

func parseID(raw json.RawMessage) uint {
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0
	}
	id, err := strconv.ParseUint(n.String(), 10, strconv.IntSize)
	if err != nil {
		return 0
	}
	return uint(id)
}

type Submission []AnswerPair

// UnmarshalJSON reads anything that is not an array as an empty submission.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		*s = nil
		return nil
	}
	pairs := make(Submission, len(items))
	for i, item := range items {
		_ = pairs[i].UnmarshalJSON(item)
	}
	*s = pairs
	return nil
}

type Result struct {
	Score          int  `json:"score"`
	Passed         bool `json:"passed"`
	CorrectCount   int  `json:"-"`
	TotalQuestions int  `json:"-"`
	Discounted     int  `json:"-"`
}

// Score grades a submission. The denominator is always the number of
// questions in the assessment, never the number of submitted pairs. Every
// resolvable pair naming a correct answer counts, repeats included, and the
// score is capped at 100.
func Score(assessment Assessment, submission Submission) Result {
	result := Result{TotalQuestions: len(assessment.Questions)}

	for _, pair := range submission {
		if pair.QuestionID == 0 || pair.AnswerID == 0 {
			result.Discounted++
			continue
		}
		question, ok := assessment.FindQuestion(pair.QuestionID)
		if !ok {
			result.Discounted++
			continue
		}
		answer, ok := question.FindAnswer(pair.AnswerID)
		if !ok {
			result.Discounted++
			continue
		}
		if answer.IsCorrect {
			result.CorrectCount++
		}
	}

	result.Score = min(Percentage(result.CorrectCount, result.TotalQuestions), 100)
	result.Passed = result.Score >= assessment.PassingScore
	return result
}

// Percentage returns floor(100*part/total), or 0 when total is 0.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return 100 * part / total
}
