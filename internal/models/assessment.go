package models

import (
	"github.com/SAP-F-2025/course-progress-service/internal/scoring"
)

// AttachmentKind names the owner type of a quiz.
type AttachmentKind string

const (
	AttachedToVideo AttachmentKind = "video"
	AttachedToLevel AttachmentKind = "level"
)

// Attachment is the single owner of a quiz: either a video checkpoint or a
// level-wide quiz, never both.
type Attachment struct {
	Kind AttachmentKind `json:"kind"`
	ID   uint           `json:"id"`
}

func VideoAttachment(videoID uint) Attachment {
	return Attachment{Kind: AttachedToVideo, ID: videoID}
}

func LevelAttachment(levelID uint) Attachment {
	return Attachment{Kind: AttachedToLevel, ID: levelID}
}

type Quiz struct {
	ID           uint  `json:"id" gorm:"primaryKey"`
	VideoID      *uint `json:"video" gorm:"index;check:chk_quizzes_single_owner,video_id IS NULL OR level_id IS NULL"`
	LevelID      *uint `json:"level" gorm:"index"`
	PassingScore int   `json:"passing_score" gorm:"not null"`
	Order        int   `json:"order" gorm:"column:sort_order;not null"`

	// Relations
	Questions []QuizQuestion `json:"questions" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Attachment reports the owner of the quiz. ok is false once the owner was
// deleted and both references were nulled out.
func (q *Quiz) Attachment() (a Attachment, ok bool) {
	switch {
	case q.VideoID != nil:
		return VideoAttachment(*q.VideoID), true
	case q.LevelID != nil:
		return LevelAttachment(*q.LevelID), true
	default:
		return Attachment{}, false
	}
}

// Attach sets the owner of the quiz, clearing the other reference.
func (q *Quiz) Attach(a Attachment) {
	id := a.ID
	q.VideoID, q.LevelID = nil, nil
	switch a.Kind {
	case AttachedToVideo:
		q.VideoID = &id
	case AttachedToLevel:
		q.LevelID = &id
	}
}

// Assessment converts the quiz into the shape scored by the scoring engine.
func (q *Quiz) Assessment() scoring.Assessment {
	questions := make([]scoring.Question, 0, len(q.Questions))
	for _, question := range q.Questions {
		answers := make([]scoring.Answer, 0, len(question.Answers))
		for _, answer := range question.Answers {
			answers = append(answers, scoring.Answer{ID: answer.ID, IsCorrect: answer.IsCorrect})
		}
		questions = append(questions, scoring.Question{ID: question.ID, Answers: answers})
	}
	return scoring.Assessment{PassingScore: q.PassingScore, Questions: questions}
}

type QuizQuestion struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	QuizID       uint   `json:"quiz" gorm:"not null;index"`
	QuestionText string `json:"question_text" gorm:"type:text;not null"`
	Order        int    `json:"order" gorm:"column:sort_order;not null"`

	// Relations
	Answers []QuizAnswer `json:"answers" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type QuizAnswer struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question" gorm:"not null;index"`
	AnswerText string `json:"answer_text" gorm:"not null;size:255"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

// LevelExam is the one exam a level may have.
type LevelExam struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	LevelID      uint `json:"level" gorm:"not null;uniqueIndex"`
	PassingScore int  `json:"passing_score" gorm:"not null"`

	// Relations
	Questions []ExamQuestion `json:"questions" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
}

func (LevelExam) TableName() string {
	return "level_exams"
}

func (e *LevelExam) Assessment() scoring.Assessment {
	questions := make([]scoring.Question, 0, len(e.Questions))
	for _, question := range e.Questions {
		answers := make([]scoring.Answer, 0, len(question.Answers))
		for _, answer := range question.Answers {
			answers = append(answers, scoring.Answer{ID: answer.ID, IsCorrect: answer.IsCorrect})
		}
		questions = append(questions, scoring.Question{ID: question.ID, Answers: answers})
	}
	return scoring.Assessment{PassingScore: e.PassingScore, Questions: questions}
}

type ExamQuestion struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ExamID       uint   `json:"exam" gorm:"not null;index"`
	QuestionText string `json:"question_text" gorm:"type:text;not null"`
	Order        int    `json:"order" gorm:"column:sort_order;not null"`

	// Relations
	Answers []ExamAnswer `json:"answers" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}

type ExamAnswer struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question" gorm:"not null;index"`
	AnswerText string `json:"answer_text" gorm:"not null;size:255"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null"`
}

func (ExamAnswer) TableName() string {
	return "exam_answers"
}
