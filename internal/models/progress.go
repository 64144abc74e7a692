package models

import (
	"time"

	"gorm.io/datatypes"
)

// Enrollment admits a user to a course. At most one exists per (user, course).
type Enrollment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user" gorm:"not null;size:255;uniqueIndex:idx_enrollments_user_course"`
	CourseID   uint      `json:"course" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	EnrolledAt time.Time `json:"enrolled_at" gorm:"not null"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type UserVideoProgress struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user" gorm:"not null;size:255;uniqueIndex:idx_user_video_progress_user_video"`
	VideoID     uint       `json:"video" gorm:"not null;uniqueIndex:idx_user_video_progress_user_video"`
	IsCompleted bool       `json:"is_completed" gorm:"not null;default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (UserVideoProgress) TableName() string {
	return "user_video_progress"
}

// UserQuizAttempt is an append-only record of one scored quiz submission.
type UserQuizAttempt struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      string         `json:"user" gorm:"not null;size:255;index:idx_user_quiz_attempts_user_quiz"`
	QuizID      uint           `json:"quiz" gorm:"not null;index:idx_user_quiz_attempts_user_quiz"`
	Score       int            `json:"score" gorm:"not null"`
	Passed      bool           `json:"passed" gorm:"not null;index"`
	Submission  datatypes.JSON `json:"submission"`
	AttemptedAt time.Time      `json:"attempted_at" gorm:"not null"`
}

func (UserQuizAttempt) TableName() string {
	return "user_quiz_attempts"
}

type UserExamAttempt struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      string         `json:"user" gorm:"not null;size:255;index:idx_user_exam_attempts_user_exam"`
	ExamID      uint           `json:"exam" gorm:"not null;index:idx_user_exam_attempts_user_exam"`
	Score       int            `json:"score" gorm:"not null"`
	Passed      bool           `json:"passed" gorm:"not null"`
	Submission  datatypes.JSON `json:"submission"`
	AttemptedAt time.Time      `json:"attempted_at" gorm:"not null"`
}

func (UserExamAttempt) TableName() string {
	return "user_exam_attempts"
}

// UserLevelProgress is an administrator-set percentage for a level. When
// present it replaces the percentage derived from quiz attempts.
type UserLevelProgress struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user" gorm:"not null;size:255;uniqueIndex:idx_user_level_progress_user_level"`
	CourseLevelID uint      `json:"course_level" gorm:"not null;uniqueIndex:idx_user_level_progress_user_level"`
	Progress      int       `json:"progress" gorm:"not null;default:0"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (UserLevelProgress) TableName() string {
	return "user_level_progress"
}

// All returns every persisted model, in dependency order, for migrations.
func All() []interface{} {
	return []interface{}{
		&Course{},
		&CourseLevel{},
		&Video{},
		&Quiz{},
		&QuizQuestion{},
		&QuizAnswer{},
		&LevelExam{},
		&ExamQuestion{},
		&ExamAnswer{},
		&Enrollment{},
		&UserVideoProgress{},
		&UserQuizAttempt{},
		&UserExamAttempt{},
		&UserLevelProgress{},
	}
}
