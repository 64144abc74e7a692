package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	eventSource  = "course-progress-service"
	eventVersion = "1.0"
)

type EventType string

const (
	EventEnrollmentCreated EventType = "enrollment.created"
	EventVideoCompleted    EventType = "video.completed"
	EventQuizSubmitted     EventType = "quiz.submitted"
	EventExamSubmitted     EventType = "exam.submitted"
	EventLevelUnlocked     EventType = "level.unlocked"
	EventCourseCompleted   EventType = "course.completed"
)

// Event is the envelope every progression event is published in.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

type EnrollmentCreatedEvent struct {
	EnrollmentID uint      `json:"enrollment_id"`
	CourseID     uint      `json:"course_id"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

type VideoCompletedEvent struct {
	VideoID     uint      `json:"video_id"`
	LevelID     uint      `json:"level_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type QuizSubmittedEvent struct {
	AttemptID uint `json:"attempt_id"`
	QuizID    uint `json:"quiz_id"`
	Score     int  `json:"score"`
	Passed    bool `json:"passed"`
}

type ExamSubmittedEvent struct {
	AttemptID uint `json:"attempt_id"`
	ExamID    uint `json:"exam_id"`
	LevelID   uint `json:"level_id"`
	Score     int  `json:"score"`
	Passed    bool `json:"passed"`
}

type LevelUnlockedEvent struct {
	CourseID      uint   `json:"course_id"`
	FromLevelID   uint   `json:"from_level_id"`
	LevelID       uint   `json:"level_id"`
	LevelName     string `json:"level_name"`
	LevelSequence int    `json:"level_order"`
}

type CourseCompletedEvent struct {
	CourseID    uint `json:"course_id"`
	LastLevelID uint `json:"last_level_id"`
}

func newEvent(eventType EventType, userID string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewEnrollmentCreatedEvent(userID string, enrollmentID, courseID uint, enrolledAt time.Time) *Event {
	return newEvent(EventEnrollmentCreated, userID, EnrollmentCreatedEvent{
		EnrollmentID: enrollmentID,
		CourseID:     courseID,
		EnrolledAt:   enrolledAt,
	})
}

func NewVideoCompletedEvent(userID string, videoID, levelID uint, completedAt time.Time) *Event {
	return newEvent(EventVideoCompleted, userID, VideoCompletedEvent{
		VideoID:     videoID,
		LevelID:     levelID,
		CompletedAt: completedAt,
	})
}

func NewQuizSubmittedEvent(userID string, attemptID, quizID uint, score int, passed bool) *Event {
	return newEvent(EventQuizSubmitted, userID, QuizSubmittedEvent{
		AttemptID: attemptID,
		QuizID:    quizID,
		Score:     score,
		Passed:    passed,
	})
}

func NewExamSubmittedEvent(userID string, attemptID, examID, levelID uint, score int, passed bool) *Event {
	return newEvent(EventExamSubmitted, userID, ExamSubmittedEvent{
		AttemptID: attemptID,
		ExamID:    examID,
		LevelID:   levelID,
		Score:     score,
		Passed:    passed,
	})
}

func NewLevelUnlockedEvent(userID string, courseID, fromLevelID, levelID uint, levelName string, levelOrder int) *Event {
	return newEvent(EventLevelUnlocked, userID, LevelUnlockedEvent{
		CourseID:      courseID,
		FromLevelID:   fromLevelID,
		LevelID:       levelID,
		LevelName:     levelName,
		LevelSequence: levelOrder,
	})
}

func NewCourseCompletedEvent(userID string, courseID, lastLevelID uint) *Event {
	return newEvent(EventCourseCompleted, userID, CourseCompletedEvent{
		CourseID:    courseID,
		LastLevelID: lastLevelID,
	})
}
