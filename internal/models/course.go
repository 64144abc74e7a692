package models

import (
	"time"
)

type Course struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Levels []CourseLevel `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseLevel is a step of a course. Order is unique per course and defines
// the sequence levels are taken in; values need not be contiguous.
type CourseLevel struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course" gorm:"not null;uniqueIndex:idx_course_levels_course_order"`
	Name     string `json:"name" gorm:"not null;size:50"`
	Order    int    `json:"order" gorm:"column:sort_order;not null;uniqueIndex:idx_course_levels_course_order"`

	// Relations
	Videos  []Video    `json:"-" gorm:"foreignKey:LevelID;constraint:OnDelete:CASCADE"`
	Quizzes []Quiz     `json:"-" gorm:"foreignKey:LevelID;constraint:OnDelete:SET NULL"`
	Exam    *LevelExam `json:"-" gorm:"foreignKey:LevelID;constraint:OnDelete:CASCADE"`
}

func (CourseLevel) TableName() string {
	return "course_levels"
}

type Video struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	LevelID   uint   `json:"level" gorm:"not null;index"`
	Title     string `json:"title" gorm:"not null;size:255"`
	Order     int    `json:"order" gorm:"column:sort_order;not null"`
	VideoFile string `json:"video_file" gorm:"size:500"`

	// Relations
	Quizzes []Quiz `json:"-" gorm:"foreignKey:VideoID;constraint:OnDelete:SET NULL"`
}

func (Video) TableName() string {
	return "videos"
}
