package postgres

import (
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	course     repositories.CourseRepository
	level      repositories.LevelRepository
	video      repositories.VideoRepository
	quiz       repositories.QuizRepository
	exam       repositories.ExamRepository
	enrollment repositories.EnrollmentRepository
	progress   repositories.ProgressRepository
	attempt    repositories.AttemptRepository
}

// NewRepository builds every gorm-backed repository over one connection pool.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		course:     NewCoursePostgreSQL(db),
		level:      NewLevelPostgreSQL(db),
		video:      NewVideoPostgreSQL(db),
		quiz:       NewQuizPostgreSQL(db),
		exam:       NewExamPostgreSQL(db),
		enrollment: NewEnrollmentPostgreSQL(db),
		progress:   NewProgressPostgreSQL(db),
		attempt:    NewAttemptPostgreSQL(db),
	}
}

func (r *repository) Course() repositories.CourseRepository         { return r.course }
func (r *repository) Level() repositories.LevelRepository           { return r.level }
func (r *repository) Video() repositories.VideoRepository           { return r.video }
func (r *repository) Quiz() repositories.QuizRepository             { return r.quiz }
func (r *repository) Exam() repositories.ExamRepository             { return r.exam }
func (r *repository) Enrollment() repositories.EnrollmentRepository { return r.enrollment }
func (r *repository) Progress() repositories.ProgressRepository     { return r.progress }
func (r *repository) Attempt() repositories.AttemptRepository       { return r.attempt }

func orderBySequence(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("id ASC")
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
