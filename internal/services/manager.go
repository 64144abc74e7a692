package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/cache"
	"github.com/SAP-F-2025/course-progress-service/internal/events"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"github.com/SAP-F-2025/course-progress-service/internal/validator"
)

type serviceManager struct {
	enrollment    EnrollmentService
	course        CourseService
	video         VideoService
	assessment    AssessmentService
	progressAdmin ProgressAdminService
	report        ReportService
}

type ManagerConfig struct {
	Repo           repositories.Repository
	Cache          cache.CacheService // optional
	CourseCacheTTL time.Duration
	Publisher      events.EventPublisher
	Validator      *validator.Validator
	Logger         *slog.Logger
}

func NewServiceManager(cfg ManagerConfig) ServiceManager {
	progressEvents := NewProgressEventService(cfg.Publisher, cfg.Logger)
	gate := NewEnrollmentService(cfg.Repo, progressEvents, cfg.Logger)

	return &serviceManager{
		enrollment:    gate,
		course:        NewCourseService(cfg.Repo, gate, cfg.Cache, cfg.CourseCacheTTL, cfg.Logger),
		video:         NewVideoService(cfg.Repo, gate, progressEvents, cfg.Logger),
		assessment:    NewAssessmentService(cfg.Repo, gate, progressEvents, cfg.Validator, cfg.Logger),
		progressAdmin: NewProgressAdminService(cfg.Repo, cfg.Validator, cfg.Logger),
		report:        NewReportService(cfg.Repo, gate, cfg.Logger),
	}
}

func (m *serviceManager) Enrollment() EnrollmentService       { return m.enrollment }
func (m *serviceManager) Course() CourseService               { return m.course }
func (m *serviceManager) Video() VideoService                 { return m.video }
func (m *serviceManager) Assessment() AssessmentService       { return m.assessment }
func (m *serviceManager) ProgressAdmin() ProgressAdminService { return m.progressAdmin }
func (m *serviceManager) Report() ReportService               { return m.report }
