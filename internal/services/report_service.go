package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-progress-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const progressSheet = "Progress"

var progressHeaders = []string{
	"Order", "Level", "Progress %", "Videos Completed", "Videos Total", "Exam Passed",
}

type reportService struct {
	repo repositories.Repository
	gate EnrollmentService
	log  *ServiceLogger
}

func NewReportService(repo repositories.Repository, gate EnrollmentService, logger *slog.Logger) ReportService {
	return &reportService{
		repo: repo,
		gate: gate,
		log:  NewServiceLogger(logger, "report"),
	}
}

// progressRow is one level of the exported workbook.
type progressRow struct {
	Order           int
	Name            string
	Percentage      int
	VideosCompleted int
	VideosTotal     int
	ExamPassed      string
}

func (r progressRow) values() []interface{} {
	return []interface{}{r.Order, r.Name, r.Percentage, r.VideosCompleted, r.VideosTotal, r.ExamPassed}
}

func (s *reportService) ExportCourseProgress(ctx context.Context, userID string, courseID uint) (data []byte, err error) {
	op := s.log.WithOperation(ctx, "export_course_progress", userID)
	defer func() { op.LogResult(courseID, "course", err) }()

	course, err := s.gate.RequireCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	rows, err := s.collectRows(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(progressSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err = f.SetDocProps(&excelize.DocProperties{Title: course.Title, Creator: "course-progress-service"}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	if err = writeRow(f, 1, toInterfaces(progressHeaders)); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err = writeRow(f, i+2, row.values()); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) collectRows(ctx context.Context, userID string, courseID uint) ([]progressRow, error) {
	levels, err := s.repo.Level().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	rows := make([]progressRow, 0, len(levels))
	for _, level := range levels {
		percentage, err := levelPercentage(ctx, s.repo, userID, level.ID)
		if err != nil {
			return nil, err
		}

		videos, err := s.repo.Video().ListByLevel(ctx, level.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list videos: %w", err)
		}
		ids := make([]uint, 0, len(videos))
		for _, v := range videos {
			ids = append(ids, v.ID)
		}
		completed, err := s.repo.Progress().CompletedVideoIDs(ctx, userID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to get completed videos: %w", err)
		}

		examPassed, err := s.examStatus(ctx, userID, level.ID)
		if err != nil {
			return nil, err
		}

		rows = append(rows, progressRow{
			Order:           level.Order,
			Name:            level.Name,
			Percentage:      percentage,
			VideosCompleted: len(completed),
			VideosTotal:     len(videos),
			ExamPassed:      examPassed,
		})
	}
	return rows, nil
}

// examStatus is "yes", "no", or "n/a" for levels without an exam.
func (s *reportService) examStatus(ctx context.Context, userID string, levelID uint) (string, error) {
	exam, err := s.repo.Exam().GetByLevel(ctx, levelID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "n/a", nil
		}
		return "", fmt.Errorf("failed to get exam: %w", err)
	}

	passed, err := s.repo.Attempt().HasPassedExam(ctx, userID, exam.ID)
	if err != nil {
		return "", fmt.Errorf("failed to check exam attempts: %w", err)
	}
	if passed {
		return "yes", nil
	}
	return "no", nil
}

func writeRow(f *excelize.File, rowNumber int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates: %w", err)
	}
	if err := f.SetSheetRow(progressSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNumber, err)
	}
	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
