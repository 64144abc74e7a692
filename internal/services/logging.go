package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger provides structured logging for service layer operations.
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, component string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", "course-progress-service", "component", component),
	}
}

func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

// LogOperation picks the level from the error class: expected refusals are
// not errors from the service's point of view.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, userID string, resourceID uint, resourceType string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	switch {
	case err == nil:
	case IsValidation(err):
		level, status = slog.LevelWarn, "validation_error"
	case IsUnauthorized(err):
		level, status = slog.LevelWarn, "unauthorized"
	case IsConflict(err):
		level, status = slog.LevelWarn, "conflict"
	case IsNotFound(err):
		status = "not_found"
	default:
		level, status = slog.LevelError, "error"
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("user_id", userID),
		slog.Uint64("resource_id", uint64(resourceID)),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var pe *PermissionError
		if errors.As(err, &pe) {
			attrs = append(attrs, slog.String("permission_action", pe.Action))
		}
		var ve ValidationErrors
		if errors.As(err, &ve) {
			attrs = append(attrs, slog.Int("validation_errors_count", len(ve)))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// OperationLogger times one operation and logs its outcome.
type OperationLogger struct {
	logger    *ServiceLogger
	ctx       context.Context
	operation string
	userID    string
	startTime time.Time
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, userID string) *OperationLogger {
	return &OperationLogger{
		logger:    l,
		ctx:       ctx,
		operation: operation,
		userID:    userID,
		startTime: time.Now(),
	}
}

func (ol *OperationLogger) LogResult(resourceID uint, resourceType string, err error) {
	ol.logger.LogOperation(ol.ctx, ol.operation, ol.userID, resourceID, resourceType, time.Since(ol.startTime), err)
}
