package utils

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// Logger is the logging surface shared by handlers and bootstrap code.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	With(args ...any) Logger

	// LogRequest picks the level from the status code.
	LogRequest(method, path string, statusCode int, duration string, args ...any)
	LogError(err error, msg string, args ...any)

	// Slog exposes the underlying logger for packages that take *slog.Logger.
	Slog() *slog.Logger
}

type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) Logger {
	return &SlogLogger{logger: logger}
}

// NewLogger returns a JSON logger in production and a debug-level text
// logger everywhere else.
func NewLogger(environment string) Logger {
	if environment == "production" {
		return NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))
	}
	return NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

func (l *SlogLogger) LogRequest(method, path string, statusCode int, duration string, args ...any) {
	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}

	allArgs := append([]any{
		"method", method,
		"path", path,
		"status_code", statusCode,
		"duration", duration,
	}, args...)
	l.logger.Log(context.Background(), level, "HTTP Request", allArgs...)
}

func (l *SlogLogger) LogError(err error, msg string, args ...any) {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
}

func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// LoggerMiddleware replaces gin's default access log with structured records.
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logger.LogRequest(
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency.String(),
			"client_ip", param.ClientIP,
			"user_agent", param.Request.UserAgent(),
			"request_id", param.Request.Header.Get(requestIDHeader),
		)
		return ""
	})
}

// ContextLogger stores a request-scoped logger on the gin context. A request
// id is generated when the caller did not send one.
func ContextLogger(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(requestIDHeader, requestID)
		}
		c.Header(requestIDHeader, requestID)

		c.Set(loggerKey, logger.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		))
		c.Next()
	}
}

func GetLoggerFromContext(c *gin.Context, fallback Logger) Logger {
	if value, exists := c.Get(loggerKey); exists {
		if logger, ok := value.(Logger); ok {
			return logger
		}
	}
	return fallback
}
