// ABOUTME: This file provides the slog-based unified logger for the analysis engine
// ABOUTME: Emits service-tagged JSON with lowercase levels for log aggregation
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

// Context keys recognized by WithContext.
const (
	RequestIDKey contextKey = "request_id"
	BatchIDKey   contextKey = "batch_id"
	OperationKey contextKey = "operation"
)

// UnifiedLogger provides slog-based JSON logging for the engine.
type UnifiedLogger struct {
	logger      *slog.Logger
	serviceName string
}

// NewUnifiedLogger creates a UnifiedLogger writing JSON to stdout.
func NewUnifiedLogger(serviceName string) *UnifiedLogger {
	return newUnifiedLogger(serviceName, os.Stdout)
}

// NewUnifiedLoggerWithWriter creates a UnifiedLogger writing to w. Used
// by tests to capture output.
func NewUnifiedLoggerWithWriter(serviceName string, w io.Writer) *UnifiedLogger {
	return newUnifiedLogger(serviceName, w)
}

func newUnifiedLogger(serviceName string, w io.Writer) *UnifiedLogger {
	options := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Lowercase level names for aggregator compatibility.
			if a.Key == slog.LevelKey {
				if level, ok := a.Value.Any().(slog.Level); ok {
					return slog.Attr{Key: "level", Value: slog.StringValue(strings.ToLower(level.String()))}
				}
			}
			return a
		},
	}

	handler := slog.NewJSONHandler(w, options)
	logger := slog.New(handler).With("service", serviceName)

	return &UnifiedLogger{
		logger:      logger,
		serviceName: serviceName,
	}
}

// WithContext returns an slog logger enriched with recognized context values.
func (ul *UnifiedLogger) WithContext(ctx context.Context) *slog.Logger {
	var fields []any

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		fields = append(fields, "request_id", requestID)
	}
	if batchID := ctx.Value(BatchIDKey); batchID != nil {
		fields = append(fields, "batch_id", batchID)
	}
	if operation := ctx.Value(OperationKey); operation != nil {
		fields = append(fields, "operation", operation)
	}

	if len(fields) > 0 {
		return ul.logger.With(fields...)
	}
	return ul.logger
}

// Logger returns the underlying slog logger.
func (ul *UnifiedLogger) Logger() *slog.Logger {
	return ul.logger
}

func (ul *UnifiedLogger) Info(msg string, args ...any)  { ul.logger.Info(msg, args...) }
func (ul *UnifiedLogger) Error(msg string, args ...any) { ul.logger.Error(msg, args...) }
func (ul *UnifiedLogger) Debug(msg string, args ...any) { ul.logger.Debug(msg, args...) }
func (ul *UnifiedLogger) Warn(msg string, args ...any)  { ul.logger.Warn(msg, args...) }

// With returns a logger with additional attributes.
func (ul *UnifiedLogger) With(args ...any) *UnifiedLogger {
	return &UnifiedLogger{
		logger:      ul.logger.With(args...),
		serviceName: ul.serviceName,
	}
}
