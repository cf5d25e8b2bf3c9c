// Package api is the single entry point used by the HTTP server and the CLI.
// It forwards to the services and reports every use case to an observer.
package api

import (
	"context"
	"log/slog"
	"time"

	"learning-tracker/internal/errors"
)

// UseCaseEvent captures lightweight execution telemetry for one API call.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes use-case events to logger. Caller mistakes
// (validation, not found, conflicts) are logged at debug; system faults at error.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}

	switch {
	case event.Err == nil:
		o.logger.DebugContext(ctx, "api_use_case", attrs...)
	case errors.ShouldLogError(event.Err):
		attrs = append(attrs, "error", event.Err.Error(), "code", errors.GetErrorCode(event.Err))
		o.logger.ErrorContext(ctx, "api_use_case", attrs...)
	default:
		attrs = append(attrs, "error", event.Err.Error(), "code", errors.GetErrorCode(event.Err))
		o.logger.DebugContext(ctx, "api_use_case", attrs...)
	}
}

// fields is shorthand for use-case event attributes
type fields = map[string]any
