// Package observability holds the logging, clock, metrics and tracing seams shared by
// the store, the collection controllers and the portal service.
package observability

import (
	"context"
	"time"
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock. Results are normalized to UTC.
type ClockFunc func() time.Time

// Now implements Clock; a nil ClockFunc falls back to the system clock.
func (f ClockFunc) Now() time.Time {
	if f == nil {
		return time.Now().UTC()
	}
	return f().UTC()
}

// MetricsRecorder observes operation outcomes.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts spans around operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is ended exactly once with the operation's error.
type TraceSpan interface {
	End(err error)
}

// NopLogger discards every message.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// NopMetrics discards observations.
type NopMetrics struct{}

// Observe implements MetricsRecorder.
func (NopMetrics) Observe(context.Context, string, bool, time.Duration) {}

// NopTracer returns spans that record nothing.
type NopTracer struct{}

// Start implements Tracer.
func (NopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End(error) {}

// Run wraps fn with a span, a metrics observation and a log line. Failures are
// logged at warn level, successes at debug.
func Run(ctx context.Context, operation string, logger Logger, metrics MetricsRecorder, tracer Tracer, fn func(context.Context) error) error {
	start := time.Now()
	ctx, span := tracer.Start(ctx, operation)
	err := fn(ctx)
	span.End(err)
	elapsed := time.Since(start)
	metrics.Observe(ctx, operation, err == nil, elapsed)
	if err != nil {
		logger.Warn("operation failed", "operation", operation, "error", err, "duration", elapsed)
	} else {
		logger.Debug("operation completed", "operation", operation, "duration", elapsed)
	}
	return err
}
