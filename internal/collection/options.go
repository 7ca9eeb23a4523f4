package collection

import (
	"github.com/google/uuid"

	"districtportal/internal/observability"
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	name    string
	clock   observability.Clock
	logger  observability.Logger
	metrics observability.MetricsRecorder
	tracer  observability.Tracer
	newID   func() string
}

func defaultOptions() options {
	return options{
		name:    "collection",
		clock:   observability.ClockFunc(nil),
		logger:  observability.NopLogger{},
		metrics: observability.NopMetrics{},
		tracer:  observability.NopTracer{},
		newID:   uuid.NewString,
	}
}

// WithName labels the controller in errors, logs and metric operation names.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithClock overrides the time source used for createdAt/updatedAt and date expiry.
func WithClock(clock observability.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger used for operation outcomes.
func WithLogger(logger observability.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsRecorder sets the recorder that observes every operation.
func WithMetricsRecorder(recorder observability.MetricsRecorder) Option {
	return func(o *options) {
		if recorder != nil {
			o.metrics = recorder
		}
	}
}

// WithTracer sets the tracer wrapping every operation.
func WithTracer(tracer observability.Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithIDGenerator replaces the UUID v4 identifier source. Generated ids that are
// empty or already in use are drawn again.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}
