package observability

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// DefaultTraceRetention is how many recent spans a tracer without a writer keeps.
const DefaultTraceRetention = 256

// JSONTraceEntry is one finished span.
type JSONTraceEntry struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	DurationMS float64   `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// Operation returns the "kind.action" name the span was started with.
func (e JSONTraceEntry) Operation() string {
	if e.Collection == "service" {
		return e.Action
	}
	return e.Collection + "." + e.Action
}

// JSONTraceTracer writes finished spans as JSON lines and keeps a bounded window
// of the most recent ones in memory.
type JSONTraceTracer struct {
	mu        sync.Mutex
	enc       *json.Encoder
	recent    []JSONTraceEntry
	next      int
	limit     int
	writeErrs int64
}

// TraceOption configures a JSONTraceTracer.
type TraceOption func(*JSONTraceTracer)

// WithRetention keeps the n most recent spans in memory; 0 keeps none.
func WithRetention(n int) TraceOption {
	return func(t *JSONTraceTracer) {
		if n >= 0 {
			t.limit = n
		}
	}
}

// NewJSONTracer writes spans to w. With a writer no spans are retained unless
// WithRetention asks for it; without one the last DefaultTraceRetention are kept.
func NewJSONTracer(w io.Writer, opts ...TraceOption) *JSONTraceTracer {
	t := &JSONTraceTracer{limit: DefaultTraceRetention}
	if w != nil {
		t.enc = json.NewEncoder(w)
		t.limit = 0
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Entries returns the retained spans, oldest first.
func (t *JSONTraceTracer) Entries() []JSONTraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.recent) < t.limit {
		return append([]JSONTraceEntry(nil), t.recent...)
	}
	out := make([]JSONTraceEntry, 0, len(t.recent))
	out = append(out, t.recent[t.next:]...)
	return append(out, t.recent[:t.next]...)
}

// WriteErrors returns how many spans could not be written.
func (t *JSONTraceTracer) WriteErrors() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writeErrs
}

// Start implements Tracer.
func (t *JSONTraceTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &jsonTraceSpan{tracer: t, operation: operation, started: time.Now().UTC()}
}

func (t *JSONTraceTracer) finish(entry JSONTraceEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.enc != nil {
		if err := t.enc.Encode(entry); err != nil {
			t.writeErrs++
		}
	}
	switch {
	case t.limit == 0:
	case len(t.recent) < t.limit:
		t.recent = append(t.recent, entry)
	default:
		t.recent[t.next] = entry
		t.next = (t.next + 1) % t.limit
	}
}

type jsonTraceSpan struct {
	tracer    *JSONTraceTracer
	operation string
	started   time.Time
}

func (s *jsonTraceSpan) End(err error) {
	ended := time.Now().UTC()
	kind, action := SplitOperation(s.operation)
	entry := JSONTraceEntry{
		Collection: kind,
		Action:     action,
		Status:     "success",
		DurationMS: float64(ended.Sub(s.started)) / float64(time.Millisecond),
		StartedAt:  s.started,
		EndedAt:    ended,
	}
	if err != nil {
		entry.Status = "error"
		entry.Error = err.Error()
	}
	s.tracer.finish(entry)
}
