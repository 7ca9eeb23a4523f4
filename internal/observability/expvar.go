package observability

import (
	"context"
	"expvar"
	"fmt"
	"strings"
	"sync"
	"time"
)

// OperationCounters aggregates the outcomes of one action on one collection.
type OperationCounters struct {
	Success int64   `json:"success"`
	Error   int64   `json:"error"`
	TotalMS float64 `json:"total_ms"`
	MaxMS   float64 `json:"max_ms"`
}

// ExpvarMetricsSnapshot is a copy of the recorder state keyed by collection kind,
// then by action.
type ExpvarMetricsSnapshot struct {
	Collections map[string]map[string]OperationCounters `json:"collections"`
	Since       time.Time                               `json:"since"`
	RecordedAt  time.Time                               `json:"recorded_at"`
}

// Counters returns the counters for an operation name such as "announcements.create".
func (s ExpvarMetricsSnapshot) Counters(operation string) OperationCounters {
	kind, action := SplitOperation(operation)
	return s.Collections[kind][action]
}

// ExpvarMetricsRecorder keeps per-collection operation counters and serves them
// through expvar (and so /debug/vars).
type ExpvarMetricsRecorder struct {
	name   string
	since  time.Time
	mu     sync.Mutex
	byKind map[string]map[string]*OperationCounters
}

var publishMu sync.Mutex

// NewExpvarMetricsRecorder publishes a recorder under name. An empty or already
// published name gets a numeric suffix.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = "portal_metrics"
	}
	rec := &ExpvarMetricsRecorder{
		since:  time.Now().UTC(),
		byKind: make(map[string]map[string]*OperationCounters),
	}

	publishMu.Lock()
	defer publishMu.Unlock()
	rec.name = name
	for i := 2; expvar.Get(rec.name) != nil; i++ {
		rec.name = fmt.Sprintf("%s_%d", name, i)
	}
	expvar.Publish(rec.name, expvar.Func(func() any { return rec.Snapshot() }))
	return rec
}

// Name returns the expvar key the recorder is published under.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	kind, action := SplitOperation(operation)
	ms := float64(duration) / float64(time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()
	actions, ok := r.byKind[kind]
	if !ok {
		actions = make(map[string]*OperationCounters)
		r.byKind[kind] = actions
	}
	c, ok := actions[action]
	if !ok {
		c = &OperationCounters{}
		actions[action] = c
	}
	if success {
		c.Success++
	} else {
		c.Error++
	}
	c.TotalMS += ms
	c.MaxMS = max(c.MaxMS, ms)
}

// Snapshot copies the current counters.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]map[string]OperationCounters, len(r.byKind))
	for kind, actions := range r.byKind {
		cp := make(map[string]OperationCounters, len(actions))
		for action, c := range actions {
			cp[action] = *c
		}
		out[kind] = cp
	}
	return ExpvarMetricsSnapshot{Collections: out, Since: r.since, RecordedAt: time.Now().UTC()}
}

// SplitOperation splits "kind.action" at the last dot. Names without a dot are
// filed under the "service" kind.
func SplitOperation(operation string) (kind, action string) {
	if i := strings.LastIndexByte(operation, '.'); i > 0 {
		return operation[:i], operation[i+1:]
	}
	return "service", operation
}
