package core

import (
	"context"
	"time"
)

// AuditStatus captures the outcome of an audited mutation.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry describes one mutation attempt against a collection.
type AuditEntry struct {
	Operation string
	Kind      Kind
	Action    Action
	EntityID  string
	Status    AuditStatus
	Error     string
	Duration  time.Duration
	Timestamp time.Time
}

// AuditRecorder receives audit entries for every create, update and delete.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// LogAuditRecorder writes audit entries through a Logger.
type LogAuditRecorder struct {
	Logger Logger
}

// Record implements AuditRecorder.
func (r LogAuditRecorder) Record(_ context.Context, entry AuditEntry) {
	if r.Logger == nil {
		return
	}
	args := []any{
		"operation", entry.Operation,
		"kind", string(entry.Kind),
		"entity_id", entry.EntityID,
		"duration", entry.Duration,
	}
	if entry.Status == AuditStatusError {
		r.Logger.Warn("audit", append(args, "status", entry.Status, "error", entry.Error)...)
		return
	}
	r.Logger.Info("audit", append(args, "status", entry.Status)...)
}

func (s *Service) recordAudit(ctx context.Context, kind Kind, action Action, entityID string, started time.Time, err error) {
	entry := AuditEntry{
		Operation: string(kind) + "." + string(action),
		Kind:      kind,
		Action:    action,
		EntityID:  entityID,
		Status:    AuditStatusSuccess,
		Duration:  time.Since(started),
		Timestamp: s.opts.clock.Now(),
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
	}
	s.opts.audit.Record(ctx, entry)
}
