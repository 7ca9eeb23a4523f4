package core

import (
	"context"
	"time"

	"districtportal/internal/collection"
	"districtportal/pkg/domain"
)

// validator is implemented by drafts that can check their own fields.
type validator interface {
	Validate() error
}

// Collection is a kind's controller bound to the service. Drafts are validated
// before they reach the controller and every mutation is audited.
type Collection[E any, P collection.EntityPtr[E]] struct {
	*collection.Controller[E, P]
	kind domain.Kind
	svc  *Service
}

// Kind returns the collection kind.
func (c *Collection[E, P]) Kind() domain.Kind { return c.kind }

// Create fills enum defaults, validates and stores a new entity.
func (c *Collection[E, P]) Create(ctx context.Context, draft E) (E, error) {
	started := time.Now()
	if err := prepare[E, P](&draft); err != nil {
		c.svc.recordAudit(ctx, c.kind, domain.ActionCreate, "", started, err)
		var zero E
		return zero, err
	}
	created, err := c.Controller.Create(ctx, draft)
	c.svc.recordAudit(ctx, c.kind, domain.ActionCreate, P(&created).Meta().ID, started, err)
	return created, err
}

// Update fills enum defaults, validates draft and replaces the entity with id.
func (c *Collection[E, P]) Update(ctx context.Context, id string, draft E) (E, error) {
	started := time.Now()
	if err := prepare[E, P](&draft); err != nil {
		c.svc.recordAudit(ctx, c.kind, domain.ActionUpdate, id, started, err)
		var zero E
		return zero, err
	}
	updated, err := c.Controller.Update(ctx, id, draft)
	c.svc.recordAudit(ctx, c.kind, domain.ActionUpdate, id, started, err)
	return updated, err
}

// Delete removes the entity with id. Unknown ids are audited as errors.
func (c *Collection[E, P]) Delete(ctx context.Context, id string) (bool, error) {
	started := time.Now()
	removed, err := c.Controller.Delete(ctx, id)
	auditErr := err
	if err == nil && !removed {
		auditErr = collection.ErrNotFound{Kind: string(c.kind), ID: id}
	}
	c.svc.recordAudit(ctx, c.kind, domain.ActionDelete, id, started, auditErr)
	return removed, err
}

// prepare applies the kind's form defaults to draft and validates the result.
func prepare[E any, P collection.EntityPtr[E]](draft *E) error {
	if d, ok := any(P(draft)).(domain.Defaulter); ok {
		d.ApplyDefaults()
	}
	if v, ok := any(P(draft)).(validator); ok {
		return v.Validate()
	}
	return nil
}

func openCollection[E any, P collection.EntityPtr[E]](ctx context.Context, svc *Service, kind domain.Kind) (*Collection[E, P], error) {
	st, err := newStore[E](svc, kind)
	if err != nil {
		return nil, err
	}
	opts := []collection.Option{
		collection.WithName(string(kind)),
		collection.WithClock(svc.opts.clock),
		collection.WithLogger(svc.opts.logger),
		collection.WithMetricsRecorder(svc.opts.metrics),
		collection.WithTracer(svc.opts.tracer),
	}
	if svc.opts.newID != nil {
		opts = append(opts, collection.WithIDGenerator(svc.opts.newID))
	}
	ctrl, err := collection.Open[E, P](ctx, st, opts...)
	if err != nil {
		return nil, err
	}
	return &Collection[E, P]{Controller: ctrl, kind: kind, svc: svc}, nil
}
