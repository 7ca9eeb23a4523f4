// Package collection provides the generic CRUD, query and statistics controller
// shared by every locally persisted entity kind.
package collection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"districtportal/internal/observability"
	"districtportal/pkg/domain"
)

// EntityPtr is satisfied by *E when E is a domain entity embedding domain.Base.
type EntityPtr[E any] interface {
	*E
	domain.Entity
	SetMeta(domain.Base)
}

// Persister is the storage dependency of a Controller. *store.Store satisfies it.
type Persister[E any] interface {
	Load(ctx context.Context) ([]E, error)
	Save(ctx context.Context, items []E) error
}

// ErrNotFound indicates the requested entity does not exist in the collection.
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

const maxIDAttempts = 8

// Controller owns the in-memory collection of one entity kind and keeps it in sync
// with its Persister. Mutations are serialized; reads see the last committed state.
type Controller[E any, P EntityPtr[E]] struct {
	mu       sync.RWMutex
	store    Persister[E]
	items    []E
	criteria Criteria
	opts     options
}

// Open constructs a controller and loads the persisted collection once.
func Open[E any, P EntityPtr[E]](ctx context.Context, store Persister[E], opts ...Option) (*Controller[E, P], error) {
	if store == nil {
		return nil, errors.New("collection: store is required")
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Controller[E, P]{store: store, opts: cfg}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the label used in errors, logs and metrics.
func (c *Controller[E, P]) Name() string { return c.opts.name }

// Reload replaces the in-memory collection with the persisted one.
func (c *Controller[E, P]) Reload(ctx context.Context) error {
	return c.run(ctx, "load", func(ctx context.Context) error {
		items, err := c.store.Load(ctx)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.items = items
		c.mu.Unlock()
		return nil
	})
}

// Create assigns identity and timestamps to draft, prepends it and persists the
// collection. The draft's own meta fields are ignored.
func (c *Controller[E, P]) Create(ctx context.Context, draft E) (E, error) {
	var created E
	err := c.run(ctx, "create", func(ctx context.Context) error {
		c.mu.Lock()
		defer c.mu.Unlock()

		now := c.opts.clock.Now()
		created = draft
		P(&created).SetMeta(domain.Base{ID: c.uniqueID(), CreatedAt: now, UpdatedAt: now})

		next := make([]E, 0, len(c.items)+1)
		next = append(next, created)
		next = append(next, c.items...)
		return c.commit(ctx, next)
	})
	if err != nil {
		var zero E
		return zero, err
	}
	return created, nil
}

// Update replaces every non-meta field of the entity with the draft's, keeping its
// id and createdAt and refreshing updatedAt.
func (c *Controller[E, P]) Update(ctx context.Context, id string, draft E) (E, error) {
	var updated E
	err := c.run(ctx, "update", func(ctx context.Context) error {
		c.mu.Lock()
		defer c.mu.Unlock()

		idx := c.indexOf(id)
		if idx < 0 {
			return ErrNotFound{Kind: c.opts.name, ID: id}
		}
		prev := P(&c.items[idx]).Meta()
		now := c.opts.clock.Now()
		if now.Before(prev.CreatedAt) {
			now = prev.CreatedAt
		}
		updated = draft
		P(&updated).SetMeta(domain.Base{ID: prev.ID, CreatedAt: prev.CreatedAt, UpdatedAt: now})

		next := slices.Clone(c.items)
		next[idx] = updated
		return c.commit(ctx, next)
	})
	if err != nil {
		var zero E
		return zero, err
	}
	return updated, nil
}

// Delete removes the entity with id. It reports false without writing when the id
// is unknown.
func (c *Controller[E, P]) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := c.run(ctx, "delete", func(ctx context.Context) error {
		c.mu.Lock()
		defer c.mu.Unlock()

		idx := c.indexOf(id)
		if idx < 0 {
			return nil
		}
		next := make([]E, 0, len(c.items)-1)
		next = append(next, c.items[:idx]...)
		next = append(next, c.items[idx+1:]...)
		if err := c.commit(ctx, next); err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// Get returns the entity with id.
func (c *Controller[E, P]) Get(id string) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := c.indexOf(id); idx >= 0 {
		return c.items[idx], true
	}
	var zero E
	return zero, false
}

// List returns the collection in storage order (newest created first).
func (c *Controller[E, P]) List() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Len returns the number of entities held.
func (c *Controller[E, P]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// commit persists next and swaps it in only when the save succeeds.
// Callers hold c.mu.
func (c *Controller[E, P]) commit(ctx context.Context, next []E) error {
	if err := c.store.Save(ctx, next); err != nil {
		return fmt.Errorf("persist %s: %w", c.opts.name, err)
	}
	c.items = next
	return nil
}

func (c *Controller[E, P]) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.items {
		if P(&c.items[i]).Meta().ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller[E, P]) uniqueID() string {
	for range maxIDAttempts {
		id := c.opts.newID()
		if id != "" && c.indexOf(id) < 0 {
			return id
		}
	}
	return uuid.NewString()
}

func (c *Controller[E, P]) run(ctx context.Context, op string, fn func(context.Context) error) error {
	return observability.Run(ctx, c.opts.name+"."+op, c.opts.logger, c.opts.metrics, c.opts.tracer, fn)
}

func (c *Controller[E, P]) now() time.Time { return c.opts.clock.Now() }
