// Package store persists one entity collection as a JSON array under a single
// namespace key of a durable medium.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"districtportal/internal/medium"
	"districtportal/internal/observability"
)

// Store reads and writes the full collection for one namespace.
type Store[E any] struct {
	medium    medium.Medium
	namespace string
	logger    observability.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger observability.Logger
}

// WithLogger routes corruption warnings to logger.
func WithLogger(logger observability.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New binds a store to namespace on m.
func New[E any](m medium.Medium, namespace string, opts ...Option) (*Store[E], error) {
	if m == nil {
		return nil, errors.New("store: medium is required")
	}
	if strings.TrimSpace(namespace) == "" {
		return nil, errors.New("store: namespace is required")
	}
	cfg := options{logger: observability.NopLogger{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[E]{medium: m, namespace: namespace, logger: cfg.logger}, nil
}

// Namespace returns the medium key the collection lives under.
func (s *Store[E]) Namespace() string { return s.namespace }

// Load returns the persisted collection in storage order. A missing key, an empty
// payload, a JSON null and an unparsable payload all yield an empty collection;
// only medium failures are returned as errors.
func (s *Store[E]) Load(ctx context.Context) ([]E, error) {
	raw, found, err := s.medium.GetItem(ctx, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.namespace, err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return []E{}, nil
	}
	var items []E
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("discarding unreadable collection", "namespace", s.namespace, "error", err)
		return []E{}, nil
	}
	if items == nil {
		items = []E{}
	}
	return items, nil
}

// Save replaces the persisted collection with items.
func (s *Store[E]) Save(ctx context.Context, items []E) error {
	if items == nil {
		items = []E{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.namespace, err)
	}
	if err := s.medium.SetItem(ctx, s.namespace, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", s.namespace, err)
	}
	return nil
}
