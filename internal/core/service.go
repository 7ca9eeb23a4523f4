package core

import (
	"context"
	"errors"
	"fmt"

	"districtportal/internal/medium"
	"districtportal/internal/store"
	"districtportal/pkg/domain"
)

// Service owns the portal's entity collections over one durable medium.
type Service struct {
	medium        medium.Medium
	opts          serviceOptions
	announcements *AnnouncementCollection
	assistance    *AssistanceCollection
	votingCenters *VotingCenterCollection
}

// NewService loads every collection from m.
func NewService(ctx context.Context, m medium.Medium, opts ...ServiceOption) (*Service, error) {
	if m == nil {
		return nil, errors.New("core: medium is required")
	}
	cfg := defaultServiceOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	svc := &Service{medium: m, opts: cfg}

	var err error
	if svc.announcements, err = openCollection[domain.Announcement](ctx, svc, domain.KindAnnouncement); err != nil {
		return nil, fmt.Errorf("open %s: %w", domain.KindAnnouncement, err)
	}
	if svc.assistance, err = openCollection[domain.AssistanceInfo](ctx, svc, domain.KindAssistanceInfo); err != nil {
		return nil, fmt.Errorf("open %s: %w", domain.KindAssistanceInfo, err)
	}
	if svc.votingCenters, err = openCollection[domain.VotingCenter](ctx, svc, domain.KindVotingCenter); err != nil {
		return nil, fmt.Errorf("open %s: %w", domain.KindVotingCenter, err)
	}
	cfg.logger.Debug("portal service ready", "medium", string(m.Driver()))
	return svc, nil
}

// NewInMemoryService creates a service over a fresh in-memory medium.
func NewInMemoryService(ctx context.Context, opts ...ServiceOption) (*Service, error) {
	m, err := OpenMedium(ctx, StorageConfig{Driver: string(medium.DriverMemory)})
	if err != nil {
		return nil, err
	}
	return NewService(ctx, m, opts...)
}

// Announcements returns the announcement collection.
func (s *Service) Announcements() *AnnouncementCollection { return s.announcements }

// Assistance returns the assistance info collection.
func (s *Service) Assistance() *AssistanceCollection { return s.assistance }

// VotingCenters returns the voting center collection.
func (s *Service) VotingCenters() *VotingCenterCollection { return s.votingCenters }

// Medium returns the durable medium backing every collection.
func (s *Service) Medium() medium.Medium { return s.medium }

// Summary returns the statistics of every collection keyed by kind.
func (s *Service) Summary() map[Kind]Stats {
	return map[Kind]Stats{
		domain.KindAnnouncement:   s.announcements.Stats(),
		domain.KindAssistanceInfo: s.assistance.Stats(),
		domain.KindVotingCenter:   s.votingCenters.Stats(),
	}
}

// Reload re-reads every collection from the medium.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.announcements.Reload(ctx); err != nil {
		return err
	}
	if err := s.assistance.Reload(ctx); err != nil {
		return err
	}
	return s.votingCenters.Reload(ctx)
}

// Close releases the medium.
func (s *Service) Close() error {
	return medium.Close(s.medium)
}

func newStore[E any](svc *Service, kind domain.Kind) (*store.Store[E], error) {
	return store.New[E](svc.medium, kind.Namespace(), store.WithLogger(svc.opts.logger))
}
