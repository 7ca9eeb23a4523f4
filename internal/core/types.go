package core

import (
	"districtportal/internal/collection"
	"districtportal/internal/observability"
	"districtportal/pkg/domain"
)

type (
	Kind           = domain.Kind
	Base           = domain.Base
	Action         = domain.Action
	Announcement   = domain.Announcement
	AssistanceInfo = domain.AssistanceInfo
	VotingCenter   = domain.VotingCenter
	Criteria       = collection.Criteria
	Stats          = collection.Stats
	ErrNotFound    = collection.ErrNotFound
)

type (
	Logger          = observability.Logger
	Clock           = observability.Clock
	ClockFunc       = observability.ClockFunc
	MetricsRecorder = observability.MetricsRecorder
	Tracer          = observability.Tracer
	TraceSpan       = observability.TraceSpan
)

const (
	KindAnnouncement   = domain.KindAnnouncement
	KindAssistanceInfo = domain.KindAssistanceInfo
	KindVotingCenter   = domain.KindVotingCenter
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)

// Collections for each kind.
type (
	AnnouncementCollection = Collection[domain.Announcement, *domain.Announcement]
	AssistanceCollection   = Collection[domain.AssistanceInfo, *domain.AssistanceInfo]
	VotingCenterCollection = Collection[domain.VotingCenter, *domain.VotingCenter]
)
