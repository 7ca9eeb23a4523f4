// Package domain defines the locally persisted records behind the district portal's
// voter-assistance dashboard, together with the small capability interfaces the
// generic collection layer relies on.
package domain

import (
	"strings"
	"time"
)

// Kind identifies one entity collection.
type Kind string

// Supported collection kinds.
const (
	KindAnnouncement   Kind = "announcements"
	KindAssistanceInfo Kind = "assistance"
	KindVotingCenter   Kind = "voting_centers"
)

// Kinds lists every collection in dashboard order.
func Kinds() []Kind {
	return []Kind{KindAnnouncement, KindAssistanceInfo, KindVotingCenter}
}

// Namespace returns the durable medium key that holds the kind's JSON array.
func (k Kind) Namespace() string {
	switch k {
	case KindAnnouncement:
		return "announcements_data"
	case KindAssistanceInfo:
		return "assistance_info_data"
	case KindVotingCenter:
		return "voting_center_data"
	default:
		return string(k) + "_data"
	}
}

// ParseKind resolves a kind from its identifier, accepting a few singular aliases.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "announcements", "announcement":
		return KindAnnouncement, true
	case "assistance", "assistance_info", "assistance-info":
		return KindAssistanceInfo, true
	case "voting_centers", "voting-centers", "voting_center", "votingcenters":
		return KindVotingCenter, true
	}
	return "", false
}

// Base carries the system-managed fields shared by every entity.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta returns the system-managed fields.
func (b Base) Meta() Base { return b }

// SetMeta overwrites the system-managed fields.
func (b *Base) SetMeta(m Base) { *b = m }

// Entity is implemented by every persisted record.
type Entity interface {
	Meta() Base
	// SearchFields returns the free-text fields matched by a search query.
	SearchFields() []string
	// FilterFields names the fields accepted by equality filters.
	FilterFields() []string
	// Field returns the value of a filterable field.
	Field(name string) (string, bool)
	// StatusValue returns the entity's status enum value.
	StatusValue() string
	// StatusValues lists every status the kind declares.
	StatusValues() []string
}

// Defaulter fills unset enum fields of a draft with the dashboard form defaults.
type Defaulter interface {
	ApplyDefaults()
}

// Ranked entities carry a primary ordering key; lower ranks sort first.
type Ranked interface {
	Rank() int
}

// Expiring entities know whether a calendar deadline has passed.
type Expiring interface {
	ExpiredAt(now time.Time) bool
}

// Action is a mutation applied to an entity.
type Action string

// Supported mutation actions.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)
