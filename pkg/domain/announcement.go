package domain

import (
	"strings"
	"time"
)

// Priority orders announcements on the dashboard.
type Priority string

// Announcement priorities.
const (
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"
)

// AnnouncementStatus is the editorial status of an announcement.
type AnnouncementStatus string

// Announcement statuses.
const (
	AnnouncementActive  AnnouncementStatus = "Active"
	AnnouncementExpired AnnouncementStatus = "Expired"
)

// Announcement is a notice published to voters.
type Announcement struct {
	Base
	Title      string             `json:"title"`
	Details    string             `json:"details"`
	ValidUntil string             `json:"validUntil"`
	Priority   Priority           `json:"priority"`
	Status     AnnouncementStatus `json:"status"`
}

// SearchFields implements Entity.
func (a Announcement) SearchFields() []string {
	return []string{a.Title, a.Details}
}

// FilterFields implements Entity.
func (a Announcement) FilterFields() []string {
	return []string{"status", "priority"}
}

// Field implements Entity.
func (a Announcement) Field(name string) (string, bool) {
	switch name {
	case "status":
		return string(a.Status), true
	case "priority":
		return string(a.Priority), true
	}
	return "", false
}

// StatusValue implements Entity.
func (a Announcement) StatusValue() string { return string(a.Status) }

// StatusValues implements Entity.
func (Announcement) StatusValues() []string {
	return []string{string(AnnouncementActive), string(AnnouncementExpired)}
}

// ApplyDefaults sets a Normal priority and an Active status when they are unset.
func (a *Announcement) ApplyDefaults() {
	if a.Priority == "" {
		a.Priority = PriorityNormal
	}
	if a.Status == "" {
		a.Status = AnnouncementActive
	}
}

// Rank places High before Normal; unknown priorities sort last.
func (a Announcement) Rank() int {
	switch a.Priority {
	case PriorityHigh:
		return 0
	case PriorityNormal:
		return 1
	default:
		return 2
	}
}

// ExpiredAt reports whether ValidUntil lies strictly before now. An empty or
// unparsable date never expires. The Status field is not consulted.
func (a Announcement) ExpiredAt(now time.Time) bool {
	until, ok := ParseDate(a.ValidUntil)
	if !ok {
		return false
	}
	return until.Before(now)
}

// Validate checks the required title and the enum fields.
func (a Announcement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return requiredError("title")
	}
	if a.ValidUntil != "" {
		if _, ok := ParseDate(a.ValidUntil); !ok {
			return ValidationError{Field: "validUntil", Reason: "must be a date (YYYY-MM-DD)"}
		}
	}
	if err := checkEnum("priority", string(a.Priority), string(PriorityHigh), string(PriorityNormal)); err != nil {
		return err
	}
	return checkEnum("status", string(a.Status), string(AnnouncementActive), string(AnnouncementExpired))
}
