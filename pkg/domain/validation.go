package domain

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports a draft field that a well-formed caller must not send.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func requiredError(field string) error {
	return ValidationError{Field: field, Reason: "is required"}
}

// checkEnum requires value to be one of allowed. Callers apply ApplyDefaults first
// when a draft may leave an enum unset.
func checkEnum(field, value string, allowed ...string) error {
	if value == "" {
		return requiredError(field)
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return ValidationError{Field: field, Reason: fmt.Sprintf("must be one of %s", strings.Join(allowed, ", "))}
}

// ParseDate reads a calendar date (YYYY-MM-DD, interpreted as UTC midnight) or an
// RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
