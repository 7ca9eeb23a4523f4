package collection

import (
	"strings"

	"districtportal/pkg/domain"
)

// Stats keys that are not status values.
const (
	StatTotal         = "total"
	StatExpiredByDate = "expired_by_date"
)

// Stats maps a counter name to its value: StatTotal, one lower-cased key per declared
// status (zero when unused) plus any other status found, and StatExpiredByDate for
// kinds with a validity date.
type Stats map[string]int

// Total returns the total count.
func (s Stats) Total() int { return s[StatTotal] }

// Status returns the count for a status value, matched case-insensitively.
func (s Stats) Status(status string) int { return s[strings.ToLower(status)] }

// Stats recomputes the aggregate counters from the current collection. Date-based
// expiry is counted independently of the status field.
func (c *Controller[E, P]) Stats() Stats {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := Stats{StatTotal: len(c.items)}
	proto := P(new(E))
	for _, status := range proto.StatusValues() {
		out[strings.ToLower(status)] = 0
	}
	_, expiring := any(proto).(domain.Expiring)
	if expiring {
		out[StatExpiredByDate] = 0
	}
	for i := range c.items {
		e := P(&c.items[i])
		if status := strings.ToLower(strings.TrimSpace(e.StatusValue())); status != "" {
			out[status]++
		}
		if ex, ok := any(e).(domain.Expiring); ok && ex.ExpiredAt(now) {
			out[StatExpiredByDate]++
		}
	}
	return out
}
