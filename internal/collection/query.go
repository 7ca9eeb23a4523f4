package collection

import (
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"districtportal/pkg/domain"
)

// Criteria selects and orders a projection of the collection. All conditions
// must hold.
type Criteria struct {
	// Search is matched case-insensitively against the entity's search fields.
	Search string `json:"search,omitempty"`
	// Fuzzy switches Search from substring to subsequence matching.
	Fuzzy bool `json:"fuzzy,omitempty"`
	// Filters maps a filter field to the exact value it must hold. Empty values
	// are ignored; unknown fields match nothing.
	Filters map[string]string `json:"filters,omitempty"`
}

// IsZero reports whether the criteria select everything.
func (c Criteria) IsZero() bool {
	if strings.TrimSpace(c.Search) != "" {
		return false
	}
	for _, v := range c.Filters {
		if v != "" {
			return false
		}
	}
	return true
}

// Query returns the entities matching criteria, ranked entities by rank first and
// then newest created first. Equal keys keep storage order. The collection and the
// store are not touched.
func (c *Controller[E, P]) Query(criteria Criteria) []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query[E, P](c.items, criteria)
}

// SetCriteria replaces the active criteria used by View.
func (c *Controller[E, P]) SetCriteria(criteria Criteria) {
	c.mu.Lock()
	defer c.mu.Unlock()
	criteria.Filters = cloneFilters(criteria.Filters)
	c.criteria = criteria
}

// Criteria returns the active criteria.
func (c *Controller[E, P]) Criteria() Criteria {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := c.criteria
	out.Filters = cloneFilters(out.Filters)
	return out
}

// View applies the active criteria to the current collection.
func (c *Controller[E, P]) View() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query[E, P](c.items, c.criteria)
}

func query[E any, P EntityPtr[E]](items []E, criteria Criteria) []E {
	needle := strings.ToLower(strings.TrimSpace(criteria.Search))
	out := make([]E, 0, len(items))
	for i := range items {
		e := P(&items[i])
		if !matchesSearch(e, needle, criteria.Fuzzy) || !matchesFilters(e, criteria.Filters) {
			continue
		}
		out = append(out, items[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := P(&out[i]), P(&out[j])
		if ra, ok := any(a).(domain.Ranked); ok {
			if rb, ok := any(b).(domain.Ranked); ok && ra.Rank() != rb.Rank() {
				return ra.Rank() < rb.Rank()
			}
		}
		return a.Meta().CreatedAt.After(b.Meta().CreatedAt)
	})
	return out
}

func matchesSearch(e domain.Entity, needle string, fuzzyMode bool) bool {
	if needle == "" {
		return true
	}
	for _, field := range e.SearchFields() {
		hay := strings.ToLower(field)
		if fuzzyMode {
			if fuzzy.MatchNormalized(needle, hay) {
				return true
			}
			continue
		}
		if strings.Contains(hay, needle) {
			return true
		}
	}
	return false
}

func matchesFilters(e domain.Entity, filters map[string]string) bool {
	for name, want := range filters {
		if want == "" {
			continue
		}
		if !slices.Contains(e.FilterFields(), name) {
			return false
		}
		got, ok := e.Field(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func cloneFilters(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
