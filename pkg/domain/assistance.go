package domain

import "strings"

// AssistanceCategory groups assistance entries on the dashboard.
type AssistanceCategory string

// Assistance categories.
const (
	CategoryHelpline      AssistanceCategory = "Helpline"
	CategoryDocument      AssistanceCategory = "Document"
	CategoryFacility      AssistanceCategory = "Facility"
	CategoryTransport     AssistanceCategory = "Transport"
	CategoryAccessibility AssistanceCategory = "Accessibility"
	CategoryOther         AssistanceCategory = "Other"
)

// AssistanceCategories lists the accepted categories.
func AssistanceCategories() []AssistanceCategory {
	return []AssistanceCategory{
		CategoryHelpline,
		CategoryDocument,
		CategoryFacility,
		CategoryTransport,
		CategoryAccessibility,
		CategoryOther,
	}
}

// ActivityStatus marks assistance entries and voting centers as in or out of service.
type ActivityStatus string

// Activity statuses.
const (
	StatusActive   ActivityStatus = "Active"
	StatusInactive ActivityStatus = "Inactive"
)

// AssistanceInfo describes a help resource offered to voters.
type AssistanceInfo struct {
	Base
	Title       string             `json:"title"`
	Category    AssistanceCategory `json:"category"`
	Description string             `json:"description"`
	Link        string             `json:"link"`
	Area        string             `json:"area"`
	Status      ActivityStatus     `json:"status"`
	ImageURL    string             `json:"imageUrl"`
}

// SearchFields implements Entity.
func (a AssistanceInfo) SearchFields() []string {
	return []string{a.Title, a.Description, a.Area}
}

// FilterFields implements Entity.
func (a AssistanceInfo) FilterFields() []string {
	return []string{"status", "category", "area"}
}

// Field implements Entity.
func (a AssistanceInfo) Field(name string) (string, bool) {
	switch name {
	case "status":
		return string(a.Status), true
	case "category":
		return string(a.Category), true
	case "area":
		return a.Area, true
	}
	return "", false
}

// StatusValue implements Entity.
func (a AssistanceInfo) StatusValue() string { return string(a.Status) }

// StatusValues implements Entity.
func (AssistanceInfo) StatusValues() []string {
	return []string{string(StatusActive), string(StatusInactive)}
}

// ApplyDefaults files uncategorized entries under Other and marks them Active.
func (a *AssistanceInfo) ApplyDefaults() {
	if a.Category == "" {
		a.Category = CategoryOther
	}
	if a.Status == "" {
		a.Status = StatusActive
	}
}

// Validate checks the required title and the enum fields.
func (a AssistanceInfo) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return requiredError("title")
	}
	categories := AssistanceCategories()
	allowed := make([]string, 0, len(categories))
	for _, c := range categories {
		allowed = append(allowed, string(c))
	}
	if err := checkEnum("category", string(a.Category), allowed...); err != nil {
		return err
	}
	return checkEnum("status", string(a.Status), string(StatusActive), string(StatusInactive))
}
