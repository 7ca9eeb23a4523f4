package domain

import "strings"

// VotingCenter is a polling location within a ward.
type VotingCenter struct {
	Base
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Ward    string         `json:"ward"`
	Area    string         `json:"area"`
	MapLink string         `json:"mapLink"`
	Officer string         `json:"officer"`
	Status  ActivityStatus `json:"status"`
}

// SearchFields implements Entity.
func (v VotingCenter) SearchFields() []string {
	return []string{v.Name, v.Address, v.Ward, v.Area, v.Officer}
}

// FilterFields implements Entity.
func (v VotingCenter) FilterFields() []string {
	return []string{"status", "ward", "area"}
}

// Field implements Entity.
func (v VotingCenter) Field(name string) (string, bool) {
	switch name {
	case "status":
		return string(v.Status), true
	case "ward":
		return v.Ward, true
	case "area":
		return v.Area, true
	}
	return "", false
}

// StatusValue implements Entity.
func (v VotingCenter) StatusValue() string { return string(v.Status) }

// StatusValues implements Entity.
func (VotingCenter) StatusValues() []string {
	return []string{string(StatusActive), string(StatusInactive)}
}

// ApplyDefaults marks a center Active when no status is given.
func (v *VotingCenter) ApplyDefaults() {
	if v.Status == "" {
		v.Status = StatusActive
	}
}

// Validate checks the required name and the status enum.
func (v VotingCenter) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return requiredError("name")
	}
	return checkEnum("status", string(v.Status), string(StatusActive), string(StatusInactive))
}
