package domain

import "strings"

// Training is a course employees can be assigned to. Trainings are read-only
// in the console.
type Training struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Active    bool   `json:"active"`
}

// TrainingStatusFilter is the tri-state status filter of the trainings page.
type TrainingStatusFilter string

const (
	TrainingStatusAll     TrainingStatusFilter = ""
	TrainingStatusActive  TrainingStatusFilter = "active"
	TrainingStatusPassive TrainingStatusFilter = "passive"
)

// ParseTrainingStatusFilter maps unknown values to TrainingStatusAll.
func ParseTrainingStatusFilter(s string) TrainingStatusFilter {
	switch TrainingStatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case TrainingStatusActive:
		return TrainingStatusActive
	case TrainingStatusPassive:
		return TrainingStatusPassive
	default:
		return TrainingStatusAll
	}
}

// TrainingFilter narrows the training list.
type TrainingFilter struct {
	Title  string
	Status TrainingStatusFilter
}

// Match reports whether t passes the filter. Title matching is a
// case-insensitive substring test.
func (f TrainingFilter) Match(t Training) bool {
	if q := strings.TrimSpace(f.Title); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), strings.ToLower(q)) {
			return false
		}
	}
	switch f.Status {
	case TrainingStatusActive:
		return t.Active
	case TrainingStatusPassive:
		return !t.Active
	}
	return true
}
