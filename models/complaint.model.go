package models

import "gorm.io/gorm"

const (
	StatusSubmitted  = "Submitted"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

const DefaultCategory = "General"

type Complaint struct {
	gorm.Model
	UserID      uint   `json:"user_id"` // owner, never reassigned
	Title       string `json:"title"`
	Category    string `json:"category" gorm:"default:'General'"`
	Description string `json:"description"`
	Priority    string `json:"priority" gorm:"default:'Medium'"`
	Status      string `json:"status" gorm:"default:'Submitted'"`
}

// legal forward edges of the status lifecycle; re-asserting the current
// status is always allowed and handled separately in CanTransition
var statusTransitions = map[string][]string{
	StatusSubmitted:  {StatusInProgress, StatusResolved, StatusClosed},
	StatusInProgress: {StatusResolved, StatusClosed},
	StatusResolved:   {StatusClosed},
	StatusClosed:     {},
}

// AllStatuses returns the lifecycle statuses in display order.
func AllStatuses() []string {
	return []string{StatusSubmitted, StatusInProgress, StatusResolved, StatusClosed}
}

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// IsTerminal reports whether s permits feedback.
func IsTerminal(s string) bool {
	return s == StatusResolved || s == StatusClosed
}

// CanTransition reports whether an admin may move a complaint from one
// status to another. Reverse edges are rejected.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
