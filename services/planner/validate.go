package planner

import (
	"fmt"
	"time"

	"voyago/models"
)

// ValidationResult is the outcome of the validation gate. Reasons are in
// priority order; the first one is what gets surfaced.
type ValidationResult struct {
	OK      bool     `json:"ok"`
	Reasons []string `json:"reasons,omitempty"`
}

// Validate checks a session snapshot against the submission rules. It is a
// pure function: no I/O, no side effects; the caller supplies the current
// time so "today" is well defined.
//
// An unresolved free-text query (typed but never picked from the
// suggestions) is invalid: free text must not be silently promoted into a
// waypoint.
func Validate(session *models.PlanningSession, now time.Time) ValidationResult {
	var reasons []string

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if session.StartDate == nil {
		reasons = append(reasons, "start date is required")
	} else {
		sd := session.StartDate.In(now.Location())
		startDay := time.Date(sd.Year(), sd.Month(), sd.Day(), 0, 0, 0, 0, now.Location())
		if startDay.Before(today) {
			reasons = append(reasons, "start date cannot be in the past")
		}
	}

	if session.DurationDays < models.MinDurationDays || session.DurationDays > models.MaxDurationDays {
		reasons = append(reasons, fmt.Sprintf("duration must be between %d and %d days",
			models.MinDurationDays, models.MaxDurationDays))
	}

	if session.SearchQuery != "" && session.StartingPoint == nil {
		reasons = append(reasons, "pick a starting point from the suggestions or clear the search field")
	}

	return ValidationResult{OK: len(reasons) == 0, Reasons: reasons}
}
