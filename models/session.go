package models

import "time"

// SessionStatus is the submission state of a planning session.
type SessionStatus string

const (
	StatusIdle       SessionStatus = "idle"
	StatusSubmitting SessionStatus = "submitting"
	StatusFailed     SessionStatus = "failed"
	StatusSucceeded  SessionStatus = "succeeded"
)

// OptimizationMode selects the generator's route-scoring strategy.
type OptimizationMode string

const (
	ModeBalanced OptimizationMode = "balanced"
	ModeQuality  OptimizationMode = "quality"
	ModeDistance OptimizationMode = "distance"
	ModeCost     OptimizationMode = "cost"
)

// Valid reports whether m is one of the supported optimization modes.
func (m OptimizationMode) Valid() bool {
	switch m {
	case ModeBalanced, ModeQuality, ModeDistance, ModeCost:
		return true
	}
	return false
}

// Product-defined ranges for session inputs. Mutations outside these ranges
// are rejected at the operation boundary, never clamped.
const (
	MinDurationDays = 1
	MaxDurationDays = 14

	MinRadiusKm = 5.0
	MaxRadiusKm = 50.0

	MinCandidates = 20
	MaxCandidates = 100
)

// Tuning holds the bounded numeric knobs forwarded to the generator.
type Tuning struct {
	MaxRadiusKm   float64 `json:"maxRadiusKm"`
	MaxCandidates int     `json:"maxCandidates"`
}

// InRange reports whether both knobs are inside their product ranges.
func (t Tuning) InRange() bool {
	return t.MaxRadiusKm >= MinRadiusKm && t.MaxRadiusKm <= MaxRadiusKm &&
		t.MaxCandidates >= MinCandidates && t.MaxCandidates <= MaxCandidates
}

// DefaultTuning matches the generator service's own defaults.
func DefaultTuning() Tuning {
	return Tuning{MaxRadiusKm: 10, MaxCandidates: 50}
}

// PlanningSession is the mutable aggregate for one trip-planning attempt.
// It is owned exclusively by the planner session store; every other component
// works with snapshots and routes mutations through the store's named
// operations.
type PlanningSession struct {
	SessionID     string     `json:"sessionId"`
	DestinationID int        `json:"destinationId"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	DurationDays  int        `json:"durationDays"`

	// StartingPoint is the waypoint the trip starts from; nil means "use the
	// destination's canonical center".
	StartingPoint *WaypointRef `json:"startingPoint,omitempty"`

	// SearchQuery is the raw starting-point search text. When StartingPoint
	// is set, SearchQuery equals its name and Candidates is empty.
	SearchQuery string        `json:"searchQuery"`
	Candidates  []WaypointRef `json:"candidates,omitempty"`

	// SearchAdvisory is a dismissible notice from a failed type-ahead lookup.
	SearchAdvisory string `json:"searchAdvisory,omitempty"`

	OptimizationMode OptimizationMode `json:"optimizationMode"`
	Tuning           Tuning           `json:"tuning"`

	Status        SessionStatus `json:"status"`
	FailureReason string        `json:"failureReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy safe to hand out as a snapshot.
func (s *PlanningSession) Clone() *PlanningSession {
	out := *s
	if s.StartDate != nil {
		d := *s.StartDate
		out.StartDate = &d
	}
	if s.StartingPoint != nil {
		wp := *s.StartingPoint
		out.StartingPoint = &wp
	}
	if s.Candidates != nil {
		out.Candidates = make([]WaypointRef, len(s.Candidates))
		copy(out.Candidates, s.Candidates)
	}
	return &out
}
