package planner

import (
	"fmt"
	"time"

	"voyago/models"
)

// SetStartDate records the trip's start date. Any date is accepted here;
// "not before today" is the validation gate's rule so that a date that was
// valid when typed and stale by submit time is still caught.
func (s *DefaultPlannerSessionService) SetStartDate(sessionID string, date time.Time) (*models.PlanningSession, error) {
	return s.mutate(sessionID, func(session *models.PlanningSession) error {
		d := date
		session.StartDate = &d
		return nil
	})
}

// SetDurationDays records the trip length in days. Out-of-range values are
// rejected, never clamped.
func (s *DefaultPlannerSessionService) SetDurationDays(sessionID string, days int) (*models.PlanningSession, error) {
	return s.mutate(sessionID, func(session *models.PlanningSession) error {
		if days < models.MinDurationDays || days > models.MaxDurationDays {
			return fmt.Errorf("duration must be between %d and %d days",
				models.MinDurationDays, models.MaxDurationDays)
		}
		session.DurationDays = days
		return nil
	})
}

// SetOptimizationMode records the generator's route-scoring strategy.
func (s *DefaultPlannerSessionService) SetOptimizationMode(sessionID string, mode models.OptimizationMode) (*models.PlanningSession, error) {
	return s.mutate(sessionID, func(session *models.PlanningSession) error {
		if !mode.Valid() {
			return fmt.Errorf("unknown optimization mode %q", mode)
		}
		session.OptimizationMode = mode
		return nil
	})
}

// SetTuning records the bounded generator knobs. Out-of-range values are
// rejected, never clamped.
func (s *DefaultPlannerSessionService) SetTuning(sessionID string, tuning models.Tuning) (*models.PlanningSession, error) {
	return s.mutate(sessionID, func(session *models.PlanningSession) error {
		if !tuning.InRange() {
			return fmt.Errorf("tuning out of range: radius %g-%g km, candidates %d-%d",
				models.MinRadiusKm, models.MaxRadiusKm, models.MinCandidates, models.MaxCandidates)
		}
		session.Tuning = tuning
		return nil
	})
}

// mutate applies a named mutation under the session's lock and returns a
// fresh snapshot.
func (s *DefaultPlannerSessionService) mutate(sessionID string, fn func(*models.PlanningSession) error) (*models.PlanningSession, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return nil, ErrSessionNotFound
	}
	if err := fn(&e.session); err != nil {
		return nil, err
	}
	s.persistLocked(e)
	return e.session.Clone(), nil
}
