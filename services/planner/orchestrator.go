package planner

import (
	"context"
	"errors"
	"time"

	"voyago/models"
	"voyago/services/generator"
	"voyago/utils"

	"go.uber.org/zap"
)

// SubmitOutcome reports one submit() pass. Exactly one of the optional
// fields is meaningful: ItineraryID on success, Reasons when the gate (or a
// missing identity) refused before any network call, Reason when the
// submission itself failed.
type SubmitOutcome struct {
	Status      models.SessionStatus `json:"status"`
	ItineraryID int                  `json:"itineraryId,omitempty"`
	Reasons     []string             `json:"reasons,omitempty"`
	Reason      string               `json:"reason,omitempty"`
}

// Submit runs the terminal state machine Idle → Submitting → {Succeeded |
// Failed}. No generation request is ever issued for a session that fails
// validation, and while a pass is in flight a second Submit is a no-op.
// Failed is not sticky: the next Submit re-enters as Idle.
func (s *DefaultPlannerSessionService) Submit(ctx context.Context, sessionID, userID string) (*SubmitOutcome, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	if e.session.Status == models.StatusSubmitting {
		e.mu.Unlock()
		return &SubmitOutcome{Status: models.StatusSubmitting}, nil
	}
	if e.session.Status == models.StatusFailed {
		e.session.Status = models.StatusIdle
		e.session.FailureReason = ""
	}

	if userID == "" {
		s.persistLocked(e)
		e.mu.Unlock()
		return &SubmitOutcome{Status: models.StatusIdle, Reasons: []string{ReasonNotSignedIn}}, nil
	}

	if res := Validate(&e.session, s.now()); !res.OK {
		s.persistLocked(e)
		e.mu.Unlock()
		return &SubmitOutcome{Status: models.StatusIdle, Reasons: res.Reasons}, nil
	}

	e.session.Status = models.StatusSubmitting
	snapshot := e.session.Clone()
	s.persistLocked(e)
	e.mu.Unlock()

	outcome := s.performSubmission(ctx, snapshot, userID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		// The session was torn down while the request was in flight; the
		// result is dropped rather than applied to a dead session.
		return nil, ErrSessionNotFound
	}
	e.session.Status = outcome.Status
	e.session.FailureReason = outcome.Reason
	s.persistLocked(e)
	return outcome, nil
}

// performSubmission runs the strictly ordered dependent fetch: profile first,
// then the destination's canonical center, then exactly one generation
// request.
func (s *DefaultPlannerSessionService) performSubmission(ctx context.Context, snapshot *models.PlanningSession, userID string) *SubmitOutcome {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(ctx, s.generatorTimeout())
	defer cancel()

	prof, err := s.ProfileClient.FetchByUserID(ctx, userID)
	if err != nil {
		logger.Warn("profile lookup failed",
			zap.String("sessionID", snapshot.SessionID), zap.Error(err))
		return &SubmitOutcome{Status: models.StatusFailed, Reason: "could not load your travel profile"}
	}
	if prof == nil {
		return &SubmitOutcome{Status: models.StatusFailed, Reason: ReasonMissingProfile}
	}

	dest, err := s.DestinationRepo.GetByID(snapshot.DestinationID)
	if err != nil {
		logger.Warn("destination lookup failed",
			zap.String("sessionID", snapshot.SessionID), zap.Error(err))
		return &SubmitOutcome{Status: models.StatusFailed, Reason: "destination is temporarily unavailable"}
	}

	// The canonical center always rides along; a selected waypoint goes in
	// the separate hotel field so the generator can anchor on it without
	// losing the city center.
	var hotelID *int
	if snapshot.StartingPoint != nil {
		id := snapshot.StartingPoint.ID
		hotelID = &id
	}

	req := models.GenerationRequest{
		UserProfileID:    prof.ID,
		CityCenterID:     dest.CanonicalCenterID,
		HotelID:          hotelID,
		NumDays:          snapshot.DurationDays,
		StartDate:        snapshot.StartDate.Format(time.RFC3339),
		OptimizationMode: string(snapshot.OptimizationMode),
		MaxRadiusKm:      snapshot.Tuning.MaxRadiusKm,
		MaxCandidates:    snapshot.Tuning.MaxCandidates,
	}

	result, err := s.GeneratorClient.Generate(ctx, req)
	switch {
	case err == nil:
		logger.Info("itinerary generated",
			zap.String("sessionID", snapshot.SessionID),
			zap.Int("itineraryID", result.ItineraryID))
		return &SubmitOutcome{Status: models.StatusSucceeded, ItineraryID: result.ItineraryID}
	case errors.Is(err, generator.ErrPayloadRejected):
		return &SubmitOutcome{Status: models.StatusFailed, Reason: "the itinerary service rejected this plan"}
	case errors.Is(err, generator.ErrAuthExpired):
		return &SubmitOutcome{Status: models.StatusFailed, Reason: "your session expired; please sign in again"}
	default:
		logger.Warn("generation request failed",
			zap.String("sessionID", snapshot.SessionID), zap.Error(err))
		return &SubmitOutcome{Status: models.StatusFailed, Reason: "could not reach the itinerary service; try again"}
	}
}
