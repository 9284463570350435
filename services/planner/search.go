package planner

import (
	"time"
	"unicode/utf8"

	"voyago/models"
	"voyago/utils"

	"go.uber.org/zap"
)

const (
	// minQueryLen is the minimum query length before a lookup is issued.
	minQueryLen = 3
	// suggestionLimit caps how many candidates one lookup returns.
	suggestionLimit = 8
)

// searchAdvisoryText is the dismissible notice shown when a type-ahead lookup
// fails; typing stays fully usable.
const searchAdvisoryText = "Suggestions are temporarily unavailable. You can keep typing or try again."

// QueryChanged records the new starting-point query immediately and restarts
// the single debounce timer. Only after the input has been quiet for the
// debounce interval does a lookup go out.
func (s *DefaultPlannerSessionService) QueryChanged(sessionID, query string) (*models.PlanningSession, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return nil, ErrSessionNotFound
	}

	e.session.SearchQuery = query

	// Editing the text away from the selected waypoint's name drops the
	// selection and re-enters a normal search episode. While a waypoint is
	// selected the query always equals its name; re-recording that exact
	// text (focus events) keeps the selection.
	if e.session.StartingPoint != nil && query != e.session.StartingPoint.Name {
		e.session.StartingPoint = nil
	}

	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(s.debounce(), func() { s.debounceFired(e) })

	s.persistLocked(e)
	return e.session.Clone(), nil
}

// debounceFired runs when the query has been quiet for one debounce interval.
func (s *DefaultPlannerSessionService) debounceFired(e *sessionEntry) {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	e.timer = nil

	query := e.session.SearchQuery
	if utf8.RuneCountInString(query) < minQueryLen || e.session.StartingPoint != nil {
		// Too short to search, or a waypoint is already picked. Invalidate
		// anything still in flight so it cannot resurrect old candidates.
		e.seq++
		e.session.Candidates = nil
		s.persistLocked(e)
		e.mu.Unlock()
		return
	}

	e.seq++
	seq := e.seq
	destinationID := e.session.DestinationID
	e.mu.Unlock()

	refs, err := s.WaypointRepo.Search(destinationID, query, suggestionLimit)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed || seq != e.seq {
		// Superseded by a newer lookup (or the session is gone); a stale
		// result must never overwrite newer state.
		return
	}

	if err != nil {
		utils.GetLogger().Warn("waypoint lookup failed",
			zap.String("sessionID", e.session.SessionID),
			zap.String("query", query), zap.Error(err))
		e.session.Candidates = nil
		e.session.SearchAdvisory = searchAdvisoryText
	} else {
		e.session.Candidates = refs
		e.session.SearchAdvisory = ""
	}
	s.persistLocked(e)
}

// SelectWaypoint picks ref as the trip's starting point: the pending timer is
// cancelled, the query becomes the waypoint's name and the candidate list is
// cleared.
func (s *DefaultPlannerSessionService) SelectWaypoint(sessionID string, ref models.WaypointRef) (*models.PlanningSession, error) {
	return s.endSearch(sessionID, func(session *models.PlanningSession) {
		wp := ref
		session.StartingPoint = &wp
		session.SearchQuery = ref.Name
	})
}

// ClearStartingPoint reverts to the destination's default center and resets
// the search field.
func (s *DefaultPlannerSessionService) ClearStartingPoint(sessionID string) (*models.PlanningSession, error) {
	return s.endSearch(sessionID, func(session *models.PlanningSession) {
		session.StartingPoint = nil
		session.SearchQuery = ""
	})
}

// endSearch applies a selection-type mutation: it stops the pending timer,
// invalidates in-flight lookups and clears candidates before fn runs.
func (s *DefaultPlannerSessionService) endSearch(sessionID string, fn func(*models.PlanningSession)) (*models.PlanningSession, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return nil, ErrSessionNotFound
	}

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.seq++
	e.session.Candidates = nil
	e.session.SearchAdvisory = ""
	fn(&e.session)

	s.persistLocked(e)
	return e.session.Clone(), nil
}
