package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	destinationRepo "voyago/database/repository/destination"
	"voyago/models"
	"voyago/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sessionEntry is the live, exclusively-owned state of one planning session.
// Every read and write of session goes through mu; the search sequence
// counter implements the apply-if-latest discipline.
type sessionEntry struct {
	mu      sync.Mutex
	session models.PlanningSession

	// timer is the single pending debounce timer, if any.
	timer *time.Timer
	// seq is the sequence number of the most recently issued lookup. A
	// completed lookup applies its result only while its own number still
	// equals seq.
	seq uint64

	// disposed marks a torn-down session; late results are discarded.
	disposed bool
}

const sessionKeyPrefix = "planner:session:"

// CreateSession starts a new planning session for the destination, seeded
// with the caller's default start date and product defaults for everything
// else. The destination must exist.
func (s *DefaultPlannerSessionService) CreateSession(destinationID int, startDate *time.Time) (*models.PlanningSession, error) {
	if _, err := s.DestinationRepo.GetByID(destinationID); err != nil {
		if errors.Is(err, destinationRepo.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to verify destination: %w", err)
	}

	session := models.PlanningSession{
		SessionID:        uuid.New().String(),
		DestinationID:    destinationID,
		DurationDays:     3,
		OptimizationMode: models.ModeBalanced,
		Tuning:           models.DefaultTuning(),
		Status:           models.StatusIdle,
		CreatedAt:        s.now(),
	}
	if startDate != nil {
		d := *startDate
		session.StartDate = &d
	}

	e := &sessionEntry{session: session}

	s.mu.Lock()
	if s.sessions == nil {
		s.sessions = make(map[string]*sessionEntry)
	}
	s.sessions[session.SessionID] = e
	s.mu.Unlock()

	e.mu.Lock()
	s.persistLocked(e)
	e.mu.Unlock()

	if s.Expiry != nil {
		if err := s.Expiry.ScheduleExpiry(session.SessionID, s.sessionTTL()); err != nil {
			utils.GetLogger().Warn("failed to schedule session expiry",
				zap.String("sessionID", session.SessionID), zap.Error(err))
		}
	}

	return session.Clone(), nil
}

// GetSession returns a snapshot of the session.
func (s *DefaultPlannerSessionService) GetSession(sessionID string) (*models.PlanningSession, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return nil, ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

// CancelSession tears the session down. Any in-flight search or submission
// result arriving afterwards is silently discarded. Cancelling an unknown
// session is a no-op so expiry sweeps stay idempotent.
func (s *DefaultPlannerSessionService) CancelSession(sessionID string) error {
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.disposed = true
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
		e.mu.Unlock()
	}

	if s.Cache != nil {
		if err := s.Cache.Del(context.Background(), sessionKeyPrefix+sessionID).Err(); err != nil {
			return fmt.Errorf("failed to drop session snapshot: %w", err)
		}
	}
	return nil
}

// entry returns the live entry for the session, rehydrating from the Redis
// snapshot when this process has no in-memory copy (e.g. after a restart).
func (s *DefaultPlannerSessionService) entry(sessionID string) (*sessionEntry, error) {
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if ok {
		return e, nil
	}
	return s.rehydrate(sessionID)
}

// rehydrate rebuilds a live entry from the cached snapshot. A snapshot stuck
// in Submitting re-enters as Idle: no in-flight request survives a restart.
func (s *DefaultPlannerSessionService) rehydrate(sessionID string) (*sessionEntry, error) {
	if s.Cache == nil {
		return nil, ErrSessionNotFound
	}

	data, err := s.Cache.Get(context.Background(), sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}

	var session models.PlanningSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse session snapshot: %w", err)
	}
	if session.Status == models.StatusSubmitting {
		session.Status = models.StatusIdle
	}

	e := &sessionEntry{session: session}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions == nil {
		s.sessions = make(map[string]*sessionEntry)
	}
	if existing, ok := s.sessions[sessionID]; ok {
		return existing, nil
	}
	s.sessions[sessionID] = e
	return e, nil
}

// persistLocked writes the session snapshot through to Redis. Callers hold
// e.mu. Write-through is best effort; the in-memory entry stays authoritative.
func (s *DefaultPlannerSessionService) persistLocked(e *sessionEntry) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(e.session)
	if err != nil {
		utils.GetLogger().Error("failed to marshal session snapshot",
			zap.String("sessionID", e.session.SessionID), zap.Error(err))
		return
	}
	key := sessionKeyPrefix + e.session.SessionID
	if err := s.Cache.Set(context.Background(), key, data, s.sessionTTL()).Err(); err != nil {
		utils.GetLogger().Warn("failed to store session snapshot",
			zap.String("sessionID", e.session.SessionID), zap.Error(err))
	}
}
