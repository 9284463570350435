package planner

import (
	"context"
	"sync"
	"time"

	destinationRepo "voyago/database/repository/destination"
	waypointRepo "voyago/database/repository/waypoint"
	"voyago/models"
	"voyago/services/generator"
	"voyago/services/profile"

	"github.com/go-redis/redis/v8"
)

// PlannerSessionService manages the lifecycle of trip-planning sessions: all
// input mutations, the debounced starting-point search, and submission to the
// itinerary generator. Every mutation goes through a named operation here;
// callers only ever see snapshots.
type PlannerSessionService interface {
	CreateSession(destinationID int, startDate *time.Time) (*models.PlanningSession, error)
	GetSession(sessionID string) (*models.PlanningSession, error)
	CancelSession(sessionID string) error

	SetStartDate(sessionID string, date time.Time) (*models.PlanningSession, error)
	SetDurationDays(sessionID string, days int) (*models.PlanningSession, error)
	SetOptimizationMode(sessionID string, mode models.OptimizationMode) (*models.PlanningSession, error)
	SetTuning(sessionID string, tuning models.Tuning) (*models.PlanningSession, error)

	QueryChanged(sessionID, query string) (*models.PlanningSession, error)
	SelectWaypoint(sessionID string, ref models.WaypointRef) (*models.PlanningSession, error)
	ClearStartingPoint(sessionID string) (*models.PlanningSession, error)

	Submit(ctx context.Context, sessionID, userID string) (*SubmitOutcome, error)
}

// ExpiryScheduler schedules deferred teardown of an abandoned session.
type ExpiryScheduler interface {
	ScheduleExpiry(sessionID string, in time.Duration) error
}

// DefaultPlannerSessionService implements PlannerSessionService. Live
// sessions are held in an in-memory registry; snapshots are written through
// to Redis with a TTL so abandoned sessions are reclaimed.
type DefaultPlannerSessionService struct {
	DestinationRepo destinationRepo.DestinationRepository
	WaypointRepo    waypointRepo.WaypointRepository
	ProfileClient   profile.Client
	GeneratorClient generator.Client

	// Cache holds session snapshots; nil disables write-through (tests).
	Cache *redis.Client
	// Expiry schedules deferred session teardown; nil disables it.
	Expiry ExpiryScheduler

	// Zero values fall back to the product defaults.
	Debounce         time.Duration
	SessionTTL       time.Duration
	GeneratorTimeout time.Duration

	// Now overrides the clock for the validation gate; nil means time.Now.
	Now func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

const (
	defaultDebounce         = 400 * time.Millisecond
	defaultSessionTTL       = 30 * time.Minute
	defaultGeneratorTimeout = 30 * time.Second
)

func (s *DefaultPlannerSessionService) debounce() time.Duration {
	if s.Debounce > 0 {
		return s.Debounce
	}
	return defaultDebounce
}

func (s *DefaultPlannerSessionService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return defaultSessionTTL
}

func (s *DefaultPlannerSessionService) generatorTimeout() time.Duration {
	if s.GeneratorTimeout > 0 {
		return s.GeneratorTimeout
	}
	return defaultGeneratorTimeout
}

func (s *DefaultPlannerSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
