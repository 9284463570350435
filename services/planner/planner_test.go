package planner_test

import (
	"context"
	"sync"
	"time"

	destinationRepo "voyago/database/repository/destination"
	waypointRepo "voyago/database/repository/waypoint"
	"voyago/models"
	"voyago/services/generator"
	"voyago/services/planner"
	"voyago/services/profile"
)

// Hand-written test doubles for the planner's collaborators. Each method is
// a function field; set only the ones a test needs.

type mockDestinationRepo struct {
	getByID func(id int) (*models.Destination, error)
}

func (m *mockDestinationRepo) GetByID(id int) (*models.Destination, error) {
	return m.getByID(id)
}

var _ destinationRepo.DestinationRepository = (*mockDestinationRepo)(nil)

type mockWaypointRepo struct {
	mu     sync.Mutex
	calls  []string
	search func(destinationID int, query string, limit int) ([]models.WaypointRef, error)
}

func (m *mockWaypointRepo) Search(destinationID int, query string, limit int) ([]models.WaypointRef, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()
	return m.search(destinationID, query, limit)
}

func (m *mockWaypointRepo) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockWaypointRepo) lastCall() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ""
	}
	return m.calls[len(m.calls)-1]
}

var _ waypointRepo.WaypointRepository = (*mockWaypointRepo)(nil)

type mockProfileClient struct {
	mu    sync.Mutex
	calls int
	fetch func(ctx context.Context, userID string) (*models.TravelerProfile, error)
}

func (m *mockProfileClient) FetchByUserID(ctx context.Context, userID string) (*models.TravelerProfile, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.fetch(ctx, userID)
}

func (m *mockProfileClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ profile.Client = (*mockProfileClient)(nil)

type mockGeneratorClient struct {
	mu       sync.Mutex
	requests []models.GenerationRequest
	generate func(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
}

func (m *mockGeneratorClient) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.generate(ctx, req)
}

func (m *mockGeneratorClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockGeneratorClient) lastRequest() models.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

var _ generator.Client = (*mockGeneratorClient)(nil)

// ---- helpers ---------------------------------------------------------------

const testDestinationID = 7

func testDestination() *models.Destination {
	return &models.Destination{
		ID:                testDestinationID,
		Name:              "Madrid",
		Country:           "Spain",
		CanonicalCenterID: 10,
	}
}

func knownDestRepo() *mockDestinationRepo {
	return &mockDestinationRepo{
		getByID: func(id int) (*models.Destination, error) {
			if id != testDestinationID {
				return nil, destinationRepo.ErrNotFound
			}
			return testDestination(), nil
		},
	}
}

func profileFound(id int) *mockProfileClient {
	return &mockProfileClient{
		fetch: func(_ context.Context, userID string) (*models.TravelerProfile, error) {
			return &models.TravelerProfile{ID: id, UserID: userID}, nil
		},
	}
}

func generatorReturning(itineraryID int) *mockGeneratorClient {
	return &mockGeneratorClient{
		generate: func(_ context.Context, _ models.GenerationRequest) (*models.GenerationResult, error) {
			return &models.GenerationResult{ItineraryID: itineraryID}, nil
		},
	}
}

// newService builds a planner with a short debounce so search tests run fast.
func newService(wp *mockWaypointRepo, pc *mockProfileClient, gc *mockGeneratorClient) *planner.DefaultPlannerSessionService {
	svc := &planner.DefaultPlannerSessionService{
		DestinationRepo: knownDestRepo(),
		Debounce:        10 * time.Millisecond,
	}
	if wp != nil {
		svc.WaypointRepo = wp
	}
	if pc != nil {
		svc.ProfileClient = pc
	}
	if gc != nil {
		svc.GeneratorClient = gc
	}
	return svc
}

func tomorrow() time.Time {
	return time.Now().AddDate(0, 0, 1)
}

func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1)
}
