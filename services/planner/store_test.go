package planner_test

import (
	"testing"
	"time"

	destinationRepo "voyago/database/repository/destination"
	"voyago/models"
	"voyago/services/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession_SeedsDefaults(t *testing.T) {
	svc := newService(nil, nil, nil)
	start := tomorrow()

	session, err := svc.CreateSession(testDestinationID, &start)
	require.NoError(t, err)

	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, testDestinationID, session.DestinationID)
	require.NotNil(t, session.StartDate)
	assert.True(t, session.StartDate.Equal(start))
	assert.Equal(t, 3, session.DurationDays)
	assert.Equal(t, models.ModeBalanced, session.OptimizationMode)
	assert.Equal(t, models.DefaultTuning(), session.Tuning)
	assert.Equal(t, models.StatusIdle, session.Status)
	assert.Nil(t, session.StartingPoint)
	assert.Empty(t, session.SearchQuery)
}

func TestCreateSession_UnknownDestination(t *testing.T) {
	svc := newService(nil, nil, nil)

	_, err := svc.CreateSession(12345, nil)

	assert.ErrorIs(t, err, destinationRepo.ErrNotFound)
}

func TestGetSession_ReturnsIsolatedSnapshot(t *testing.T) {
	svc := newService(nil, nil, nil)
	session, err := svc.CreateSession(testDestinationID, nil)
	require.NoError(t, err)

	snap, err := svc.GetSession(session.SessionID)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the store.
	snap.DurationDays = 99
	snap.SearchQuery = "tampered"

	fresh, err := svc.GetSession(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, fresh.DurationDays)
	assert.Empty(t, fresh.SearchQuery)
}

func TestGetSession_Unknown(t *testing.T) {
	svc := newService(nil, nil, nil)

	_, err := svc.GetSession("nope")

	assert.ErrorIs(t, err, planner.ErrSessionNotFound)
}

func TestCancelSession_IsIdempotent(t *testing.T) {
	svc := newService(nil, nil, nil)
	session, err := svc.CreateSession(testDestinationID, nil)
	require.NoError(t, err)

	require.NoError(t, svc.CancelSession(session.SessionID))
	require.NoError(t, svc.CancelSession(session.SessionID))

	_, err = svc.GetSession(session.SessionID)
	assert.ErrorIs(t, err, planner.ErrSessionNotFound)
}

func TestSetDurationDays_RejectsOutOfRange(t *testing.T) {
	svc := newService(nil, nil, nil)
	session, err := svc.CreateSession(testDestinationID, nil)
	require.NoError(t, err)
	id := session.SessionID

	for _, days := range []int{0, -3, 15} {
		_, err := svc.SetDurationDays(id, days)
		assert.Error(t, err, "duration %d must be rejected", days)
	}

	// Rejected values are never stored, not clamped to zero.
	snap, err := svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.DurationDays)

	snap, err = svc.SetDurationDays(id, 14)
	require.NoError(t, err)
	assert.Equal(t, 14, snap.DurationDays)
}

func TestSetTuning_RejectsOutOfRange(t *testing.T) {
	svc := newService(nil, nil, nil)
	session, err := svc.CreateSession(testDestinationID, nil)
	require.NoError(t, err)
	id := session.SessionID

	bad := []models.Tuning{
		{MaxRadiusKm: 4, MaxCandidates: 50},
		{MaxRadiusKm: 51, MaxCandidates: 50},
		{MaxRadiusKm: 10, MaxCandidates: 19},
		{MaxRadiusKm: 10, MaxCandidates: 101},
	}
	for _, tuning := range bad {
		_, err := svc.SetTuning(id, tuning)
		assert.Error(t, err, "tuning %+v must be rejected", tuning)
	}

	snap, err := svc.SetTuning(id, models.Tuning{MaxRadiusKm: 25, MaxCandidates: 80})
	require.NoError(t, err)
	assert.Equal(t, 25.0, snap.Tuning.MaxRadiusKm)
	assert.Equal(t, 80, snap.Tuning.MaxCandidates)
}

func TestSetOptimizationMode(t *testing.T) {
	svc := newService(nil, nil, nil)
	session, err := svc.CreateSession(testDestinationID, nil)
	require.NoError(t, err)
	id := session.SessionID

	for _, mode := range []models.OptimizationMode{
		models.ModeBalanced, models.ModeQuality, models.ModeDistance, models.ModeCost,
	} {
		snap, err := svc.SetOptimizationMode(id, mode)
		require.NoError(t, err)
		assert.Equal(t, mode, snap.OptimizationMode)
	}

	_, err = svc.SetOptimizationMode(id, models.OptimizationMode("fastest"))
	assert.Error(t, err)
}

func TestSetStartDate_AcceptsAnyDate(t *testing.T) {
	// The gate, not the mutation, owns the "not before today" rule: a date
	// that was fine when typed can become stale by submit time.
	svc := newService(nil, nil, nil)
	session, err := svc.CreateSession(testDestinationID, nil)
	require.NoError(t, err)

	past := yesterday()
	snap, err := svc.SetStartDate(session.SessionID, past)
	require.NoError(t, err)
	require.NotNil(t, snap.StartDate)
	assert.True(t, snap.StartDate.Equal(past))

	res := planner.Validate(snap, time.Now())
	assert.False(t, res.OK)
}

func TestMutationsAfterCancelFail(t *testing.T) {
	svc := newService(immediateSearch(nil), nil, nil)
	session, err := svc.CreateSession(testDestinationID, nil)
	require.NoError(t, err)
	id := session.SessionID

	require.NoError(t, svc.CancelSession(id))

	_, err = svc.SetDurationDays(id, 5)
	assert.ErrorIs(t, err, planner.ErrSessionNotFound)
	_, err = svc.QueryChanged(id, "plaza")
	assert.ErrorIs(t, err, planner.ErrSessionNotFound)
}
