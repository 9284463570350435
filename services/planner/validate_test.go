package planner_test

import (
	"testing"
	"time"

	"voyago/models"
	"voyago/services/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSession() *models.PlanningSession {
	start := tomorrow()
	return &models.PlanningSession{
		SessionID:        "s-1",
		DestinationID:    testDestinationID,
		StartDate:        &start,
		DurationDays:     3,
		OptimizationMode: models.ModeBalanced,
		Tuning:           models.DefaultTuning(),
		Status:           models.StatusIdle,
	}
}

func TestValidate_ValidSession(t *testing.T) {
	res := planner.Validate(validSession(), time.Now())

	assert.True(t, res.OK)
	assert.Empty(t, res.Reasons)
}

func TestValidate_MissingStartDate(t *testing.T) {
	s := validSession()
	s.StartDate = nil

	res := planner.Validate(s, time.Now())

	require.False(t, res.OK)
	assert.Contains(t, res.Reasons[0], "start date")
}

func TestValidate_PastStartDate(t *testing.T) {
	s := validSession()
	d := yesterday()
	s.StartDate = &d

	res := planner.Validate(s, time.Now())

	require.False(t, res.OK)
	assert.Contains(t, res.Reasons[0], "past")
}

func TestValidate_TodayIsAllowed(t *testing.T) {
	// A start date earlier today (e.g. 00:30 when it is now 18:00) is still
	// "today", not "the past".
	now := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	early := time.Date(2026, 9, 1, 0, 30, 0, 0, time.UTC)

	s := validSession()
	s.StartDate = &early

	res := planner.Validate(s, now)

	assert.True(t, res.OK)
}

func TestValidate_DurationOutOfRange(t *testing.T) {
	for _, days := range []int{0, -1, 15, 100} {
		s := validSession()
		s.DurationDays = days

		res := planner.Validate(s, time.Now())

		require.False(t, res.OK, "duration %d should be invalid", days)
		assert.Contains(t, res.Reasons[0], "duration")
	}
	for _, days := range []int{1, 14} {
		s := validSession()
		s.DurationDays = days

		assert.True(t, planner.Validate(s, time.Now()).OK, "duration %d should be valid", days)
	}
}

func TestValidate_UnresolvedQuery(t *testing.T) {
	s := validSession()
	s.SearchQuery = "plaza ma"
	s.StartingPoint = nil

	res := planner.Validate(s, time.Now())

	require.False(t, res.OK)
	assert.Contains(t, res.Reasons[0], "starting point")
}

func TestValidate_SelectedWaypointResolvesQuery(t *testing.T) {
	s := validSession()
	s.StartingPoint = &models.WaypointRef{ID: 55, Name: "Hotel Plaza", Category: models.WaypointCategoryHotel}
	s.SearchQuery = "Hotel Plaza"

	assert.True(t, planner.Validate(s, time.Now()).OK)
}

func TestValidate_AllReasonsComputable(t *testing.T) {
	// Every failing rule reports, in priority order.
	s := validSession()
	s.StartDate = nil
	s.DurationDays = 0
	s.SearchQuery = "somewhere"

	res := planner.Validate(s, time.Now())

	require.False(t, res.OK)
	require.Len(t, res.Reasons, 3)
	assert.Contains(t, res.Reasons[0], "start date")
	assert.Contains(t, res.Reasons[1], "duration")
	assert.Contains(t, res.Reasons[2], "starting point")
}
