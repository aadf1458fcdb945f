package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fittrack/internal/catalog"
	"fittrack/internal/models"
	"fittrack/internal/services"
)

// ProgramStart is a Monday.
var ProgramStart = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

// NewTrackerService builds a service over the built-in catalog with a 90 day
// goal from 74.5 to 70 kg starting at ProgramStart.
func NewTrackerService(t *testing.T, now time.Time) (services.TrackerServiceInterface, *services.FixedClock) {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	goal, err := models.NewGoal(74.5, 70.0, 90, ProgramStart)
	require.NoError(t, err)
	store, err := models.NewProgressStore(models.WeightBounds{Min: 30, Max: 250}, ProgramStart, 74.5)
	require.NoError(t, err)
	clock := &services.FixedClock{At: now}
	return services.NewTrackerService(cat, goal, store, clock), clock
}
