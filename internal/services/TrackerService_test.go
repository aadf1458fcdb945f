package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/catalog"
	"fittrack/internal/engine"
	"fittrack/internal/models"
)

// 2025-01-06 is a Monday.
var start = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, now time.Time) (*TrackerService, *FixedClock) {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	goal, err := models.NewGoal(74.5, 70.0, 90, start)
	require.NoError(t, err)
	store, err := models.NewProgressStore(models.WeightBounds{Min: 40, Max: 150}, start, 74.5)
	require.NoError(t, err)
	clock := &FixedClock{At: now}
	return NewTrackerService(cat, goal, store, clock).(*TrackerService), clock
}

func TestTrackerService_RecordWeightDefaultsToToday(t *testing.T) {
	ts, _ := newTestService(t, start.AddDate(0, 0, 3).Add(8*time.Hour))

	entry, err := ts.RecordWeight("", 74.0)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-09", entry.Date)
	assert.Equal(t, 74.0, ts.CurrentWeight())
	assert.True(t, ts.TakeDirty())
	assert.False(t, ts.TakeDirty())
	assert.Equal(t, uint64(1), ts.Revision())
}

func TestTrackerService_RecordWeightErrors(t *testing.T) {
	ts, _ := newTestService(t, start)

	_, err := ts.RecordWeight("09/01/2025", 74.0)
	assert.ErrorIs(t, err, models.ErrInvalidDate)

	_, err = ts.RecordWeight("2025-01-08", 400)
	assert.ErrorIs(t, err, models.ErrOutOfRange)
	assert.Equal(t, 74.5, ts.CurrentWeight())
	assert.False(t, ts.TakeDirty())
	assert.Zero(t, ts.Revision())
}

func TestTrackerService_MarkWorkoutComplete(t *testing.T) {
	ts, _ := newTestService(t, start.AddDate(0, 0, 2))

	day, err := ts.MarkWorkoutComplete("", "")
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", day)

	day, err = ts.MarkWorkoutComplete("2025-01-06", "monday")
	require.NoError(t, err)
	assert.Equal(t, "Monday", day)

	_, err = ts.MarkWorkoutComplete("2025-01-06", "monday")
	require.NoError(t, err)
	assert.Equal(t, 2, ts.WorkoutCompletionCount())

	_, err = ts.MarkWorkoutComplete("", "Funday")
	assert.ErrorIs(t, err, models.ErrInvalidKey)
}

func TestTrackerService_MarkMealComplete(t *testing.T) {
	ts, _ := newTestService(t, start.Add(10*time.Hour))

	require.NoError(t, ts.MarkMealComplete("", "Breakfast (9:00 AM)"))
	require.NoError(t, ts.MarkMealComplete("", "Breakfast (9:00 AM)"))

	err := ts.MarkMealComplete("", "Brunch")
	assert.ErrorIs(t, err, models.ErrInvalidKey)

	today, err := ts.Today()
	require.NoError(t, err)
	assert.Equal(t, []string{"Breakfast (9:00 AM)"}, today.Meals.Completed)
	assert.Equal(t, 8, today.Meals.Total)
}

func TestTrackerService_MarkMealCompleteStoresCanonicalLabel(t *testing.T) {
	ts, _ := newTestService(t, start.Add(10*time.Hour))

	require.NoError(t, ts.MarkMealComplete("", "  Breakfast (9:00 AM) "))

	today, err := ts.Today()
	require.NoError(t, err)
	assert.Equal(t, []string{"Breakfast (9:00 AM)"}, today.Meals.Completed)
	assert.Equal(t, 1, ts.store.MealCompletionCount("Breakfast (9:00 AM)"))
	assert.Equal(t, []string{"Breakfast (9:00 AM)"}, ts.GetSnapshot().Meals["2025-01-06"])
}

func TestTrackerService_Today(t *testing.T) {
	ts, _ := newTestService(t, start.Add(7*time.Hour+30*time.Minute))

	today, err := ts.Today()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", today.Date)
	assert.Equal(t, "Monday", today.Weekday)
	assert.Equal(t, "Monday", today.Workout.Day)
	assert.Len(t, today.MealSlots, 8)
	assert.False(t, today.WorkoutDone)
	assert.Equal(t, 2310, today.Nutrition.TotalCalories)
	require.NotNil(t, today.Current)
	assert.Contains(t, today.Current.Message, "GYM TIME")
	require.NotNil(t, today.Next)
	assert.Equal(t, "09:00", today.Next.Time.String())

	_, err = ts.MarkWorkoutComplete("", "")
	require.NoError(t, err)
	today, err = ts.Today()
	require.NoError(t, err)
	assert.True(t, today.WorkoutDone)
}

func TestTrackerService_ProgressAndMilestones(t *testing.T) {
	ts, clock := newTestService(t, start)

	_, err := ts.RecordWeight("2025-02-05", 72.4)
	require.NoError(t, err)

	clock.At = start.AddDate(0, 0, 31)
	report := ts.Progress()
	assert.Equal(t, 31, report.ElapsedDays)
	assert.Equal(t, 59, report.RemainingDays)
	assert.InDelta(t, 2.1, report.WeightLost, 1e-9)
	require.NotNil(t, report.Phase)
	assert.Equal(t, "Building", report.Phase.Name)

	ms := ts.Milestones()
	require.Len(t, ms, 3)
	assert.Equal(t, engine.MilestoneAchieved, ms[0].Status)
	assert.Equal(t, engine.MilestonePending, ms[1].Status)
}

func TestTrackerService_DueReminder(t *testing.T) {
	ts, clock := newTestService(t, start.Add(22*time.Hour+30*time.Minute))

	n, at, ok := ts.DueReminder()
	require.True(t, ok)
	assert.Contains(t, n.Message, "Sleep time")
	assert.Equal(t, clock.At, at)

	clock.At = start.Add(22*time.Hour + 31*time.Minute)
	_, _, ok = ts.DueReminder()
	assert.False(t, ok)
}

func TestTrackerService_SnapshotRoundTrip(t *testing.T) {
	ts, _ := newTestService(t, start.AddDate(0, 0, 1))
	_, err := ts.RecordWeight("", 74.1)
	require.NoError(t, err)
	_, err = ts.MarkWorkoutComplete("", "")
	require.NoError(t, err)
	require.NoError(t, ts.MarkMealComplete("", "Dinner (8:00 PM)"))

	snap := ts.GetSnapshot()
	assert.Equal(t, "2025-01-06", snap.StartDate)

	assert.Equal(t, uint64(3), ts.Revision())

	other, _ := newTestService(t, start.AddDate(0, 0, 1))
	require.NoError(t, other.PutSnapshot(snap))
	assert.Equal(t, uint64(1), other.Revision())
	assert.False(t, other.TakeDirty(), "restored data is already stored")
	assert.Equal(t, 74.1, other.CurrentWeight())
	assert.Equal(t, 1, other.WorkoutCompletionCount())
	assert.Equal(t, ts.WeightChart(), other.WeightChart())
}
