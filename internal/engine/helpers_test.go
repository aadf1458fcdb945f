package engine

import (
	"testing"
	"time"

	"fittrack/internal/models"

	"github.com/stretchr/testify/require"
)

// 2025-01-06 is a Monday.
var d0 = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

func at(days int, hour, minute int) time.Time {
	return d0.AddDate(0, 0, days).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func tod(h, m int) models.TimeOfDay {
	return models.TimeOfDay{Hour: h, Minute: m}
}

func testGoal(t *testing.T) models.Goal {
	t.Helper()
	g, err := models.NewGoal(74.5, 70.0, 90, d0)
	require.NoError(t, err)
	return g
}

func testStore(t *testing.T) *models.ProgressStore {
	t.Helper()
	s, err := models.NewProgressStore(models.WeightBounds{Min: 60, Max: 90}, d0, 74.5)
	require.NoError(t, err)
	return s
}

func testCatalog(t *testing.T, notifications ...models.NotificationEntry) *models.PlanCatalog {
	t.Helper()
	var workouts []models.WorkoutDay
	for d := time.Sunday; d <= time.Saturday; d++ {
		workouts = append(workouts, models.WorkoutDay{
			Day:       d.String(),
			Focus:     d.String() + " focus",
			Exercises: []models.Exercise{{Name: "Squats", Sets: 4, Reps: "8-10", Rest: "2min"}},
		})
	}
	if len(notifications) == 0 {
		notifications = []models.NotificationEntry{
			{Time: tod(6, 0), Message: "wake up"},
			{Time: tod(7, 0), Message: "pre-workout"},
			{Time: tod(7, 30), Message: "gym"},
			{Time: tod(22, 30), Message: "sleep"},
		}
	}
	c, err := models.NewPlanCatalog(models.CatalogParts{
		Workouts: workouts,
		Meals: []models.MealSlot{
			{Name: "Breakfast", Time: tod(9, 0), Calories: 450, Protein: 35},
			{Name: "Lunch", Time: tod(13, 30), Calories: 600, Protein: 45},
			{Name: "Dinner", Time: tod(20, 0), Calories: 450, Protein: 40},
		},
		Notifications: notifications,
		Milestones: []models.Milestone{
			{Name: "Month 1", StartDay: 1, EndDay: 30, TargetWeight: 72.5},
			{Name: "Month 2", StartDay: 31, EndDay: 60, TargetWeight: 71.0},
			{Name: "Month 3", StartDay: 61, EndDay: 90, TargetWeight: 70.0},
		},
		Phases: []models.TrainingPhase{
			{Name: "Foundation", StartWeek: 1, EndWeek: 4},
			{Name: "Building", StartWeek: 5, EndWeek: 8},
			{Name: "Peak", StartWeek: 9, EndWeek: 12},
		},
		Nutrition: models.NutritionTargets{Calories: 2200, Protein: 150, Carbs: 220, Fats: 60},
	})
	require.NoError(t, err)
	return c
}

// fakeReader lets tests control store answers directly.
type fakeReader struct {
	current   float64
	workouts  int
	history   []models.WeightLogEntry
	noHistory bool
}

func (f *fakeReader) CurrentWeight() float64 { return f.current }
func (f *fakeReader) WeightOnOrBefore(_ time.Time) (models.WeightLogEntry, bool) {
	if f.noHistory {
		return models.WeightLogEntry{}, false
	}
	return models.WeightLogEntry{Weight: f.current}, true
}
func (f *fakeReader) WeightHistory() []models.WeightLogEntry         { return f.history }
func (f *fakeReader) WorkoutCompletionCount() int                    { return f.workouts }
func (f *fakeReader) WorkoutCompletedOn(_ time.Time) (string, bool) { return "", false }
func (f *fakeReader) IsMealComplete(_ time.Time, _ string) bool      { return false }
