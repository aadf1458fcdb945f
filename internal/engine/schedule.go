package engine

import (
	"time"

	"fittrack/internal/models"
)

type TodayPlan struct {
	Date      string            `json:"date"`
	Weekday   string            `json:"weekday"`
	Workout   models.WorkoutDay `json:"workout"`
	MealSlots []models.MealSlot `json:"meal_slots"`
}

// ResolveToday picks the workout and meal slots for now's calendar date.
// now must already be in the system timezone.
func ResolveToday(catalog *models.PlanCatalog, now time.Time) (*TodayPlan, error) {
	workout, err := catalog.WorkoutFor(now.Weekday())
	if err != nil {
		return nil, err
	}
	return &TodayPlan{
		Date:      models.DateKey(now),
		Weekday:   now.Weekday().String(),
		Workout:   workout,
		MealSlots: catalog.MealSlots(),
	}, nil
}

// CurrentNotification returns the entry whose hour:minute equals now's.
// With duplicate times the first in time order wins.
func CurrentNotification(catalog *models.PlanCatalog, now time.Time) (models.NotificationEntry, bool) {
	current := models.TimeOfDayOf(now)
	for _, n := range catalog.Notifications() {
		if n.Time == current {
			return n, true
		}
	}
	return models.NotificationEntry{}, false
}

// NextNotification returns the first entry strictly after now's time of day,
// wrapping to the first entry of the day. ok is false only for an empty schedule.
func NextNotification(catalog *models.PlanCatalog, now time.Time) (models.NotificationEntry, bool) {
	entries := catalog.Notifications()
	if len(entries) == 0 {
		return models.NotificationEntry{}, false
	}
	current := models.TimeOfDayOf(now)
	for _, n := range entries {
		if current.Before(n.Time) {
			return n, true
		}
	}
	return entries[0], true
}

// CurrentPhase maps elapsed program weeks to a training phase. Past the last
// phase the last one keeps applying.
func CurrentPhase(catalog *models.PlanCatalog, goal models.Goal, now time.Time) (models.TrainingPhase, bool) {
	phases := catalog.Phases()
	if len(phases) == 0 {
		return models.TrainingPhase{}, false
	}
	week := ElapsedDays(goal, now)/7 + 1
	for _, p := range phases {
		if week >= p.StartWeek && week <= p.EndWeek {
			return p, true
		}
	}
	if week > phases[len(phases)-1].EndWeek {
		return phases[len(phases)-1], true
	}
	return phases[0], true
}
