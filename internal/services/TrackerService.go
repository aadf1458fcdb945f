package services

import (
	"fmt"
	"time"

	"go.uber.org/atomic"

	"fittrack/internal/engine"
	"fittrack/internal/models"
)

type TrackerServiceInterface interface {
	Goal() models.Goal
	Catalog() *models.PlanCatalog
	Now() time.Time

	RecordWeight(date string, weight float64) (models.WeightLogEntry, error)
	MarkWorkoutComplete(date, weekday string) (string, error)
	MarkMealComplete(date, slot string) error

	Today() (*TodayView, error)
	Progress() engine.ProgressReport
	WeightChart() engine.WeightChart
	Milestones() []engine.MilestoneResult
	Notifications() engine.NotificationBoard
	DueReminder() (models.NotificationEntry, time.Time, bool)

	CurrentWeight() float64
	WorkoutCompletionCount() int

	GetSnapshot() *models.ProgressSnapshot
	PutSnapshot(snap *models.ProgressSnapshot) error
	TakeDirty() bool
	Revision() uint64
}

// TodayView is everything the dashboard shows for the current day.
type TodayView struct {
	engine.TodayPlan
	WorkoutDone bool                      `json:"workout_done"`
	Meals       engine.MealProgress       `json:"meals"`
	Nutrition   engine.NutritionSummary   `json:"nutrition"`
	Current     *models.NotificationEntry `json:"current_notification,omitempty"`
	Next        *models.NotificationEntry `json:"next_notification,omitempty"`
}

type TrackerService struct {
	catalog *models.PlanCatalog
	goal    models.Goal
	store   *models.ProgressStore
	clock   Clock

	dirty    atomic.Bool
	revision atomic.Uint64
}

func NewTrackerService(catalog *models.PlanCatalog, goal models.Goal, store *models.ProgressStore, clock Clock) TrackerServiceInterface {
	return &TrackerService{
		catalog: catalog,
		goal:    goal,
		store:   store,
		clock:   clock,
	}
}

func (ts *TrackerService) Goal() models.Goal {
	return ts.goal
}

func (ts *TrackerService) Catalog() *models.PlanCatalog {
	return ts.catalog
}

func (ts *TrackerService) Now() time.Time {
	return ts.clock.Now()
}

// resolveDate parses a "2006-01-02" date in the configured timezone. An empty
// string means today.
func (ts *TrackerService) resolveDate(date string) (time.Time, error) {
	if date == "" {
		return models.StartOfDay(ts.clock.Now()), nil
	}
	return models.ParseDate(date, ts.clock.Location())
}

func (ts *TrackerService) RecordWeight(date string, weight float64) (models.WeightLogEntry, error) {
	d, err := ts.resolveDate(date)
	if err != nil {
		return models.WeightLogEntry{}, err
	}
	if err := ts.store.RecordWeight(d, weight); err != nil {
		return models.WeightLogEntry{}, err
	}
	ts.changed()
	return models.WeightLogEntry{Date: models.DateKey(d), Weight: weight}, nil
}

// MarkWorkoutComplete records the workout for the date. An empty weekday
// defaults to the date's own weekday. It returns the weekday name recorded.
func (ts *TrackerService) MarkWorkoutComplete(date, weekday string) (string, error) {
	d, err := ts.resolveDate(date)
	if err != nil {
		return "", err
	}
	day := d.Weekday()
	if weekday != "" {
		if day, err = models.ParseWeekday(weekday); err != nil {
			return "", err
		}
	}
	if _, err := ts.catalog.WorkoutFor(day); err != nil {
		return "", err
	}
	ts.store.MarkWorkoutComplete(d, day)
	ts.changed()
	return day.String(), nil
}

func (ts *TrackerService) MarkMealComplete(date, slot string) error {
	d, err := ts.resolveDate(date)
	if err != nil {
		return err
	}
	m, err := ts.catalog.MealSlot(slot)
	if err != nil {
		return err
	}
	ts.store.MarkMealComplete(d, m.Label)
	ts.changed()
	return nil
}

func (ts *TrackerService) Today() (*TodayView, error) {
	now := ts.clock.Now()
	plan, err := engine.ResolveToday(ts.catalog, now)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}
	board := engine.BuildNotificationBoard(ts.catalog, now)
	_, done := ts.store.WorkoutCompletedOn(now)
	return &TodayView{
		TodayPlan:   *plan,
		WorkoutDone: done,
		Meals:       engine.DailyMealProgress(ts.catalog, ts.store, now),
		Nutrition:   engine.DailyNutrition(ts.catalog),
		Current:     board.Current,
		Next:        board.Next,
	}, nil
}

func (ts *TrackerService) Progress() engine.ProgressReport {
	return engine.BuildReport(ts.goal, ts.catalog, ts.store, ts.clock.Now())
}

func (ts *TrackerService) WeightChart() engine.WeightChart {
	return engine.BuildWeightChart(ts.goal, ts.store)
}

func (ts *TrackerService) Milestones() []engine.MilestoneResult {
	return engine.EvaluateMilestones(ts.goal, ts.catalog, ts.store, ts.clock.Now())
}

func (ts *TrackerService) Notifications() engine.NotificationBoard {
	return engine.BuildNotificationBoard(ts.catalog, ts.clock.Now())
}

// DueReminder returns the notification scheduled for the current minute, if any,
// together with the instant it was evaluated at.
func (ts *TrackerService) DueReminder() (models.NotificationEntry, time.Time, bool) {
	now := ts.clock.Now()
	n, ok := engine.CurrentNotification(ts.catalog, now)
	return n, now, ok
}

func (ts *TrackerService) CurrentWeight() float64 {
	return ts.store.CurrentWeight()
}

func (ts *TrackerService) WorkoutCompletionCount() int {
	return ts.store.WorkoutCompletionCount()
}

func (ts *TrackerService) GetSnapshot() *models.ProgressSnapshot {
	return ts.store.Snapshot()
}

// PutSnapshot replaces the store contents. The store is not marked dirty, the
// data came from the snapshot backend.
func (ts *TrackerService) PutSnapshot(snap *models.ProgressSnapshot) error {
	if err := ts.store.Restore(snap); err != nil {
		return err
	}
	ts.revision.Inc()
	return nil
}

// TakeDirty reports whether anything changed since the previous call and
// clears the flag.
func (ts *TrackerService) TakeDirty() bool {
	return ts.dirty.Swap(false)
}

// Revision increases with every change to the store and never goes back.
func (ts *TrackerService) Revision() uint64 {
	return ts.revision.Load()
}

func (ts *TrackerService) changed() {
	ts.revision.Inc()
	ts.dirty.Store(true)
}
