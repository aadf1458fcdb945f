package engine

import (
	"time"

	"fittrack/internal/models"
)

type ProgressReport struct {
	Date                  string                `json:"date"`
	BaselineWeight        float64               `json:"baseline_weight"`
	TargetWeight          float64               `json:"target_weight"`
	CurrentWeight         float64               `json:"current_weight"`
	ElapsedDays           int                   `json:"elapsed_days"`
	RemainingDays         int                   `json:"remaining_days"`
	RemainingDaysDisplay  int                   `json:"remaining_days_display"`
	ProgressPercent       float64               `json:"progress_percent"`
	WeightLost            float64               `json:"weight_lost"`
	RemainingToLose       float64               `json:"remaining_to_lose"`
	ExpectedLoss          float64               `json:"expected_loss"`
	GoalAchievedPercent   float64               `json:"goal_achieved_percent"`
	OnTrack               bool                  `json:"on_track"`
	WorkoutsCompleted     int                   `json:"workouts_completed"`
	WorkoutCompletionRate float64               `json:"workout_completion_rate"`
	CompletionTier        Tier                  `json:"completion_tier"`
	Phase                 *models.TrainingPhase `json:"phase,omitempty"`
}

func BuildReport(goal models.Goal, catalog *models.PlanCatalog, store ProgressReader, now time.Time) ProgressReport {
	rate := WorkoutCompletionRate(goal, store, now)
	remaining := RemainingDays(goal, now)
	r := ProgressReport{
		Date:                  models.DateKey(now),
		BaselineWeight:        goal.Baseline,
		TargetWeight:          goal.Target,
		CurrentWeight:         store.CurrentWeight(),
		ElapsedDays:           ElapsedDays(goal, now),
		RemainingDays:         remaining,
		RemainingDaysDisplay:  max(remaining, 0),
		ProgressPercent:       ProgressPercent(goal, now),
		WeightLost:            WeightLost(goal, store),
		RemainingToLose:       RemainingToLose(goal, store),
		ExpectedLoss:          ExpectedLoss(goal, now),
		GoalAchievedPercent:   GoalAchievedPercent(goal, store),
		OnTrack:               OnTrack(goal, store, now),
		WorkoutsCompleted:     store.WorkoutCompletionCount(),
		WorkoutCompletionRate: rate,
		CompletionTier:        CompletionTier(rate),
	}
	if phase, ok := CurrentPhase(catalog, goal, now); ok {
		r.Phase = &phase
	}
	return r
}

type TrendPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// WeightChart pairs the logged history with the planned target line.
type WeightChart struct {
	History []models.WeightLogEntry `json:"history"`
	Target  []TrendPoint            `json:"target"`
}

func BuildWeightChart(goal models.Goal, store ProgressReader) WeightChart {
	end := goal.EndDate()
	return WeightChart{
		History: store.WeightHistory(),
		Target: []TrendPoint{
			{Date: models.DateKey(goal.StartDate), Weight: TargetWeightAt(goal, goal.StartDate)},
			{Date: models.DateKey(end), Weight: TargetWeightAt(goal, end)},
		},
	}
}

type NotificationBoard struct {
	Entries []models.NotificationEntry `json:"entries"`
	Current *models.NotificationEntry  `json:"current,omitempty"`
	Next    *models.NotificationEntry  `json:"next,omitempty"`
}

func BuildNotificationBoard(catalog *models.PlanCatalog, now time.Time) NotificationBoard {
	b := NotificationBoard{Entries: catalog.Notifications()}
	if n, ok := CurrentNotification(catalog, now); ok {
		b.Current = &n
	}
	if n, ok := NextNotification(catalog, now); ok {
		b.Next = &n
	}
	return b
}
