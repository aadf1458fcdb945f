package engine

import (
	"math"
	"time"

	"fittrack/internal/models"
)

type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierNeedsImprovement Tier = "needs improvement"
)

// ElapsedDays counts whole days since the goal start, never below zero.
func ElapsedDays(goal models.Goal, now time.Time) int {
	return max(models.DaysBetween(goal.StartDate, now), 0)
}

// RemainingDays goes negative once the program is overdue.
func RemainingDays(goal models.Goal, now time.Time) int {
	return goal.LengthDays - ElapsedDays(goal, now)
}

func ProgressPercent(goal models.Goal, now time.Time) float64 {
	p := float64(ElapsedDays(goal, now)) / float64(goal.LengthDays) * 100
	return math.Min(math.Max(p, 0), 100)
}

// WeightLost is positive for a loss, negative for a gain.
func WeightLost(goal models.Goal, store ProgressReader) float64 {
	return goal.Baseline - store.CurrentWeight()
}

func RemainingToLose(goal models.Goal, store ProgressReader) float64 {
	return store.CurrentWeight() - goal.Target
}

// ExpectedLoss is the loss due by now at the goal's weekly rate, in fractional weeks.
func ExpectedLoss(goal models.Goal, now time.Time) float64 {
	return goal.WeeklyRate() * (float64(ElapsedDays(goal, now)) / 7)
}

func OnTrack(goal models.Goal, store ProgressReader, now time.Time) bool {
	return WeightLost(goal, store) >= ExpectedLoss(goal, now)
}

// WorkoutCompletionRate is 0 on the first day of the program.
func WorkoutCompletionRate(goal models.Goal, store ProgressReader, now time.Time) float64 {
	elapsed := ElapsedDays(goal, now)
	if elapsed == 0 {
		return 0
	}
	return float64(store.WorkoutCompletionCount()) / float64(elapsed) * 100
}

func CompletionTier(rate float64) Tier {
	switch {
	case rate >= 80:
		return TierExcellent
	case rate >= 60:
		return TierGood
	default:
		return TierNeedsImprovement
	}
}

// GoalAchievedPercent is the share of the total planned loss already lost.
func GoalAchievedPercent(goal models.Goal, store ProgressReader) float64 {
	return WeightLost(goal, store) / goal.TotalLoss() * 100
}

// TargetWeightAt is the straight-line planned weight for a date, from baseline
// on the start date to target on the end date.
func TargetWeightAt(goal models.Goal, date time.Time) float64 {
	days := models.DaysBetween(goal.StartDate, date)
	days = min(max(days, 0), goal.LengthDays)
	return goal.Baseline - goal.TotalLoss()*float64(days)/float64(goal.LengthDays)
}

type NutritionSummary struct {
	TotalCalories  int                     `json:"total_calories"`
	TotalProtein   int                     `json:"total_protein"`
	Targets        models.NutritionTargets `json:"targets"`
	CalorieBalance int                     `json:"calorie_balance"`
}

// DailyNutrition sums the macros of every meal slot against the daily targets.
func DailyNutrition(catalog *models.PlanCatalog) NutritionSummary {
	s := NutritionSummary{Targets: catalog.Nutrition()}
	for _, m := range catalog.MealSlots() {
		s.TotalCalories += m.Calories
		s.TotalProtein += m.Protein
	}
	s.CalorieBalance = s.TotalCalories - s.Targets.Calories
	return s
}

type MealProgress struct {
	Date      string   `json:"date"`
	Completed []string `json:"completed"`
	Total     int      `json:"total"`
	Percent   float64  `json:"percent"`
}

// DailyMealProgress reports which catalog slots were marked on the date.
func DailyMealProgress(catalog *models.PlanCatalog, store ProgressReader, date time.Time) MealProgress {
	slots := catalog.MealSlots()
	p := MealProgress{Date: models.DateKey(date), Completed: []string{}, Total: len(slots)}
	for _, m := range slots {
		if store.IsMealComplete(date, m.Label) {
			p.Completed = append(p.Completed, m.Label)
		}
	}
	if p.Total > 0 {
		p.Percent = float64(len(p.Completed)) / float64(p.Total) * 100
	}
	return p
}
