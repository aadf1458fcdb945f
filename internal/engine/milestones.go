package engine

import (
	"time"

	"fittrack/internal/models"
)

type MilestoneStatus string

const (
	MilestoneAchieved MilestoneStatus = "achieved"
	MilestonePending  MilestoneStatus = "pending"
	MilestoneMissed   MilestoneStatus = "missed"
)

type MilestoneResult struct {
	Milestone    models.Milestone       `json:"milestone"`
	EndDate      string                 `json:"end_date"`
	Status       MilestoneStatus        `json:"status"`
	LoggedWeight *models.WeightLogEntry `json:"logged_weight,omitempty"`
}

// EvaluateMilestone is pending until the period's end date, and stays pending
// when nothing was logged on or before it.
func EvaluateMilestone(goal models.Goal, milestone models.Milestone, store ProgressReader, now time.Time) MilestoneResult {
	end := milestone.EndDate(goal.StartDate)
	res := MilestoneResult{
		Milestone: milestone,
		EndDate:   models.DateKey(end),
		Status:    MilestonePending,
	}
	if models.DaysBetween(end, now) < 0 {
		return res
	}
	entry, ok := store.WeightOnOrBefore(end)
	if !ok {
		return res
	}
	res.LoggedWeight = &entry
	if entry.Weight <= milestone.TargetWeight {
		res.Status = MilestoneAchieved
	} else {
		res.Status = MilestoneMissed
	}
	return res
}

func EvaluateMilestones(goal models.Goal, catalog *models.PlanCatalog, store ProgressReader, now time.Time) []MilestoneResult {
	milestones := catalog.Milestones()
	out := make([]MilestoneResult, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, EvaluateMilestone(goal, m, store, now))
	}
	return out
}
