// Package engine derives schedule, progress and milestone facts from the plan
// catalog, the goal and the progress log. Every function takes "now" explicitly
// and has no side effects, so results can be recomputed on each render.
package engine

import (
	"time"

	"fittrack/internal/models"
)

// ProgressReader is the read side of the progress store the engine depends on.
type ProgressReader interface {
	CurrentWeight() float64
	WeightOnOrBefore(date time.Time) (models.WeightLogEntry, bool)
	WeightHistory() []models.WeightLogEntry
	WorkoutCompletionCount() int
	WorkoutCompletedOn(date time.Time) (string, bool)
	IsMealComplete(date time.Time, slotLabel string) bool
}
