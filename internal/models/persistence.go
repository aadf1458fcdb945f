package models

// SnapshotVersion is bumped whenever ProgressSnapshot changes shape.
const SnapshotVersion = 1

// ProgressSnapshot is the persisted form of a ProgressStore.
// Meals maps a date key to the slot labels completed that day.
type ProgressSnapshot struct {
	Version   int                 `json:"version"`
	StartDate string              `json:"start_date"`
	Weights   map[string]float64  `json:"weights"`
	Workouts  map[string]string   `json:"workouts"`
	Meals     map[string][]string `json:"meals"`
}
