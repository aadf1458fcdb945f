package models

import (
	"fmt"
	"math"
	"time"
)

// Goal is fixed for the life of a run.
type Goal struct {
	Baseline   float64   `json:"baseline"`
	Target     float64   `json:"target"`
	LengthDays int       `json:"length_days"`
	StartDate  time.Time `json:"start_date"`
}

// NewGoal requires a positive length and a net loss (target below baseline).
// StartDate is truncated to midnight in its own location.
func NewGoal(baseline, target float64, lengthDays int, startDate time.Time) (Goal, error) {
	if lengthDays <= 0 {
		return Goal{}, fmt.Errorf("%w: program length must be positive, got %d", ErrInvalidConfig, lengthDays)
	}
	if !(baseline > 0) || !(target > 0) || math.IsInf(baseline, 0) {
		return Goal{}, fmt.Errorf("%w: weights must be positive", ErrInvalidConfig)
	}
	if target >= baseline {
		return Goal{}, fmt.Errorf("%w: target %.1f must be below baseline %.1f", ErrInvalidConfig, target, baseline)
	}
	return Goal{
		Baseline:   baseline,
		Target:     target,
		LengthDays: lengthDays,
		StartDate:  StartOfDay(startDate),
	}, nil
}

// TotalLoss is the weight the program sets out to lose.
func (g Goal) TotalLoss() float64 {
	return g.Baseline - g.Target
}

// WeeklyRate is the expected loss per week.
func (g Goal) WeeklyRate() float64 {
	return g.TotalLoss() / (float64(g.LengthDays) / 7)
}

func (g Goal) EndDate() time.Time {
	return g.StartDate.AddDate(0, 0, g.LengthDays)
}

// WeightBounds is the closed range of plausible recorded weights.
type WeightBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func NewWeightBounds(min, max float64) (WeightBounds, error) {
	if !(min > 0) || !(max > min) || math.IsInf(max, 0) {
		return WeightBounds{}, fmt.Errorf("%w: weight bounds [%v, %v]", ErrInvalidConfig, min, max)
	}
	return WeightBounds{Min: min, Max: max}, nil
}

func (b WeightBounds) Check(weight float64) error {
	if math.IsNaN(weight) || weight < b.Min || weight > b.Max {
		return fmt.Errorf("%w: weight %v outside [%v, %v]", ErrOutOfRange, weight, b.Min, b.Max)
	}
	return nil
}
