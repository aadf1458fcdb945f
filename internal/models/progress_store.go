package models

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

type WeightLogEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// ProgressStore owns the mutable session state: the weight log and completion marks.
// Every mutation is applied under a single lock, so readers never see half a write.
type ProgressStore struct {
	mu       sync.RWMutex
	bounds   WeightBounds
	seed     WeightLogEntry
	weights  map[string]float64
	latest   string
	workouts map[string]string
	meals    map[string]map[string]struct{}
}

// NewProgressStore seeds the log with the baseline weight on the start date.
func NewProgressStore(bounds WeightBounds, startDate time.Time, baseline float64) (*ProgressStore, error) {
	if err := bounds.Check(baseline); err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	s := &ProgressStore{
		bounds: bounds,
		seed:   WeightLogEntry{Date: DateKey(startDate), Weight: baseline},
	}
	s.reset()
	return s, nil
}

func (s *ProgressStore) reset() {
	s.weights = map[string]float64{s.seed.Date: s.seed.Weight}
	s.latest = s.seed.Date
	s.workouts = make(map[string]string)
	s.meals = make(map[string]map[string]struct{})
}

// RecordWeight overwrites any entry already logged for the date.
func (s *ProgressStore) RecordWeight(date time.Time, weight float64) error {
	if err := s.bounds.Check(weight); err != nil {
		return err
	}
	key := DateKey(date)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights[key] = weight
	if key >= s.latest {
		s.latest = key
	}
	return nil
}

// CurrentWeight is the weight of the most recent date in the log.
func (s *ProgressStore) CurrentWeight() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights[s.latest]
}

// WeightOnOrBefore finds the entry nearest to date, at or before it.
func (s *ProgressStore) WeightOnOrBefore(date time.Time) (WeightLogEntry, bool) {
	key := DateKey(date)

	s.mu.RLock()
	defer s.mu.RUnlock()
	var best string
	for d := range s.weights {
		if d <= key && d > best {
			best = d
		}
	}
	if best == "" {
		return WeightLogEntry{}, false
	}
	return WeightLogEntry{Date: best, Weight: s.weights[best]}, true
}

// WeightHistory is sorted by date ascending.
func (s *ProgressStore) WeightHistory() []WeightLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]WeightLogEntry, 0, len(s.weights))
	for d, w := range s.weights {
		out = append(out, WeightLogEntry{Date: d, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// MarkWorkoutComplete records at most one workout per date. Re-marking is a no-op.
func (s *ProgressStore) MarkWorkoutComplete(date time.Time, day time.Weekday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts[DateKey(date)] = day.String()
}

func (s *ProgressStore) WorkoutCompletedOn(date time.Time) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day, ok := s.workouts[DateKey(date)]
	return day, ok
}

func (s *ProgressStore) WorkoutCompletionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workouts)
}

// MarkMealComplete is an idempotent insert of (date, slot).
func (s *ProgressStore) MarkMealComplete(date time.Time, slotLabel string) {
	key := DateKey(date)

	s.mu.Lock()
	defer s.mu.Unlock()
	slots, ok := s.meals[key]
	if !ok {
		slots = make(map[string]struct{})
		s.meals[key] = slots
	}
	slots[slotLabel] = struct{}{}
}

// MealCompletionCount counts the dates on which the slot was marked.
func (s *ProgressStore) MealCompletionCount(slotLabel string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, slots := range s.meals {
		if _, ok := slots[slotLabel]; ok {
			n++
		}
	}
	return n
}

func (s *ProgressStore) IsMealComplete(date time.Time, slotLabel string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.meals[DateKey(date)][slotLabel]
	return ok
}

func (s *ProgressStore) MealsCompletedOn(date time.Time) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := s.meals[DateKey(date)]
	out := make([]string, 0, len(slots))
	for label := range slots {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

func (s *ProgressStore) Snapshot() *ProgressSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &ProgressSnapshot{
		Version:   SnapshotVersion,
		StartDate: s.seed.Date,
		Weights:   make(map[string]float64, len(s.weights)),
		Workouts:  make(map[string]string, len(s.workouts)),
		Meals:     make(map[string][]string, len(s.meals)),
	}
	for d, w := range s.weights {
		snap.Weights[d] = w
	}
	for d, day := range s.workouts {
		snap.Workouts[d] = day
	}
	for d, slots := range s.meals {
		labels := make([]string, 0, len(slots))
		for label := range slots {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		snap.Meals[d] = labels
	}
	return snap
}

// Restore replaces the store content with a snapshot. The snapshot is validated
// as a whole first; on error the store is left untouched. An empty weight log
// keeps the baseline seed.
func (s *ProgressStore) Restore(snap *ProgressSnapshot) error {
	if snap == nil {
		return nil
	}
	if snap.Version > SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, snap.Version)
	}

	weights := make(map[string]float64, len(snap.Weights))
	latest := ""
	for d, w := range snap.Weights {
		if err := validDateKey(d); err != nil {
			return fmt.Errorf("%w: %s", ErrCorruptSnapshot, err)
		}
		if err := s.bounds.Check(w); err != nil {
			return fmt.Errorf("%w: %s", ErrCorruptSnapshot, err)
		}
		weights[d] = w
		if d > latest {
			latest = d
		}
	}
	// the start date always carries a weight, the baseline when none was logged
	if _, ok := weights[s.seed.Date]; !ok {
		weights[s.seed.Date] = s.seed.Weight
		if s.seed.Date > latest {
			latest = s.seed.Date
		}
	}

	workouts := make(map[string]string, len(snap.Workouts))
	for d, name := range snap.Workouts {
		if err := validDateKey(d); err != nil {
			return fmt.Errorf("%w: %s", ErrCorruptSnapshot, err)
		}
		day, err := ParseWeekday(name)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrCorruptSnapshot, err)
		}
		workouts[d] = day.String()
	}

	meals := make(map[string]map[string]struct{}, len(snap.Meals))
	for d, labels := range snap.Meals {
		if err := validDateKey(d); err != nil {
			return fmt.Errorf("%w: %s", ErrCorruptSnapshot, err)
		}
		slots := make(map[string]struct{}, len(labels))
		for _, label := range labels {
			slots[label] = struct{}{}
		}
		meals[d] = slots
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = weights
	s.latest = latest
	s.workouts = workouts
	s.meals = meals
	return nil
}

func validDateKey(key string) error {
	_, err := time.Parse(DateLayout, key)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	return nil
}
