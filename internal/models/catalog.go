package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Exercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps string `json:"reps"`
	Rest string `json:"rest"`
}

type WorkoutDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
	Cardio    string     `json:"cardio"`
}

// MealSlot is keyed by Label, e.g. "Lunch (1:30 PM)".
type MealSlot struct {
	Label    string    `json:"label"`
	Name     string    `json:"name"`
	Time     TimeOfDay `json:"time"`
	Items    []string  `json:"items"`
	Calories int       `json:"calories"`
	Protein  int       `json:"protein"`
	Purpose  string    `json:"purpose"`
}

type NotificationEntry struct {
	Time    TimeOfDay `json:"time"`
	Message string    `json:"message"`
}

// Milestone covers program days StartDay..EndDay (1-based, inclusive).
type Milestone struct {
	Name         string  `json:"name"`
	StartDay     int     `json:"start_day"`
	EndDay       int     `json:"end_day"`
	TargetWeight float64 `json:"target_weight"`
	Focus        string  `json:"focus"`
	Expectations string  `json:"expectations"`
}

// EndDate is the calendar date the milestone period closes on.
func (m Milestone) EndDate(start time.Time) time.Time {
	return StartOfDay(start).AddDate(0, 0, m.EndDay)
}

type TrainingPhase struct {
	Name      string `json:"name"`
	StartWeek int    `json:"start_week"`
	EndWeek   int    `json:"end_week"`
	Focus     string `json:"focus"`
}

type NutritionTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

type Guidelines struct {
	NutritionTips  []string `json:"nutrition_tips"`
	WorkoutTips    []string `json:"workout_tips"`
	AvoidFoods     []string `json:"avoid_foods"`
	SuccessFactors []string `json:"success_factors"`
	Variations     []string `json:"variations"`
}

// CatalogParts is the raw material for NewPlanCatalog.
type CatalogParts struct {
	Workouts      []WorkoutDay
	Meals         []MealSlot
	Notifications []NotificationEntry
	Milestones    []Milestone
	Phases        []TrainingPhase
	Nutrition     NutritionTargets
	Guidelines    Guidelines
}

// PlanCatalog is the immutable program reference data. Accessors hand out copies.
type PlanCatalog struct {
	workouts      map[time.Weekday]WorkoutDay
	meals         []MealSlot
	mealIndex     map[string]int
	notifications []NotificationEntry
	milestones    []Milestone
	phases        []TrainingPhase
	nutrition     NutritionTargets
	guidelines    Guidelines
}

func NewPlanCatalog(parts CatalogParts) (*PlanCatalog, error) {
	c := &PlanCatalog{
		workouts:   make(map[time.Weekday]WorkoutDay, 7),
		mealIndex:  make(map[string]int, len(parts.Meals)),
		nutrition:  parts.Nutrition,
		guidelines: parts.Guidelines,
	}

	for _, w := range parts.Workouts {
		day, err := ParseWeekday(w.Day)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
		if _, dup := c.workouts[day]; dup {
			return nil, fmt.Errorf("%w: duplicate workout for %s", ErrInvalidConfig, day)
		}
		for _, ex := range w.Exercises {
			if ex.Sets <= 0 {
				return nil, fmt.Errorf("%w: %s exercise %q has non-positive sets", ErrInvalidConfig, day, ex.Name)
			}
		}
		w.Day = day.String()
		w.Exercises = append([]Exercise(nil), w.Exercises...)
		c.workouts[day] = w
	}
	if len(c.workouts) != 7 {
		return nil, fmt.Errorf("%w: workouts defined for %d of 7 weekdays", ErrInvalidConfig, len(c.workouts))
	}

	for _, m := range parts.Meals {
		if m.Calories < 0 || m.Protein < 0 {
			return nil, fmt.Errorf("%w: meal %q has negative macros", ErrInvalidConfig, m.Name)
		}
		if m.Label == "" {
			m.Label = fmt.Sprintf("%s (%s)", m.Name, m.Time.Clock12())
		}
		if _, dup := c.mealIndex[m.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate meal slot %q", ErrInvalidConfig, m.Label)
		}
		m.Items = append([]string(nil), m.Items...)
		c.mealIndex[m.Label] = len(c.meals)
		c.meals = append(c.meals, m)
	}

	c.notifications = append([]NotificationEntry(nil), parts.Notifications...)
	sort.SliceStable(c.notifications, func(i, j int) bool {
		return c.notifications[i].Time.Before(c.notifications[j].Time)
	})

	for _, m := range parts.Milestones {
		if m.StartDay < 1 || m.EndDay < m.StartDay {
			return nil, fmt.Errorf("%w: milestone %q has invalid day range %d-%d", ErrInvalidConfig, m.Name, m.StartDay, m.EndDay)
		}
		c.milestones = append(c.milestones, m)
	}

	for _, p := range parts.Phases {
		if p.StartWeek < 1 || p.EndWeek < p.StartWeek {
			return nil, fmt.Errorf("%w: phase %q has invalid week range", ErrInvalidConfig, p.Name)
		}
		c.phases = append(c.phases, p)
	}
	sort.SliceStable(c.phases, func(i, j int) bool {
		return c.phases[i].StartWeek < c.phases[j].StartWeek
	})

	return c, nil
}

// WorkoutFor returns the workout of the given weekday.
func (c *PlanCatalog) WorkoutFor(day time.Weekday) (WorkoutDay, error) {
	w, ok := c.workouts[day]
	if !ok {
		return WorkoutDay{}, fmt.Errorf("%w: weekday %d", ErrInvalidKey, day)
	}
	return copyWorkout(w), nil
}

// Workouts lists the week starting on Monday.
func (c *PlanCatalog) Workouts() []WorkoutDay {
	out := make([]WorkoutDay, 0, 7)
	for i := 1; i <= 7; i++ {
		out = append(out, copyWorkout(c.workouts[time.Weekday(i%7)]))
	}
	return out
}

func (c *PlanCatalog) MealSlots() []MealSlot {
	out := make([]MealSlot, len(c.meals))
	for i, m := range c.meals {
		m.Items = append([]string(nil), m.Items...)
		out[i] = m
	}
	return out
}

func (c *PlanCatalog) MealSlot(label string) (MealSlot, error) {
	i, ok := c.mealIndex[strings.TrimSpace(label)]
	if !ok {
		return MealSlot{}, fmt.Errorf("%w: meal slot %q", ErrInvalidKey, label)
	}
	m := c.meals[i]
	m.Items = append([]string(nil), m.Items...)
	return m, nil
}

// Notifications are ordered by time of day ascending.
func (c *PlanCatalog) Notifications() []NotificationEntry {
	return append([]NotificationEntry(nil), c.notifications...)
}

// FitsGoal checks that every milestone period closes within the program.
func (c *PlanCatalog) FitsGoal(goal Goal) error {
	for _, m := range c.milestones {
		if m.EndDay > goal.LengthDays {
			return fmt.Errorf("%w: milestone %q ends on day %d after the %d day program", ErrInvalidConfig, m.Name, m.EndDay, goal.LengthDays)
		}
	}
	return nil
}

func (c *PlanCatalog) Milestones() []Milestone {
	return append([]Milestone(nil), c.milestones...)
}

func (c *PlanCatalog) Phases() []TrainingPhase {
	return append([]TrainingPhase(nil), c.phases...)
}

func (c *PlanCatalog) Nutrition() NutritionTargets {
	return c.nutrition
}

func (c *PlanCatalog) Guidelines() Guidelines {
	g := c.guidelines
	g.NutritionTips = append([]string(nil), g.NutritionTips...)
	g.WorkoutTips = append([]string(nil), g.WorkoutTips...)
	g.AvoidFoods = append([]string(nil), g.AvoidFoods...)
	g.SuccessFactors = append([]string(nil), g.SuccessFactors...)
	g.Variations = append([]string(nil), g.Variations...)
	return g
}

func copyWorkout(w WorkoutDay) WorkoutDay {
	w.Exercises = append([]Exercise(nil), w.Exercises...)
	return w
}
