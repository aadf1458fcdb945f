// Package catalog loads the declarative plan catalog from YAML.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/gookit/validate"
	"github.com/spf13/viper"

	"fittrack/internal/models"
)

//go:embed default.yaml
var defaultCatalog []byte

type exerciseDef struct {
	Name string `yaml:"name" validate:"required"`
	Sets int    `yaml:"sets" validate:"required|int|min:1"`
	Reps string `yaml:"reps"`
	Rest string `yaml:"rest"`
}

type workoutDef struct {
	Day       string        `yaml:"day" validate:"required"`
	Focus     string        `yaml:"focus" validate:"required"`
	Cardio    string        `yaml:"cardio"`
	Exercises []exerciseDef `yaml:"exercises"`
}

type mealDef struct {
	Name     string   `yaml:"name" validate:"required"`
	Label    string   `yaml:"label"`
	Time     string   `yaml:"time" validate:"required"`
	Items    []string `yaml:"items"`
	Calories int      `yaml:"calories" validate:"int|min:0"`
	Protein  int      `yaml:"protein" validate:"int|min:0"`
	Purpose  string   `yaml:"purpose"`
}

type notificationDef struct {
	Time    string `yaml:"time" validate:"required"`
	Message string `yaml:"message" validate:"required"`
}

type milestoneDef struct {
	Name         string  `yaml:"name" validate:"required"`
	StartDay     int     `yaml:"startDay" validate:"required|int|min:1"`
	EndDay       int     `yaml:"endDay" validate:"required|int|min:1"`
	TargetWeight float64 `yaml:"targetWeight" validate:"required"`
	Focus        string  `yaml:"focus"`
	Expectations string  `yaml:"expectations"`
}

type phaseDef struct {
	Name      string `yaml:"name" validate:"required"`
	StartWeek int    `yaml:"startWeek" validate:"required|int|min:1"`
	EndWeek   int    `yaml:"endWeek" validate:"required|int|min:1"`
	Focus     string `yaml:"focus"`
}

// File mirrors the catalog YAML document.
type File struct {
	Workouts      []workoutDef            `yaml:"workouts" validate:"required"`
	Meals         []mealDef               `yaml:"meals" validate:"required"`
	Notifications []notificationDef       `yaml:"notifications" validate:"required"`
	Milestones    []milestoneDef          `yaml:"milestones"`
	Phases        []phaseDef              `yaml:"phases"`
	Nutrition     models.NutritionTargets `yaml:"nutrition"`
	Guidelines    models.Guidelines       `yaml:"guidelines"`
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*models.PlanCatalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	var err error
	if path == "" {
		err = v.ReadConfig(bytes.NewReader(defaultCatalog))
	} else {
		v.SetConfigFile(path)
		err = v.ReadInConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file File
	if err = v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("unable to decode catalog: %w", err)
	}
	return Build(&file)
}

// Build validates a decoded catalog document and turns it into a PlanCatalog.
func Build(file *File) (*models.PlanCatalog, error) {
	if err := check(file); err != nil {
		return nil, err
	}

	parts := models.CatalogParts{
		Nutrition:  file.Nutrition,
		Guidelines: file.Guidelines,
	}
	for _, w := range file.Workouts {
		if err := check(&w); err != nil {
			return nil, err
		}
		day := models.WorkoutDay{Day: w.Day, Focus: w.Focus, Cardio: w.Cardio}
		for _, ex := range w.Exercises {
			if err := check(&ex); err != nil {
				return nil, fmt.Errorf("%s: %w", w.Day, err)
			}
			day.Exercises = append(day.Exercises, models.Exercise(ex))
		}
		parts.Workouts = append(parts.Workouts, day)
	}
	for _, m := range file.Meals {
		if err := check(&m); err != nil {
			return nil, err
		}
		at, err := models.ParseTimeOfDay(m.Time)
		if err != nil {
			return nil, fmt.Errorf("meal %q: %w", m.Name, err)
		}
		parts.Meals = append(parts.Meals, models.MealSlot{
			Label:    m.Label,
			Name:     m.Name,
			Time:     at,
			Items:    m.Items,
			Calories: m.Calories,
			Protein:  m.Protein,
			Purpose:  m.Purpose,
		})
	}
	for _, n := range file.Notifications {
		if err := check(&n); err != nil {
			return nil, err
		}
		at, err := models.ParseTimeOfDay(n.Time)
		if err != nil {
			return nil, fmt.Errorf("notification: %w", err)
		}
		parts.Notifications = append(parts.Notifications, models.NotificationEntry{Time: at, Message: n.Message})
	}
	for _, m := range file.Milestones {
		if err := check(&m); err != nil {
			return nil, err
		}
		parts.Milestones = append(parts.Milestones, models.Milestone(m))
	}
	for _, p := range file.Phases {
		if err := check(&p); err != nil {
			return nil, err
		}
		parts.Phases = append(parts.Phases, models.TrainingPhase(p))
	}

	return models.NewPlanCatalog(parts)
}

func check(s interface{}) error {
	v := validate.Struct(s)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", models.ErrInvalidConfig, v.Errors.One())
	}
	return nil
}
