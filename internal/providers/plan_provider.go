package providers

import (
	"fmt"

	"fittrack/internal/catalog"
	"fittrack/internal/models"
	"fittrack/internal/services"
	"fittrack/internal/structures"
)

// StartDateSource returns the program start date recorded by a previous run,
// or "" when there is none.
type StartDateSource interface {
	StoredStartDate() (string, error)
}

func NewCatalogProvider(conf *structures.Config, logger Logger) (*models.PlanCatalog, error) {
	c, err := catalog.Load(conf.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	source := conf.Catalog.Path
	if source == "" {
		source = "built-in"
	}
	logger.Infof(TypeApp, "Catalog loaded from %s: %d meal slots, %d notifications, %d milestones",
		source, len(c.MealSlots()), len(c.Notifications()), len(c.Milestones()))
	return c, nil
}

// NewGoalProvider picks the start date from config, then from the stored
// snapshot, then falls back to today.
func NewGoalProvider(conf *structures.Config, clock services.Clock, plan *models.PlanCatalog, stored StartDateSource, logger Logger) (models.Goal, error) {
	start := models.StartOfDay(clock.Now())

	switch {
	case conf.Goal.StartDate != "":
		d, err := models.ParseDate(conf.Goal.StartDate, clock.Location())
		if err != nil {
			return models.Goal{}, err
		}
		start = d
	default:
		key, err := stored.StoredStartDate()
		if err != nil {
			logger.Warnf(TypeApp, "Unable to read stored start date, starting today: %s", err)
			break
		}
		if key == "" {
			break
		}
		d, err := models.ParseDate(key, clock.Location())
		if err != nil {
			logger.Warnf(TypeApp, "Ignoring stored start date: %s", err)
			break
		}
		start = d
	}

	goal, err := models.NewGoal(conf.Goal.Baseline, conf.Goal.Target, conf.Goal.LengthDays, start)
	if err != nil {
		return models.Goal{}, err
	}
	if err := plan.FitsGoal(goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

func NewProgressStoreProvider(conf *structures.Config, goal models.Goal) (*models.ProgressStore, error) {
	bounds, err := models.NewWeightBounds(conf.Goal.MinWeight, conf.Goal.MaxWeight)
	if err != nil {
		return nil, err
	}
	return models.NewProgressStore(bounds, goal.StartDate, goal.Baseline)
}
