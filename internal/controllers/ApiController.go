package controllers

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"fittrack/internal/engine"
	"fittrack/internal/models"
	"fittrack/internal/providers"
	"fittrack/internal/services"
)

const maxRequestBodySize = 1 << 16

var errBadPayload = errors.New("bad payload")

type ApiController struct {
	logger  providers.Logger
	service services.TrackerServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.TrackerServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

type weightRequest struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight" validate:"required"`
}

type workoutRequest struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

type mealRequest struct {
	Date string `json:"date"`
	Slot string `json:"slot" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type workoutsResponse struct {
	Week   []models.WorkoutDay    `json:"week"`
	Phases []models.TrainingPhase `json:"phases"`
}

type mealsResponse struct {
	Slots     []models.MealSlot       `json:"slots"`
	Nutrition engine.NutritionSummary `json:"nutrition"`
}

type guidelinesResponse struct {
	models.Guidelines
	Milestones []models.Milestone `json:"milestones"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps domain errors onto HTTP statuses. Anything unclassified is
// logged and reported as 500.
func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadPayload), errors.Is(err, models.ErrInvalidDate), errors.Is(err, models.ErrInvalidKey):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrOutOfRange):
		status = http.StatusUnprocessableEntity
	default:
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodePayload(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadPayload
	}
	v := validate.Struct(dst)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", errBadPayload, v.Errors.One())
	}
	return nil
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, r, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetToday(w http.ResponseWriter, r *http.Request) {
	today, err := ac.service.Today()
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, today)
}

// todayKey scopes a progress view to the current civil date and store revision.
func (ac *ApiController) todayKey(view string) string {
	return providers.ViewKey(view, models.DateKey(ac.service.Now()), ac.service.Revision())
}

// recorded releases views rendered before a successful mutation.
func (ac *ApiController) recorded(r *http.Request, kind string) {
	ac.cache.Purge()
	ac.metrics.IncProgressEvents(kind)
	ac.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "%s recorded, view cache purged", kind)
}

func (ac *ApiController) GetProgress(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, ac.todayKey("progress"), func() (any, error) {
		return ac.service.Progress(), nil
	})
}

func (ac *ApiController) GetWeights(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, ac.todayKey("weights"), func() (any, error) {
		return ac.service.WeightChart(), nil
	})
}

func (ac *ApiController) GetMilestones(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, ac.todayKey("milestones"), func() (any, error) {
		return ac.service.Milestones(), nil
	})
}

func (ac *ApiController) GetNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.service.Notifications())
}

func (ac *ApiController) RecordWeight(w http.ResponseWriter, r *http.Request) {
	var payload weightRequest
	if err := decodePayload(w, r, &payload); err != nil {
		ac.writeError(w, r, err)
		return
	}
	entry, err := ac.service.RecordWeight(payload.Date, payload.Weight)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.recorded(r, "weight")
	ac.logger.Infof(providers.GetLogTypeByRequestType(r.Method), "Weight %.1f recorded for %s", entry.Weight, entry.Date)
	writeJSON(w, http.StatusCreated, entry)
}

func (ac *ApiController) CompleteWorkout(w http.ResponseWriter, r *http.Request) {
	var payload workoutRequest
	if err := decodePayload(w, r, &payload); err != nil {
		ac.writeError(w, r, err)
		return
	}
	day, err := ac.service.MarkWorkoutComplete(payload.Date, payload.Weekday)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.recorded(r, "workout")
	ac.logger.Infof(providers.GetLogTypeByRequestType(r.Method), "%s workout completed", day)
	writeJSON(w, http.StatusCreated, map[string]any{
		"weekday":            day,
		"workouts_completed": ac.service.WorkoutCompletionCount(),
	})
}

func (ac *ApiController) CompleteMeal(w http.ResponseWriter, r *http.Request) {
	var payload mealRequest
	if err := decodePayload(w, r, &payload); err != nil {
		ac.writeError(w, r, err)
		return
	}
	if err := ac.service.MarkMealComplete(payload.Date, payload.Slot); err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.recorded(r, "meal")
	ac.logger.Infof(providers.GetLogTypeByRequestType(r.Method), "Meal %q completed", payload.Slot)
	today, err := ac.service.Today()
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, today.Meals)
}

// Catalog views never change while the process runs.

func (ac *ApiController) GetWorkouts(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "workouts", func() (any, error) {
		c := ac.service.Catalog()
		return workoutsResponse{Week: c.Workouts(), Phases: c.Phases()}, nil
	})
}

func (ac *ApiController) GetMeals(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "meals", func() (any, error) {
		c := ac.service.Catalog()
		return mealsResponse{Slots: c.MealSlots(), Nutrition: engine.DailyNutrition(c)}, nil
	})
}

func (ac *ApiController) GetGuidelines(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "guidelines", func() (any, error) {
		c := ac.service.Catalog()
		return guidelinesResponse{Guidelines: c.Guidelines(), Milestones: c.Milestones()}, nil
	})
}
