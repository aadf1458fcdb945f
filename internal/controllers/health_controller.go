package controllers

import (
	"fmt"
	"net/http"
	"time"

	"fittrack/internal/engine"
	"fittrack/internal/models"
	"fittrack/internal/providers"
	"fittrack/internal/services"
)

type HealthController struct {
	service   services.TrackerServiceInterface
	cache     providers.CacheProviderInterface
	startTime time.Time
}

type healthResponse struct {
	Status            string  `json:"status"`
	Uptime            string  `json:"uptime"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
	Date              string  `json:"date"`
	ProgramDay        int     `json:"program_day"`
	RemainingDays     int     `json:"remaining_days"`
	CurrentWeight     float64 `json:"current_weight"`
	WorkoutsCompleted int     `json:"workouts_completed"`
	CachedViews       int64   `json:"cached_views"`
}

func NewHealthController(service services.TrackerServiceInterface, cache providers.CacheProviderInterface) *HealthController {
	return &HealthController{
		service:   service,
		cache:     cache,
		startTime: time.Now(),
	}
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	now := hc.service.Now()
	goal := hc.service.Goal()
	uptime := time.Since(hc.startTime)

	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "ok",
		Uptime:            formatDuration(uptime),
		UptimeSeconds:     uptime.Seconds(),
		Date:              models.DateKey(now),
		ProgramDay:        engine.ElapsedDays(goal, now) + 1,
		RemainingDays:     engine.RemainingDays(goal, now),
		CurrentWeight:     hc.service.CurrentWeight(),
		WorkoutsCompleted: hc.service.WorkoutCompletionCount(),
		CachedViews:       hc.cache.Len(),
	})
}

func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%dh%dm%ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
