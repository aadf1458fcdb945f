package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fittrack/internal/services"
	"fittrack/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncProgressEvents(kind string)
	IncRemindersFired()
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	progressEvents      *prometheus.CounterVec
	remindersFired      prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

// IncProgressEvents counts accepted mutations: "weight", "workout" or "meal".
func (m *MetricsProvider) IncProgressEvents(kind string) {
	m.progressEvents.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncRemindersFired() {
	m.remindersFired.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.TrackerServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fittrack_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fittrack_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_cache_hits_total",
			Help: "Total number of view cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_cache_misses_total",
			Help: "Total number of view cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fittrack_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		progressEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fittrack_progress_events_total",
			Help: "Accepted progress mutations by kind",
		}, []string{"kind"}),

		remindersFired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_reminders_fired_total",
			Help: "Total number of reminders delivered",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fittrack_current_weight_kg",
		Help: "Most recently logged body weight",
	}, func() float64 {
		return service.CurrentWeight()
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fittrack_workouts_completed",
		Help: "Number of days with a completed workout",
	}, func() float64 {
		return float64(service.WorkoutCompletionCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fittrack_progress_percent",
		Help: "Share of the program duration already elapsed",
	}, func() float64 {
		return service.Progress().ProgressPercent
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncProgressEvents(_ string)                       {}
func (n *noopMetrics) IncRemindersFired()                               {}
