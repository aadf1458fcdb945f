package providers

import (
	"net/http"
	"time"
)

// statusRecorder keeps the first status written to the response.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *statusRecorder) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// requestLabel names a request by method and registered route. Methods the
// route rejected collapse into one label.
func requestLabel(method, route string, status int) string {
	if status == http.StatusMethodNotAllowed {
		method = "OTHER"
	}
	return method + " " + route
}

// MetricsMiddleware instruments a single registered route. The route pattern,
// not the request path, goes into the label so query strings and unknown paths
// never create series.
func MetricsMiddleware(metrics MetricsProviderInterface, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		label := requestLabel(r.Method, route, rec.code())
		metrics.IncRequestsTotal(label, rec.code())
		metrics.ObserveRequestDuration(label, time.Since(start))
	})
}
