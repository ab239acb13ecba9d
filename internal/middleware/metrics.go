package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"go.uber.org/atomic"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal      atomic.Uint64
	RequestsInProgress atomic.Int64
	RequestsSuccess    atomic.Uint64
	RequestsFailed     atomic.Uint64
	AnalysesTotal      atomic.Uint64
	AnalysesRunning    atomic.Int64
	AnalysesFailed     atomic.Uint64
	SeverityCoerced    atomic.Uint64
	StartTime          time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// IncrementSeverityCoerced counts AI answers whose severity had to be replaced.
func IncrementSeverityCoerced() {
	globalMetrics.SeverityCoerced.Inc()
}

// AppMetrics feeds analysis lifecycle events into the global counters.
type AppMetrics struct{}

func (AppMetrics) AnalysisStarted() {
	globalMetrics.AnalysesTotal.Inc()
	globalMetrics.AnalysesRunning.Inc()
}

func (AppMetrics) AnalysisFinished(err error) {
	globalMetrics.AnalysesRunning.Dec()
	if err != nil {
		globalMetrics.AnalysesFailed.Inc()
	}
}

// GetMetrics returns current metrics. reports is the current log size.
func GetMetrics(reports int) map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"requests_total":       globalMetrics.RequestsTotal.Load(),
		"requests_in_progress": globalMetrics.RequestsInProgress.Load(),
		"requests_success":     globalMetrics.RequestsSuccess.Load(),
		"requests_failed":      globalMetrics.RequestsFailed.Load(),
		"analyses_total":       globalMetrics.AnalysesTotal.Load(),
		"analyses_running":     globalMetrics.AnalysesRunning.Load(),
		"analyses_failed":      globalMetrics.AnalysesFailed.Load(),
		"severity_coerced":     globalMetrics.SeverityCoerced.Load(),
		"reports":              reports,
		"uptime_seconds":       time.Since(globalMetrics.StartTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes":       m.Alloc,
			"total_alloc_bytes": m.TotalAlloc,
			"sys_bytes":         m.Sys,
			"num_gc":            m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		globalMetrics.RequestsTotal.Inc()
		globalMetrics.RequestsInProgress.Inc()
		defer globalMetrics.RequestsInProgress.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			globalMetrics.RequestsSuccess.Inc()
		} else {
			globalMetrics.RequestsFailed.Inc()
		}
	})
}

// MetricsHandler returns metrics as JSON. count reports the current log size.
func MetricsHandler(count func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := 0
		if count != nil {
			n = count()
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GetMetrics(n))
	}
}
