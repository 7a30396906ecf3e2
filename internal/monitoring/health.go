package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthChecker tracks whether the most recent run fetched data and
// classified every configured symbol successfully, for a liveness probe
// separate from the Prometheus metrics endpoint.
type HealthChecker struct {
	mu          sync.RWMutex
	lastRun     time.Time
	lastSuccess time.Time
	errors      []string
	startTime   time.Time
}

type HealthStatus struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	LastRun     time.Time `json:"last_run"`
	LastSuccess time.Time `json:"last_success"`
	Uptime      string    `json:"uptime"`
	Errors      []string  `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		errors:    make([]string, 0),
		startTime: time.Now(),
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if h.lastRun.IsZero() || time.Since(h.lastSuccess) > time.Hour*24 {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if len(h.errors) > 0 {
		status = "unhealthy"
		w.WriteHeader(http.StatusInternalServerError)
	}

	health := HealthStatus{
		Status:      status,
		Timestamp:   time.Now(),
		LastRun:     h.lastRun,
		LastSuccess: h.lastSuccess,
		Uptime:      time.Since(h.startTime).String(),
		Errors:      h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// RecordRun marks that a run completed, and advances the last-success
// timestamp when the run had no per-symbol failures.
func (h *HealthChecker) RecordRun(ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastRun = time.Now()
	if ok {
		h.lastSuccess = h.lastRun
	}
}

// AddError appends a failure to the rolling error log the health
// endpoint reports.
func (h *HealthChecker) AddError(err string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, err)

	// Keep only last 10 errors
	if len(h.errors) > 10 {
		h.errors = h.errors[len(h.errors)-10:]
	}
}
