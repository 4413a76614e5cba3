package handlers

import (
	"net/http"

	"casper-stock-watcher/internal/scheduler"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	sched *scheduler.Scheduler
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sched *scheduler.Scheduler) *HealthHandler {
	return &HealthHandler{sched: sched}
}

// Health handles GET /health - Health check endpoint
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"polling": h.sched.IsRunning(),
	})
}
