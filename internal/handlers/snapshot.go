package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"casper-stock-watcher/internal/models"
	"casper-stock-watcher/internal/scheduler"
)

// SnapshotHandler serves the most recent poll snapshot.
type SnapshotHandler struct {
	sched  *scheduler.Scheduler
	logger *slog.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(sched *scheduler.Scheduler, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		sched:  sched,
		logger: logger,
	}
}

// snapshotResponse is the wire form of a snapshot. Leaves are emitted as a
// sorted list so the response is stable across requests.
type snapshotResponse struct {
	PollID       string              `json:"pollId"`
	VariantID    string              `json:"variantId"`
	TakenAt      time.Time           `json:"takenAt"`
	TotalUnits   int                 `json:"totalUnits"`
	FailedLeaves int                 `json:"failedLeaves"`
	Leaves       []models.LeafResult `json:"leaves"`
}

// GetLatest handles GET /v1/snapshot/latest
func (h *SnapshotHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	snapshot := h.sched.LatestSnapshot()
	if snapshot == nil {
		writeErrorResponse(w, "SNAPSHOT_NOT_READY",
			"no poll cycle has completed yet", http.StatusServiceUnavailable)
		return
	}

	h.logger.Debug("Snapshot request served",
		"poll_id", snapshot.PollID,
		"remote_addr", r.RemoteAddr,
	)

	writeJSONResponse(w, http.StatusOK, snapshotResponse{
		PollID:       snapshot.PollID,
		VariantID:    snapshot.VariantID,
		TakenAt:      snapshot.TakenAt,
		TotalUnits:   snapshot.TotalUnits(),
		FailedLeaves: snapshot.FailedLeaves(),
		Leaves:       snapshot.SortedLeaves(),
	})
}
