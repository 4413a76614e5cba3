package handlers

import (
	"log/slog"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"casper-stock-watcher/internal/events"
	"casper-stock-watcher/internal/scheduler"
)

// NewRouter builds the status API router for watch mode.
func NewRouter(sched *scheduler.Scheduler, changeLog *events.ChangeLog, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()

	healthHandler := NewHealthHandler(sched)
	snapshotHandler := NewSnapshotHandler(sched, logger)
	changesHandler := NewChangesHandler(changeLog, logger)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/snapshot/latest", snapshotHandler.GetLatest).Methods("GET")
	v1.HandleFunc("/changes", changesHandler.GetChanges).Methods("GET")

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
