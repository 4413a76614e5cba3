package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"casper-stock-watcher/internal/events"
)

// ChangesHandler serves the persisted change history.
type ChangesHandler struct {
	changeLog *events.ChangeLog
	logger    *slog.Logger
}

// NewChangesHandler creates a new changes handler
func NewChangesHandler(changeLog *events.ChangeLog, logger *slog.Logger) *ChangesHandler {
	return &ChangesHandler{
		changeLog: changeLog,
		logger:    logger,
	}
}

// changesResponse is the paged change history payload.
type changesResponse struct {
	Events     []events.ChangeEvent `json:"events"`
	NextOffset int64                `json:"nextOffset"`
	HasMore    bool                 `json:"hasMore"`
	Count      int                  `json:"count"`
}

// GetChanges handles GET /v1/changes
func (h *ChangesHandler) GetChanges(w http.ResponseWriter, r *http.Request) {
	offset := int64(0)
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		parsed, err := strconv.ParseInt(offsetStr, 10, 64)
		if err != nil || parsed < 0 {
			writeErrorResponse(w, "CHANGES_ERROR",
				"invalid offset parameter", http.StatusBadRequest)
			return
		}
		offset = parsed
	}

	limit := 100 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 1000 {
			limit = parsedLimit
		}
	}

	changeEvents, nextOffset, hasMore := h.changeLog.GetEvents(offset, limit)

	h.logger.Debug("Changes request served",
		"offset", offset,
		"limit", limit,
		"events_count", len(changeEvents),
		"remote_addr", r.RemoteAddr,
	)

	writeJSONResponse(w, http.StatusOK, changesResponse{
		Events:     changeEvents,
		NextOffset: nextOffset,
		HasMore:    hasMore,
		Count:      len(changeEvents),
	})
}
