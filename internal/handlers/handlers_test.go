package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casper-stock-watcher/internal/catalog"
	"casper-stock-watcher/internal/events"
	"casper-stock-watcher/internal/models"
	"casper-stock-watcher/internal/scheduler"
)

// staticEngine returns the same snapshot on every poll.
type staticEngine struct {
	snapshot *models.Snapshot
}

func (e *staticEngine) PollVariantAcrossHierarchy(ctx context.Context, variant models.Variant, cat *catalog.Catalog) *models.Snapshot {
	return e.snapshot
}

func testSnapshot() *models.Snapshot {
	leaf := models.LeafResult{
		RegionName:    "서울",
		RegionCode:    "B",
		SubRegionName: "서울특별시",
		SubRegionCode: "B0",
		VariantID:     "AX05",
		Succeeded:     true,
		Units:         []models.StockUnit{{SerialNumber: "VIN0001"}},
		TotalCount:    1,
	}
	return &models.Snapshot{
		PollID:    "poll-1",
		VariantID: "AX05",
		TakenAt:   time.Now(),
		Leaves:    map[models.LeafKey]models.LeafResult{leaf.Key(): leaf},
	}
}

func newTestRouter(t *testing.T, sched *scheduler.Scheduler) (http.Handler, *events.ChangeLog) {
	t.Helper()
	changeLog, err := events.NewChangeLog(events.ChangeLogConfig{
		FilePath:  filepath.Join(t.TempDir(), "changes.json"),
		MaxEvents: 100,
	})
	require.NoError(t, err)
	return NewRouter(sched, changeLog, slog.Default()), changeLog
}

// TestHealthEndpoint tests GET /health
func TestHealthEndpoint(t *testing.T) {
	// Arrange
	sched := scheduler.New(&staticEngine{snapshot: testSnapshot()}, catalog.New(nil))
	router, _ := newTestRouter(t, sched)

	// Act
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["polling"], "Idle scheduler should report polling false")
}

// TestSnapshotEndpoint_BeforeFirstCycle tests the not-ready response
func TestSnapshotEndpoint_BeforeFirstCycle(t *testing.T) {
	// Arrange
	sched := scheduler.New(&staticEngine{snapshot: testSnapshot()}, catalog.New(nil))
	router, _ := newTestRouter(t, sched)

	// Act
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/snapshot/latest", nil))

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "SNAPSHOT_NOT_READY", body.Code)
}

// TestSnapshotEndpoint_AfterPoll tests serving the latest snapshot
func TestSnapshotEndpoint_AfterPoll(t *testing.T) {
	// Arrange - run one scheduler cycle so a snapshot is published
	sched := scheduler.New(&staticEngine{snapshot: testSnapshot()}, catalog.New(nil))
	delivered := make(chan struct{})
	require.NoError(t, sched.Start(models.Variant{ID: "AX05"}, time.Hour, scheduler.Callbacks{
		OnSnapshot: func(*models.Snapshot) {
			select {
			case <-delivered:
			default:
				close(delivered)
			}
		},
	}))
	defer sched.Stop()
	<-delivered

	router, _ := newTestRouter(t, sched)

	// Act
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/snapshot/latest", nil))

	// Assert
	require.Equal(t, http.StatusOK, recorder.Code)

	var body snapshotResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "poll-1", body.PollID)
	assert.Equal(t, "AX05", body.VariantID)
	assert.Equal(t, 1, body.TotalUnits)
	require.Len(t, body.Leaves, 1)
	assert.Equal(t, "B0", body.Leaves[0].SubRegionCode)
}

// TestChangesEndpoint tests GET /v1/changes paging and validation
func TestChangesEndpoint(t *testing.T) {
	// Arrange
	sched := scheduler.New(&staticEngine{snapshot: testSnapshot()}, catalog.New(nil))
	router, changeLog := newTestRouter(t, sched)

	changeLog.Publish([]models.ChangeRecord{
		{
			RegionCode:    "B",
			SubRegionCode: "B0",
			VariantID:     "AX05",
			CurrentCount:  1,
			NewUnits:      []models.StockUnit{{SerialNumber: "VIN0001"}},
			Comparable:    true,
		},
	})

	t.Run("default paging", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/changes", nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		var body changesResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Count)
		assert.Equal(t, int64(1), body.NextOffset)
		assert.False(t, body.HasMore)
	})

	t.Run("explicit offset past the end", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/changes?offset=5", nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		var body changesResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Zero(t, body.Count)
	})

	t.Run("invalid offset", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/changes?offset=abc", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
