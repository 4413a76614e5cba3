package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"casper-stock-watcher/internal/models"
)

// ChangeEvent is one leaf movement appended to the change history.
type ChangeEvent struct {
	Offset    int64               `json:"offset"`
	Timestamp string              `json:"timestamp"`
	VariantID string              `json:"variantId"`
	Record    models.ChangeRecord `json:"record"`
}

// ChangeLog is an append-only, offset-addressed history of stock changes
// with JSON file persistence. Watch mode appends the interesting records
// of every cycle; the status API reads them back by offset.
type ChangeLog struct {
	mu         sync.RWMutex
	events     []ChangeEvent
	nextOffset int64
	filePath   string
	maxEvents  int
}

// ChangeLogConfig holds configuration for the change log.
type ChangeLogConfig struct {
	FilePath  string
	MaxEvents int
}

// NewChangeLog creates a change log, loading any previously persisted
// history from its file.
func NewChangeLog(config ChangeLogConfig) (*ChangeLog, error) {
	cl := &ChangeLog{
		events:    make([]ChangeEvent, 0),
		filePath:  config.FilePath,
		maxEvents: config.MaxEvents,
	}

	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create change log directory: %w", err)
	}

	if err := cl.loadFromFile(); err != nil {
		slog.Warn("Failed to load change history, starting fresh", "error", err)
		cl.events = cl.events[:0]
		cl.nextOffset = 0
	}

	slog.Info("Change log initialized",
		"file_path", config.FilePath,
		"max_events", config.MaxEvents,
		"loaded_events", len(cl.events),
		"next_offset", cl.nextOffset)

	return cl, nil
}

// Publish appends every record that carries actual movement. Records that
// are not comparable or show no change are skipped.
func (cl *ChangeLog) Publish(records []models.ChangeRecord) {
	now := time.Now().UTC().Format(time.RFC3339)

	cl.mu.Lock()
	appended := 0
	for _, record := range records {
		if !record.Comparable || !record.Changed() {
			continue
		}
		cl.events = append(cl.events, ChangeEvent{
			Offset:    cl.nextOffset,
			Timestamp: now,
			VariantID: record.VariantID,
			Record:    record,
		})
		cl.nextOffset++
		appended++
	}
	if appended > 0 {
		cl.rotateLocked()
	}
	cl.mu.Unlock()

	if appended > 0 {
		slog.Debug("Change events appended", "count", appended)
		if err := cl.saveToFile(); err != nil {
			slog.Error("Failed to persist change history", "error", err)
		}
	}
}

// GetEvents returns up to limit events starting at fromOffset, the offset
// to resume from, and whether more events remain.
func (cl *ChangeLog) GetEvents(fromOffset int64, limit int) ([]ChangeEvent, int64, bool) {
	cl.mu.RLock()
	defer cl.mu.RUnlock()

	startIdx := -1
	for i, event := range cl.events {
		if event.Offset >= fromOffset {
			startIdx = i
			break
		}
	}
	if startIdx == -1 {
		return nil, cl.nextOffset, false
	}

	endIdx := startIdx + limit
	hasMore := false
	if endIdx >= len(cl.events) {
		endIdx = len(cl.events)
	} else {
		hasMore = true
	}

	result := make([]ChangeEvent, endIdx-startIdx)
	copy(result, cl.events[startIdx:endIdx])

	nextOffset := cl.nextOffset
	if len(result) > 0 {
		nextOffset = result[len(result)-1].Offset + 1
	}
	return result, nextOffset, hasMore
}

// CurrentOffset returns the next offset to be assigned.
func (cl *ChangeLog) CurrentOffset() int64 {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.nextOffset
}

// Close persists the history one final time.
func (cl *ChangeLog) Close() error {
	slog.Info("Closing change log")
	return cl.saveToFile()
}

// rotateLocked trims the in-memory history when it outgrows maxEvents,
// keeping the most recent three quarters. Offsets are preserved.
func (cl *ChangeLog) rotateLocked() {
	if cl.maxEvents <= 0 || len(cl.events) <= cl.maxEvents {
		return
	}
	keep := cl.maxEvents * 3 / 4
	removed := len(cl.events) - keep
	cl.events = append(cl.events[:0:0], cl.events[removed:]...)
	slog.Info("Change log rotated",
		"removed_events", removed,
		"remaining_events", len(cl.events))
}

type changeLogFile struct {
	Events     []ChangeEvent `json:"events"`
	NextOffset int64         `json:"nextOffset"`
}

func (cl *ChangeLog) loadFromFile() error {
	data, err := os.ReadFile(cl.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read change history file: %w", err)
	}

	var file changeLogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal change history: %w", err)
	}

	cl.events = file.Events
	cl.nextOffset = file.NextOffset
	return nil
}

func (cl *ChangeLog) saveToFile() error {
	cl.mu.RLock()
	file := changeLogFile{
		Events:     cl.events,
		NextOffset: cl.nextOffset,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	cl.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal change history: %w", err)
	}

	// Write to a temporary file first, then rename (atomic operation).
	tempFile := cl.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp change history file: %w", err)
	}
	if err := os.Rename(tempFile, cl.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to replace change history file: %w", err)
	}
	return nil
}
