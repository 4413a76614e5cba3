package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"casper-stock-watcher/internal/models"
)

// PollTelemetry provides telemetry for stock poll cycles.
type PollTelemetry struct {
	meter metric.Meter

	// Poll cycle counters
	pollCounter metric.Int64Counter

	// Per-leaf outcome counters
	leafCounter metric.Int64Counter

	// Duration histograms
	durationHistogram metric.Float64Histogram

	// Latest observed stock level per variant
	stockGauge metric.Int64Gauge

	// Change announcements
	changeCounter metric.Int64Counter
}

// PollMetrics contains the telemetry data for one completed poll cycle.
type PollMetrics struct {
	VariantID    string
	Duration     time.Duration
	TotalUnits   int
	FailedLeaves int
	TotalLeaves  int
}

// NewPollTelemetry creates a new instance of PollTelemetry
func NewPollTelemetry() *PollTelemetry {
	return &PollTelemetry{}
}

// InitializeTelemetry sets up all the telemetry instruments for polling
func (t *PollTelemetry) InitializeTelemetry(ctx context.Context) error {
	slog.Info("Initializing poll telemetry")

	t.meter = otel.Meter("casper-stock-watcher")

	var err error

	t.pollCounter, err = t.meter.Int64Counter(
		"stock_polls_total",
		metric.WithDescription("Total number of completed hierarchy polls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		slog.Error("Failed to create poll counter", "error", err)
		return fmt.Errorf("failed to create poll counter: %w", err)
	}

	t.leafCounter, err = t.meter.Int64Counter(
		"stock_poll_leaves_total",
		metric.WithDescription("Total number of leaf queries by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		slog.Error("Failed to create leaf counter", "error", err)
		return fmt.Errorf("failed to create leaf counter: %w", err)
	}

	t.durationHistogram, err = t.meter.Float64Histogram(
		"stock_poll_duration_seconds",
		metric.WithDescription("Duration of full hierarchy polls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		slog.Error("Failed to create duration histogram", "error", err)
		return fmt.Errorf("failed to create duration histogram: %w", err)
	}

	t.stockGauge, err = t.meter.Int64Gauge(
		"stock_units_observed",
		metric.WithDescription("Units observed in the most recent poll"),
		metric.WithUnit("1"),
	)
	if err != nil {
		slog.Error("Failed to create stock gauge", "error", err)
		return fmt.Errorf("failed to create stock gauge: %w", err)
	}

	t.changeCounter, err = t.meter.Int64Counter(
		"stock_changes_total",
		metric.WithDescription("Total number of leaf change records with movement"),
		metric.WithUnit("1"),
	)
	if err != nil {
		slog.Error("Failed to create change counter", "error", err)
		return fmt.Errorf("failed to create change counter: %w", err)
	}

	slog.Info("Poll telemetry initialized successfully")
	return nil
}

// RegisterPollCompleted records one finished poll cycle from its snapshot.
func (t *PollTelemetry) RegisterPollCompleted(ctx context.Context, snapshot *models.Snapshot, duration time.Duration) {
	if t.pollCounter == nil {
		slog.Warn("Poll counter not initialized")
		return
	}

	// Variant is the only attribute; there are four of them, so
	// cardinality stays low.
	variantAttr := metric.WithAttributes(
		attribute.String("variant", snapshot.VariantID),
	)

	t.pollCounter.Add(ctx, 1, variantAttr)
	t.durationHistogram.Record(ctx, duration.Seconds(), variantAttr)
	t.stockGauge.Record(ctx, int64(snapshot.TotalUnits()), variantAttr)

	for _, leaf := range leafOutcomes(snapshot) {
		t.leafCounter.Add(ctx, leaf.count, metric.WithAttributes(
			attribute.String("variant", snapshot.VariantID),
			attribute.String("outcome", leaf.outcome),
		))
	}

	slog.Debug("Recorded poll cycle",
		"variant", snapshot.VariantID,
		"duration_seconds", duration.Seconds(),
		"total_units", snapshot.TotalUnits(),
		"failed_leaves", snapshot.FailedLeaves(),
	)
}

// RegisterChanges records how many change records carried movement.
func (t *PollTelemetry) RegisterChanges(ctx context.Context, records []models.ChangeRecord) {
	if t.changeCounter == nil {
		slog.Warn("Change counter not initialized")
		return
	}

	for _, record := range records {
		if !record.Comparable || !record.Changed() {
			continue
		}
		t.changeCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("variant", record.VariantID),
			attribute.String("region", record.RegionCode),
		))
	}
}

type leafOutcome struct {
	outcome string
	count   int64
}

// leafOutcomes buckets a snapshot's leaves by outcome, keeping the
// attribute set bounded regardless of hierarchy size.
func leafOutcomes(snapshot *models.Snapshot) []leafOutcome {
	counts := map[string]int64{}
	for _, leaf := range snapshot.Leaves {
		if leaf.Succeeded {
			counts["ok"]++
			continue
		}
		outcome := string(leaf.ErrorKind)
		if outcome == "" {
			outcome = "unknown"
		}
		counts[outcome]++
	}

	outcomes := make([]leafOutcome, 0, len(counts))
	for outcome, count := range counts {
		outcomes = append(outcomes, leafOutcome{outcome: outcome, count: count})
	}
	return outcomes
}
