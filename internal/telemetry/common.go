package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Exporter names accepted by Config.Exporter.
const (
	ExporterScrape = "scraper"
	ExporterGRPC   = "grpc"
)

// Config selects how metric readings leave the process.
type Config struct {
	// Exporter is ExporterScrape for a local /metrics page or ExporterGRPC
	// to push over OTLP.
	Exporter string
	// ScrapePort is the port the /metrics page listens on when Exporter is
	// ExporterScrape.
	ScrapePort string
}

// Telemetry owns the process meter provider and, for the scrape exporter,
// the HTTP server the /metrics page is served from. Instances are
// independent, so telemetry can be torn down and brought back up within
// one process.
type Telemetry struct {
	provider *metric.MeterProvider
	server   *http.Server
}

// Init installs the global meter provider per the configured exporter.
// The scrape exporter serves /metrics on the configured port; the grpc
// exporter pushes to OTEL_EXPORTER_OTLP_METRICS_ENDPOINT, or
// localhost:4317 when that is unset.
func Init(ctx context.Context, cfg Config) (*Telemetry, error) {
	t := &Telemetry{}

	switch cfg.Exporter {
	case ExporterScrape:
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create scrape exporter: %w", err)
		}
		t.provider = metric.NewMeterProvider(metric.WithReader(exporter))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		t.server = &http.Server{
			Addr:    ":" + cfg.ScrapePort,
			Handler: mux,
		}
		go t.serveScrapePage()
		slog.Info("Metrics scrape page starting", "port", cfg.ScrapePort)

	case ExporterGRPC, "":
		exporter, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create grpc exporter: %w", err)
		}
		t.provider = metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(exporter)))
		slog.Info("Metrics pushing over OTLP gRPC")

	default:
		return nil, fmt.Errorf("unknown metrics exporter %q", cfg.Exporter)
	}

	otel.SetMeterProvider(t.provider)
	return t, nil
}

func (t *Telemetry) serveScrapePage() {
	if err := t.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics scrape server exited", "error", err)
	}
}

// Close flushes pending readings and stops the scrape server if one is
// running.
func (t *Telemetry) Close(ctx context.Context) {
	if t.provider != nil {
		if err := t.provider.ForceFlush(ctx); err != nil {
			slog.Warn("Metrics flush failed", "error", err)
		}
	}
	if t.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := t.server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Metrics scrape server shutdown failed", "error", err)
		}
		slog.Info("Metrics scrape server stopped")
	}
}
