package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"casper-stock-watcher/internal/cache"
	"casper-stock-watcher/internal/config"
	"casper-stock-watcher/internal/events"
	"casper-stock-watcher/internal/handlers"
	"casper-stock-watcher/internal/models"
	"casper-stock-watcher/internal/report"
	"casper-stock-watcher/internal/scheduler"
	"casper-stock-watcher/internal/telemetry"
)

var (
	watchVariantID string
	watchInterval  string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll continuously and announce stock changes",
	Long: `watch polls the full delivery-region hierarchy at a fixed interval
and announces stock that appeared or disappeared between polls. With
STATUS_PORT set it also serves a small status API with the latest
snapshot and the change history.`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchVariantID, "variant", "AX05", "car code to watch")
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "poll interval override (e.g. 90s)")
}

func runWatch(cmd *cobra.Command, _ []string) {
	variant, err := resolveVariant(watchVariantID)
	if err != nil {
		slog.Error("Variant lookup failed", "error", err)
		os.Exit(1)
	}

	cat := loadCatalog()
	if !cat.IsAvailable() {
		slog.Error("No region data available; run fetch-regions first")
		os.Exit(1)
	}

	intervalSetting := cfg.PollInterval
	if watchInterval != "" {
		intervalSetting = watchInterval
	}
	interval := config.DurationOr("POLL_INTERVAL", intervalSetting, time.Minute)

	ctx := context.Background()
	tel, err := telemetry.Init(ctx, telemetry.Config{
		Exporter:   cfg.MetricsExporter,
		ScrapePort: cfg.MetricsPort,
	})
	if err != nil {
		slog.Error("Telemetry initialization failed", "error", err)
		os.Exit(1)
	}
	defer tel.Close(ctx)

	pollTelemetry := telemetry.NewPollTelemetry()
	if err := pollTelemetry.InitializeTelemetry(ctx); err != nil {
		slog.Error("Telemetry initialization failed", "error", err)
		os.Exit(1)
	}

	changeLog, err := events.NewChangeLog(events.ChangeLogConfig{
		FilePath:  cfg.ChangeLogPath,
		MaxEvents: config.IntOr("MAX_CHANGE_EVENTS", cfg.MaxChangeEvents, 10000),
	})
	if err != nil {
		slog.Error("Change log initialization failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := changeLog.Close(); err != nil {
			slog.Error("Change log close failed", "error", err)
		}
	}()

	seenTTL := config.DurationOr("SEEN_UNIT_TTL", cfg.SeenUnitTTL, 24*time.Hour)
	seen := cache.NewSeenCache(seenTTL, time.Hour)
	defer seen.Stop()

	engine := newEngine(newShowroomClient(), newBuilder())
	sched := scheduler.New(engine, cat)
	reporter := report.NewReporter(os.Stdout)

	callbacks := scheduler.Callbacks{
		OnSnapshot: func(snapshot *models.Snapshot) {
			pollTelemetry.RegisterPollCompleted(ctx, snapshot, time.Since(snapshot.TakenAt))
			reporter.PrintSnapshot(snapshot)
		},
		OnChange: func(records []models.ChangeRecord) {
			changeLog.Publish(records)
			pollTelemetry.RegisterChanges(ctx, records)
			reporter.AnnounceChanges(records, seen)
		},
	}

	if err := sched.Start(variant, interval, callbacks); err != nil {
		slog.Error("Scheduler start failed", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	var statusServer *http.Server
	if cfg.StatusPort != "" {
		statusServer = &http.Server{
			Addr:    ":" + cfg.StatusPort,
			Handler: handlers.NewRouter(sched, changeLog, slog.Default()),
		}
		go func() {
			slog.Info("Status API listening", "port", cfg.StatusPort)
			if err := statusServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Status API server exited", "error", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("Shutdown signal received", "signal", sig.String())

	if statusServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := statusServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("Status API shutdown failed", "error", err)
		}
	}
}
