package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the watcher. Values are kept as the
// raw strings from the environment; consumers parse them with the helpers
// below so a bad value degrades to a logged default instead of a crash.
type Config struct {
	BaseURL           string
	ExhibitionNo      string
	LogLevel          string
	PollInterval      string
	MaxConcurrency    string
	MinRequestSpacing string
	RequestTimeout    string
	PageSize          string
	MaxPagesPerLeaf   string
	RegionDataPath    string
	VariantsPath      string
	ChangeLogPath     string
	MaxChangeEvents   string
	SeenUnitTTL       string
	StatusPort        string
	MetricsExporter   string
	MetricsPort       string
}

// LoadConfig loads configuration from a .env file and environment
// variables, then configures global logging.
func LoadConfig() *Config {
	// Does not override variables already present in the environment.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using system environment only", "error", err)
	}

	config := &Config{
		BaseURL:           getEnvWithDefault("CASPER_BASE_URL", "https://casper.hyundai.com"),
		ExhibitionNo:      getEnvWithDefault("CASPER_EXHIBITION_NO", "R0003"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		PollInterval:      getEnvWithDefault("POLL_INTERVAL", "60s"),
		MaxConcurrency:    getEnvWithDefault("MAX_CONCURRENCY", "4"),
		MinRequestSpacing: getEnvWithDefault("MIN_REQUEST_SPACING", "200ms"),
		RequestTimeout:    getEnvWithDefault("REQUEST_TIMEOUT", "10s"),
		PageSize:          getEnvWithDefault("PAGE_SIZE", "18"),
		MaxPagesPerLeaf:   getEnvWithDefault("MAX_PAGES_PER_LEAF", "5"),
		RegionDataPath:    getEnvWithDefault("REGION_DATA_PATH", "region_data.json"),
		VariantsPath:      getEnvWithDefault("VARIANTS_PATH", ""),
		ChangeLogPath:     getEnvWithDefault("CHANGE_LOG_PATH", "data/changes.json"),
		MaxChangeEvents:   getEnvWithDefault("MAX_CHANGE_EVENTS", "10000"),
		SeenUnitTTL:       getEnvWithDefault("SEEN_UNIT_TTL", "24h"),
		StatusPort:        getEnvWithDefault("STATUS_PORT", ""),
		MetricsExporter:   getEnvWithDefault("METRICS_EXPORTER", "scraper"),
		MetricsPort:       getEnvWithDefault("METRICS_PORT", "9080"),
	}

	slog.Info("Configuration loaded",
		"baseUrl", config.BaseURL,
		"exhibitionNo", config.ExhibitionNo,
		"logLevel", config.LogLevel,
		"pollInterval", config.PollInterval,
		"maxConcurrency", config.MaxConcurrency,
		"minRequestSpacing", config.MinRequestSpacing,
		"requestTimeout", config.RequestTimeout,
		"pageSize", config.PageSize,
		"maxPagesPerLeaf", config.MaxPagesPerLeaf,
		"regionDataPath", config.RegionDataPath,
		"variantsPath", config.VariantsPath,
		"statusPort", config.StatusPort,
		"metricsExporter", config.MetricsExporter,
		"metricsPort", config.MetricsPort)

	return config
}

// getEnvWithDefault gets an environment variable with a default fallback
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// DurationOr parses a duration setting, logging and falling back to the
// default when the value is invalid.
func DurationOr(name, value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("Invalid duration setting, using default",
			"setting", name, "provided", value, "default", fallback)
		return fallback
	}
	return d
}

// IntOr parses an integer setting, logging and falling back to the default
// when the value is invalid or not positive.
func IntOr(name, value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		slog.Warn("Invalid integer setting, using default",
			"setting", name, "provided", value, "default", fallback)
		return fallback
	}
	return n
}
