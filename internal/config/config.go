package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/House-of-Events/mike/internal/platform/logging"
)

const (
	EnvLocal = "local"
	EnvDev   = "development"
	EnvProd  = "production"
)

// Config stores runtime configuration for one ingestion run. The pipeline
// itself never reads the environment; everything is resolved here and
// handed down.
type Config struct {
	AppEnv      string
	ServiceName string
	LogLevel    logging.Level

	DBURL string

	APISportsBaseURL    string
	APISportsKey        string
	APISportsSeason     string
	APISportsLeague     string
	APISportsTimeout    time.Duration
	APISportsMaxRetries int

	F1FeedURL string
	F1Season  int

	PLFeedURL string
	PLTag     string

	PageFetchDelay time.Duration
	DefaultSource  string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvLocal))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	apiTimeout, err := getEnvAsDuration("APISPORTS_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_TIMEOUT: %w", err)
	}
	apiMaxRetries, err := getEnvAsInt("APISPORTS_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_MAX_RETRIES: %w", err)
	}

	f1Season, err := getEnvAsInt("F1_SEASON", time.Now().Year())
	if err != nil {
		return Config{}, fmt.Errorf("parse F1_SEASON: %w", err)
	}

	pageFetchDelay, err := getEnvAsDuration("PAGE_FETCH_DELAY", 2*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse PAGE_FETCH_DELAY: %w", err)
	}

	return Config{
		AppEnv:              appEnv,
		ServiceName:         getEnv("SERVICE_NAME", "mike-ingest"),
		LogLevel:            logLevel,
		DBURL:               dbURL,
		APISportsBaseURL:    getEnv("APISPORTS_BASE_URL", "https://v3.football.api-sports.io"),
		APISportsKey:        strings.TrimSpace(getEnv("APISPORTS_KEY", "")),
		APISportsSeason:     getEnv("APISPORTS_SEASON", "2025"),
		APISportsLeague:     getEnv("APISPORTS_LEAGUE", "15"),
		APISportsTimeout:    apiTimeout,
		APISportsMaxRetries: apiMaxRetries,
		F1FeedURL:           strings.TrimSpace(getEnv("F1_FEED_URL", "")),
		F1Season:            f1Season,
		PLFeedURL:           strings.TrimSpace(getEnv("PL_FEED_URL", "")),
		PLTag:               getEnv("PL_TAG", "soccer"),
		PageFetchDelay:      pageFetchDelay,
		DefaultSource:       getEnv("DEFAULT_SOURCE", "soccer"),
	}, nil
}

func parseAppEnv(raw string) (string, error) {
	env := strings.ToLower(strings.TrimSpace(raw))
	switch env {
	case EnvLocal, EnvDev, EnvProd:
		return env, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q (want %s, %s or %s)", raw, EnvLocal, EnvDev, EnvProd)
	}
}

func parseLogLevel(raw string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logging.LevelDebug, nil
	case "", "info":
		return logging.LevelInfo, nil
	case "warn", "warning":
		return logging.LevelWarn, nil
	case "error":
		return logging.LevelError, nil
	default:
		return logging.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	return out, nil
}
