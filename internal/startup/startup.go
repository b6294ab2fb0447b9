// Package startup loads configuration from the environment once at boot.
package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"banner-bot/internal/logging"
	"banner-bot/internal/workers"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	GoVersion = runtime.Version()
)

// Config holds all application configuration, read once at startup and not
// mutable at runtime.
type Config struct {
	BotToken string

	TempDir     string
	MaxFileSize int64

	Workers           int
	ProcessingTimeout time.Duration // outer per-job ceiling
	FFmpegTimeout     time.Duration // ffmpeg's own ceiling

	DocumentThreshold int64 // deliveries above this go as a file attachment
	ProgressStep      int   // edit the progress message only at these steps

	AdminPort      string
	MetricsEnabled bool

	RedisDSN     string
	RedisChannel string
}

// LoadConfig loads and validates configuration from environment variables.
func LoadConfig() (*Config, error) {
	printBanner()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	cfg := &Config{
		BotToken:          os.Getenv("BOT_TOKEN"),
		TempDir:           getEnv("TEMP_DIR", "temp"),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", 2<<30),
		Workers:           workers.ForCPU(getEnvInt("MAX_WORKERS", 4)),
		ProcessingTimeout: getEnvDuration("PROCESSING_TIMEOUT", 300*time.Second),
		FFmpegTimeout:     getEnvDuration("FFMPEG_TIMEOUT", 600*time.Second),
		DocumentThreshold: getEnvInt64("DOCUMENT_THRESHOLD", 50<<20),
		ProgressStep:      getEnvInt("PROGRESS_STEP", 25),
		AdminPort:         getEnv("ADMIN_PORT", "8080"),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		RedisDSN:          os.Getenv("REDIS_DSN"),
		RedisChannel:      getEnv("REDIS_CHANNEL", "banner-bot:jobs"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.ProgressStep < 1 || cfg.ProgressStep > 100 {
		logging.Warn("  Invalid PROGRESS_STEP, using default: 25")
		cfg.ProgressStep = 25
	}

	logging.Info("  TEMP_DIR:            %s", cfg.TempDir)
	logging.Info("  MAX_FILE_SIZE:       %d", cfg.MaxFileSize)
	logging.Info("  WORKERS:             %d", cfg.Workers)
	logging.Info("  PROCESSING_TIMEOUT:  %s", cfg.ProcessingTimeout)
	logging.Info("  FFMPEG_TIMEOUT:      %s", cfg.FFmpegTimeout)
	logging.Info("  DOCUMENT_THRESHOLD:  %d", cfg.DocumentThreshold)
	logging.Info("  PROGRESS_STEP:       %d", cfg.ProgressStep)
	logging.Info("  ADMIN_PORT:          %s", cfg.AdminPort)
	logging.Info("  METRICS_ENABLED:     %v", cfg.MetricsEnabled)
	logging.Info("  REDIS_DSN:           %s", redacted(cfg.RedisDSN))

	tempDir, err := filepath.Abs(cfg.TempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve temp directory path: %w", err)
	}
	cfg.TempDir = tempDir

	if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	logging.Info("  Temp directory (absolute): %s", cfg.TempDir)

	return cfg, nil
}

func printBanner() {
	logging.Info("banner-bot %s (%s, %s, %s/%s)", Version, Commit, GoVersion, runtime.GOOS, runtime.GOARCH)
}

func redacted(value string) string {
	if value == "" {
		return "(unset)"
	}
	return "(set)"
}

// getEnv returns an environment variable or a default.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvBool parses a boolean environment variable.
func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("  Invalid %s=%q, using default: %v", key, value, fallback)
		return fallback
	}
	return parsed
}

// getEnvInt parses an integer environment variable.
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("  Invalid %s=%q, using default: %d", key, value, fallback)
		return fallback
	}
	return parsed
}

// getEnvInt64 parses a 64-bit integer environment variable.
func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logging.Warn("  Invalid %s=%q, using default: %d", key, value, fallback)
		return fallback
	}
	return parsed
}

// getEnvDuration parses a duration environment variable. Plain integers are
// read as seconds for compatibility with older deployments.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logging.Warn("  Invalid %s=%q, using default: %s", key, value, fallback)
		return fallback
	}
	return parsed
}
