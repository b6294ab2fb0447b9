package startup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:test-token")
	t.Setenv("TEMP_DIR", filepath.Join(t.TempDir(), "work"))
	for _, key := range []string{
		"MAX_FILE_SIZE", "MAX_WORKERS", "PROCESSING_TIMEOUT", "FFMPEG_TIMEOUT",
		"DOCUMENT_THRESHOLD", "PROGRESS_STEP", "ADMIN_PORT", "METRICS_ENABLED",
		"REDIS_DSN", "FFMPEG_WORKERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.MaxFileSize != 2<<30 {
		t.Errorf("MaxFileSize = %d, want 2GiB", cfg.MaxFileSize)
	}
	if cfg.ProcessingTimeout != 300*time.Second {
		t.Errorf("ProcessingTimeout = %s, want 300s", cfg.ProcessingTimeout)
	}
	if cfg.FFmpegTimeout != 600*time.Second {
		t.Errorf("FFmpegTimeout = %s, want 600s", cfg.FFmpegTimeout)
	}
	if cfg.DocumentThreshold != 50<<20 {
		t.Errorf("DocumentThreshold = %d, want 50MiB", cfg.DocumentThreshold)
	}
	if cfg.ProgressStep != 25 {
		t.Errorf("ProgressStep = %d, want 25", cfg.ProgressStep)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", cfg.Workers)
	}

	if info, err := os.Stat(cfg.TempDir); err != nil || !info.IsDir() {
		t.Errorf("temp directory not created: %v", err)
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BOT_TOKEN", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig succeeded without BOT_TOKEN")
	}
}

func TestLoadConfigPlainSecondsDuration(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PROCESSING_TIMEOUT", "120")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ProcessingTimeout != 120*time.Second {
		t.Errorf("ProcessingTimeout = %s, want 120s", cfg.ProcessingTimeout)
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PROCESSING_TIMEOUT", "soon")
	t.Setenv("MAX_FILE_SIZE", "huge")
	t.Setenv("PROGRESS_STEP", "0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ProcessingTimeout != 300*time.Second {
		t.Errorf("ProcessingTimeout = %s, want default 300s", cfg.ProcessingTimeout)
	}
	if cfg.MaxFileSize != 2<<30 {
		t.Errorf("MaxFileSize = %d, want default", cfg.MaxFileSize)
	}
	if cfg.ProgressStep != 25 {
		t.Errorf("ProgressStep = %d, want default 25", cfg.ProgressStep)
	}
}
