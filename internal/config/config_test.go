package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv() {
	for _, key := range []string{
		"JOURNAL_PORT", "JOURNAL_DATA_DIR", "JOURNAL_DB_PATH",
		"JOURNAL_EXPORT_DIR", "JOURNAL_TIMEZONE", "JOURNAL_EXPORT_HOUR",
		"JOURNAL_SCORE_HIGH", "JOURNAL_SCORE_LOW", "JOURNAL_MIN_EPISODE_DAYS",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv()
	os.Setenv("JOURNAL_DATA_DIR", "/tmp/test-journal")
	os.Setenv("JOURNAL_DB_PATH", "/tmp/test.db")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Timezone != "Europe/London" {
		t.Errorf("expected default timezone, got %s", cfg.Timezone)
	}
	if cfg.ExportHour != 6 {
		t.Errorf("expected default export hour 6, got %d", cfg.ExportHour)
	}
	if cfg.ScoreHigh != 3 || cfg.ScoreLow != -3 {
		t.Errorf("expected default thresholds +3/-3, got %d/%d", cfg.ScoreHigh, cfg.ScoreLow)
	}
	if cfg.MinEpisodeDays != 2 {
		t.Errorf("expected default min episode days 2, got %d", cfg.MinEpisodeDays)
	}
	if cfg.ExportDir != filepath.Join("/tmp/test-journal", "exports") {
		t.Errorf("export dir should default under the data dir, got %s", cfg.ExportDir)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	clearEnv()

	if _, err := Load(); err == nil {
		t.Error("expected error when JOURNAL_DATA_DIR is missing")
	}

	os.Setenv("JOURNAL_DATA_DIR", "/tmp/test-journal")
	defer clearEnv()
	if _, err := Load(); err == nil {
		t.Error("expected error when JOURNAL_DB_PATH is missing")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "export hour out of range",
			env:  map[string]string{"JOURNAL_EXPORT_HOUR": "24"},
		},
		{
			name: "inverted score thresholds",
			env:  map[string]string{"JOURNAL_SCORE_HIGH": "-1", "JOURNAL_SCORE_LOW": "1"},
		},
		{
			name: "zero min episode days",
			env:  map[string]string{"JOURNAL_MIN_EPISODE_DAYS": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv()
			defer clearEnv()
			os.Setenv("JOURNAL_DATA_DIR", "/tmp/test-journal")
			os.Setenv("JOURNAL_DB_PATH", "/tmp/test.db")
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			if _, err := Load(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetEnvIntBadValue(t *testing.T) {
	clearEnv()
	defer clearEnv()
	os.Setenv("JOURNAL_EXPORT_HOUR", "noon")

	if got := getEnvInt("JOURNAL_EXPORT_HOUR", 6); got != 6 {
		t.Errorf("non-numeric env should fall back to default, got %d", got)
	}
}
