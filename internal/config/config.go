package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DataDir        string
	DBPath         string
	ExportDir      string
	Timezone       string
	ExportHour     int
	ScoreHigh      int
	ScoreLow       int
	MinEpisodeDays int
}

func Load() (*Config, error) {
	// Optional .env; absence is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("JOURNAL_PORT", "8080"),
		DataDir:        getEnv("JOURNAL_DATA_DIR", ""),
		DBPath:         getEnv("JOURNAL_DB_PATH", ""),
		ExportDir:      getEnv("JOURNAL_EXPORT_DIR", ""),
		Timezone:       getEnv("JOURNAL_TIMEZONE", "Europe/London"),
		ExportHour:     getEnvInt("JOURNAL_EXPORT_HOUR", 6),
		ScoreHigh:      getEnvInt("JOURNAL_SCORE_HIGH", 3),
		ScoreLow:       getEnvInt("JOURNAL_SCORE_LOW", -3),
		MinEpisodeDays: getEnvInt("JOURNAL_MIN_EPISODE_DAYS", 2),
	}

	if cfg.ExportDir == "" && cfg.DataDir != "" {
		cfg.ExportDir = filepath.Join(cfg.DataDir, "exports")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("JOURNAL_DATA_DIR is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("JOURNAL_DB_PATH is required")
	}
	if c.ExportHour < 0 || c.ExportHour > 23 {
		return fmt.Errorf("JOURNAL_EXPORT_HOUR must be 0-23, got %d", c.ExportHour)
	}
	if c.ScoreLow >= c.ScoreHigh {
		return fmt.Errorf("JOURNAL_SCORE_LOW (%d) must be below JOURNAL_SCORE_HIGH (%d)", c.ScoreLow, c.ScoreHigh)
	}
	if c.MinEpisodeDays < 1 {
		return fmt.Errorf("JOURNAL_MIN_EPISODE_DAYS must be at least 1, got %d", c.MinEpisodeDays)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
