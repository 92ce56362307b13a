// pkg/config/settings.go
package config

import (
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings holds runtime configuration loaded from environment
// variables. Pipeline semantics live in CleaningRules; Settings only
// covers where things are read from and written to, and how we log.
type Settings struct {
	// Paths
	RulesPath string
	DataDir   string
	OutDir    string
	ReportDir string

	// Optional warehouse sink; empty DSN disables the Postgres load.
	PostgresDSN       string
	PostgresBatchSize int

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadSettings loads runtime settings from environment variables with
// sensible defaults.
func LoadSettings() *Settings {
	return &Settings{
		RulesPath:         getEnv("CLEANING_RULES_PATH", "config/cleaning_rules.yml"),
		DataDir:           getEnv("RAW_DATA_DIR", "data/raw"),
		OutDir:            getEnv("CLEAN_DATA_DIR", "data/interim"),
		ReportDir:         getEnv("REPORT_DIR", "logs/etl"),
		PostgresDSN:       getEnv("POSTGRES_DSN", ""),
		PostgresBatchSize: getEnvAsInt("POSTGRES_BATCH_SIZE", 500),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}
}

// BuildLogger constructs a zap logger according to the settings.
func (s *Settings) BuildLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(s.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if s.LogFormat == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
