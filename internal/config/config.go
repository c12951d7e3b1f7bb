package config

import (
	"os"
	"strconv"
	"strings"

	"rateorder/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Analysis  AnalysisConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds dataset file settings
type DataConfig struct {
	File                string
	Sheet               string
	TimeColumn          string
	ConcentrationColumn string
	MaxPoints           int
}

// AnalysisConfig holds order selection settings
type AnalysisConfig struct {
	ParallelFit bool
}

// ProfilingConfig controls the pprof side server
type ProfilingConfig struct {
	Enabled bool
	Port    string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Data:      *loadDataConfig(),
		Analysis:  *loadAnalysisConfig(),
		Profiling: *loadProfilingConfig(),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:                getEnvOrDefault("DATA_FILE", ""),
		Sheet:               getEnvOrDefault("SHEET_NAME", "Sheet1"),
		TimeColumn:          getEnvOrDefault("TIME_COLUMN", "time"),
		ConcentrationColumn: getEnvOrDefault("CONCENTRATION_COLUMN", "concentration"),
		MaxPoints:           getEnvIntOrDefault("MAX_POINTS", 10000),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		ParallelFit: getEnvBoolOrDefault("PARALLEL_FIT", false),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Enabled: getEnvBoolOrDefault("PROFILING_ENABLED", false),
		Port:    getEnvOrDefault("PROFILING_PORT", "6060"),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(strings.TrimPrefix(config.Server.Port, ":")); err != nil {
		return errors.ConfigInvalid("PORT must be numeric, got " + config.Server.Port)
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Data.TimeColumn == "" || config.Data.ConcentrationColumn == "" {
		return errors.ConfigInvalid("column names must not be empty")
	}
	if config.Data.TimeColumn == config.Data.ConcentrationColumn {
		return errors.ConfigInvalid("TIME_COLUMN and CONCENTRATION_COLUMN must differ")
	}
	if config.Profiling.Enabled && config.Profiling.Port == config.Server.Port {
		return errors.ConfigInvalid("PROFILING_PORT must differ from PORT")
	}
	if config.Data.MaxPoints < 2 {
		return errors.ConfigInvalid("MAX_POINTS must be at least 2")
	}
	return nil
}

// Address returns the listen address for the HTTP server
func (c *Config) Address() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
