// Package config holds the environment-driven configuration for the
// claims analysis host.
package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8080
	DefaultAPIPrefix   = "/api/v1"
	DefaultLogLevel    = "info"
	DefaultModel       = "gpt-4o"
	DefaultMaxTurns    = 10
	DefaultFlowTimeout = 2 * time.Minute
)

type Config struct {
	// Server
	Host      string
	Port      int
	APIPrefix string
	LogLevel  string

	// Analysis flow
	Model       string
	MaxTurns    int
	FlowTimeout time.Duration
	FlowFile    string

	// Run the bundled sample claim once at startup
	AnalyzeSample bool
}

// Load builds the configuration from defaults plus CLAIMS_* environment
// overrides.
func Load() *Config {
	cfg := &Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		APIPrefix:   DefaultAPIPrefix,
		LogLevel:    DefaultLogLevel,
		Model:       DefaultModel,
		MaxTurns:    DefaultMaxTurns,
		FlowTimeout: DefaultFlowTimeout,
	}

	if v := getEnv("CLAIMS_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("CLAIMS_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("CLAIMS_API_PREFIX", ""); v != "" {
		cfg.APIPrefix = v
	}
	if v := getEnv("CLAIMS_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("CLAIMS_MODEL", ""); v != "" {
		cfg.Model = v
	}
	if v := getEnv("CLAIMS_MAX_TURNS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTurns = n
		}
	}
	if v := getEnv("CLAIMS_FLOW_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FlowTimeout = d
		}
	}
	if v := getEnv("CLAIMS_FLOW_FILE", ""); v != "" {
		cfg.FlowFile = v
	}
	if v := getEnv("CLAIMS_ANALYZE_SAMPLE", ""); v != "" {
		cfg.AnalyzeSample = v == "true" || v == "1"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
