package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"snaptrade-core/pkg/snaptrade"
)

// Config holds environment-driven settings for the SnapTrade client.
// Credentials are deliberately not part of it.
type Config struct {
	// SnapTrade
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second
	RateBurst int

	// Logging
	LogLevel  string
	LogFormat string // "text" (default) or "json"

	// Localization
	Language string // "en" or "zh"

	// Optional YAML overrides
	ConfigFile string
}

// Load reads settings from env. Call LoadDotenv first to pick up a .env file.
func Load(env Environ) (*Config, error) {
	cfg := &Config{
		BaseURL:    getEnv(env, "SNAPTRADE_BASE_URL", snaptrade.DefaultBaseURL),
		Timeout:    getEnvDuration(env, "SNAPTRADE_TIMEOUT", 30*time.Second),
		RateLimit:  getEnvFloat(env, "SNAPTRADE_RATE_LIMIT", 5),
		RateBurst:  getEnvInt(env, "SNAPTRADE_RATE_BURST", 10),
		LogLevel:   strings.ToLower(getEnv(env, "LOG_LEVEL", "info")),
		LogFormat:  strings.ToLower(getEnv(env, "LOG_FORMAT", "text")),
		Language:   getEnv(env, "LANGUAGE", "en"),
		ConfigFile: env.Getenv("SNAPTRADE_CONFIG_FILE"),
	}

	if cfg.ConfigFile != "" {
		file, err := ReadFile(cfg.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfg.ConfigFile, err)
		}
		file.apply(cfg)
	}
	return cfg, nil
}

// ClientOptions translates the settings into client construction options.
func (c *Config) ClientOptions() []snaptrade.Option {
	return []snaptrade.Option{
		snaptrade.WithBaseURL(c.BaseURL),
		snaptrade.WithTimeout(c.Timeout),
		snaptrade.WithRateLimit(c.RateLimit, c.RateBurst),
	}
}

func getEnv(env Environ, key, defaultValue string) string {
	if value := env.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(env Environ, key string, def float64) float64 {
	if v := env.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvInt(env Environ, key string, def int) int {
	if v := env.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(env Environ, key string, def time.Duration) time.Duration {
	if v := env.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
