package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML document named by SNAPTRADE_CONFIG_FILE. Only
// the keys present override the environment.
//
//	snaptrade:
//	  base_url: https://api.snaptrade.com/api/v1
//	  timeout: 10s
//	  rate_limit: 2
//	  rate_burst: 4
//	log:
//	  level: debug
//	  format: json
//	language: zh
type File struct {
	SnapTrade struct {
		BaseURL   string   `yaml:"base_url"`
		Timeout   string   `yaml:"timeout"`
		RateLimit *float64 `yaml:"rate_limit"`
		RateBurst *int     `yaml:"rate_burst"`
	} `yaml:"snaptrade"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Language string `yaml:"language"`

	timeout time.Duration
}

// ReadFile parses a YAML settings file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.SnapTrade.Timeout != "" {
		d, err := time.ParseDuration(file.SnapTrade.Timeout)
		if err != nil {
			return nil, fmt.Errorf("snaptrade.timeout: %w", err)
		}
		file.timeout = d
	}
	return &file, nil
}

func (f *File) apply(cfg *Config) {
	if f.SnapTrade.BaseURL != "" {
		cfg.BaseURL = f.SnapTrade.BaseURL
	}
	if f.timeout != 0 {
		cfg.Timeout = f.timeout
	}
	if f.SnapTrade.RateLimit != nil {
		cfg.RateLimit = *f.SnapTrade.RateLimit
	}
	if f.SnapTrade.RateBurst != nil {
		cfg.RateBurst = *f.SnapTrade.RateBurst
	}
	if f.Log.Level != "" {
		cfg.LogLevel = f.Log.Level
	}
	if f.Log.Format != "" {
		cfg.LogFormat = f.Log.Format
	}
	if f.Language != "" {
		cfg.Language = f.Language
	}
}
