package logger

import (
	"os"
	"strconv"
	"strings"
)

// NewLoggerWithComponent creates a logger from cfg tagged with a component
// field.
func NewLoggerWithComponent(cfg LoggerConfig, component string) (Logger, error) {
	logger, err := NewZapLogger(cfg)
	if err != nil {
		return nil, err
	}
	return logger.With(Field{Key: "component", Value: component}), nil
}

// ConfigFromEnv overrides base with any CLIMADA_LOG_* variables that are set.
// CLIMADA_ENV=development switches to DevelopmentConfig before overrides.
func ConfigFromEnv(base LoggerConfig) LoggerConfig {
	cfg := base

	if strings.ToLower(os.Getenv("CLIMADA_ENV")) == "development" {
		cfg = DevelopmentConfig()
	}

	if level := os.Getenv("CLIMADA_LOG_LEVEL"); level != "" {
		cfg.Level = level
	}

	if format := os.Getenv("CLIMADA_LOG_FORMAT"); format != "" {
		cfg.Format = format
	}

	if sampling := os.Getenv("CLIMADA_LOG_SAMPLING"); sampling != "" {
		cfg.EnableSampling = strings.ToLower(sampling) == "true"
	}

	if initial := os.Getenv("CLIMADA_LOG_SAMPLE_INITIAL"); initial != "" {
		if val, err := strconv.Atoi(initial); err == nil {
			cfg.SampleInitial = val
		}
	}

	if thereafter := os.Getenv("CLIMADA_LOG_SAMPLE_THEREAFTER"); thereafter != "" {
		if val, err := strconv.Atoi(thereafter); err == nil {
			cfg.SampleThereafter = val
		}
	}

	if dev := os.Getenv("CLIMADA_LOG_DEVELOPMENT"); dev != "" {
		cfg.Development = strings.ToLower(dev) == "true"
	}

	return cfg
}
