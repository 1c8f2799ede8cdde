package logger

// LoggerConfig defines logging configuration
type LoggerConfig struct {
	Level            string `yaml:"level" env:"CLIMADA_LOG_LEVEL"`
	Format           string `yaml:"format" env:"CLIMADA_LOG_FORMAT"` // json or console
	EnableSampling   bool   `yaml:"enable_sampling" env:"CLIMADA_LOG_SAMPLING"`
	SampleInitial    int    `yaml:"sample_initial" env:"CLIMADA_LOG_SAMPLE_INITIAL"`
	SampleThereafter int    `yaml:"sample_thereafter" env:"CLIMADA_LOG_SAMPLE_THEREAFTER"`
	Development      bool   `yaml:"development" env:"CLIMADA_LOG_DEVELOPMENT"`
}

// DefaultConfig is used for batch runs: json output, repeated advisories
// sampled.
func DefaultConfig() LoggerConfig {
	return LoggerConfig{
		Level:            "info",
		Format:           "json",
		EnableSampling:   true,
		SampleInitial:    100,
		SampleThereafter: 1000,
		Development:      false,
	}
}

// DevelopmentConfig logs everything to the console.
func DevelopmentConfig() LoggerConfig {
	return LoggerConfig{
		Level:            "debug",
		Format:           "console",
		EnableSampling:   false,
		SampleInitial:    0,
		SampleThereafter: 0,
		Development:      true,
	}
}
