package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config holds the tool-level configuration loaded from an optional YAML file.
// It covers ambient concerns only; the pyproject.toml document the tool edits
// is not described here.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
}

// Logger holds logging configuration.
type Logger struct {
	Level string `yaml:"level"`
}

// HTTPClient holds tuning for the HTTP client used to reach the
// implementation-status source.
type HTTPClient struct {
	Debug            bool          `yaml:"debug"`
	RetryCount       int           `yaml:"retry_count"`
	RetryWaitTime    time.Duration `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration `yaml:"retry_max_wait_time"`
	Timeout          time.Duration `yaml:"timeout"`
	Proxy            Proxy         `yaml:"proxy"`
}

// Proxy holds optional HTTP proxy settings.
type Proxy struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// LoadConfig reads the YAML configuration from configPath. A missing file is
// not an error: the tool runs fine on defaults, so an empty Config is
// returned instead.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	if configPath == "" {
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file %q: %w", configPath, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", configPath, err)
	}

	return cfg, nil
}

// ValidateConfig checks that the loaded configuration has sane values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration object is nil")
	}
	if err := validateDuration(cfg.HTTPClient.Timeout, "timeout", time.Hour); err != nil {
		return fmt.Errorf("http_client directive is invalid: %w", err)
	}
	if err := validateDuration(cfg.HTTPClient.RetryWaitTime, "retry_wait_time", time.Minute); err != nil {
		return fmt.Errorf("http_client directive is invalid: %w", err)
	}
	if cfg.HTTPClient.RetryCount < 0 {
		return fmt.Errorf("http_client directive is invalid: retry_count must not be negative")
	}
	return nil
}

func validateDuration(value time.Duration, name string, max time.Duration) error {
	if value < 0 {
		return fmt.Errorf("%s must not be negative", name)
	}
	if value > max {
		return fmt.Errorf("%s must not exceed %s", name, max)
	}
	return nil
}
