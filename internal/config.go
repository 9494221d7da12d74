package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// RedirectDelay is how long the 401 handler waits before navigating to the
// login view. Fixed, not configurable.
const RedirectDelay = 1500 * time.Millisecond

type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Environment   string              `mapstructure:"environment"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	// Path to the sqlite file mirroring the session locally.
	Path string `mapstructure:"path"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a config purely from environment variables, used
// when no config file is present.
func LoadConfigFromEnv() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: getEnv("LEAVE_API_BASE_URL", "http://localhost:8000"),
			Timeout: getEnvAsDuration("LEAVE_API_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Path: getEnv("LEAVE_STORAGE_PATH", defaultStoragePath()),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LEAVE_LOG_LEVEL", "info"),
				Format: getEnv("LEAVE_LOG_FORMAT", "text"),
			},
		},
		Environment: getEnv("APP_ENV", "development"),
	}
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "leave-client.db"
	}
	return filepath.Join(dir, "leave-client", "leave-client.db")
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("api config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %s", u.Scheme)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	switch c.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", c.Format)
	}
	return nil
}
