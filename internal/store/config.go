package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// parseBoolEnv reads an environment variable and parses it as a boolean.
// Returns the parsed value and a boolean indicating if the variable was present.
// Supports common boolean representations: true/false, 1/0, yes/no, on/off, t/f, y/n (case-insensitive).
func parseBoolEnv(key string) (bool, bool) {
	value := os.Getenv(key)
	if value == "" {
		return false, false
	}

	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed, true
	}

	switch value {
	case "yes", "YES", "Yes", "y", "Y", "on", "ON", "On":
		return true, true
	case "no", "NO", "No", "n", "N", "off", "OFF", "Off":
		return false, true
	default:
		return false, false
	}
}

// Config holds all persistence configuration options
type Config struct {
	// Path is the data document location. Relative paths resolve against
	// the working directory.
	Path string `json:"path" yaml:"path"`

	// PrettyPrint indents the saved document for hand inspection.
	PrettyPrint bool `json:"prettyPrint" yaml:"prettyPrint"`

	// Environment (development, production, test)
	Environment string `json:"environment" yaml:"environment"`
	// LogLevel for persistence operations
	LogLevel string `json:"logLevel" yaml:"logLevel"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Path:        "pomodoro-data.json",
		PrettyPrint: false,
		Environment: "production",
		LogLevel:    "info",
	}
}

// DevelopmentConfig returns a configuration optimized for development
func DevelopmentConfig() *Config {
	config := DefaultConfig()
	config.Path = "pomodoro-data_dev.json"
	config.PrettyPrint = true
	config.Environment = "development"
	config.LogLevel = "debug"
	return config
}

// TestConfig returns a configuration optimized for testing
func TestConfig() *Config {
	config := DefaultConfig()
	config.Path = filepath.Join(os.TempDir(), "pomodoro-data_test.json")
	config.Environment = "test"
	config.LogLevel = "error"
	return config
}

// LoadFromFile overlays settings from a YAML config file. A missing file is
// not an error, the defaults stand.
func (c *Config) LoadFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if path := os.Getenv("TOMATOCLOCK_DATA_PATH"); path != "" {
		c.Path = path
	}

	if pretty, present := parseBoolEnv("TOMATOCLOCK_PRETTY_PRINT"); present {
		c.PrettyPrint = pretty
	}

	if environment := os.Getenv("TOMATOCLOCK_ENVIRONMENT"); environment != "" {
		c.Environment = environment
	}

	if logLevel := os.Getenv("TOMATOCLOCK_LOG_LEVEL"); logLevel != "" {
		c.LogLevel = logLevel
	}

	return nil
}

// Validate validates the configuration parameters
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("data path cannot be empty")
	}

	dir := filepath.Dir(c.Path)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory %s: %w", dir, err)
			}
		}
	}

	validEnvironments := map[string]bool{
		"development": true,
		"test":        true,
		"production":  true,
	}
	if !validEnvironments[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid logLevel: %s", c.LogLevel)
	}

	return nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsTest returns true if the environment is set to test
func (c *Config) IsTest() bool {
	return c.Environment == "test"
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ConfigForEnvironment returns a configuration optimized for the given environment
func ConfigForEnvironment(env string) *Config {
	switch env {
	case "development":
		return DevelopmentConfig()
	case "test":
		return TestConfig()
	default:
		return DefaultConfig()
	}
}
