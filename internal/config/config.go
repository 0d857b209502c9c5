// Package config loads the service configuration from a YAML file
// selected by environment name, with ${VAR} expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the vitrine API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds MongoDB connection settings.
type DatabaseConfig struct {
	URI              string `yaml:"uri"`
	Database         string `yaml:"database"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// CacheConfig holds the Redis facet-option cache settings. The cache is
// optional; with no address the aggregator is queried directly.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLSec   int      `yaml:"ttl_sec"`
}

// AuthConfig holds API keys guarding the admin routes.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Enabled reports whether a cache backend is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

// Load reads configuration for an environment name (local, dev, prod).
func Load(env string) (Config, error) {
	path := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetEnv returns the environment from ENV, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 15
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.Database == "" {
		c.Database.Database = "vitrine"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 300
	}

	// Unset ${VAR} entries expand to empty strings; drop them so an
	// absent cache address means "cache disabled".
	addrs := c.Cache.Addrs[:0]
	for _, a := range c.Cache.Addrs {
		if a != "" {
			addrs = append(addrs, a)
		}
	}
	c.Cache.Addrs = addrs

	keys := c.Auth.APIKeys[:0]
	for _, k := range c.Auth.APIKeys {
		if k != "" {
			keys = append(keys, k)
		}
	}
	c.Auth.APIKeys = keys
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.URI == "" {
		return fmt.Errorf("database.uri is required")
	}
	return nil
}

// findConfigPath locates the config file: CONFIG_DIR first, then ./config.
func findConfigPath(env string) string {
	filename := env + ".yaml"
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, filename)
	}
	return filepath.Join("config", filename)
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
