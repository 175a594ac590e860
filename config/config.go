// Package config loads dagcheck service settings using koanf.
// Priority: environment variables > config file (YAML) > defaults.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the settings consumed by the HTTP host.
type Config struct {
	// AllowedOrigin is the single origin permitted for cross-origin requests.
	AllowedOrigin string `koanf:"allowed_origin"`
	// Addr is the listen address, e.g. ":8000".
	Addr string `koanf:"addr"`
	// DatabaseURL enables the classification audit log when set.
	DatabaseURL string `koanf:"database_url"`
	LogLevel    string `koanf:"log_level"`
	// RecordLimit caps how many records GET /pipelines/records returns.
	RecordLimit int `koanf:"record_limit"`
}

// envKeys maps recognised environment variables to config keys.
// ALLOWED_ORIGIN and DATABASE_URL are kept unprefixed for compatibility with
// existing deployments.
var envKeys = map[string]string{
	"ALLOWED_ORIGIN":        "allowed_origin",
	"DATABASE_URL":          "database_url",
	"DAGCHECK_ADDR":         "addr",
	"DAGCHECK_LOG_LEVEL":    "log_level",
	"DAGCHECK_RECORD_LIMIT": "record_limit",
}

// Defaults returns the default configuration values keyed by koanf path.
func Defaults() map[string]any {
	return map[string]any{
		"allowed_origin": "http://localhost:3000",
		"addr":           ":8000",
		"database_url":   "",
		"log_level":      "info",
		"record_limit":   50,
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path (ignored when empty) and the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envTransform maps an environment variable name to its config key.
// Unrecognised variables map to "" and are skipped by koanf.
func envTransform(s string) string {
	return envKeys[s]
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AllowedOrigin) == "" {
		return fmt.Errorf("config: allowed_origin must not be empty")
	}
	if !validOrigin(c.AllowedOrigin) {
		return fmt.Errorf("config: allowed_origin %q must be \"*\" or scheme://host[:port]", c.AllowedOrigin)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.RecordLimit <= 0 {
		return fmt.Errorf("config: record_limit must be positive, got %d", c.RecordLimit)
	}
	return nil
}

// validOrigin accepts "*" or an origin with both a scheme and a host, which
// is what the CORS middleware requires.
func validOrigin(origin string) bool {
	if origin == "*" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Level returns the parsed log level. Validate has already rejected bad values.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
