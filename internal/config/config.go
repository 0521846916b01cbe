// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/hirehub/internal/catalog"
)

// Catalog sources.
const (
	SourceStatic   = "static"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// LatencyMS is the simulated catalog latency in milliseconds.
type LatencyMS struct {
	List      int `json:"list"`
	Get       int `json:"get"`
	Locations int `json:"locations"`
}

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Catalog
	CatalogSource string     `json:"catalog_source,omitempty"` // static, file, sqlite or postgres
	CatalogPath   string     `json:"catalog_path,omitempty"`   // JSON catalog file or SQLite database
	DatabaseURL   string     `json:"database_url,omitempty"`   // PostgreSQL connection URL
	Latency       *LatencyMS `json:"latency_ms,omitempty"`     // Simulated latency of the static/file catalog

	// Application form
	SubmitDelayMS int `json:"submit_delay_ms,omitempty"` // Simulated submission time
	CloseDelayMS  int `json:"close_delay_ms,omitempty"`  // How long the success message stays
	ClearDelayMS  int `json:"clear_delay_ms,omitempty"`  // How long a closed form keeps its job

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn or error
	LogFormat string `json:"log_format,omitempty"` // text or json
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	latency := catalog.DefaultLatency()
	return Config{
		Port:          8080,
		CatalogSource: SourceStatic,
		Latency: &LatencyMS{
			List:      int(latency.List / time.Millisecond),
			Get:       int(latency.Get / time.Millisecond),
			Locations: int(latency.Locations / time.Millisecond),
		},
		SubmitDelayMS: 1500,
		CloseDelayMS:  2000,
		ClearDelayMS:  300,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	switch c.CatalogSource {
	case "", SourceStatic:
	case SourceFile, SourceSQLite:
		if c.CatalogPath == "" {
			return fmt.Errorf("config error: 'catalog_path' is required for catalog source %q", c.CatalogSource)
		}
		if c.CatalogSource == SourceFile {
			if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
				return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
			}
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for catalog source %q", c.CatalogSource)
		}
	default:
		return fmt.Errorf("config error: unknown catalog source %q", c.CatalogSource)
	}

	if c.Latency != nil && (c.Latency.List < 0 || c.Latency.Get < 0 || c.Latency.Locations < 0) {
		return fmt.Errorf("config error: 'latency_ms' values must be non-negative")
	}
	if c.SubmitDelayMS < 0 || c.CloseDelayMS < 0 || c.ClearDelayMS < 0 {
		return fmt.Errorf("config error: delays must be non-negative")
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: unknown log format %q", c.LogFormat)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Layering calls gives flags > environment > file > built-in precedence.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CatalogSource == "" {
		result.CatalogSource = defaults.CatalogSource
	}
	if result.CatalogPath == "" {
		result.CatalogPath = defaults.CatalogPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SubmitDelayMS == 0 {
		result.SubmitDelayMS = defaults.SubmitDelayMS
	}
	if result.CloseDelayMS == 0 {
		result.CloseDelayMS = defaults.CloseDelayMS
	}
	if result.ClearDelayMS == 0 {
		result.ClearDelayMS = defaults.ClearDelayMS
	}

	// Latency is set as a whole so an explicit zero latency survives the merge
	if result.Latency == nil && defaults.Latency != nil {
		latency := *defaults.Latency
		result.Latency = &latency
	}

	return result
}

// CatalogLatency converts the configured latency to a catalog.Latency.
func (c *Config) CatalogLatency() catalog.Latency {
	if c.Latency == nil {
		return catalog.DefaultLatency()
	}
	return catalog.Latency{
		List:      time.Duration(c.Latency.List) * time.Millisecond,
		Get:       time.Duration(c.Latency.Get) * time.Millisecond,
		Locations: time.Duration(c.Latency.Locations) * time.Millisecond,
	}
}

// SubmitDelay is the simulated submission time.
func (c *Config) SubmitDelay() time.Duration {
	return time.Duration(c.SubmitDelayMS) * time.Millisecond
}

// CloseDelay is how long the success message is shown before auto-close.
func (c *Config) CloseDelay() time.Duration {
	return time.Duration(c.CloseDelayMS) * time.Millisecond
}

// ClearDelay is how long a closed form retains its target job.
func (c *Config) ClearDelay() time.Duration {
	return time.Duration(c.ClearDelayMS) * time.Millisecond
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
