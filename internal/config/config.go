// Package config provides configuration loading and validation for the CLI
// and the analysis server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/career-insights/internal/analysis"
	"github.com/jonathan/career-insights/internal/catalog"
)

// LevelCost overrides the assumed cost of one education level.
type LevelCost struct {
	AnnualCost    float64 `json:"annual_cost"`
	DurationYears int     `json:"duration_years"`
}

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags.
type Config struct {
	// Selection
	Field     string `json:"field,omitempty"`     // Broad field of study
	Subfield  string `json:"subfield,omitempty"`  // Subfield within the broad field
	Education string `json:"education,omitempty"` // Education level
	Region    string `json:"region,omitempty"`    // Geography

	// Data source
	APIBaseURL      string `json:"api_base_url,omitempty"`      // WDS endpoint override
	CacheTTLMinutes int    `json:"cache_ttl_minutes,omitempty"` // Snapshot cache lifetime
	TimeoutSeconds  int    `json:"timeout_seconds,omitempty"`   // Per-request HTTP timeout

	// Server
	Host string `json:"host,omitempty"` // Bind address
	Port int    `json:"port,omitempty"` // Listen port

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information

	// Costs overrides the tuition and duration assumptions per education
	// level, keyed by canonical level name.
	Costs map[string]LevelCost `json:"costs,omitempty"`
}

// DefaultConfig returns the built-in defaults: a national bachelor's-degree
// view served on port 8080.
func DefaultConfig() Config {
	return Config{
		Education:       "Bachelor's degree",
		Region:          "Canada",
		CacheTTLMinutes: 60,
		TimeoutSeconds:  30,
		Host:            "localhost",
		Port:            8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that the configuration has valid values. Required fields
// are not checked here; flag validation after merging handles those.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CacheTTLMinutes < 0 {
		return fmt.Errorf("config error: 'cache_ttl_minutes' must be non-negative")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}

	if c.Education != "" {
		if _, ok := catalog.EducationLevelByName(c.Education); !ok {
			return fmt.Errorf("config error: unknown education level %q", c.Education)
		}
	}

	for name, cost := range c.Costs {
		if _, ok := catalog.EducationLevelByName(name); !ok {
			return fmt.Errorf("config error: cost override for unknown education level %q", name)
		}
		if cost.AnnualCost < 0 {
			return fmt.Errorf("config error: 'annual_cost' for %q must be non-negative", name)
		}
		if cost.DurationYears < 0 {
			return fmt.Errorf("config error: 'duration_years' for %q must be non-negative", name)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This applies config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Field == "" {
		result.Field = defaults.Field
	}
	if result.Subfield == "" {
		result.Subfield = defaults.Subfield
	}
	if result.Education == "" {
		result.Education = defaults.Education
	}
	if result.Region == "" {
		result.Region = defaults.Region
	}
	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.Host == "" {
		result.Host = defaults.Host
	}
	if result.CacheTTLMinutes == 0 {
		result.CacheTTLMinutes = defaults.CacheTTLMinutes
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if result.Costs == nil {
		result.Costs = defaults.Costs
	}

	return result
}

// CacheTTL returns the snapshot cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Timeout returns the per-request HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CostTable builds the education cost table: the catalog's assumptions with
// any configured overrides applied.
func (c *Config) CostTable() analysis.CostTable {
	table := catalog.CostTable()
	for name, cost := range c.Costs {
		level, ok := catalog.EducationLevelByName(name)
		if !ok {
			continue
		}
		table.Levels[level.Name] = analysis.LevelCost{
			AnnualCost:    cost.AnnualCost,
			DurationYears: cost.DurationYears,
		}
	}
	return table
}
