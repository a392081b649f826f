package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds rate limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int           // requests per window for unmatched endpoints
	DefaultWindow   time.Duration // window for the default limit
	CleanupInterval time.Duration // how often idle buckets are reaped
	EndpointConfigs []EndpointConfig
	Whitelist       map[string]bool // client IDs exempt from limiting
	Blacklist       map[string]bool // client IDs always rejected
}

// EndpointConfig describes the limit for one endpoint pattern. A Limit of
// zero or below means unlimited.
type EndpointConfig struct {
	Pattern string // path or path prefix, e.g. "/analyze"
	Method  string // empty matches any method
	Limit   int
	Window  time.Duration
	Burst   int // bucket capacity; defaults to Limit when zero
}

// DefaultEndpointConfigs returns the per-endpoint limits. Analysis requests
// fan out to Statistics Canada, so they get a much tighter limit than the
// catalog lookups.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Pattern: "/analyze", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Pattern: "/match", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Pattern: "/health", Method: "GET", Limit: 0},
	}
}

// LoadConfig reads rate limiter settings from the environment, falling back
// to defaults for anything unset.
func LoadConfig() *Config {
	return &Config{
		Enabled:         getEnvBool("RATE_LIMIT_ENABLED", true),
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		EndpointConfigs: DefaultEndpointConfigs(),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client IDs into a set.
func parseIPList(value string) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			result[entry] = true
		}
	}
	return result
}
