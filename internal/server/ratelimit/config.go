package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadConfig loads rate limiting configuration from HIREHUB_RATE_LIMIT_* variables.
func LoadConfig() *Config {
	if !getEnvBool("HIREHUB_RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("HIREHUB_RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("HIREHUB_RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("HIREHUB_RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("HIREHUB_RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("HIREHUB_RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Application submissions (strictest)
		{Path: "/applications", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},

		// Shared filter state mutations
		{Path: "/filters", Method: "PATCH", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/filters", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Detail lookups
		{Path: "/jobs/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 60},
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
