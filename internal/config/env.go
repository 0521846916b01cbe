package config

import (
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvPort          = "HIREHUB_PORT"
	EnvCatalogSource = "HIREHUB_CATALOG_SOURCE"
	EnvCatalogPath   = "HIREHUB_CATALOG_PATH"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvLatencyMS     = "HIREHUB_LATENCY_MS"
	EnvSubmitDelayMS = "HIREHUB_SUBMIT_DELAY_MS"
	EnvCloseDelayMS  = "HIREHUB_CLOSE_DELAY_MS"
	EnvLogLevel      = "HIREHUB_LOG_LEVEL"
	EnvLogFormat     = "HIREHUB_LOG_FORMAT"
)

// FromEnv reads configuration from environment variables. Unset variables leave
// their fields empty so the result can be merged over a file or defaults.
// HIREHUB_LATENCY_MS applies one latency to every catalog operation.
func FromEnv() Config {
	cfg := Config{
		Port:          getEnvInt(EnvPort, 0),
		CatalogSource: os.Getenv(EnvCatalogSource),
		CatalogPath:   os.Getenv(EnvCatalogPath),
		DatabaseURL:   os.Getenv(EnvDatabaseURL),
		SubmitDelayMS: getEnvInt(EnvSubmitDelayMS, 0),
		CloseDelayMS:  getEnvInt(EnvCloseDelayMS, 0),
		LogLevel:      os.Getenv(EnvLogLevel),
		LogFormat:     os.Getenv(EnvLogFormat),
	}

	if ms := getEnvInt(EnvLatencyMS, -1); ms >= 0 {
		cfg.Latency = &LatencyMS{List: ms, Get: ms, Locations: ms}
	}

	return cfg
}

// Resolve layers the environment over the optional config file and the
// built-in defaults, then validates the result.
func Resolve(path string) (Config, error) {
	file := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	env := FromEnv()
	merged := file.MergeWithDefaults(Defaults())
	cfg := env.MergeWithDefaults(merged)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
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
