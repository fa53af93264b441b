package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default locations of the static data shipped with the service.
const (
	DefaultDataDir   = "configs/catalog"
	DefaultSchemaDir = "configs/schemas"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	DataDir   string // catalog definition files
	SchemaDir string // JSON schemas for the definition files

	PlanCacheSize int
	PlanCacheTTL  time.Duration

	APIKey string // guards admin routes; empty disables them
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "planforge"),
		Version:     getEnv("VERSION", "dev"),
		DataDir:     getEnv("DATA_DIR", DefaultDataDir),
		SchemaDir:   getEnv("SCHEMA_DIR", DefaultSchemaDir),
		APIKey:      getEnv("API_KEY", ""),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cacheSize, err := getEnvInt("PLAN_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}
	if cacheSize < 0 {
		return nil, fmt.Errorf("PLAN_CACHE_SIZE must not be negative")
	}
	cfg.PlanCacheSize = cacheSize

	ttlStr := getEnv("PLAN_CACHE_TTL", "5m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PLAN_CACHE_TTL value: %w", err)
	}
	cfg.PlanCacheTTL = ttl

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}
