// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	DocDB     DocDBConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds cache-related configuration.
type CacheConfig struct {
	Type           string
	Host           string
	Port           string
	Username       string
	Password       string
	DB             int
	TTL            time.Duration
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	MaxRetries     int
}

// DocDBConfig holds document database configuration.
type DocDBConfig struct {
	Type     string
	URI      string
	Database string
}

// RateLimitConfig holds the per-tenant request limits.
// A zero Requests disables the windowed limit; a zero MaxInFlight disables the in-flight limit.
type RateLimitConfig struct {
	Requests    int64
	Window      time.Duration
	MaxInFlight int64
}

// AdminConfig holds the admin API configuration.
type AdminConfig struct {
	// APIKey guards the admin routes. Admin routes are not registered when empty.
	APIKey string
}

// CORSConfig holds the browser origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvAsInt("SERVER_PORT", 8080),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Cache: CacheConfig{
			Type:           getEnv("CACHE_TYPE", "redis"),
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Username:       getEnv("REDIS_USERNAME", ""),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			TTL:            getEnvAsSeconds("CACHE_TTL_SECONDS", 180),
			DialTimeout:    getEnvAsSeconds("REDIS_DIAL_TIMEOUT_SECONDS", 5),
			RequestTimeout: getEnvAsSeconds("REDIS_REQUEST_TIMEOUT_SECONDS", 3),
			MaxRetries:     getEnvAsInt("REDIS_MAX_RETRIES", 3),
		},
		DocDB: DocDBConfig{
			Type:     getEnv("DOCDB_TYPE", "mongodb"),
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "school"),
		},
		RateLimit: RateLimitConfig{
			Requests:    int64(getEnvAsInt("RATE_LIMIT_REQUESTS", 600)),
			Window:      getEnvAsSeconds("RATE_LIMIT_WINDOW_SECONDS", 60),
			MaxInFlight: int64(getEnvAsInt("RATE_LIMIT_MAX_IN_FLIGHT", 0)),
		},
		Admin: AdminConfig{
			APIKey: getEnv("ADMIN_API_KEY", ""),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Cache.DB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative, got %d", c.Cache.DB)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must not be negative, got %s", c.Cache.TTL)
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive when RATE_LIMIT_REQUESTS is set")
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsSeconds gets an integer environment variable as a duration in seconds.
func getEnvAsSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}

// getEnvAsList splits a comma-separated environment variable, dropping empty items.
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
