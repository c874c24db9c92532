package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/service"
)

type Config struct {
	DatabaseFile      string        // Optional: path to SQLite database file, ":memory:" allowed (default: ./usermgmt.db)
	SeedFixtures      bool          // Optional: load the demo groups and users into an empty database (default: true)
	RemoteLatency     time.Duration // Optional: simulated role service latency (default: 1s)
	RemoteSuccessRate float64       // Optional: simulated role service success probability (default: 0.9)
	RemotePersist     bool          // Optional: write successful toggles to the database (default: true)
	ScreenIdleTTL     time.Duration // Optional: drop sessions idle this long (default: 30m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 5m)
}

func LoadConfig() Config {
	cfg := Config{
		DatabaseFile:      getEnvOrDefault("USERMGMT_DATABASE_FILE", "usermgmt.db"),
		SeedFixtures:      getEnvBoolOrDefault("USERMGMT_SEED_FIXTURES", true),
		RemoteLatency:     getEnvDurationOrDefault("USERMGMT_REMOTE_LATENCY", service.DefaultRemoteLatency),
		RemoteSuccessRate: getEnvFloatOrDefault("USERMGMT_REMOTE_SUCCESS_RATE", service.DefaultRemoteSuccessRate),
		RemotePersist:     getEnvBoolOrDefault("USERMGMT_REMOTE_PERSIST", true),
		ScreenIdleTTL:     getEnvDurationOrDefault("USERMGMT_SCREEN_IDLE_TTL", 30*time.Minute),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),
	}

	// A rate outside [0,1] is meaningless; keep the default.
	if cfg.RemoteSuccessRate < 0 || cfg.RemoteSuccessRate > 1 {
		cfg.RemoteSuccessRate = service.DefaultRemoteSuccessRate
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
