package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort  string
	FrontendURL string
	EnableHSTS  bool

	WeatherAPIKey  string
	WeatherBaseURL string

	ChatAPIKey  string
	ChatBaseURL string
	ChatModel   string

	ScanInterval time.Duration
	ActiveWindow time.Duration
	SessionTTL   time.Duration

	RulesFile string

	RateLimit string
	RedisURL  string

	ServerDebugMode bool
	OTELEnabled     bool
	OTELEndpoint    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		EnableHSTS:      getEnvBool("ENABLE_HSTS", false),
		WeatherAPIKey:   getEnv("WEATHER_API_KEY", ""),
		WeatherBaseURL:  getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		ChatAPIKey:      getEnv("CHAT_API_KEY", ""),
		ChatBaseURL:     getEnv("CHAT_BASE_URL", ""),
		ChatModel:       getEnv("CHAT_MODEL", ""),
		ScanInterval:    getEnvDuration("SCAN_INTERVAL", 600*time.Second),
		ActiveWindow:    getEnvDuration("ACTIVE_WINDOW", 7200*time.Second),
		SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
		RulesFile:       getEnv("NOTIFICATION_RULES_FILE", ""),
		RateLimit:       getEnv("RATE_LIMIT", "5-S"),
		RedisURL:        getEnv("REDIS_URL", ""),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.ScanInterval <= 0 {
		return nil, fmt.Errorf("SCAN_INTERVAL must be positive")
	}
	if cfg.ActiveWindow <= 0 {
		return nil, fmt.Errorf("ACTIVE_WINDOW must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Bare numbers are read as seconds
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
