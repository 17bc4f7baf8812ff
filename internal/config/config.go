// Package config provides environment configuration for the API server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Gemini settings
	GeminiAPIKey      string
	GeminiModel       string
	GeminiBaseURL     string
	GeminiTimeout     time.Duration
	GeminiMaxAttempts int
	GeminiRetryUnit   time.Duration

	// SerpAPI flight search settings
	SerpAPIKey     string
	SerpAPIBaseURL string
	SerpAPITimeout time.Duration

	// Conversation settings
	HistoryLimit int

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),

		// Gemini
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiTimeout:     getDurationEnv("GEMINI_TIMEOUT", 30*time.Second),
		GeminiMaxAttempts: getIntEnv("GEMINI_MAX_ATTEMPTS", 3),
		GeminiRetryUnit:   getDurationEnv("GEMINI_RETRY_UNIT", time.Second),

		// SerpAPI
		SerpAPIKey:     getEnv("SERPAPI_API_KEY", ""),
		SerpAPIBaseURL: getEnv("SERPAPI_BASE_URL", "https://serpapi.com"),
		SerpAPITimeout: getDurationEnv("SERPAPI_TIMEOUT", 30*time.Second),

		// Conversation
		HistoryLimit: getIntEnv("HISTORY_LIMIT", 10),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 10),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", 10*time.Second),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
