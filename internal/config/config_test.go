package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "gemini-3-flash-preview", cfg.GeminiModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
	assert.Equal(t, 3, cfg.GeminiMaxAttempts)
	assert.Equal(t, time.Second, cfg.GeminiRetryUnit)
	assert.Equal(t, "https://serpapi.com", cfg.SerpAPIBaseURL)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, 10*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_MODEL", "gemini-other")
	t.Setenv("GEMINI_MAX_ATTEMPTS", "5")
	t.Setenv("GEMINI_RETRY_UNIT", "250ms")
	t.Setenv("HISTORY_LIMIT", "4")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "gemini-other", cfg.GeminiModel)
	assert.Equal(t, 5, cfg.GeminiMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.GeminiRetryUnit)
	assert.Equal(t, 4, cfg.HistoryLimit)
	assert.True(t, cfg.TracingEnabled)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("GEMINI_MAX_ATTEMPTS", "many")
	t.Setenv("GEMINI_TIMEOUT", "soon")
	t.Setenv("TRACING_ENABLED", "si")

	cfg := Load()

	assert.Equal(t, 3, cfg.GeminiMaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	assert.False(t, cfg.TracingEnabled)
}
