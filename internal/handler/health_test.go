package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightwise-ai/travel-assistant/internal/config"
)

func TestHealth(t *testing.T) {
	h := NewHealthHandler(&config.Config{})

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *config.Config
		wantStatus int
	}{
		{"both providers configured", &config.Config{GeminiAPIKey: "g", SerpAPIKey: "s"}, http.StatusOK},
		{"missing gemini key", &config.Config{SerpAPIKey: "s"}, http.StatusServiceUnavailable},
		{"missing serpapi key", &config.Config{GeminiAPIKey: "g"}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.cfg)

			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
