package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightwise-ai/travel-assistant/pkg/logger"
)

const validEnvelope = `{"candidates":[{"content":{"parts":[{"text":"hola viajero"}]}}]}`

func newTestGemini(t *testing.T, baseURL string) *Gemini {
	t.Helper()
	client, err := NewGemini(GeminiConfig{
		APIKey:      "test-key",
		Model:       "gemini-test",
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
		RetryUnit:   time.Millisecond,
	}, logger.NewNop())
	require.NoError(t, err)
	return client
}

func TestCompleteSuccess(t *testing.T) {
	var requests atomic.Int32
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(validEnvelope))
	}))
	defer server.Close()

	client := newTestGemini(t, server.URL)

	text, err := client.Complete(context.Background(), "hola", Options{
		MaxOutputTokens: 500,
		Temperature:     0.4,
		ThinkingBudget:  512,
	})
	require.NoError(t, err)
	assert.Equal(t, "hola viajero", text)
	assert.Equal(t, int32(1), requests.Load())

	// Tuning parameters reach the provider.
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "hola", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, 500, gotBody.GenerationConfig.MaxOutputTokens)
	assert.InDelta(t, 0.4, gotBody.GenerationConfig.Temperature, 0.001)
	assert.Equal(t, 512, gotBody.GenerationConfig.ThinkingConfig.ThinkingBudget)
}

func TestCompleteRetriesTransientErrors(t *testing.T) {
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch requests.Add(1) {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.Write([]byte(validEnvelope))
		}
	}))
	defer server.Close()

	client := newTestGemini(t, server.URL)

	text, err := client.Complete(context.Background(), "hola", Options{MaxOutputTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, "hola viajero", text)
	assert.Equal(t, int32(3), requests.Load())
}

func TestCompleteExhaustsAttempts(t *testing.T) {
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestGemini(t, server.URL)

	_, err := client.Complete(context.Background(), "hola", Options{MaxOutputTokens: 100})
	require.Error(t, err)
	assert.Equal(t, int32(3), requests.Load())
}

func TestCompleteDoesNotRetryMalformedEnvelope(t *testing.T) {
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"candidates": not-json`))
	}))
	defer server.Close()

	client := newTestGemini(t, server.URL)

	_, err := client.Complete(context.Background(), "hola", Options{MaxOutputTokens: 100})
	require.Error(t, err)
	assert.Equal(t, int32(1), requests.Load())
}

func TestCompleteDoesNotRetryEmptyCompletion(t *testing.T) {
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := newTestGemini(t, server.URL)

	_, err := client.Complete(context.Background(), "hola", Options{MaxOutputTokens: 100})
	require.Error(t, err)
	assert.Equal(t, int32(1), requests.Load())
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestGemini(t, server.URL)

	_, err := client.Complete(context.Background(), "hola", Options{MaxOutputTokens: 100})
	require.Error(t, err)
	assert.Equal(t, int32(1), requests.Load())
}

func TestNewGeminiRequiresAPIKey(t *testing.T) {
	_, err := NewGemini(GeminiConfig{}, logger.NewNop())
	require.Error(t, err)
}

func TestLinearBackOff(t *testing.T) {
	b := &linearBackOff{unit: time.Second}

	assert.Equal(t, time.Second, b.NextBackOff())
	assert.Equal(t, 2*time.Second, b.NextBackOff())
	assert.Equal(t, 3*time.Second, b.NextBackOff())

	b.Reset()
	assert.Equal(t, time.Second, b.NextBackOff())
}
