package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/flightwise-ai/travel-assistant/pkg/logger"
	"github.com/flightwise-ai/travel-assistant/pkg/metrics"
)

// Gemini is a completion client for the Gemini generateContent API.
type Gemini struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	timeout     time.Duration
	maxAttempts int
	retryUnit   time.Duration
	logger      *logger.Logger
}

// GeminiConfig configures the Gemini client.
type GeminiConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	RetryUnit   time.Duration
}

// NewGemini creates a new Gemini client.
func NewGemini(cfg GeminiConfig, log *logger.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-3-flash-preview"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryUnit <= 0 {
		cfg.RetryUnit = time.Second
	}

	return &Gemini{
		httpClient:  &http.Client{},
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		timeout:     cfg.Timeout,
		maxAttempts: cfg.MaxAttempts,
		retryUnit:   cfg.RetryUnit,
		logger:      log,
	}, nil
}

// Request/response envelope of the generateContent contract.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int            `json:"maxOutputTokens"`
	Temperature     float64        `json:"temperature"`
	ThinkingConfig  thinkingConfig `json:"thinkingConfig"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

// Complete sends a prompt with bounded retry. Transient failures (HTTP 429,
// 5xx, transport errors) are retried with linearly increasing backoff;
// malformed provider payloads fail immediately.
func (c *Gemini) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	start := time.Now()

	var out string
	operation := func() error {
		text, err := c.generate(ctx, prompt, opts)
		if err != nil {
			return err
		}
		out = text
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{unit: c.retryUnit}, uint64(c.maxAttempts-1)),
		ctx,
	)

	err := backoff.RetryNotify(operation, policy, func(err error, delay time.Duration) {
		metrics.LLMRetriesTotal.Inc()
		c.logger.Warn("completion attempt failed, retrying",
			zap.Error(err),
			zap.Duration("delay", delay),
		)
	})
	if err != nil {
		metrics.RecordLLMCall("error", time.Since(start).Seconds())
		return "", fmt.Errorf("completion failed: %w", err)
	}

	metrics.RecordLLMCall("success", time.Since(start).Seconds())
	return out, nil
}

// generate performs a single generateContent attempt. Errors wrapped with
// backoff.Permanent are not retried.
func (c *Gemini) generate(ctx context.Context, prompt string, opts Options) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: opts.MaxOutputTokens,
			Temperature:     opts.Temperature,
			ThinkingConfig:  thinkingConfig{ThinkingBudget: opts.ThinkingBudget},
		},
	})
	if err != nil {
		return "", backoff.Permanent(err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failure or per-attempt timeout: retryable.
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response failed: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(respBody, 256))
	}
	if resp.StatusCode != http.StatusOK {
		return "", backoff.Permanent(fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(respBody, 256)))
	}

	var envelope generateResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", backoff.Permanent(fmt.Errorf("unparseable envelope: %w", err))
	}

	text := envelope.text()
	if strings.TrimSpace(text) == "" {
		return "", backoff.Permanent(errors.New("empty completion"))
	}

	return text, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
