// Package flights provides the flight search data provider client.
package flights

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/flightwise-ai/travel-assistant/pkg/logger"
	"github.com/flightwise-ai/travel-assistant/pkg/metrics"
)

// SearchParams are the resolved flight search inputs.
type SearchParams struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"outbound_date"`
	ReturnDate  string `json:"return_date,omitempty"`
	Adults      int    `json:"adults"`
}

// RoundTrip reports whether a return date was supplied.
func (p SearchParams) RoundTrip() bool {
	return p.ReturnDate != ""
}

// CurrencyResult is the outcome of one currency-specific provider query. A
// failed query is recorded as a tagged error, never propagated upward.
type CurrencyResult struct {
	Currency string          `json:"currency"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    bool            `json:"error,omitempty"`
}

// CombinedResult merges the per-currency results with the search parameters.
type CombinedResult struct {
	USD        CurrencyResult `json:"flights_usd"`
	COP        CurrencyResult `json:"flights_cop"`
	SearchInfo SearchParams   `json:"search_info"`
}

// Failed reports whether both currency queries failed.
func (r *CombinedResult) Failed() bool {
	return r.USD.Error && r.COP.Error
}

// GoogleFlightsURL extracts the provider's deep link to the external flights
// search UI, empty if absent.
func (r *CombinedResult) GoogleFlightsURL() string {
	if r.USD.Error || len(r.USD.Data) == 0 {
		return ""
	}
	var payload struct {
		SearchMetadata struct {
			GoogleFlightsURL string `json:"google_flights_url"`
		} `json:"search_metadata"`
	}
	if err := json.Unmarshal(r.USD.Data, &payload); err != nil {
		return ""
	}
	return payload.SearchMetadata.GoogleFlightsURL
}

// Client is the interface for flight search providers.
type Client interface {
	// Search runs the dual-currency provider queries and merges the results.
	// The combined result is always producible; per-currency failures are
	// tagged inside it.
	Search(ctx context.Context, params SearchParams) (*CombinedResult, error)
}

// SerpClient queries the SerpAPI google_flights engine.
type SerpClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *logger.Logger
}

// SerpConfig configures the SerpAPI client.
type SerpConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewSerpClient creates a new SerpAPI flight search client.
func NewSerpClient(cfg SerpConfig, log *logger.Logger) (*SerpClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("SerpAPI key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://serpapi.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &SerpClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     log,
	}, nil
}

// Search issues the USD and COP queries concurrently and merges the results.
func (c *SerpClient) Search(ctx context.Context, params SearchParams) (*CombinedResult, error) {
	if params.Adults <= 0 {
		params.Adults = 1
	}

	combined := &CombinedResult{SearchInfo: params}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		combined.USD = c.searchCurrency(ctx, params, "USD")
	}()
	go func() {
		defer wg.Done()
		combined.COP = c.searchCurrency(ctx, params, "COP")
	}()
	wg.Wait()

	return combined, nil
}

// searchCurrency runs one provider query. Any failure is downgraded to a
// tagged error so the sibling query and the overall search are unaffected.
func (c *SerpClient) searchCurrency(ctx context.Context, params SearchParams, currency string) CurrencyResult {
	failed := CurrencyResult{Currency: currency, Error: true}

	query := url.Values{}
	query.Set("engine", "google_flights")
	query.Set("departure_id", params.Origin)
	query.Set("arrival_id", params.Destination)
	query.Set("adults", strconv.Itoa(params.Adults))
	query.Set("currency", currency)
	query.Set("hl", "es")
	query.Set("api_key", c.apiKey)

	if params.Date != "" {
		query.Set("outbound_date", params.Date)
	}
	if params.RoundTrip() {
		query.Set("return_date", params.ReturnDate)
		query.Set("type", "1")
	} else {
		query.Set("type", "2")
	}

	c.logger.Info("searching flights",
		zap.String("currency", currency),
		zap.String("origin", params.Origin),
		zap.String("destination", params.Destination),
		zap.String("date", params.Date),
		zap.Bool("round_trip", params.RoundTrip()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search.json?"+query.Encode(), nil)
	if err != nil {
		metrics.RecordFlightQuery(currency, "error")
		return failed
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("flight query failed", zap.String("currency", currency), zap.Error(err))
		metrics.RecordFlightQuery(currency, "error")
		return failed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("flight query read failed", zap.String("currency", currency), zap.Error(err))
		metrics.RecordFlightQuery(currency, "error")
		return failed
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("flight provider error",
			zap.String("currency", currency),
			zap.Int("status", resp.StatusCode),
		)
		metrics.RecordFlightQuery(currency, "error")
		return failed
	}

	if !json.Valid(body) {
		c.logger.Warn("flight provider returned malformed payload",
			zap.String("currency", currency),
		)
		metrics.RecordFlightQuery(currency, "error")
		return failed
	}

	metrics.RecordFlightQuery(currency, "success")
	return CurrencyResult{Currency: currency, Data: json.RawMessage(body)}
}
