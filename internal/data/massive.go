// Package data provides market data provider implementations.
//
// This file contains a Massive-backed Provider that looks up the daily
// close of an underlying through the aggregates HTTP API.
//
// Design notes:
//   - Raw HTTP calls, so historical valuation dates work on any plan
//   - Rate limits (HTTP 429) are retried at the next minute boundary,
//     a bounded number of times and never past ctx's deadline
//   - Logging is verbose at Debug/Trace levels for diagnostics
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/contactkeval/option-iv/internal/logger"
)

const (
	// lookbackDays covers weekends and market holidays before asOf.
	lookbackDays     = 7
	maxRateLimitHits = 3
)

// massiveDataProvider implements the Provider interface using Massive APIs.
type massiveDataProvider struct {
	// APIKey used for authenticating requests with Massive.
	APIKey string

	// Client is the HTTP client used to make API requests.
	Client *http.Client

	// BaseURL is the root endpoint for Massive APIs
	// (e.g., https://api.massive.com).
	BaseURL string

	// RetryWait overrides the wait after a 429; zero means "until the
	// next minute boundary".
	RetryWait time.Duration

	// secondary is an optional fallback provider.
	secondary Provider
}

// NewMassiveDataProvider constructs a Massive-backed data provider.
//
// It initializes an HTTP client with sensible defaults for:
//   - timeouts
//   - connection pooling
//   - HTTP/2 support
//   - gzip decompression
//
// Parameters:
//   - apiKey: Massive API key for authentication
//   - secondary: provider consulted when this one fails (may be nil)
//
// Returns:
//   - *massiveDataProvider: initialized provider instance
func NewMassiveDataProvider(apiKey string, secondary Provider) *massiveDataProvider {
	logger.Debugf("initializing Massive data provider")

	return &massiveDataProvider{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				DisableCompression:    false, // must be false to enable gzip auto-decompression
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		BaseURL:   "https://api.massive.com",
		secondary: secondary,
	}
}

func (massiveDataProv *massiveDataProvider) Name() string { return "massive-aggs" }

// Secondary returns the configured secondary Provider, if any.
func (massiveDataProv *massiveDataProvider) Secondary() Provider {
	return massiveDataProv.secondary
}

// GetUnderlyingPrice returns the close of the last daily bar on or before
// asOf, looking back up to a week to step over weekends and holidays.
func (massiveDataProv *massiveDataProvider) GetUnderlyingPrice(
	ctx context.Context,
	ticker string,
	asOf time.Time,
) (float64, error) {

	if massiveDataProv.APIKey == "" {
		return 0, fmt.Errorf("%w: massive api key not configured", ErrNoPrice)
	}

	bars, err := massiveDataProv.GetDailyBars(ctx, ticker, asOf.AddDate(0, 0, -lookbackDays), asOf)
	if err != nil {
		return 0, err
	}

	price, ok := lastCloseOnOrBefore(bars, asOf)
	if !ok {
		return 0, fmt.Errorf("%w: no daily bars for %s up to %s", ErrNoPrice, ticker, asOf.Format("2006-01-02"))
	}
	return price, nil
}

// GetDailyBars retrieves daily OHLCV bars for the given symbol and range.
//
// Parameters:
//   - ctx: cancels the request and any rate-limit wait
//   - underlying: ticker symbol
//   - fromDate: start date
//   - toDate: end date
//
// Returns:
//   - []Bar: time-ordered bars
//   - error: if retrieval or decoding fails
func (massiveDataProv *massiveDataProvider) GetDailyBars(
	ctx context.Context,
	underlying string,
	fromDate, toDate time.Time,
) ([]Bar, error) {

	maxLimit := 50000

	logger.Debugf(
		"fetching daily bars: %s from=%s to=%s",
		underlying,
		fromDate.Format("2006-01-02"),
		toDate.Format("2006-01-02"),
	)

	reqURL := fmt.Sprintf(
		"%s/v2/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&limit=%d&apiKey=%s",
		massiveDataProv.BaseURL,
		url.PathEscape(strings.ToUpper(underlying)),
		fromDate.Format("2006-01-02"),
		toDate.Format("2006-01-02"),
		maxLimit,
		url.QueryEscape(massiveDataProv.APIKey),
	)

	resp, err := massiveDataProv.processGetRequest(ctx, reqURL)
	if err != nil {
		logger.Errorf("bars request failed for %s: %v", underlying, err)
		return nil, fmt.Errorf("massive api request failed: %w", err)
	}
	defer resp.Body.Close()

	// Massive/POLYGON style response model
	var body struct {
		Ticker   string `json:"ticker"`
		Adjusted bool   `json:"adjusted"`
		Results  []struct {
			Open      float64 `json:"o"`
			Close     float64 `json:"c"`
			High      float64 `json:"h"`
			Low       float64 `json:"l"`
			Volume    float64 `json:"v"`
			Timestamp int64   `json:"t"` // epoch millis
		} `json:"results"`
		Status string `json:"status"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing massive response: %w", err)
	}

	logger.Tracef("bars received: %d records", len(body.Results))

	out := make([]Bar, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, Bar{
			Date:  time.UnixMilli(r.Timestamp).UTC(),
			Open:  r.Open,
			High:  r.High,
			Low:   r.Low,
			Close: r.Close,
			Vol:   r.Volume,
		})
	}

	return out, nil
}

// processGetRequest executes an HTTP GET request with rate-limit handling.
//
// Behavior:
//   - Retries on HTTP 429, at most maxRateLimitHits times
//   - Sleeps until the next minute boundary (or RetryWait)
//   - Returns immediately on success (<400)
//   - Returns an error carrying the API message for other status codes
func (massiveDataProv *massiveDataProvider) processGetRequest(
	ctx context.Context,
	reqURL string,
) (*http.Response, error) {

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+massiveDataProv.APIKey)
		req.Header.Set("Accept", "application/json")

		resp, err := massiveDataProv.Client.Do(req)
		if err != nil {
			return nil, err
		}

		// Success
		if resp.StatusCode < 400 {
			return resp, nil
		}

		// Handle per-minute rate limit (commonly 429)
		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxRateLimitHits {
			resp.Body.Close()

			wait := massiveDataProv.RetryWait
			if wait <= 0 {
				now := time.Now()
				wait = time.Until(now.Truncate(time.Minute).Add(time.Minute))
			}

			logger.Infof("rate limit hit, sleeping for %s", wait)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		var dbg struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(bodyBytes, &dbg)
		msg := dbg.Message
		if msg == "" {
			msg = dbg.Error
		}

		return nil, fmt.Errorf("massive returned status %d: %s", resp.StatusCode, msg)
	}
}
