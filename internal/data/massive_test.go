package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMassive(srv *httptest.Server) *massiveDataProvider {
	return &massiveDataProvider{
		APIKey:    "test",
		Client:    srv.Client(),
		BaseURL:   srv.URL, // IMPORTANT
		RetryWait: time.Millisecond,
	}
}

func TestMassiveProvider_GetUnderlyingPrice(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "Bearer test", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"ticker": "NVDA",
			"results": [
				{"t": 1769558400000, "o":1,"h":1,"l":1,"c":176.10,"v":100},
				{"t": 1769644800000, "o":1,"h":1,"l":1,"c":178.25,"v":100},
				{"t": 1769731200000, "o":1,"h":1,"l":1,"c":181.40,"v":100}
			],
			"status": "OK"
		}`))
	}))
	defer srv.Close()

	price, err := newTestMassive(srv).GetUnderlyingPrice(context.Background(), "nvda", asOf)
	require.NoError(t, err)
	assert.Equal(t, 181.40, price)
	assert.Equal(t, "/v2/aggs/ticker/NVDA/range/1/day/2026-01-23/2026-01-30", gotPath)
}

func TestMassiveProvider_NoBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [], "status": "OK"}`))
	}))
	defer srv.Close()

	_, err := newTestMassive(srv).GetUnderlyingPrice(context.Background(), "NVDA", asOf)
	assert.ErrorIs(t, err, ErrNoPrice)
}

func TestMassiveProvider_HTTPError(t *testing.T) {
	// fake server returning 500
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"internal error"}`))
	}))
	defer srv.Close()

	_, err := newTestMassive(srv).GetUnderlyingPrice(context.Background(), "AAPL", asOf)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "internal error"), err.Error())
}

func TestMassiveProvider_RateLimitRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"results": [{"t": 1769731200000, "c": 99.5}]}`))
	}))
	defer srv.Close()

	price, err := newTestMassive(srv).GetUnderlyingPrice(context.Background(), "AAPL", asOf)
	require.NoError(t, err)
	assert.Equal(t, 99.5, price)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMassiveProvider_RateLimitGivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestMassive(srv).GetUnderlyingPrice(context.Background(), "AAPL", asOf)
	require.Error(t, err)
	assert.Equal(t, int32(maxRateLimitHits+1), atomic.LoadInt32(&calls))
}

func TestMassiveProvider_MissingKey(t *testing.T) {
	_, err := NewMassiveDataProvider("", nil).GetUnderlyingPrice(context.Background(), "AAPL", asOf)
	assert.ErrorIs(t, err, ErrNoPrice)
}
