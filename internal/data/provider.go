package data

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/contactkeval/option-iv/internal/logger"
)

// ErrNoPrice is reported when no provider in a chain can supply an
// underlying price. Callers fall back to a manual price or abort.
var ErrNoPrice = errors.New("no price available")

// Provider supplies the current or historical price of an underlying.
type Provider interface {
	// Name identifies the provider in logs and results.
	Name() string
	// Secondary is the fallback consulted when this provider fails.
	Secondary() Provider
	// GetUnderlyingPrice returns the last known price of ticker on or
	// before asOf.
	GetUnderlyingPrice(ctx context.Context, ticker string, asOf time.Time) (float64, error)
}

// Bar simplified OHLC
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
	Vol   float64
}

// ChainOptions selects which providers BuildChain wires together.
type ChainOptions struct {
	ManualPrice float64   // used first when positive
	DataDir     string    // local CSV closes, when set
	APIKey      string    // Massive API key, when set
	AsOf        time.Time // valuation date
	Today       time.Time // calendar date of "now"
}

// BuildChain assembles the provider chain, most specific first:
// manual price, local CSV closes, Massive live snapshot (only when
// valuing as of today), Massive daily bars. It returns nil when nothing
// is configured.
func BuildChain(opts ChainOptions) Provider {
	var prov Provider

	if opts.APIKey != "" {
		prov = NewMassiveDataProvider(opts.APIKey, prov)
		if !opts.AsOf.Before(opts.Today) {
			prov = NewMassiveSnapshotProvider(opts.APIKey, prov)
		}
	}
	if opts.DataDir != "" {
		prov = NewLocalCSVDataProvider(opts.DataDir, prov)
	}
	if opts.ManualPrice > 0 {
		prov = NewManualPriceProvider(opts.ManualPrice, prov)
	}
	return prov
}

// ResolveUnderlyingPrice asks prov and then each of its secondaries in
// turn. The first positive price wins; the name of the provider that
// supplied it is returned alongside. If every provider fails the error
// wraps ErrNoPrice and each provider's failure.
func ResolveUnderlyingPrice(ctx context.Context, prov Provider, ticker string, asOf time.Time) (float64, string, error) {
	var errs []error

	for p := prov; p != nil; p = p.Secondary() {
		if err := ctx.Err(); err != nil {
			return 0, "", err
		}

		price, err := p.GetUnderlyingPrice(ctx, ticker, asOf)
		if err == nil && price > 0 {
			logger.Debugf("underlying %s=%.4f from %s", ticker, price, p.Name())
			return price, p.Name(), nil
		}
		if err == nil {
			err = fmt.Errorf("non-positive price %v", price)
		}

		logger.Debugf("provider %s failed for %s: %v", p.Name(), ticker, err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}

	if len(errs) == 0 {
		return 0, "", fmt.Errorf("%w for %s: no provider configured", ErrNoPrice, ticker)
	}
	return 0, "", fmt.Errorf("%w for %s: %w", ErrNoPrice, ticker, errors.Join(errs...))
}

// lastCloseOnOrBefore returns the close of the latest bar dated on or
// before asOf's calendar day.
func lastCloseOnOrBefore(bars []Bar, asOf time.Time) (float64, bool) {
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	y, m, d := asOf.Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Date.Before(cutoff) {
			return bars[i].Close, true
		}
	}
	return 0, false
}
