// Package calc combines the collaborators around the pricing core: it
// validates one calculation request, turns its dates into a year
// fraction and inverts every observed price independently.
package calc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/contactkeval/option-iv/internal/dates"
	"github.com/contactkeval/option-iv/internal/logger"
	"github.com/contactkeval/option-iv/internal/pricing"
)

// MaxQuotes is how many observed prices one request may carry.
const MaxQuotes = 3

var (
	ErrExpired       = errors.New("expiration date must be after valuation date")
	ErrNoQuotes      = errors.New("at least one option price is required")
	ErrTooManyQuotes = fmt.Errorf("at most %d option prices are supported", MaxQuotes)
	ErrBadQuote      = errors.New("option price must be positive")
)

// Quote is one observed market price, labelled A, B or C.
type Quote struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// Request is everything the user supplies for one option.
type Request struct {
	Ticker         string             `json:"ticker"`
	Kind           pricing.OptionKind `json:"-"`
	Strike         float64            `json:"strike"`
	Spot           float64            `json:"underlying"`
	SpotSource     string             `json:"underlying_source,omitempty"`
	Rate           float64            `json:"rate"`
	DivYield       float64            `json:"dividend_yield"`
	ValuationDate  time.Time          `json:"valuation_date"`
	ExpirationDate time.Time          `json:"expiration_date"`
	Quotes         []Quote            `json:"quotes"`
}

// QuoteLabel returns the label of the i-th quote: A, B, C...
func QuoteLabel(i int) string {
	return string(rune('A' + i))
}

// NewQuotes labels prices in order.
func NewQuotes(prices ...float64) []Quote {
	quotes := make([]Quote, 0, len(prices))
	for i, p := range prices {
		quotes = append(quotes, Quote{Label: QuoteLabel(i), Price: p})
	}
	return quotes
}

// Spec builds the pricing input for this request.
func (req Request) Spec() pricing.OptionSpec {
	return pricing.OptionSpec{
		Spot:     req.Spot,
		Strike:   req.Strike,
		Expiry:   pricing.YearsBetween(req.ValuationDate, req.ExpirationDate),
		Rate:     req.Rate,
		DivYield: req.DivYield,
		Kind:     req.Kind,
	}
}

// Validate rejects requests the solver must never see. Individual bad
// quotes are not request errors; Run reports them per quote.
func (req Request) Validate() error {
	if err := req.Spec().Validate(); err != nil {
		return fmt.Errorf("%s: %w", req.label(), err)
	}
	if pricing.DaysBetween(req.ValuationDate, req.ExpirationDate) <= 0 {
		return fmt.Errorf("%s: %w (valuation %s, expiration %s)", req.label(), ErrExpired,
			dates.Format(req.ValuationDate), dates.Format(req.ExpirationDate))
	}
	if len(req.Quotes) == 0 {
		return fmt.Errorf("%s: %w", req.label(), ErrNoQuotes)
	}
	if len(req.Quotes) > MaxQuotes {
		return fmt.Errorf("%s: %w", req.label(), ErrTooManyQuotes)
	}
	return nil
}

// Description is the one-line option name used in reports,
// e.g. "NVDA 2026-03-20 180 CALL".
func (req Request) Description() string {
	return fmt.Sprintf("%s %s %.0f %s",
		strings.ToUpper(req.Ticker),
		dates.Format(req.ExpirationDate),
		req.Strike,
		strings.ToUpper(req.Kind.String()),
	)
}

func (req Request) label() string {
	if req.Ticker == "" {
		return "request"
	}
	return strings.ToUpper(req.Ticker)
}

// Row is the outcome for one quote.
type Row struct {
	Label string             `json:"label"`
	Price float64            `json:"price"`
	IV    pricing.ImpliedVol `json:"implied_volatility"`
	Note  string             `json:"note,omitempty"`
}

// Result is the outcome of one request.
type Result struct {
	Request     Request `json:"request"`
	OptionType  string  `json:"option_type"`
	Description string  `json:"option"`
	Days        int     `json:"days_to_expiry"`
	Years       float64 `json:"years_to_expiry"`
	Rows        []Row   `json:"rows"`
}

// Run validates req and solves each quote on its own: a quote that cannot
// be inverted yields a NotFound row and never stops the others.
func Run(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	spec := req.Spec()
	res := &Result{
		Request:     req,
		OptionType:  req.Kind.String(),
		Description: req.Description(),
		Days:        pricing.DaysBetween(req.ValuationDate, req.ExpirationDate),
		Years:       spec.Expiry,
		Rows:        make([]Row, 0, len(req.Quotes)),
	}

	logger.Debugf("%s: S=%.4f K=%.4f T=%.6f r=%.4f q=%.4f",
		res.Description, spec.Spot, spec.Strike, spec.Expiry, spec.Rate, spec.DivYield)

	for _, q := range req.Quotes {
		row := Row{Label: q.Label, Price: q.Price}

		if !(q.Price > 0) {
			row.Note = ErrBadQuote.Error()
			logger.Infof("quote %s skipped: %v (got %v)", q.Label, ErrBadQuote, q.Price)
			res.Rows = append(res.Rows, row)
			continue
		}

		row.IV = pricing.ImpliedVolatility(q.Price, spec)
		if !row.IV.IsFound() {
			row.Note = fmt.Sprintf("no implied volatility in [%g, %g]", pricing.MinVolatility, pricing.MaxVolatility)
			logger.Infof("quote %s=%.4f: %s", q.Label, q.Price, row.Note)
		} else {
			sigma, _ := row.IV.Value()
			logger.Debugf("quote %s=%.4f: sigma=%.6f", q.Label, q.Price, sigma)
		}
		res.Rows = append(res.Rows, row)
	}

	return res, nil
}
