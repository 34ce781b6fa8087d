package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/contactkeval/option-iv/internal/calc"
	"github.com/contactkeval/option-iv/internal/data"
	"github.com/contactkeval/option-iv/internal/dates"
	"github.com/contactkeval/option-iv/internal/logger"
	"github.com/contactkeval/option-iv/internal/pricing"
)

func printBanner(out io.Writer) {
	bar := strings.Repeat("=", 60)
	fmt.Fprintln(out, bar)
	fmt.Fprintln(out, "  OPTIONS IMPLIED VOLATILITY CALCULATOR")
	fmt.Fprintln(out, bar)
	fmt.Fprintln(out)
}

func formatDefault(x float64, set bool) string {
	if !set {
		return ""
	}
	return fmt.Sprintf("%g", x)
}

func parseTicker(s string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if strings.ContainsAny(t, " \t/\\") {
		return "", fmt.Errorf("invalid ticker %q", s)
	}
	return t, nil
}

// runInteractive asks for every input, resolving the underlying through
// the provider chain when the user leaves it blank.
func (a *app) runInteractive(ctx context.Context, in io.Reader, out io.Writer) error {
	p := NewPrompter(in, out)
	printBanner(out)

	ticker, _, err := Parsed(p, "Ticker", "", false, parseTicker)
	if err != nil {
		return err
	}
	expiry, _, err := Parsed(p, "Expiration date (YYYY-MM-DD)", "", false, dates.Parse)
	if err != nil {
		return err
	}
	strike, _, err := Parsed(p, "Strike price ($)", "", false, parseMoney)
	if err != nil {
		return err
	}
	kind, _, err := Parsed(p, "Option type (call/put)", "", false, pricing.ParseOptionKind)
	if err != nil {
		return err
	}
	valDate, _, err := Parsed(p, "Valuation date (YYYY-MM-DD)", dates.Format(a.today()), false, dates.Parse)
	if err != nil {
		return err
	}

	spot, source, err := a.askSpot(ctx, p, ticker, valDate)
	if err != nil {
		return err
	}

	rate, _, err := Parsed(p, "Risk-free rate (e.g., 0.05 for 5%)", formatDefault(a.cfg.Rate, a.cfg.RateSet), false, parseRate)
	if err != nil {
		return err
	}
	div, _, err := Parsed(p, "Dividend yield (e.g., 0.01 for 1%)", formatDefault(a.cfg.DividendYield, a.cfg.DividendYieldSet), false, parseRate)
	if err != nil {
		return err
	}

	// B and C are optional and asked independently; labels stay positional
	var quotes []calc.Quote
	for i := 0; i < calc.MaxQuotes; i++ {
		label := calc.QuoteLabel(i)
		prompt := fmt.Sprintf("Option price %s ($)", label)
		if i > 0 {
			prompt = fmt.Sprintf("Option price %s ($, Enter to skip)", label)
		}
		price, ok, err := Parsed(p, prompt, "", i > 0, parseQuote)
		if err != nil {
			return err
		}
		if ok {
			quotes = append(quotes, calc.Quote{Label: label, Price: price})
		}
	}

	return a.finish(out, calc.Request{
		Ticker:         ticker,
		Kind:           kind,
		Strike:         strike,
		Spot:           spot,
		SpotSource:     source,
		Rate:           rate,
		DivYield:       div,
		ValuationDate:  valDate,
		ExpirationDate: expiry,
		Quotes:         quotes,
	})
}

// askSpot takes a typed price, or fetches one on empty input and falls back
// to asking again when no provider has it.
func (a *app) askSpot(ctx context.Context, p *Prompter, ticker string, asOf time.Time) (float64, string, error) {
	spot, ok, err := Parsed(p, "Underlying price ($, Enter to fetch)", "", true, parseMoney)
	if err != nil {
		return 0, "", err
	}
	if ok {
		return spot, "manual", nil
	}

	fmt.Fprintf(p.out, "  Fetching %s price for %s...\n", ticker, dates.Format(asOf))
	spot, source, err := a.resolveSpot(ctx, ticker, 0, asOf)
	if err == nil {
		fmt.Fprintf(p.out, "  %s: $%.2f (%s)\n", ticker, spot, source)
		return spot, source, nil
	}
	if !errors.Is(err, data.ErrNoPrice) {
		return 0, "", err
	}

	logger.Debugf("spot lookup failed: %v", err)
	fmt.Fprintf(p.out, "  Could not fetch a price for %s.\n", ticker)
	spot, _, err = Parsed(p, "Underlying price ($, entered manually)", "", false, parseMoney)
	if err != nil {
		return 0, "", err
	}
	return spot, "manual", nil
}
