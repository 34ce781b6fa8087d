package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-iv/internal/calc"
	"github.com/contactkeval/option-iv/internal/data"
	"github.com/contactkeval/option-iv/internal/dates"
	"github.com/contactkeval/option-iv/internal/logger"
	"github.com/contactkeval/option-iv/internal/pricing"
)

type quickOptions struct {
	spot    string
	valDate string
}

func newQuickCommand(a *app) *cobra.Command {
	var opts quickOptions

	cmd := &cobra.Command{
		Use:   "quick TICKER EXPIRY STRIKE TYPE [VAL_DATE] PRICE_A [PRICE_B [PRICE_C]]",
		Short: "Implied volatility of up to three prices, without prompting",
		Example: `  ivcalc quick NVDA 2026-03-20 180 call 9.85 12.10 --rate 0.045 --div 0.0003 --spot 181.40
  ivcalc quick AAPL 3/31/2026 300 call 1/31/2026 10 20 --rate 4.5% --div 0.5%
  IVCALC_RATE=0.05 IVCALC_DIVIDEND_YIELD=0 ivcalc quick SPY 2026-12-18 600 put 25`,
		Args: cobra.RangeArgs(5, 5+calc.MaxQuotes),
		RunE: func(c *cobra.Command, args []string) error {
			return a.runQuick(c, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.spot, "spot", "", "underlying price; fetched from the data providers when omitted")
	cmd.Flags().StringVar(&opts.valDate, "val-date", "", "valuation date (default today); may also be given before PRICE_A")
	return cmd
}

func (a *app) runQuick(c *cobra.Command, args []string, opts quickOptions) error {
	if err := a.cfg.RequireRates(); err != nil {
		return err
	}

	ticker, err := parseTicker(args[0])
	if err != nil {
		return err
	}
	expiry, err := dates.Parse(args[1])
	if err != nil {
		return err
	}
	strike, err := parseMoney(args[2])
	if err != nil {
		return fmt.Errorf("strike: %w", err)
	}
	kind, err := pricing.ParseOptionKind(args[3])
	if err != nil {
		return err
	}

	prices := args[4:]
	valArg := opts.valDate
	if len(prices) > 1 {
		if _, err := dates.Parse(prices[0]); err == nil {
			if opts.valDate != "" {
				return fmt.Errorf("valuation date given twice: %q and --val-date %q", prices[0], opts.valDate)
			}
			valArg, prices = prices[0], prices[1:]
		}
	}
	if len(prices) > calc.MaxQuotes {
		return fmt.Errorf("%w: got %d", calc.ErrTooManyQuotes, len(prices))
	}

	valDate, err := parseValuation(valArg, a.today())
	if err != nil {
		return fmt.Errorf("valuation date: %w", err)
	}

	quotes, skipped, err := quickQuotes(prices)
	if err != nil {
		return err
	}

	var manual float64
	if opts.spot != "" {
		if manual, err = parseMoney(opts.spot); err != nil {
			return fmt.Errorf("--spot: %w", err)
		}
	}
	spot, source, err := a.resolveSpot(c.Context(), ticker, manual, valDate)
	if err != nil {
		if errors.Is(err, data.ErrNoPrice) {
			return fmt.Errorf("%w (pass --spot, --data-dir or a Massive API key)", err)
		}
		return err
	}

	if err := a.finish(c.OutOrStdout(), calc.Request{
		Ticker:         ticker,
		Kind:           kind,
		Strike:         strike,
		Spot:           spot,
		SpotSource:     source,
		Rate:           a.cfg.Rate,
		DivYield:       a.cfg.DividendYield,
		ValuationDate:  valDate,
		ExpirationDate: expiry,
		Quotes:         quotes,
	}); err != nil {
		return err
	}

	if len(skipped) > 0 {
		fmt.Fprintf(c.OutOrStdout(), "Skipped: %s\n", strings.Join(skipped, "; "))
	}
	return nil
}

// quickQuotes parses the price arguments. Price A must be a number; a
// later argument that is not one is skipped and reported, keeping the
// labels of the others. Zero or negative prices pass through and come
// back as N/A.
func quickQuotes(args []string) ([]calc.Quote, []string, error) {
	var (
		quotes  []calc.Quote
		skipped []string
	)
	for i, arg := range args {
		label := calc.QuoteLabel(i)
		price, err := parseQuote(arg)
		if err != nil {
			if i == 0 {
				return nil, nil, fmt.Errorf("price %s: %w", label, err)
			}
			logger.Infof("skipping price %s: %v", label, err)
			skipped = append(skipped, fmt.Sprintf("price %s (%v)", label, err))
			continue
		}
		quotes = append(quotes, calc.Quote{Label: label, Price: price})
	}
	return quotes, skipped, nil
}

// parseValuation is dates.Parse with "today" as the empty default.
func parseValuation(s string, today time.Time) (time.Time, error) {
	if s == "" {
		return today, nil
	}
	return dates.Parse(s)
}
