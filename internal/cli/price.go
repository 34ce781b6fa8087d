package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-iv/internal/dates"
	"github.com/contactkeval/option-iv/internal/pricing"
	"github.com/contactkeval/option-iv/internal/report"
)

type priceOptions struct {
	spot    string
	strike  string
	kind    string
	expiry  string
	valDate string
	vol     float64
}

func newPriceCommand(a *app) *cobra.Command {
	var opts priceOptions

	cmd := &cobra.Command{
		Use:     "price",
		Short:   "Black-Scholes price for a given volatility",
		Example: `  ivcalc price --spot 100 --strike 100 --type call --expiry 2026-12-18 --vol 0.2 --rate 0.05 --div 0`,
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return a.runPrice(c, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.spot, "spot", "", "underlying price")
	f.StringVar(&opts.strike, "strike", "", "strike price")
	f.StringVar(&opts.kind, "type", "call", "option type: call or put")
	f.StringVar(&opts.expiry, "expiry", "", "expiration date")
	f.StringVar(&opts.valDate, "val-date", "", "valuation date (default today)")
	f.Float64Var(&opts.vol, "vol", 0, "annualised volatility (0.2 for 20%)")
	_ = cmd.MarkFlagRequired("spot")
	_ = cmd.MarkFlagRequired("strike")
	_ = cmd.MarkFlagRequired("expiry")
	_ = cmd.MarkFlagRequired("vol")
	return cmd
}

func (a *app) runPrice(c *cobra.Command, opts priceOptions) error {
	if err := a.cfg.RequireRates(); err != nil {
		return err
	}
	if !(opts.vol > 0) {
		return fmt.Errorf("--vol must be positive, got %v", opts.vol)
	}

	spot, err := parseMoney(opts.spot)
	if err != nil {
		return fmt.Errorf("--spot: %w", err)
	}
	strike, err := parseMoney(opts.strike)
	if err != nil {
		return fmt.Errorf("--strike: %w", err)
	}
	kind, err := pricing.ParseOptionKind(opts.kind)
	if err != nil {
		return err
	}
	expiry, err := dates.Parse(opts.expiry)
	if err != nil {
		return fmt.Errorf("--expiry: %w", err)
	}
	valDate, err := parseValuation(opts.valDate, a.today())
	if err != nil {
		return fmt.Errorf("--val-date: %w", err)
	}

	spec := pricing.OptionSpec{
		Spot:     spot,
		Strike:   strike,
		Expiry:   pricing.YearsBetween(valDate, expiry),
		Rate:     a.cfg.Rate,
		DivYield: a.cfg.DividendYield,
		Kind:     kind,
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "T:         %.6f years (%d days)\n", spec.Expiry, pricing.DaysBetween(valDate, expiry))
	fmt.Fprintf(out, "Price:     %s\n", report.FormatMoney(pricing.Price(spec, opts.vol)))
	fmt.Fprintf(out, "Intrinsic: %s\n", report.FormatMoney(pricing.Intrinsic(spec)))
	return nil
}
