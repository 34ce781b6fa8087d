// Package cli wires the calculator's commands: the interactive prompt
// (default), quick mode for scripts, and a plain pricing command.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/contactkeval/option-iv/internal/calc"
	"github.com/contactkeval/option-iv/internal/config"
	"github.com/contactkeval/option-iv/internal/data"
	"github.com/contactkeval/option-iv/internal/dates"
	"github.com/contactkeval/option-iv/internal/logger"
	"github.com/contactkeval/option-iv/internal/report"
)

// app carries what every command needs; tests swap now and chain.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	cfgFile string
	flags   *pflag.FlagSet

	now   func() time.Time
	chain func(data.ChainOptions) data.Provider
}

func newApp() *app {
	return &app{
		v:     config.New(),
		now:   time.Now,
		chain: data.BuildChain,
	}
}

// NewRootCommand builds the ivcalc command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ivcalc",
		Short: "Black-Scholes price and implied volatility of European options",
		Long: `ivcalc inverts the Black-Scholes formula (continuous dividend yield) to
find the implied volatility of up to three observed option prices.

Run without a subcommand for the interactive prompt.`,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		RunE: func(c *cobra.Command, args []string) error {
			return a.runInteractive(c.Context(), c.InOrStdin(), c.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./ivcalc.yaml or <user config dir>/ivcalc/ivcalc.yaml)")
	flags.IntP("verbosity", "v", 1, "log verbosity: 0 error, 1 info, 2 debug, 3 trace")
	flags.String("rate", "", "risk-free rate, continuously compounded (0.045 or 4.5%)")
	flags.String("div", "", "dividend yield, continuously compounded (0.005 or 0.5%)")
	flags.String("data-dir", "", "directory of <TICKER>.csv daily closes used to price the underlying")
	flags.String("report-dir", "", "also write ivcalc.json and ivcalc.csv into this directory")

	bind := map[string]string{
		config.KeyVerbosity: "verbosity",
		config.KeyDataDir:   "data-dir",
		config.KeyReportDir: "report-dir",
	}
	for key, name := range bind {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}
	a.flags = flags

	root.AddCommand(newQuickCommand(a), newPriceCommand(a))
	return root
}

// rateFlags are parsed here rather than bound, so they accept "4.5%".
var rateFlags = map[string]string{
	config.KeyRate:          "rate",
	config.KeyDividendYield: "div",
}

func (a *app) loadConfig() error {
	for key, name := range rateFlags {
		f := a.flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		rate, err := parseRate(f.Value.String())
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		a.v.Set(key, rate)
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logger.SetVerbosity(cfg.Verbosity)
	logger.Debugf("config: data_dir=%q report_dir=%q api_key_set=%t", cfg.DataDir, cfg.ReportDir, cfg.APIKey != "")
	return nil
}

// today is the calendar date of now.
func (a *app) today() time.Time {
	return dates.Today(a.now())
}

// resolveSpot prices the underlying through the provider chain. A positive
// manual price short-circuits the chain.
func (a *app) resolveSpot(ctx context.Context, ticker string, manual float64, asOf time.Time) (float64, string, error) {
	prov := a.chain(data.ChainOptions{
		ManualPrice: manual,
		DataDir:     a.cfg.DataDir,
		APIKey:      a.cfg.APIKey,
		AsOf:        asOf,
		Today:       a.today(),
	})
	return data.ResolveUnderlyingPrice(ctx, prov, ticker, asOf)
}

// finish runs the request and renders it: table on out, files when a
// report directory is configured.
func (a *app) finish(out io.Writer, req calc.Request) error {
	res, err := calc.Run(req)
	if err != nil {
		return err
	}

	logger.Debugf("result:\n%s", report.Summary(res))

	if err := report.WriteTable(out, res); err != nil {
		return err
	}

	if dir := a.cfg.ReportDir; dir != "" {
		if err := report.WriteJSON(res, dir); err != nil {
			return fmt.Errorf("writing json report: %w", err)
		}
		if err := report.WriteCSV(res, dir); err != nil {
			return fmt.Errorf("writing csv report: %w", err)
		}
		logger.Infof("wrote %s and %s to %s", report.JSONFile, report.CSVFile, dir)
	}
	return nil
}
