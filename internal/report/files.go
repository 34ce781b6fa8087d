package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-iv/internal/calc"
	"github.com/contactkeval/option-iv/internal/dates"
)

const (
	JSONFile = "ivcalc.json"
	CSVFile  = "ivcalc.csv"
)

// WriteJSON writes the full result to outdir/ivcalc.json.
func WriteJSON(res *calc.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, JSONFile), b, 0644)
}

// WriteCSV writes one line per quote to outdir/ivcalc.csv. The implied
// volatility column is a decimal fraction, empty when not found.
func WriteCSV(res *calc.Result, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, CSVFile))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	headers := []string{"option", "ticker", "type", "strike", "expiration", "valuation_date", "underlying", "rate", "dividend_yield", "years", "quote", "price", "implied_vol", "implied_vol_pct", "note"}
	if err := w.Write(headers); err != nil {
		return err
	}

	req := res.Request
	for _, r := range res.Rows {
		iv := ""
		if sigma, ok := r.IV.Value(); ok {
			iv = fmt.Sprintf("%.8f", sigma)
		}
		row := []string{
			res.Description,
			req.Ticker,
			res.OptionType,
			fmt.Sprintf("%g", req.Strike),
			dates.Format(req.ExpirationDate),
			dates.Format(req.ValuationDate),
			fmt.Sprintf("%.4f", req.Spot),
			fmt.Sprintf("%g", req.Rate),
			fmt.Sprintf("%g", req.DivYield),
			fmt.Sprintf("%.8f", res.Years),
			r.Label,
			fmt.Sprintf("%.4f", r.Price),
			iv,
			FormatVol(r.IV),
			r.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
