package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotPositive = errors.New("must be positive")

var hundred = decimal.NewFromInt(100)

// parseAmount reads a dollar amount such as "5.25", "$1,234.50" or
// " $0.80 " without judging its sign.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(strings.TrimSpace(clean), ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// parseMoney is parseAmount for strikes and spot prices, which must be
// positive.
func parseMoney(s string) (float64, error) {
	d, err := parseAmount(s)
	if err != nil {
		return 0, err
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("amount %s %w", d.String(), errNotPositive)
	}

	f, _ := d.Float64()
	return f, nil
}

// parseQuote reads an observed option price. Zero and negative prices
// are accepted here; the calculation reports them as N/A.
func parseQuote(s string) (float64, error) {
	d, err := parseAmount(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// parseRate reads an annual rate as a decimal fraction ("0.045") or a
// percentage ("4.5%"). Negative rates are allowed.
func parseRate(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	percent := strings.HasSuffix(clean, "%")
	clean = strings.TrimSpace(strings.TrimSuffix(clean, "%"))

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q", s)
	}
	if percent {
		d = d.Div(hundred)
	}

	f, _ := d.Float64()
	return f, nil
}
