// Package report renders calculation results for people (a text table)
// and for machines (JSON and CSV files).
package report

import (
	"fmt"

	"github.com/contactkeval/option-iv/internal/pricing"
)

// NotAvailable is shown wherever no implied volatility was found.
const NotAvailable = "N/A"

// FormatVol renders a found volatility as a percentage with two decimals
// (0.1234 -> "12.34%") and NotFound as "N/A".
func FormatVol(iv pricing.ImpliedVol) string {
	sigma, ok := iv.Value()
	if !ok {
		return NotAvailable
	}
	return FormatPercent(sigma)
}

// FormatPercent renders a decimal fraction as a percentage: 0.045 -> "4.50%".
func FormatPercent(x float64) string {
	return fmt.Sprintf("%.2f%%", x*100)
}

// FormatMoney renders a price with a dollar sign and two decimals.
func FormatMoney(x float64) string {
	return fmt.Sprintf("$%.2f", x)
}
