package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/contactkeval/option-iv/internal/calc"
	"github.com/contactkeval/option-iv/internal/dates"
)

const bannerWidth = 100

// WriteTable prints the results banner and a one-row table: the option,
// its market inputs, then a price/vol column pair per quote.
//
//	+----------------------------+------------+...
//	|           Option           |  Val Date  |...
//	+----------------------------+------------+...
//	|  NVDA 2026-03-20 180 CALL  | 2026-01-30 |...
//	+----------------------------+------------+...
func WriteTable(w io.Writer, res *calc.Result) error {
	headers, values := tableCells(res)

	widths := make([]int, len(headers))
	for i := range headers {
		widths[i] = max(len(headers[i]), len(values[i])) + 2
	}

	var sb strings.Builder
	banner := strings.Repeat("=", bannerWidth)
	sb.WriteString("\n")
	sb.WriteString(banner + "\n")
	sb.WriteString("  RESULTS\n")
	sb.WriteString(banner + "\n")

	sep := separator(widths)
	sb.WriteString(sep + "\n")
	sb.WriteString(row(headers, widths) + "\n")
	sb.WriteString(sep + "\n")
	sb.WriteString(row(values, widths) + "\n")
	sb.WriteString(sep + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func tableCells(res *calc.Result) (headers, values []string) {
	req := res.Request

	headers = []string{"Option", "Val Date", "Underlying", "r", "Div"}
	values = []string{
		res.Description,
		dates.Format(req.ValuationDate),
		FormatMoney(req.Spot),
		FormatPercent(req.Rate),
		FormatPercent(req.DivYield),
	}

	for _, r := range res.Rows {
		headers = append(headers, "Price "+r.Label, "Vol "+r.Label)
		values = append(values, FormatMoney(r.Price), FormatVol(r.IV))
	}
	return headers, values
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "+")
}

func row(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = center(c, widths[i])
	}
	return strings.Join(parts, "|")
}

// center pads s with spaces to width. When the padding is odd the extra
// space goes left only if width is odd too, so headers line up the same
// way the calculator has always printed them.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad/2 + (pad & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// Summary is a compact multi-line rendering for debug logs.
func Summary(res *calc.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  S=%s  T=%d days\n", res.Description, FormatMoney(res.Request.Spot), res.Days)
	for _, r := range res.Rows {
		fmt.Fprintf(&sb, "  %s  %s  %s\n", r.Label, FormatMoney(r.Price), FormatVol(r.IV))
	}
	return sb.String()
}
