package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-iv/internal/calc"
	"github.com/contactkeval/option-iv/internal/pricing"
	"github.com/contactkeval/option-iv/internal/testutil"
)

func sampleResult(t *testing.T) *calc.Result {
	t.Helper()

	res, err := calc.Run(calc.Request{
		Ticker:         "NVDA",
		Kind:           pricing.Call,
		Strike:         180,
		Spot:           181.40,
		Rate:           0.045,
		DivYield:       0.0003,
		ValuationDate:  time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
		ExpirationDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Quotes:         calc.NewQuotes(9.85, 12.10, 0.50),
	})
	require.NoError(t, err)
	return res
}

func TestFormatVol(t *testing.T) {
	assert.Equal(t, "N/A", FormatVol(pricing.NotFound()))
	assert.Equal(t, "12.34%", FormatVol(pricing.Found(0.1234)))
	assert.Equal(t, "20.00%", FormatVol(pricing.Found(0.2)))
	assert.Equal(t, "1000.00%", FormatVol(pricing.Found(10)))
	assert.Equal(t, "0.10%", FormatVol(pricing.Found(0.001)))
}

func TestFormatMoneyAndPercent(t *testing.T) {
	assert.Equal(t, "$5.25", FormatMoney(5.25))
	assert.Equal(t, "$1234.50", FormatMoney(1234.5))
	assert.Equal(t, "4.50%", FormatPercent(0.045))
	assert.Equal(t, "0.00%", FormatPercent(0))
}

func TestCenter(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"ab", 5, "  ab "},
		{"abc", 6, " abc  "},
		{"a", 4, " a  "},
		{"abcd", 9, "   abcd  "},
		{"toolong", 3, "toolong"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, center(tt.s, tt.width), "%q/%d", tt.s, tt.width)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleResult(t)))

	testutil.CompareTextWithGolden(t, "results_table", buf.Bytes())
}

func TestWriteTable_SingleQuote(t *testing.T) {
	res := sampleResult(t)
	res.Rows = res.Rows[:1]

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, res))
	assert.Contains(t, buf.String(), "Vol A")
	assert.NotContains(t, buf.String(), "Price B")
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	res := sampleResult(t)

	require.NoError(t, WriteJSON(res, dir))
	require.NoError(t, WriteCSV(res, dir))

	b, err := os.ReadFile(filepath.Join(dir, JSONFile))
	require.NoError(t, err)

	var decoded struct {
		Option string `json:"option"`
		Rows   []struct {
			Label string   `json:"label"`
			IV    *float64 `json:"implied_volatility"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "NVDA 2026-03-20 180 CALL", decoded.Option)
	require.Len(t, decoded.Rows, 3)
	require.NotNil(t, decoded.Rows[0].IV)
	assert.InDelta(t, 0.3251, *decoded.Rows[0].IV, 1e-4)
	assert.Nil(t, decoded.Rows[2].IV)

	f, err := os.Open(filepath.Join(dir, CSVFile))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "quote", records[0][10])
	assert.Equal(t, "32.51%", records[1][13])
	assert.Equal(t, "", records[3][12])
	assert.Equal(t, "N/A", records[3][13])
}

func TestSummary(t *testing.T) {
	s := Summary(sampleResult(t))
	assert.Contains(t, s, "NVDA 2026-03-20 180 CALL  S=$181.40  T=49 days")
	assert.Contains(t, s, "C  $0.50  N/A")
}
