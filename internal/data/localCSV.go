package data

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/contactkeval/option-iv/internal/logger"
)

// localCSVDataProvider reads daily closes from <dir>/<TICKER>.csv.
//
// The file needs a header row with a "date" column (YYYY-MM-DD) and a
// "close" column; any other columns (open, high, low, volume) are ignored.
type localCSVDataProvider struct {
	dir       string
	secondary Provider
}

// NewLocalCSVDataProvider convenience constructor.
func NewLocalCSVDataProvider(dir string, secondary Provider) *localCSVDataProvider {
	return &localCSVDataProvider{dir: dir, secondary: secondary}
}

func (localCSVDataProv *localCSVDataProvider) Name() string { return "local-csv" }

func (localCSVDataProv *localCSVDataProvider) Secondary() Provider {
	return localCSVDataProv.secondary
}

func (localCSVDataProv *localCSVDataProvider) GetUnderlyingPrice(ctx context.Context, ticker string, asOf time.Time) (float64, error) {
	path := filepath.Join(localCSVDataProv.dir, strings.ToUpper(ticker)+".csv")

	bars, err := readCloses(path)
	if err != nil {
		return 0, err
	}

	price, ok := lastCloseOnOrBefore(bars, asOf)
	if !ok {
		return 0, fmt.Errorf("%w: %s has no close on or before %s", ErrNoPrice, path, asOf.Format("2006-01-02"))
	}
	return price, nil
}

// readCloses parses the date and close columns of a daily bar file.
// Rows with a malformed date or close are skipped.
func readCloses(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open closes file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	dateCol, closeCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date":
			dateCol = i
		case "close", "adj close", "adj_close":
			if closeCol < 0 {
				closeCol = i
			}
		}
	}
	if dateCol < 0 || closeCol < 0 {
		return nil, fmt.Errorf("%s: header needs date and close columns", path)
	}

	var out []Bar
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(row) <= dateCol || len(row) <= closeCol {
			continue
		}

		dt, err := time.Parse("2006-01-02", strings.TrimSpace(row[dateCol]))
		if err != nil {
			logger.Tracef("skipping row with bad date %q in %s", row[dateCol], path)
			continue
		}
		closePrice, err := strconv.ParseFloat(strings.TrimSpace(row[closeCol]), 64)
		if err != nil {
			logger.Tracef("skipping row with bad close %q in %s", row[closeCol], path)
			continue
		}

		out = append(out, Bar{Date: dt, Close: closePrice})
	}

	return out, nil
}
