package pricing

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearsBetween(t *testing.T) {
	tests := []struct {
		name      string
		val, exp  time.Time
		wantDays  int
		wantYears float64
	}{
		{"two months", date(2026, 1, 31), date(2026, 3, 31), 59, 59.0 / 365},
		{"same day", date(2026, 3, 31), date(2026, 3, 31), 0, 0},
		{"expired", date(2026, 4, 2), date(2026, 3, 31), -2, -2.0 / 365},
		{"leap year", date(2024, 1, 1), date(2025, 1, 1), 366, 366.0 / 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantDays, DaysBetween(tt.val, tt.exp))
			assert.Equal(t, tt.wantYears, YearsBetween(tt.val, tt.exp))
		})
	}

	assert.InDelta(t, 0.16164, YearsBetween(date(2026, 1, 31), date(2026, 3, 31)), 1e-5)
}

func TestYearsBetween_IgnoresClockAndDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// spans the March 2026 DST change and uses different times of day
	val := time.Date(2026, 3, 1, 23, 30, 0, 0, ny)
	exp := time.Date(2026, 3, 10, 0, 15, 0, 0, ny)

	assert.Equal(t, 9, DaysBetween(val, exp))
	assert.Equal(t, 9.0/365, YearsBetween(val, exp))
}
