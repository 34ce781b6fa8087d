package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	want := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2026-03-07", "3/7/2026", "03/07/2026", "2026/03/07", "20260307", " 2026-03-07 "} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "2026-13-01", "2/30/2026", "07.03.2026"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnrecognized, in)
	}
}

func TestFormatAndToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 10, 19, 22, 45, 0, 0, loc)

	assert.Equal(t, "2026-10-19", Format(Today(now)))
	assert.Equal(t, time.UTC, Today(now).Location())
}
