package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrent_KnownRoots(t *testing.T) {
	tests := []struct {
		name string
		f    func(float64) float64
		a, b float64
		want float64
	}{
		{"sqrt2", func(x float64) float64 { return x*x - 2 }, 0, 2, math.Sqrt2},
		{"dottie", func(x float64) float64 { return math.Cos(x) - x }, 0, 1, 0.7390851332151607},
		{"reversed bracket", func(x float64) float64 { return x*x*x - x - 1 }, 2, 1, 1.324717957244746},
		{"step", func(x float64) float64 {
			if x < 0.3 {
				return -1
			}
			return 1
		}, 0, 1, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Brent(tt.f, tt.a, tt.b, 1e-12, 200)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBrent_EndpointRoot(t *testing.T) {
	got, err := Brent(func(x float64) float64 { return x - 1 }, 1, 3, 1e-12, 10)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestBrent_NoBracket(t *testing.T) {
	_, err := Brent(func(x float64) float64 { return x*x + 1 }, -1, 1, 1e-12, 100)
	assert.ErrorIs(t, err, ErrNoBracket)

	_, err = Brent(func(x float64) float64 { return math.NaN() }, 0, 1, 1e-12, 100)
	assert.ErrorIs(t, err, ErrNoBracket)
}

func TestBrent_IterationCap(t *testing.T) {
	calls := 0
	f := func(x float64) float64 {
		calls++
		return math.Cbrt(x - 0.123456789)
	}

	_, err := Brent(f, 0, 1, 0, 3)
	assert.ErrorIs(t, err, ErrNoConvergence)
	assert.LessOrEqual(t, calls, 2+3)
}
