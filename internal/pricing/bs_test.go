package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parityCases = []OptionSpec{
	{Spot: 100, Strike: 100, Expiry: 0.25, Rate: 0.05},
	{Spot: 100, Strike: 90, Expiry: 0.5, Rate: 0.03, DivYield: 0.01},
	{Spot: 100, Strike: 110, Expiry: 1, Rate: 0.05, DivYield: 0.02},
	{Spot: 50, Strike: 60, Expiry: 0.75, Rate: 0.01},
	{Spot: 2500, Strike: 2400, Expiry: 0.1, Rate: 0.045, DivYield: 0.005},
	{Spot: 100, Strike: 100, Expiry: 2, Rate: -0.005, DivYield: 0.03},
}

func withKind(spec OptionSpec, kind OptionKind) OptionSpec {
	spec.Kind = kind
	return spec
}

func TestPrice_ReferenceValues(t *testing.T) {
	// S=100 K=100 r=5% sigma=20% T=1, no dividends
	spec := OptionSpec{Spot: 100, Strike: 100, Expiry: 1, Rate: 0.05}
	assert.InDelta(t, 10.450583572185565, Price(withKind(spec, Call), 0.2), 1e-9)
	assert.InDelta(t, 5.573526022256971, Price(withKind(spec, Put), 0.2), 1e-9)

	// same contract with a 2% continuous yield, half a year, 25% vol
	spec = OptionSpec{Spot: 100, Strike: 100, Expiry: 0.5, Rate: 0.05, DivYield: 0.02}
	assert.InDelta(t, 7.683040827874606, Price(withKind(spec, Call), 0.25), 1e-9)
	assert.InDelta(t, 6.209048655791058, Price(withKind(spec, Put), 0.25), 1e-9)
}

func TestPrice_PutCallParity(t *testing.T) {
	for _, spec := range parityCases {
		for _, sigma := range []float64{0.05, 0.2, 0.6, 1.5, 4} {
			call := Price(withKind(spec, Call), sigma)
			put := Price(withKind(spec, Put), sigma)

			lhs := call - put
			rhs := spec.Spot*math.Exp(-spec.DivYield*spec.Expiry) - spec.Strike*math.Exp(-spec.Rate*spec.Expiry)

			assert.InDelta(t, rhs, lhs, 1e-8*spec.Spot, "spec=%+v sigma=%v", spec, sigma)
		}
	}
}

func TestPrice_ExpiryReturnsIntrinsic(t *testing.T) {
	tests := []struct {
		name string
		spec OptionSpec
		want float64
	}{
		{"itm call", OptionSpec{Spot: 110, Strike: 100, Kind: Call}, 10},
		{"otm call", OptionSpec{Spot: 90, Strike: 100, Kind: Call}, 0},
		{"itm put", OptionSpec{Spot: 50, Strike: 60, Rate: 0.05, Kind: Put}, 10},
		{"otm put", OptionSpec{Spot: 70, Strike: 60, Kind: Put}, 0},
		{"past expiry", OptionSpec{Spot: 120, Strike: 100, Expiry: -0.1, Kind: Call}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// sigma is irrelevant here, including values the T>0 branch cannot take
			for _, sigma := range []float64{0.2, 0, -1, math.NaN(), math.Inf(1)} {
				assert.Equal(t, tt.want, Price(tt.spec, sigma))
			}
		})
	}
}

func TestPrice_MonotonicInVolatility(t *testing.T) {
	for _, spec := range parityCases {
		for _, kind := range []OptionKind{Call, Put} {
			s := withKind(spec, kind)
			prev := Price(s, 0.05)
			for sigma := 0.1; sigma <= 3.0; sigma += 0.05 {
				cur := Price(s, sigma)
				require.Greater(t, cur, prev, "spec=%+v sigma=%v", s, sigma)
				prev = cur
			}
		}
	}
}

func TestPrice_ExtremeVolatilityIsFinite(t *testing.T) {
	for _, spec := range parityCases {
		for _, kind := range []OptionKind{Call, Put} {
			s := withKind(spec, kind)
			for _, sigma := range []float64{1e-9, MinVolatility, MaxVolatility, 1e3} {
				p := Price(s, sigma)
				assert.False(t, math.IsNaN(p) || math.IsInf(p, 0), "spec=%+v sigma=%v", s, sigma)
				assert.GreaterOrEqual(t, p, 0.0)
			}
		}
	}
}

func TestPrice_Deterministic(t *testing.T) {
	spec := OptionSpec{Spot: 101.37, Strike: 95, Expiry: 0.3, Rate: 0.041, DivYield: 0.013, Kind: Put}
	assert.Equal(t, Price(spec, 0.318), Price(spec, 0.318))
}

func TestOptionSpec_Validate(t *testing.T) {
	ok := OptionSpec{Spot: 100, Strike: 100, Expiry: 0.25}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Spot = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidSpot)

	bad = ok
	bad.Strike = -5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidStrike)

	bad = ok
	bad.Strike = math.NaN()
	assert.ErrorIs(t, bad.Validate(), ErrInvalidStrike)

	bad = ok
	bad.Kind = OptionKind(7)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidKind)
}

func TestParseOptionKind(t *testing.T) {
	for in, want := range map[string]OptionKind{"call": Call, "C": Call, " Put ": Put, "p": Put} {
		got, err := ParseOptionKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOptionKind("straddle")
	assert.ErrorIs(t, err, ErrInvalidKind)
	assert.Equal(t, "put", Put.String())
	assert.Equal(t, "call", Call.String())
}
