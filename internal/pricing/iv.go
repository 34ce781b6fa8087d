package pricing

import "encoding/json"

// Search bracket for implied volatility: 0.1% to 1000% annualized.
const (
	MinVolatility = 0.001
	MaxVolatility = 10.0
)

const (
	volTolerance        = 1e-10
	maxSolverIterations = 100
)

// ImpliedVol is the outcome of inverting a market price: either a found
// volatility or an explicit "not found". The zero value is NotFound.
type ImpliedVol struct {
	sigma float64
	found bool
}

func Found(sigma float64) ImpliedVol { return ImpliedVol{sigma: sigma, found: true} }

func NotFound() ImpliedVol { return ImpliedVol{} }

// Value returns the volatility and whether one was found.
func (iv ImpliedVol) Value() (float64, bool) { return iv.sigma, iv.found }

func (iv ImpliedVol) IsFound() bool { return iv.found }

// MarshalJSON encodes a found volatility as a number and NotFound as null.
func (iv ImpliedVol) MarshalJSON() ([]byte, error) {
	if !iv.found {
		return []byte("null"), nil
	}
	return json.Marshal(iv.sigma)
}

// ImpliedVolatility returns the volatility at which Price(spec, sigma)
// equals observedPrice, searched with Brent's method over
// [MinVolatility, MaxVolatility].
//
// When the observed price is outside what the bracket can produce (below
// intrinsic value, above the 1000% price, stale or erroneous quotes) the
// result is NotFound. So is a search that runs out of iterations: an
// unconverged estimate is never passed off as an implied volatility.
//
// A quote that is not a positive number is NotFound without searching:
// a zero price would otherwise "match" any volatility at which the option
// is worth nothing.
func ImpliedVolatility(observedPrice float64, spec OptionSpec) ImpliedVol {
	if !(observedPrice > 0) {
		return NotFound()
	}

	objective := func(sigma float64) float64 {
		return Price(spec, sigma) - observedPrice
	}

	sigma, err := Brent(objective, MinVolatility, MaxVolatility, volTolerance, maxSolverIterations)
	if err != nil {
		return NotFound()
	}
	return Found(sigma)
}
