package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Price calculates the price of a European option using the Black-Scholes
// model with a continuous dividend yield.
//
// Parameters:
//   - spec: the option contract (spot, strike, years to expiry, rate, yield, kind)
//   - sigma: volatility of the underlying asset (annual, as a decimal)
//
// Returns:
//
//	The theoretical price of the option, never negative. If time to expiry
//	is zero or negative, returns the intrinsic value and sigma is never read.
//
// Preconditions: spec.Spot > 0, spec.Strike > 0 and, when spec.Expiry > 0,
// sigma > 0. They are not checked here; see OptionSpec.Validate.
func Price(spec OptionSpec, sigma float64) float64 {
	if spec.Expiry <= 0 {
		return Intrinsic(spec)
	}

	T := spec.Expiry
	sqrtT := math.Sqrt(T)

	d1 := (math.Log(spec.Spot/spec.Strike) + (spec.Rate-spec.DivYield+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	spotPV := spec.Spot * math.Exp(-spec.DivYield*T)
	strikePV := spec.Strike * math.Exp(-spec.Rate*T)

	var price float64
	if spec.Kind == Put {
		price = strikePV*normCDF(-d2) - spotPV*normCDF(-d1)
	} else {
		price = spotPV*normCDF(d1) - strikePV*normCDF(d2)
	}

	// cancellation can leave a far out-of-the-money price a hair below zero
	return math.Max(price, 0)
}

// Intrinsic returns the exercise value of the option right now:
// max(S-K, 0) for a call, max(K-S, 0) for a put.
func Intrinsic(spec OptionSpec) float64 {
	if spec.Kind == Put {
		return math.Max(spec.Strike-spec.Spot, 0)
	}
	return math.Max(spec.Spot-spec.Strike, 0)
}

// normCDF is the standard normal cumulative distribution function.
// distuv evaluates it through erfc, which keeps precision in both tails.
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
