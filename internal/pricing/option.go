// Package pricing implements the Black-Scholes price of a European option
// with a continuous dividend yield, and the inversion of that price into
// an implied volatility.
//
// Everything in this package is a pure function of its arguments: no I/O,
// no package state, safe to call from any number of goroutines.
package pricing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSpot   = errors.New("underlying price must be positive")
	ErrInvalidStrike = errors.New("strike price must be positive")
	ErrInvalidKind   = errors.New("option type must be call or put")
)

// OptionKind is the exercise right of the option. The zero value is Call.
type OptionKind int

const (
	Call OptionKind = iota // Call pays max(S-K, 0) at expiry.
	Put                    // Put pays max(K-S, 0) at expiry.
)

// ParseOptionKind accepts "call", "c", "put" or "p" in any case.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return Call, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

func (k OptionKind) String() string {
	if k == Put {
		return "put"
	}
	return "call"
}

// OptionSpec describes one European option contract at a valuation point.
type OptionSpec struct {
	Spot     float64    // S, underlying price
	Strike   float64    // K
	Expiry   float64    // T, years to expiry; <= 0 means expired
	Rate     float64    // r, continuously compounded risk-free rate
	DivYield float64    // q, continuously compounded dividend yield
	Kind     OptionKind // call or put
}

// Validate checks the domain preconditions of Price. Price itself never
// checks them, so callers validate once before pricing or solving.
func (spec OptionSpec) Validate() error {
	if !(spec.Spot > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidSpot, spec.Spot)
	}
	if !(spec.Strike > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidStrike, spec.Strike)
	}
	if spec.Kind != Call && spec.Kind != Put {
		return fmt.Errorf("%w: got %d", ErrInvalidKind, int(spec.Kind))
	}
	return nil
}
