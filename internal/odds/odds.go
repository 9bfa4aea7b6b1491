// Package odds converts between American odds, decimal odds, and implied
// probability. All conversions clamp probabilities away from 0 and 1 so the
// inverse forms stay finite.
package odds

import (
	"fmt"
	"math"
)

// Probability clamp boundaries. Probabilities outside (0, 1) would make the
// odds forms blow up, so every probability passing through this package is
// pinned to this range.
const (
	MinProb = 1e-6
	MaxProb = 0.999999
)

// Clamp pins p to [MinProb, MaxProb].
func Clamp(p float64) float64 {
	if p < MinProb {
		return MinProb
	}
	if p > MaxProb {
		return MaxProb
	}
	return p
}

// ProbFromAmerican converts American odds to implied probability.
// +150 → 0.40, -150 → 0.60. Magnitudes below 100 are not representable
// American odds and return an error.
func ProbFromAmerican(a int) (float64, error) {
	if a > -100 && a < 100 {
		return 0, fmt.Errorf("odds: american odds %d out of range", a)
	}
	if a > 0 {
		return 100.0 / (float64(a) + 100.0), nil
	}
	n := float64(-a)
	return n / (n + 100.0), nil
}

// AmericanFromProb converts a probability to the nearest integer American
// odds. The conversion is intentionally lossy (integer odds): re-deriving the
// probability from the result lands within a fraction of a percentage point
// of the input. p is clamped before converting.
func AmericanFromProb(p float64) int {
	p = Clamp(p)
	if p >= 0.5 {
		return -int(math.Round(100.0 * p / (1.0 - p)))
	}
	return int(math.Round(100.0 * (1.0 - p) / p))
}

// ProbFromDecimal converts decimal odds to implied probability (1/d).
func ProbFromDecimal(d float64) (float64, error) {
	if d <= 1.0 {
		return 0, fmt.Errorf("odds: decimal odds %.4f must be > 1.0", d)
	}
	return Clamp(1.0 / d), nil
}

// DecimalFromProb converts a probability to decimal odds. p is clamped so the
// result is always finite.
func DecimalFromProb(p float64) float64 {
	return 1.0 / Clamp(p)
}

// DecimalFromAmerican converts American odds to decimal odds.
// +150 → 2.50, -150 → 1.667.
func DecimalFromAmerican(a int) (float64, error) {
	if a > -100 && a < 100 {
		return 0, fmt.Errorf("odds: american odds %d out of range", a)
	}
	if a > 0 {
		return float64(a)/100.0 + 1.0, nil
	}
	return 100.0/float64(-a) + 1.0, nil
}

// AmericanFromDecimal converts decimal odds to the nearest integer American
// odds.
func AmericanFromDecimal(d float64) (int, error) {
	p, err := ProbFromDecimal(d)
	if err != nil {
		return 0, err
	}
	return AmericanFromProb(p), nil
}
