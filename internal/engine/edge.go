// Package engine combines model probabilities with book prices into edge and
// expected value, and applies the selection policies that decide which
// candidates get surfaced. Everything here is a deterministic pure function
// over immutable inputs; evaluating many games just means calling the same
// functions independently per game.
package engine

// EdgePoints returns the gap between the model's fair probability and the
// book-implied probability in percentage points. Positive means the model
// thinks the true probability exceeds what the market implies. Callers clamp;
// this does not re-clamp.
func EdgePoints(fair, book float64) float64 {
	return (fair - book) * 100
}

// ExpectedValue returns the expected return per unit stake at the given
// decimal price, assuming fair is the true probability:
// fair*(decimal-1) - (1-fair). Zero when the price exactly matches fair.
func ExpectedValue(fair, decimal float64) float64 {
	return fair*(decimal-1) - (1 - fair)
}
