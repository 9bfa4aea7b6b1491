package engine

import "github.com/tkonrad/gridironbot/internal/domain"

// Policy is the threshold set for single-best-pick selection. It is an
// explicit value passed into the selector so tests and alternate boards can
// run different policies without global mutation.
type Policy struct {
	// Stake-label thresholds. FULL requires both the EV and probability
	// floors for full stake; HALF likewise. Evaluated top-down, first match
	// wins.
	MinEVFull   float64
	MinEVHalf   float64
	MinProbFull float64
	MinProbHalf float64

	// Eligibility floors. A candidate below either is excluded regardless of
	// its stake label.
	MinEdgePoints   float64
	MinDecimalPrice float64

	// BackupMaxProbGap is the widest fair-probability gap at which the
	// runner-up is still offered as a backup to the primary.
	BackupMaxProbGap float64
}

// DefaultPolicy returns the production thresholds for the first-TD board.
func DefaultPolicy() Policy {
	return Policy{
		MinEVFull:        0.20,
		MinEVHalf:        0.12,
		MinProbFull:      0.20,
		MinProbHalf:      0.10,
		MinEdgePoints:    1.0,
		MinDecimalPrice:  9.0, // +900 or longer only
		BackupMaxProbGap: 0.015,
	}
}

// StakeFor applies the first-match-wins stake cascade: FULL, then HALF, then
// nothing.
func (p Policy) StakeFor(ev, prob float64) domain.StakeLabel {
	switch {
	case ev >= p.MinEVFull && prob >= p.MinProbFull:
		return domain.StakeFull
	case ev >= p.MinEVHalf && prob >= p.MinProbHalf:
		return domain.StakeHalf
	default:
		return domain.StakeNone
	}
}

// BoardPolicy is the threshold set for the favorites-plus-coin-flip board.
type BoardPolicy struct {
	// FavoriteSlots is how many favorite-style slots must fill for the game
	// to report at all.
	FavoriteSlots int

	// Favorite slots keep only short-priced, clearly-ahead candidates.
	FavoriteMinBookProb float64
	FavoriteMinEdge     float64

	// The coin-flip slot keeps only genuinely uncertain propositions: the
	// book-implied probability must sit inside the band.
	CoinFlipMinBookProb float64
	CoinFlipMaxBookProb float64
	CoinFlipMinEdge     float64
}

// DefaultBoardPolicy returns the production thresholds for the favorites
// board.
func DefaultBoardPolicy() BoardPolicy {
	return BoardPolicy{
		FavoriteSlots:       2,
		FavoriteMinBookProb: 0.75,
		FavoriteMinEdge:     2.5,
		CoinFlipMinBookProb: 0.45,
		CoinFlipMaxBookProb: 0.60,
		CoinFlipMinEdge:     3.0,
	}
}
