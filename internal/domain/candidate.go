package domain

// StakeLabel is the confidence label attached to a surfaced candidate.
type StakeLabel string

const (
	StakeFull StakeLabel = "FULL STAKE"
	StakeHalf StakeLabel = "HALF STAKE"
	StakeNone StakeLabel = ""
)

// Slot classifies which board slot a candidate competes for.
type Slot string

const (
	// SlotFavorite is a high-probability proposition (moneyline favorite,
	// QB 1+ passing TD).
	SlotFavorite Slot = "favorite"
	// SlotCoinFlip is a genuinely uncertain mid-probability proposition
	// (reception over/under near the line).
	SlotCoinFlip Slot = "coinflip"
	// SlotLongshot is a long-priced proposition (first TD scorer).
	SlotLongshot Slot = "longshot"
)

// Market keys for the propositions the engine knows how to price.
const (
	MarketMoneyline      = "moneyline"
	MarketPassTD         = "pass_td_1plus"
	MarketFirstTeamScore = "first_team_to_score"
	MarketFirstTD        = "first_td"
	MarketAnytimeTD      = "anytime_td"
	MarketReceptionsOver = "receptions_over"
)

// Candidate is a single scored proposition for one game. Candidates are
// produced fresh per evaluation pass and never mutated afterwards.
type Candidate struct {
	GameID string
	Market string
	Label  string // human-readable outcome, e.g. "J. Hurts 1+ Pass TD"
	Slot   Slot

	Book         int     // posted American odds
	BookDecimal  float64 // decimal equivalent of Book
	BookProb     float64 // implied probability of Book
	FairProb     float64 // model probability
	FairAmerican int     // FairProb expressed as American odds

	Edge  float64 // percentage points, fair minus book
	EV    float64 // expected return per unit stake
	Stake StakeLabel
}

// SelectionResult is the outcome of single-best-pick selection for one game.
// Both fields may be nil: an empty result is a normal outcome, not an error.
type SelectionResult struct {
	Primary *Candidate
	Backup  *Candidate
}

// Empty reports whether selection produced no qualifying pick.
func (r SelectionResult) Empty() bool {
	return r.Primary == nil
}

// GameBoard is the favorites-plus-coin-flip output for one game. A board is
// only emitted when every required slot filled.
type GameBoard struct {
	GameID    string
	Title     string // "AWAY at HOME"
	Favorites []Candidate
	CoinFlip  Candidate
}
