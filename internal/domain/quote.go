package domain

// Quote is a raw priced proposition handed to the engine by a collector
// (odds API or page scraper). It carries no model output; scoring turns
// quotes into candidates.
type Quote struct {
	Market string
	Label  string
	Slot   Slot
	Price  int     // posted American odds
	Line   float64 // prop line for count markets (e.g. 3.5 receptions)

	// FairProb optionally overrides the model: some collectors supply an
	// externally derived probability (e.g. first-TD player shares). Nil
	// means the engine prices from GameContext.
	FairProb *float64
}
