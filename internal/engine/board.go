package engine

import (
	"sort"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// BoardSelector fills the favorites-plus-coin-flip board for one game. Each
// favorite slot is a distinct market (moneyline, QB 1+ pass TD); the
// coin-flip slot is a mid-probability prop. The board is all-or-nothing: if
// any required slot stays empty the game reports nothing, keeping the output
// consistent in shape across games.
type BoardSelector struct {
	policy BoardPolicy
}

// NewBoardSelector creates a BoardSelector with the given policy.
func NewBoardSelector(policy BoardPolicy) *BoardSelector {
	return &BoardSelector{policy: policy}
}

// SelectBoard evaluates the slots independently and returns the filled board.
// ok is false when any slot failed to fill.
func (b *BoardSelector) SelectBoard(game domain.Game, cands []domain.Candidate) (domain.GameBoard, bool) {
	favorites := b.pickFavorites(cands)
	if len(favorites) < b.policy.FavoriteSlots {
		return domain.GameBoard{}, false
	}

	coin, ok := b.pickCoinFlip(cands)
	if !ok {
		return domain.GameBoard{}, false
	}

	return domain.GameBoard{
		GameID:    game.ID,
		Title:     game.Title(),
		Favorites: favorites[:b.policy.FavoriteSlots],
		CoinFlip:  coin,
	}, true
}

// pickFavorites keeps favorite-slot candidates whose book-implied probability
// and edge clear the floors, then takes the single highest-edge survivor per
// market. Markets are emitted in sorted order for reproducibility.
func (b *BoardSelector) pickFavorites(cands []domain.Candidate) []domain.Candidate {
	bestByMarket := make(map[string]domain.Candidate)
	for _, c := range cands {
		if c.Slot != domain.SlotFavorite {
			continue
		}
		if c.BookProb < b.policy.FavoriteMinBookProb {
			continue
		}
		if c.Edge < b.policy.FavoriteMinEdge {
			continue
		}
		cur, seen := bestByMarket[c.Market]
		if !seen || better(c, cur) {
			bestByMarket[c.Market] = c
		}
	}

	markets := make([]string, 0, len(bestByMarket))
	for m := range bestByMarket {
		markets = append(markets, m)
	}
	sort.Strings(markets)

	out := make([]domain.Candidate, 0, len(markets))
	for _, m := range markets {
		out = append(out, bestByMarket[m])
	}
	return out
}

// pickCoinFlip keeps coin-flip candidates whose book-implied probability sits
// inside the uncertainty band and whose edge clears the floor, and returns
// the best survivor.
func (b *BoardSelector) pickCoinFlip(cands []domain.Candidate) (domain.Candidate, bool) {
	var best domain.Candidate
	found := false
	for _, c := range cands {
		if c.Slot != domain.SlotCoinFlip {
			continue
		}
		if c.BookProb < b.policy.CoinFlipMinBookProb || c.BookProb > b.policy.CoinFlipMaxBookProb {
			continue
		}
		if c.Edge < b.policy.CoinFlipMinEdge {
			continue
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

// better orders candidates by edge descending, then fair probability, then
// label, so slot winners are deterministic under ties.
func better(a, b domain.Candidate) bool {
	if a.Edge != b.Edge {
		return a.Edge > b.Edge
	}
	if a.FairProb != b.FairProb {
		return a.FairProb > b.FairProb
	}
	return a.Label < b.Label
}
