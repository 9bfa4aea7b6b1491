package oddsapi

import (
	"sort"

	"github.com/tkonrad/gridironbot/internal/domain"
	"github.com/tkonrad/gridironbot/internal/odds"
)

// API market keys this collector understands.
const (
	marketH2H            = "h2h"
	marketSpreads        = "spreads"
	marketTotals         = "totals"
	marketAnytimeTD      = "player_anytime_td"
	marketFirstTD        = "player_first_td"
	marketFirstTeamScore = "first_team_to_score"
)

// DefaultMarkets is the comma-separated market list requested from the API.
const DefaultMarkets = "h2h,spreads,totals,player_anytime_td,player_first_td,first_team_to_score"

// GameLines extracts the posted total and home spread from the event's
// spreads/totals markets. Missing lines come back as zero; the evaluator's
// neutral fallbacks handle that downstream.
func (e APIEvent) GameLines() domain.GameContext {
	var gctx domain.GameContext
	for _, bk := range e.Bookmakers {
		for _, m := range bk.Markets {
			switch m.Key {
			case marketSpreads:
				if gctx.SpreadPoints != 0 {
					continue
				}
				for _, o := range m.Outcomes {
					if o.Name == e.HomeTeam && o.Point != 0 {
						gctx.SpreadPoints = o.Point
					}
				}
			case marketTotals:
				if gctx.TotalPoints != 0 {
					continue
				}
				for _, o := range m.Outcomes {
					if o.Point > 0 {
						gctx.TotalPoints = o.Point
						break
					}
				}
			}
		}
	}
	return gctx
}

// Quotes flattens the event's priced markets into engine quotes.
//
// Game-level markets (moneyline, first team to score) are priced by the
// model from game context, so their quotes carry no FairProb. Player TD
// props can't be priced from game context alone; for those the consensus
// implied probability across books serves as the fair value, and the best
// posted price as the book side, so the edge is the line-shopping gap.
func (e APIEvent) Quotes() []domain.Quote {
	var quotes []domain.Quote

	if fav, ok := e.moneylineFavorite(); ok {
		quotes = append(quotes, fav)
	}

	for _, o := range e.BestOutcomes(marketFirstTeamScore) {
		quotes = append(quotes, domain.Quote{
			Market: domain.MarketFirstTeamScore,
			Label:  o.Name + " scores first",
			Slot:   domain.SlotFavorite,
			Price:  o.American,
		})
	}

	quotes = append(quotes, e.propQuotes(marketFirstTD, domain.MarketFirstTD)...)
	quotes = append(quotes, e.propQuotes(marketAnytimeTD, domain.MarketAnytimeTD)...)

	return quotes
}

// moneylineFavorite returns the h2h favorite side as a quote. The favorite is
// the side whose consensus implied probability is highest; pick'em games with
// no consensus favorite emit nothing.
func (e APIEvent) moneylineFavorite() (domain.Quote, bool) {
	cons := e.consensusProbs(marketH2H)
	if len(cons) < 2 {
		return domain.Quote{}, false
	}

	names := make([]string, 0, len(cons))
	for name := range cons {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return cons[names[i]] > cons[names[j]] })

	fav := names[0]
	for _, bp := range e.BestOutcomes(marketH2H) {
		if bp.Name == fav {
			return domain.Quote{
				Market: domain.MarketMoneyline,
				Label:  fav + " ML",
				Slot:   domain.SlotFavorite,
				Price:  bp.American,
			}, true
		}
	}
	return domain.Quote{}, false
}

// propQuotes builds player-prop quotes: best price across books, consensus
// implied probability as the fair value.
func (e APIEvent) propQuotes(apiMarket, market string) []domain.Quote {
	cons := e.consensusProbs(apiMarket)
	best := e.BestOutcomes(apiMarket)

	quotes := make([]domain.Quote, 0, len(best))
	for _, bp := range best {
		p, ok := cons[bp.Name]
		if !ok {
			continue
		}
		fair := p
		quotes = append(quotes, domain.Quote{
			Market:   market,
			Label:    bp.Name,
			Slot:     domain.SlotLongshot,
			Price:    bp.American,
			FairProb: &fair,
		})
	}
	return quotes
}

// consensusProbs averages the implied probability per outcome name across all
// books carrying the market.
func (e APIEvent) consensusProbs(marketKey string) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, bk := range e.Bookmakers {
		for _, m := range bk.Markets {
			if m.Key != marketKey {
				continue
			}
			for _, o := range m.Outcomes {
				name := o.Name
				if o.Description != "" {
					name = o.Description
				}
				p, err := odds.ProbFromAmerican(int(o.Price))
				if name == "" || err != nil {
					continue
				}
				sums[name] += p
				counts[name]++
			}
		}
	}

	out := make(map[string]float64, len(sums))
	for name, sum := range sums {
		out[name] = sum / float64(counts[name])
	}
	return out
}
