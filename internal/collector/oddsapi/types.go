package oddsapi

import (
	"sort"
	"strings"
	"time"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// APIEvent is one event row from The Odds API v4. The bookmakers array is
// only populated by the /odds endpoint, not /events.
type APIEvent struct {
	ID           string         `json:"id"`
	SportKey     string         `json:"sport_key"`
	CommenceTime time.Time      `json:"commence_time"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	Bookmakers   []APIBookmaker `json:"bookmakers,omitempty"`
}

// APIBookmaker is one book's markets for an event.
type APIBookmaker struct {
	Key     string      `json:"key"`
	Title   string      `json:"title"`
	Markets []APIMarket `json:"markets"`
}

// APIMarket is one market (h2h, player_anytime_td, ...) at one book.
type APIMarket struct {
	Key      string       `json:"key"`
	Outcomes []APIOutcome `json:"outcomes"`
}

// APIOutcome is a single priced outcome. Price is American odds when the
// request asked for oddsFormat=american. Point carries the line for spread,
// total, and count markets.
type APIOutcome struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Point       float64 `json:"point,omitempty"`
}

// BestPrice is the best posted price for one outcome across all books.
type BestPrice struct {
	Name     string
	American int
	Book     string
}

// ToDomainGame converts an event to the domain game record. The ID uses the
// "AWY@HOM" convention built from team-name abbreviations.
func (e APIEvent) ToDomainGame() domain.Game {
	return domain.Game{
		ID:      abbr(e.AwayTeam) + "@" + abbr(e.HomeTeam),
		Home:    e.HomeTeam,
		Away:    e.AwayTeam,
		Kickoff: e.CommenceTime,
	}
}

// abbr reduces a full team name to a short tag from its nickname ("Dallas
// Cowboys" -> "COW"). Crude but stable, which is all the game ID needs.
func abbr(team string) string {
	fields := strings.Fields(team)
	if len(fields) == 0 {
		return "UNK"
	}
	nick := strings.ToUpper(fields[len(fields)-1])
	if len(nick) > 3 {
		nick = nick[:3]
	}
	return nick
}

// BestOutcomes aggregates the best (longest) American price per outcome name
// across every book carrying the given market, longest first. Outcomes
// without a usable price are skipped.
func (e APIEvent) BestOutcomes(marketKey string) []BestPrice {
	best := make(map[string]BestPrice)
	for _, bk := range e.Bookmakers {
		title := bk.Title
		if title == "" {
			title = bk.Key
		}
		for _, m := range bk.Markets {
			if m.Key != marketKey {
				continue
			}
			for _, o := range m.Outcomes {
				name := o.Name
				if o.Description != "" {
					// Player props carry the player in the description.
					name = o.Description
				}
				price := int(o.Price)
				if name == "" || price == 0 {
					continue
				}
				if cur, ok := best[name]; !ok || price > cur.American {
					best[name] = BestPrice{Name: name, American: price, Book: title}
				}
			}
		}
	}

	out := make([]BestPrice, 0, len(best))
	for _, bp := range best {
		out = append(out, bp)
	}
	// Longest price first; ties break by name so the ordering is
	// reproducible.
	sort.Slice(out, func(i, j int) bool {
		if out[i].American != out[j].American {
			return out[i].American > out[j].American
		}
		return out[i].Name < out[j].Name
	})
	return out
}
