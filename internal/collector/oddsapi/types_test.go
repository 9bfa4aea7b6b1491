package oddsapi_test

import (
	"testing"

	"github.com/tkonrad/gridironbot/internal/collector/oddsapi"
)

func event(bookmakers ...oddsapi.APIBookmaker) oddsapi.APIEvent {
	return oddsapi.APIEvent{
		ID:         "ev1",
		HomeTeam:   "Philadelphia Eagles",
		AwayTeam:   "Dallas Cowboys",
		Bookmakers: bookmakers,
	}
}

func book(title, market string, outcomes ...oddsapi.APIOutcome) oddsapi.APIBookmaker {
	return oddsapi.APIBookmaker{
		Key:   title,
		Title: title,
		Markets: []oddsapi.APIMarket{
			{Key: market, Outcomes: outcomes},
		},
	}
}

func TestBestOutcomesAggregatesAcrossBooks(t *testing.T) {
	ev := event(
		book("DraftKings", "player_anytime_td",
			oddsapi.APIOutcome{Description: "AJ Brown", Price: 150},
			oddsapi.APIOutcome{Description: "CeeDee Lamb", Price: 180},
		),
		book("FanDuel", "player_anytime_td",
			oddsapi.APIOutcome{Description: "AJ Brown", Price: 165},
			oddsapi.APIOutcome{Description: "CeeDee Lamb", Price: 170},
		),
	)

	best := ev.BestOutcomes("player_anytime_td")
	if len(best) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(best))
	}
	// Longest first.
	if best[0].Name != "CeeDee Lamb" || best[0].American != 180 || best[0].Book != "DraftKings" {
		t.Errorf("best[0] = %+v, want CeeDee Lamb +180 @ DraftKings", best[0])
	}
	if best[1].Name != "AJ Brown" || best[1].American != 165 || best[1].Book != "FanDuel" {
		t.Errorf("best[1] = %+v, want AJ Brown +165 @ FanDuel", best[1])
	}
}

func TestBestOutcomesSkipsOtherMarketsAndBadRows(t *testing.T) {
	ev := event(
		book("DraftKings", "h2h",
			oddsapi.APIOutcome{Name: "Philadelphia Eagles", Price: -300},
		),
		book("FanDuel", "player_anytime_td",
			oddsapi.APIOutcome{Description: "AJ Brown", Price: 165},
			oddsapi.APIOutcome{Description: "No Price"},
			oddsapi.APIOutcome{Price: 120}, // nameless
		),
	)

	best := ev.BestOutcomes("player_anytime_td")
	if len(best) != 1 || best[0].Name != "AJ Brown" {
		t.Errorf("got %+v, want only AJ Brown", best)
	}
}

func TestToDomainGame(t *testing.T) {
	g := event().ToDomainGame()
	if g.ID != "COW@EAG" {
		t.Errorf("game ID = %q, want COW@EAG", g.ID)
	}
	if g.Title() != "Dallas Cowboys at Philadelphia Eagles" {
		t.Errorf("title = %q", g.Title())
	}
}
