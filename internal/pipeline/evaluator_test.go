package pipeline

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/tkonrad/gridironbot/internal/domain"
	"github.com/tkonrad/gridironbot/internal/engine"
	"github.com/tkonrad/gridironbot/internal/model"
)

func testEvaluator() *Evaluator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEvaluator(
		model.New(model.DefaultParams()),
		engine.NewSelector(engine.DefaultPolicy()),
		engine.NewBoardSelector(engine.DefaultBoardPolicy()),
		logger,
	)
}

func testGame() domain.Game {
	return domain.Game{ID: "COW@EAG", Home: "Philadelphia Eagles", Away: "Dallas Cowboys"}
}

func TestScoreMoneyline(t *testing.T) {
	e := testEvaluator()
	gctx := domain.GameContext{TotalPoints: 47.5, SpreadPoints: -6.5}

	cands := e.Score(testGame(), gctx, []domain.Quote{
		{Market: domain.MarketMoneyline, Label: "Eagles ML", Slot: domain.SlotFavorite, Price: -300},
	})
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}

	c := cands[0]
	if math.Abs(c.BookProb-0.75) > 1e-9 {
		t.Errorf("book prob = %v, want 0.75", c.BookProb)
	}
	// A 6.5-point favorite lands in the high 60s, not the 75% the book
	// implies, so the edge is negative here.
	if c.FairProb < 0.60 || c.FairProb > 0.72 {
		t.Errorf("fair prob = %v, want within (0.60, 0.72)", c.FairProb)
	}
	if c.Edge >= 0 {
		t.Errorf("edge = %v, want negative when the book overprices", c.Edge)
	}
	if c.FairAmerican >= -100 {
		t.Errorf("fair american = %d, want a favorite price", c.FairAmerican)
	}
}

func TestScoreCollectorProbabilityWins(t *testing.T) {
	e := testEvaluator()
	fair := 0.25

	cands := e.Score(testGame(), domain.GameContext{TotalPoints: 44, SpreadPoints: -3}, []domain.Quote{
		{Market: domain.MarketFirstTD, Label: "AJ Brown", Slot: domain.SlotLongshot, Price: 500, FairProb: &fair},
	})
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}

	c := cands[0]
	if math.Abs(c.FairProb-0.25) > 1e-9 {
		t.Errorf("fair prob = %v, want the collector-supplied 0.25", c.FairProb)
	}
	// Book +500 implies 1/6; the override creates a positive edge.
	wantEdge := (0.25 - 1.0/6.0) * 100
	if math.Abs(c.Edge-wantEdge) > 1e-6 {
		t.Errorf("edge = %v, want %v", c.Edge, wantEdge)
	}
}

func TestScoreDropsUnpriceableRows(t *testing.T) {
	e := testEvaluator()
	gctx := domain.GameContext{TotalPoints: 44, SpreadPoints: -3}

	cands := e.Score(testGame(), gctx, []domain.Quote{
		{Market: domain.MarketMoneyline, Label: "bad price", Price: 50},
		{Market: domain.MarketAnytimeTD, Label: "no player share", Price: 300},
		{Market: domain.MarketMoneyline, Label: "Eagles ML", Price: -150},
	})
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want only the priceable moneyline", len(cands))
	}
	if cands[0].Label != "Eagles ML" {
		t.Errorf("kept %q", cands[0].Label)
	}
}

func TestScoreFirstTeamToScore(t *testing.T) {
	e := testEvaluator()
	gctx := domain.GameContext{TotalPoints: 44, SpreadPoints: -3}

	cands := e.Score(testGame(), gctx, []domain.Quote{
		{Market: domain.MarketFirstTeamScore, Label: "Eagles scores first", Slot: domain.SlotFavorite, Price: -130},
	})
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}

	// Favorite implied total 23.5 of 44 points: the favorite strikes first
	// with probability 23.5/44.
	want := 23.5 / 44.0
	if math.Abs(cands[0].FairProb-want) > 1e-9 {
		t.Errorf("fair prob = %v, want %v", cands[0].FairProb, want)
	}
}

func TestScoreReceptionOver(t *testing.T) {
	e := testEvaluator()
	gctx := domain.GameContext{TotalPoints: 44, SpreadPoints: -3}

	cands := e.Score(testGame(), gctx, []domain.Quote{
		{Market: domain.MarketReceptionsOver, Label: "D. Smith Over 3.5 Receptions", Slot: domain.SlotCoinFlip, Price: 105, Line: 3.5},
	})
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if cands[0].FairProb < 0.40 || cands[0].FairProb > 0.55 {
		t.Errorf("fair prob = %v, want a coin-flip band value", cands[0].FairProb)
	}
}

func TestScoreThenSelectBestEndToEnd(t *testing.T) {
	e := testEvaluator()
	gctx := domain.GameContext{TotalPoints: 44, SpreadPoints: -3}

	strong, weak := 0.30, 0.12
	cands := e.Score(testGame(), gctx, []domain.Quote{
		{Market: domain.MarketFirstTD, Label: "AJ Brown", Slot: domain.SlotLongshot, Price: 900, FairProb: &strong},
		{Market: domain.MarketFirstTD, Label: "D. Smith", Slot: domain.SlotLongshot, Price: 900, FairProb: &weak},
	})
	res := e.SelectBest(cands)
	if res.Empty() {
		t.Fatal("expected a primary pick")
	}
	if res.Primary.Label != "AJ Brown" {
		t.Errorf("primary = %q, want AJ Brown", res.Primary.Label)
	}
	// 0.30 at +900: EV = 0.30*9 - 0.70 = 2.0, comfortably FULL STAKE.
	if res.Primary.Stake != domain.StakeFull {
		t.Errorf("stake = %q, want FULL STAKE", res.Primary.Stake)
	}
	// The gap to 0.12 far exceeds the backup window.
	if res.Backup != nil {
		t.Errorf("unexpected backup %q", res.Backup.Label)
	}
}
