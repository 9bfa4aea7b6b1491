// Package pipeline orchestrates a full evaluation run: collect quotes, score
// them against the fair-value model, select picks, persist, and deliver.
package pipeline

import (
	"log/slog"

	"github.com/tkonrad/gridironbot/internal/domain"
	"github.com/tkonrad/gridironbot/internal/engine"
	"github.com/tkonrad/gridironbot/internal/model"
	"github.com/tkonrad/gridironbot/internal/odds"
)

// Evaluator turns one game's raw quotes into scored candidates and applies
// the selectors. It is pure given its model and policies; all I/O lives in
// the Runner.
type Evaluator struct {
	model    *model.Model
	selector *engine.Selector
	board    *engine.BoardSelector
	logger   *slog.Logger
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(m *model.Model, sel *engine.Selector, board *engine.BoardSelector, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		model:    m,
		selector: sel,
		board:    board,
		logger:   logger.With(slog.String("component", "evaluator")),
	}
}

// Score converts raw quotes into candidates: book odds to probabilities, one
// fair-value estimate per market, then edge and EV. Quotes with unpriceable
// odds or markets the model has no opinion on are silently dropped; one bad
// row never aborts the game.
func (e *Evaluator) Score(game domain.Game, gctx domain.GameContext, quotes []domain.Quote) []domain.Candidate {
	cands := make([]domain.Candidate, 0, len(quotes))
	for _, q := range quotes {
		bookProb, err := odds.ProbFromAmerican(q.Price)
		if err != nil {
			e.logger.Debug("dropping unpriceable quote",
				slog.String("game", game.ID),
				slog.String("label", q.Label),
				slog.Int("price", q.Price),
			)
			continue
		}
		decimal, err := odds.DecimalFromAmerican(q.Price)
		if err != nil {
			continue
		}

		fair, ok := e.fairProb(gctx, q)
		if !ok {
			continue
		}
		fair = odds.Clamp(fair)

		cands = append(cands, domain.Candidate{
			GameID:       game.ID,
			Market:       q.Market,
			Label:        q.Label,
			Slot:         q.Slot,
			Book:         q.Price,
			BookDecimal:  decimal,
			BookProb:     bookProb,
			FairProb:     fair,
			FairAmerican: odds.AmericanFromProb(fair),
			Edge:         engine.EdgePoints(fair, bookProb),
			EV:           engine.ExpectedValue(fair, decimal),
		})
	}
	return cands
}

// fairProb picks the estimator for a quote's market. A collector-supplied
// probability (player TD shares) always wins over the game-level model.
func (e *Evaluator) fairProb(gctx domain.GameContext, q domain.Quote) (float64, bool) {
	if q.FairProb != nil {
		return *q.FairProb, true
	}

	mag := gctx.SpreadMagnitude()
	switch q.Market {
	case domain.MarketMoneyline:
		return e.model.WinProbFromSpread(mag), true

	case domain.MarketPassTD:
		fav, _ := e.model.TeamTotals(gctx.TotalPoints, mag)
		return e.model.PassingTDProb(fav), true

	case domain.MarketFirstTeamScore:
		// Race of two Poisson scorers: the favorite strikes first with
		// probability proportional to its scoring rate.
		fav, dog := e.model.TeamTotals(gctx.TotalPoints, mag)
		if fav+dog <= 0 {
			return model.NeutralProb, true
		}
		return fav / (fav + dog), true

	case domain.MarketReceptionsOver:
		return e.model.ReceptionOverProb(gctx.TotalPoints, gctx.SpreadPoints, q.Line), true

	default:
		// First-TD and anytime-TD quotes carry collector-derived player
		// shares; without one there is nothing to price them against.
		return 0, false
	}
}

// SelectBest runs single-best selection over one game's candidates.
func (e *Evaluator) SelectBest(cands []domain.Candidate) domain.SelectionResult {
	return e.selector.SelectBest(cands)
}

// SelectBoard runs board selection over one game's candidates.
func (e *Evaluator) SelectBoard(game domain.Game, cands []domain.Candidate) (domain.GameBoard, bool) {
	return e.board.SelectBoard(game, cands)
}
