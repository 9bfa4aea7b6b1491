package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	s3blob "github.com/tkonrad/gridironbot/internal/blob/s3"
	"github.com/tkonrad/gridironbot/internal/collector/oddsapi"
	"github.com/tkonrad/gridironbot/internal/collector/scraper"
	"github.com/tkonrad/gridironbot/internal/domain"
	"github.com/tkonrad/gridironbot/internal/metrics"
	"github.com/tkonrad/gridironbot/internal/notify"
	"github.com/tkonrad/gridironbot/internal/schedule"
)

// PickBroadcaster pushes surfaced picks to live subscribers (the WebSocket
// hub). Nil-safe at the Runner level.
type PickBroadcaster interface {
	BroadcastPicks(window string, picks []domain.Pick)
}

// Config holds runner tunables.
type Config struct {
	// OddsCacheTTL is how long a raw odds snapshot stays valid. Should span
	// the gap between the preview and final windows.
	OddsCacheTTL time.Duration
	// DedupTTL is how long an announced pick stays suppressed.
	DedupTTL time.Duration
	// LockTTL bounds how long a crashed run can hold the run lock.
	LockTTL time.Duration
	// MaxConcurrentGames caps the evaluation fan-out.
	MaxConcurrentGames int
}

// DefaultConfig returns the production runner settings.
func DefaultConfig() Config {
	return Config{
		OddsCacheTTL:       20 * time.Minute,
		DedupTTL:           6 * time.Hour,
		LockTTL:            10 * time.Minute,
		MaxConcurrentGames: 8,
	}
}

// Deps are the runner's collaborators. OddsClient, Evaluator, and Notifier
// are required; everything else is optional and skipped when nil.
type Deps struct {
	OddsClient *oddsapi.Client
	Scraper    *scraper.Scraper
	Evaluator  *Evaluator
	Notifier   *notify.Notifier

	Picks    domain.PickStore
	Games    domain.GameStore
	Cache    domain.OddsCache
	Dedup    domain.AlertDedup
	Lock     domain.RunLock
	Archiver *s3blob.SnapshotArchiver
	Hub      PickBroadcaster
}

// Runner orchestrates one full evaluation run: fetch, score, select,
// persist, dedup, deliver.
type Runner struct {
	cfg    Config
	deps   Deps
	logger *slog.Logger
	now    func() time.Time
}

// NewRunner creates a Runner.
func NewRunner(cfg Config, deps Deps, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		deps:   deps,
		logger: logger.With(slog.String("component", "runner")),
		now:    time.Now,
	}
}

// gameEval is one game's scored candidates, carried between the fan-out and
// the selection stage.
type gameEval struct {
	game  domain.Game
	gctx  domain.GameContext
	cands []domain.Candidate
}

// RunAlert executes single-best selection over the slate and announces one
// pick (plus optional backup) per game.
func (r *Runner) RunAlert(ctx context.Context, window string) error {
	return r.run(ctx, window, "alert", func(ctx context.Context, evals []gameEval) error {
		var (
			picks    []domain.Pick
			sections []string
		)
		for _, ev := range evals {
			res := r.deps.Evaluator.SelectBest(ev.cands)
			if res.Empty() {
				continue
			}
			section := FormatAlert(ev.game, res)
			picks = append(picks, r.toPick(*res.Primary, window, false))
			if res.Backup != nil {
				picks = append(picks, r.toPick(*res.Backup, window, true))
			}
			sections = append(sections, section)
		}
		return r.deliver(ctx, window, "picks", "Edge picks", picks, sections, false)
	})
}

// RunBoard executes board selection (two favorites plus a coin flip,
// all-or-nothing per game). The odds API feed has no pass-TD or reception
// markets, so the board also scrapes the book's event pages and scores those
// quotes into each game before selecting. The final-window board is pinned.
func (r *Runner) RunBoard(ctx context.Context, window string) error {
	return r.run(ctx, window, "board", func(ctx context.Context, evals []gameEval) error {
		evals = r.mergeScraped(evals, r.collectBoardPages(ctx))

		var (
			picks    []domain.Pick
			sections []string
		)
		for _, ev := range evals {
			board, ok := r.deps.Evaluator.SelectBoard(ev.game, ev.cands)
			if !ok {
				continue
			}
			sections = append(sections, FormatBoard(board))
			for _, f := range board.Favorites {
				picks = append(picks, r.toPick(f, window, false))
			}
			picks = append(picks, r.toPick(board.CoinFlip, window, false))
		}
		pin := window == schedule.WindowFinal
		return r.deliver(ctx, window, "board", "Game boards", picks, sections, pin)
	})
}

// run is the shared skeleton: lock, fetch, fan out evaluation, then hand the
// per-game results to the mode-specific select-and-deliver stage.
func (r *Runner) run(ctx context.Context, window, mode string, stage func(context.Context, []gameEval) error) error {
	start := r.now()
	defer func() {
		metrics.EvalDuration.Observe(time.Since(start).Seconds())
	}()

	if r.deps.Lock != nil {
		unlock, err := r.deps.Lock.Acquire(ctx, mode+":"+window, r.cfg.LockTTL)
		if errors.Is(err, domain.ErrLockHeld) {
			r.logger.Info("run already in progress, skipping",
				slog.String("mode", mode),
				slog.String("window", window),
			)
			metrics.RunsTotal.WithLabelValues(window, "skipped").Inc()
			return nil
		}
		if err != nil {
			metrics.RunsTotal.WithLabelValues(window, "error").Inc()
			return fmt.Errorf("pipeline: acquire run lock: %w", err)
		}
		defer unlock()
	}

	events, err := r.fetchOdds(ctx)
	if err != nil {
		metrics.CollectErrors.WithLabelValues("oddsapi").Inc()
		metrics.RunsTotal.WithLabelValues(window, "error").Inc()
		return err
	}

	r.upsertSlate(ctx, events)
	evals := r.evaluateAll(ctx, events)

	if err := stage(ctx, evals); err != nil {
		metrics.RunsTotal.WithLabelValues(window, "error").Inc()
		return err
	}
	metrics.RunsTotal.WithLabelValues(window, "ok").Inc()
	return nil
}

// fetchOdds returns the slate with prices, cache-aside through Redis. A
// fresh fetch is archived to object storage before returning.
func (r *Runner) fetchOdds(ctx context.Context) ([]oddsapi.APIEvent, error) {
	key := r.now().UTC().Format("2006-01-02")

	if r.deps.Cache != nil {
		data, err := r.deps.Cache.GetSnapshot(ctx, key)
		if err == nil {
			var events []oddsapi.APIEvent
			if err := json.Unmarshal(data, &events); err == nil {
				metrics.OddsCacheHits.WithLabelValues("hit").Inc()
				r.logger.Debug("odds snapshot cache hit", slog.String("key", key))
				return events, nil
			}
			r.logger.Warn("corrupt odds snapshot in cache, refetching", slog.String("key", key))
		} else if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("odds cache lookup failed", slog.String("error", err.Error()))
		}
		metrics.OddsCacheHits.WithLabelValues("miss").Inc()
	}

	events, err := r.deps.OddsClient.Odds(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: fetch odds: %w", err)
	}

	payload, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("pipeline: marshal odds snapshot: %w", err)
	}

	if r.deps.Cache != nil {
		if err := r.deps.Cache.SetSnapshot(ctx, key, payload, r.cfg.OddsCacheTTL); err != nil {
			r.logger.Warn("odds cache store failed", slog.String("error", err.Error()))
		}
	}
	if r.deps.Archiver != nil {
		if err := r.deps.Archiver.ArchiveOdds(ctx, r.now().UTC(), payload); err != nil {
			r.logger.Warn("odds snapshot archive failed", slog.String("error", err.Error()))
		}
	}

	return events, nil
}

// upsertSlate refreshes the games table. Best effort; a store failure never
// blocks evaluation.
func (r *Runner) upsertSlate(ctx context.Context, events []oddsapi.APIEvent) {
	if r.deps.Games == nil || len(events) == 0 {
		return
	}
	games := make([]domain.Game, 0, len(events))
	for _, ev := range events {
		games = append(games, ev.ToDomainGame())
	}
	if err := r.deps.Games.UpsertBatch(ctx, games); err != nil {
		r.logger.Warn("slate upsert failed", slog.String("error", err.Error()))
	}
}

// evaluateAll scores every game concurrently. One game's failure never
// aborts the rest; panics and errors surface as a logged skip.
func (r *Runner) evaluateAll(ctx context.Context, events []oddsapi.APIEvent) []gameEval {
	var (
		mu    sync.Mutex
		evals = make([]gameEval, 0, len(events))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxConcurrentGames)

	for _, ev := range events {
		ev := ev
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			game := ev.ToDomainGame()
			lines := ev.GameLines()
			cands := r.deps.Evaluator.Score(game, lines, ev.Quotes())
			if len(cands) == 0 {
				return nil
			}
			mu.Lock()
			evals = append(evals, gameEval{game: game, gctx: lines, cands: cands})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Fan-out order is nondeterministic; restore slate order.
	ordered := make([]gameEval, 0, len(evals))
	for _, ev := range events {
		id := ev.ToDomainGame().ID
		for _, e := range evals {
			if e.game.ID == id {
				ordered = append(ordered, e)
				break
			}
		}
	}
	return ordered
}

// collectBoardPages scrapes the book's event pages for the prop markets the
// odds API feed doesn't carry (QB 1+ pass TD, reception overs). A missing or
// failing scraper degrades the board to API quotes only rather than aborting
// the run.
func (r *Runner) collectBoardPages(ctx context.Context) []scraper.EventPage {
	if r.deps.Scraper == nil {
		r.logger.Warn("no scraper configured, board evaluates api quotes only")
		return nil
	}

	urls, err := r.deps.Scraper.EventURLs(ctx)
	if err != nil {
		metrics.CollectErrors.WithLabelValues("scraper").Inc()
		r.logger.Warn("event discovery failed, board evaluates api quotes only",
			slog.String("error", err.Error()),
		)
		return nil
	}

	pages := make([]scraper.EventPage, 0, len(urls))
	for _, url := range urls {
		page, err := r.deps.Scraper.Event(ctx, url)
		if err != nil {
			metrics.CollectErrors.WithLabelValues("scraper").Inc()
			r.logger.Warn("event scrape failed",
				slog.String("url", url),
				slog.String("error", err.Error()),
			)
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

// mergeScraped scores each matched page's quotes into its game's candidate
// set. Scraped game lines only fill gaps the API left at zero.
func (r *Runner) mergeScraped(evals []gameEval, pages []scraper.EventPage) []gameEval {
	if len(pages) == 0 {
		return evals
	}
	for i := range evals {
		page, ok := matchPage(pages, evals[i].game)
		if !ok {
			r.logger.Debug("no scraped page for game", slog.String("game", evals[i].game.ID))
			continue
		}
		lines := evals[i].gctx
		if lines.TotalPoints == 0 {
			lines.TotalPoints = page.Lines.TotalPoints
		}
		if lines.SpreadPoints == 0 {
			lines.SpreadPoints = page.Lines.SpreadPoints
		}
		evals[i].gctx = lines
		evals[i].cands = append(evals[i].cands, r.deps.Evaluator.Score(evals[i].game, lines, page.Quotes)...)
	}
	return evals
}

// matchPage finds the scraped page for a game. Book page titles carry team
// nicknames ("Cowboys @ Eagles"), not the API's full names, so matching is on
// the nickname of both sides.
func matchPage(pages []scraper.EventPage, g domain.Game) (scraper.EventPage, bool) {
	home, away := nickname(g.Home), nickname(g.Away)
	if home == "" || away == "" {
		return scraper.EventPage{}, false
	}
	for _, p := range pages {
		title := strings.ToLower(p.Title)
		if strings.Contains(title, home) && strings.Contains(title, away) {
			return p, true
		}
	}
	return scraper.EventPage{}, false
}

// nickname returns the last word of a team name, lowercased.
func nickname(team string) string {
	fields := strings.Fields(team)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

// deliver persists, dedups, broadcasts, and notifies one run's output. An
// empty pick set is a normal quiet run.
func (r *Runner) deliver(ctx context.Context, window, event, title string, picks []domain.Pick, sections []string, pin bool) error {
	if len(picks) == 0 {
		r.logger.Info("no qualifying picks this run", slog.String("window", window))
		return nil
	}

	picks = r.dedupPicks(ctx, window, picks)
	if len(picks) == 0 {
		r.logger.Info("all picks already announced", slog.String("window", window))
		return nil
	}

	for _, p := range picks {
		metrics.PicksSurfaced.WithLabelValues(p.Market).Inc()
	}

	if r.deps.Picks != nil {
		if err := r.deps.Picks.InsertBatch(ctx, picks); err != nil {
			r.logger.Error("pick persist failed", slog.String("error", err.Error()))
		}
	}
	if r.deps.Archiver != nil {
		if err := r.deps.Archiver.ArchivePicks(ctx, r.now().UTC(), window, picks); err != nil {
			r.logger.Warn("pick archive failed", slog.String("error", err.Error()))
		}
	}
	if r.deps.Hub != nil {
		r.deps.Hub.BroadcastPicks(window, picks)
	}

	message := FormatRun(window, sections)
	var err error
	if pin {
		err = r.deps.Notifier.NotifyPinned(ctx, event, title, message)
	} else {
		err = r.deps.Notifier.Notify(ctx, event, title, message)
	}
	if err != nil {
		metrics.NotifyFailures.WithLabelValues(event).Inc()
		return fmt.Errorf("pipeline: deliver %s: %w", event, err)
	}

	r.logger.Info("run delivered",
		slog.String("window", window),
		slog.Int("picks", len(picks)),
	)
	return nil
}

// dedupPicks drops picks already announced within the dedup TTL.
func (r *Runner) dedupPicks(ctx context.Context, window string, picks []domain.Pick) []domain.Pick {
	if r.deps.Dedup == nil {
		return picks
	}
	fresh := picks[:0]
	for _, p := range picks {
		key := fmt.Sprintf("%s:%s:%s:%s", window, p.GameID, p.Market, p.Label)
		first, err := r.deps.Dedup.FirstSeen(ctx, key, r.cfg.DedupTTL)
		if err != nil {
			r.logger.Warn("dedup check failed, announcing anyway",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			first = true
		}
		if first {
			fresh = append(fresh, p)
		}
	}
	return fresh
}

// toPick freezes a selected candidate into its persisted form.
func (r *Runner) toPick(c domain.Candidate, window string, backup bool) domain.Pick {
	return domain.Pick{
		ID:           uuid.New().String(),
		GameID:       c.GameID,
		Market:       c.Market,
		Label:        c.Label,
		Slot:         c.Slot,
		Book:         c.Book,
		FairAmerican: c.FairAmerican,
		FairProb:     c.FairProb,
		EdgePoints:   c.Edge,
		EV:           c.EV,
		Stake:        c.Stake,
		Window:       window,
		IsBackup:     backup,
		CreatedAt:    r.now().UTC(),
	}
}

// RunScrape drives the page scraper and announces a raw best-price summary
// per event. No model, no selection; this mode exists to eyeball what the
// book is posting.
func (r *Runner) RunScrape(ctx context.Context) error {
	if r.deps.Scraper == nil {
		return fmt.Errorf("pipeline: scrape mode requires a scraper")
	}

	urls, err := r.deps.Scraper.EventURLs(ctx)
	if err != nil {
		metrics.CollectErrors.WithLabelValues("scraper").Inc()
		return fmt.Errorf("pipeline: discover events: %w", err)
	}

	var sections []string
	for _, url := range urls {
		page, err := r.deps.Scraper.Event(ctx, url)
		if err != nil {
			metrics.CollectErrors.WithLabelValues("scraper").Inc()
			r.logger.Warn("event scrape failed",
				slog.String("url", url),
				slog.String("error", err.Error()),
			)
			continue
		}
		if len(page.Quotes) == 0 {
			continue
		}
		sections = append(sections, FormatQuoteSummary(page.Title, page.Quotes))
	}

	if len(sections) == 0 {
		r.logger.Info("scrape run produced no priced events")
		return nil
	}
	if err := r.deps.Notifier.Notify(ctx, "scrape", "Scraped prices", FormatRun("", sections)); err != nil {
		metrics.NotifyFailures.WithLabelValues("scrape").Inc()
		return fmt.Errorf("pipeline: deliver scrape summary: %w", err)
	}
	return nil
}
