package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tkonrad/gridironbot/internal/pipeline"
	"github.com/tkonrad/gridironbot/internal/schedule"
	"github.com/tkonrad/gridironbot/internal/server"
	"github.com/tkonrad/gridironbot/internal/server/handler"
	"github.com/tkonrad/gridironbot/internal/server/ws"
)

// AlertMode runs one single-best evaluation pass if the clock sits inside a
// kickoff window, then exits. Intended for cron-style invocation.
func (a *App) AlertMode(ctx context.Context, deps *Dependencies) error {
	window, kickoff, ok, err := deps.Gate.ShouldRun(ctx)
	if err != nil {
		return fmt.Errorf("alert mode: %w", err)
	}
	if !ok {
		a.logger.InfoContext(ctx, "outside kickoff windows, nothing to do")
		return nil
	}

	a.logger.InfoContext(ctx, "alert run",
		slog.String("window", window),
		slog.Time("kickoff", kickoff),
	)
	return a.newRunner(deps, nil).RunAlert(ctx, window)
}

// BoardMode runs one board evaluation pass if the clock sits inside a kickoff
// window, then exits. The final-window board message is pinned.
func (a *App) BoardMode(ctx context.Context, deps *Dependencies) error {
	window, kickoff, ok, err := deps.Gate.ShouldRun(ctx)
	if err != nil {
		return fmt.Errorf("board mode: %w", err)
	}
	if !ok {
		a.logger.InfoContext(ctx, "outside kickoff windows, nothing to do")
		return nil
	}

	a.logger.InfoContext(ctx, "board run",
		slog.String("window", window),
		slog.Time("kickoff", kickoff),
	)
	return a.newRunner(deps, nil).RunBoard(ctx, window)
}

// ScrapeMode drives the sportsbook page scraper once and announces a raw
// best-price summary. No model, no selection.
func (a *App) ScrapeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scrape mode")
	return a.newRunner(deps, nil).RunScrape(ctx)
}

// WatchMode is the long-running daemon: a ticker polls the kickoff gate, the
// preview window triggers the single-best alert run, the final window
// triggers the pinned board run. The status server and WebSocket hub run
// alongside when enabled.
func (a *App) WatchMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting watch mode",
		slog.Duration("tick", a.cfg.Schedule.TickerInterval.Duration),
	)

	g, ctx := errgroup.WithContext(ctx)

	hub := ws.NewHub(a.logger)
	g.Go(func() error {
		return hub.Run(ctx)
	})

	runner := a.newRunner(deps, hub)

	if a.cfg.Server.Enabled {
		a.startStatusServer(ctx, g, deps, hub)
	}

	g.Go(func() error {
		interval := a.cfg.Schedule.TickerInterval.Duration
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			a.watchTick(ctx, deps, runner)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	})

	return g.Wait()
}

// watchTick runs one gate check and, when a window is open, the matching
// pipeline run. Failures are logged; the watch loop never stops on them.
func (a *App) watchTick(ctx context.Context, deps *Dependencies, runner *pipeline.Runner) {
	window, kickoff, ok, err := deps.Gate.ShouldRun(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "kickoff gate check failed", slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}

	a.logger.InfoContext(ctx, "kickoff window open",
		slog.String("window", window),
		slog.Time("kickoff", kickoff),
	)

	// Preview gets the single-best picks; the final pass posts the board.
	// Repeat ticks inside the same window are absorbed by the run lock and
	// the announce dedup.
	if window == schedule.WindowPreview {
		err = runner.RunAlert(ctx, window)
	} else {
		err = runner.RunBoard(ctx, window)
	}
	if err != nil {
		a.logger.ErrorContext(ctx, "pipeline run failed",
			slog.String("window", window),
			slog.String("error", err.Error()),
		)
	}
}

// ServeMode runs only the status server and WebSocket hub, serving pick
// history from Postgres without evaluating anything.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	if !a.cfg.Server.Enabled {
		return fmt.Errorf("serve mode: server is disabled in config")
	}
	a.logger.InfoContext(ctx, "starting serve mode")

	g, ctx := errgroup.WithContext(ctx)

	hub := ws.NewHub(a.logger)
	g.Go(func() error {
		return hub.Run(ctx)
	})

	a.startStatusServer(ctx, g, deps, hub)

	return g.Wait()
}

// newRunner assembles the pipeline runner from the wired dependencies. hub is
// optional; only the daemon modes broadcast live picks.
func (a *App) newRunner(deps *Dependencies, hub pipeline.PickBroadcaster) *pipeline.Runner {
	cfg := pipeline.Config{
		OddsCacheTTL:       a.cfg.Runner.OddsCacheTTL.Duration,
		DedupTTL:           a.cfg.Runner.DedupTTL.Duration,
		LockTTL:            a.cfg.Runner.LockTTL.Duration,
		MaxConcurrentGames: a.cfg.Runner.MaxConcurrentGames,
	}
	return pipeline.NewRunner(cfg, pipeline.Deps{
		OddsClient: deps.OddsClient,
		Scraper:    deps.Scraper,
		Evaluator:  deps.Evaluator,
		Notifier:   deps.Notifier,
		Picks:      deps.Picks,
		Games:      deps.Games,
		Cache:      deps.OddsCache,
		Dedup:      deps.Dedup,
		Lock:       deps.Lock,
		Archiver:   deps.Archiver,
		Hub:        hub,
	}, a.logger)
}

// startStatusServer adds the HTTP server goroutines to the given errgroup.
// The server is shut down gracefully when the context is cancelled.
func (a *App) startStatusServer(ctx context.Context, g *errgroup.Group, deps *Dependencies, hub *ws.Hub) {
	srv := server.New(
		server.Config{
			Port:        a.cfg.Server.Port,
			CORSOrigins: a.cfg.Server.CORSOrigins,
		},
		server.Handlers{
			Health: handler.NewHealthHandler(),
			Picks:  handler.NewPickHandler(deps.Picks, a.logger),
			Status: handler.NewStatusHandler(a.cfg.Mode),
		},
		hub,
		a.logger,
	)

	g.Go(srv.Start)

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
}
