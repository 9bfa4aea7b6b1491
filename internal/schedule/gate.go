// Package schedule decides whether the pipeline should run right now. Runs
// are gated to two pre-kickoff windows per game day: a preview pass about
// 90 minutes out and a final pass about 30 minutes out.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// Window identifiers carried on every pick produced by a gated run.
const (
	WindowPreview = "T90"
	WindowFinal   = "T30"
)

// Gate queries the public ESPN scoreboard for today's kickoffs and reports
// whether the current time falls inside a run window.
type Gate struct {
	baseURL     string
	http        *http.Client
	loc         *time.Location
	now         func() time.Time
	previewLead time.Duration
	finalLead   time.Duration
	tolerance   time.Duration
	logger      *slog.Logger
}

// Config holds gate parameters.
type Config struct {
	// BaseURL is the scoreboard API root. Defaults to the public ESPN site API.
	BaseURL string
	// Timezone is the IANA zone kickoffs are evaluated in. NFL schedules are
	// published Eastern.
	Timezone string
	Timeout  time.Duration
	// PreviewLead and FinalLead are how far before kickoff each window opens.
	PreviewLead time.Duration
	FinalLead   time.Duration
	// Tolerance is the half-width of each window.
	Tolerance time.Duration
}

// DefaultConfig returns the production gate settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://site.api.espn.com/apis/site/v2/sports/football/nfl",
		Timezone:    "America/New_York",
		Timeout:     15 * time.Second,
		PreviewLead: 90 * time.Minute,
		FinalLead:   30 * time.Minute,
		Tolerance:   10 * time.Minute,
	}
}

// New creates a Gate. The timezone must resolve; a bad zone name is a
// configuration error, not something to paper over at run time.
func New(cfg Config, logger *slog.Logger) (*Gate, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("schedule: load timezone %q: %w", cfg.Timezone, err)
	}
	return &Gate{
		baseURL:     cfg.BaseURL,
		http:        &http.Client{Timeout: cfg.Timeout},
		loc:         loc,
		now:         time.Now,
		previewLead: cfg.PreviewLead,
		finalLead:   cfg.FinalLead,
		tolerance:   cfg.Tolerance,
		logger:      logger.With(slog.String("component", "schedule")),
	}, nil
}

type scoreboardResponse struct {
	Events []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Date string `json:"date"`
	} `json:"events"`
}

// Kickoffs returns today's kickoff times in the gate's timezone, earliest
// first.
func (g *Gate) Kickoffs(ctx context.Context) ([]time.Time, error) {
	date := g.now().In(g.loc).Format("20060102")
	url := fmt.Sprintf("%s/scoreboard?dates=%s", g.baseURL, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("schedule: build scoreboard request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule: fetch scoreboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("schedule: scoreboard returned %d: %s", resp.StatusCode, body)
	}

	var sb scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&sb); err != nil {
		return nil, fmt.Errorf("schedule: decode scoreboard: %w", err)
	}

	kickoffs := make([]time.Time, 0, len(sb.Events))
	for _, ev := range sb.Events {
		// ESPN renders dates as RFC 3339 with a "Z" and zero seconds,
		// occasionally without seconds at all.
		t, err := time.Parse(time.RFC3339, ev.Date)
		if err != nil {
			if t, err = time.Parse("2006-01-02T15:04Z", ev.Date); err != nil {
				g.logger.Warn("unparseable kickoff date",
					slog.String("event", ev.Name),
					slog.String("date", ev.Date),
				)
				continue
			}
		}
		kickoffs = append(kickoffs, t.In(g.loc))
	}
	sort.Slice(kickoffs, func(i, j int) bool { return kickoffs[i].Before(kickoffs[j]) })

	g.logger.Debug("fetched kickoffs", slog.Int("count", len(kickoffs)))
	return kickoffs, nil
}

// ShouldRun reports whether the current time sits inside a run window for any
// of today's kickoffs. On a hit it returns the window label and the matched
// kickoff.
func (g *Gate) ShouldRun(ctx context.Context) (window string, kickoff time.Time, ok bool, err error) {
	kickoffs, err := g.Kickoffs(ctx)
	if err != nil {
		return "", time.Time{}, false, err
	}
	window, kickoff, ok = evalWindows(g.now().In(g.loc), kickoffs, g.previewLead, g.finalLead, g.tolerance)
	return window, kickoff, ok, nil
}

// evalWindows is the pure window check: given now and the kickoff list, find
// the first kickoff whose preview or final window contains now. The final
// window wins when both would match.
func evalWindows(now time.Time, kickoffs []time.Time, previewLead, finalLead, tol time.Duration) (string, time.Time, bool) {
	for _, k := range kickoffs {
		until := k.Sub(now)
		if within(until, finalLead, tol) {
			return WindowFinal, k, true
		}
		if within(until, previewLead, tol) {
			return WindowPreview, k, true
		}
	}
	return "", time.Time{}, false
}

func within(until, lead, tol time.Duration) bool {
	return until >= lead-tol && until <= lead+tol
}
