// Package oddsapi is a client for The Odds API v4 NFL endpoints. It is one of
// the replaceable collectors feeding the engine; nothing here prices or
// selects anything.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4"

// Config holds client parameters. Markets and Regions are comma-separated
// per the API's query format.
type Config struct {
	APIKey  string
	BaseURL string
	Sport   string // e.g. "americanfootball_nfl"
	Regions string // e.g. "us"
	Markets string // e.g. "h2h,player_anytime_td,first_team_to_score"
	Timeout time.Duration
}

// Client talks to The Odds API.
type Client struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a Client. Zero-value fields in cfg fall back to sensible
// defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Sport == "" {
		cfg.Sport = "americanfootball_nfl"
	}
	if cfg.Regions == "" {
		cfg.Regions = "us"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With(slog.String("component", "oddsapi")),
	}
}

// Events returns the upcoming event schedule without odds. Used to build the
// day's slate and kickoff times.
func (c *Client) Events(ctx context.Context) ([]APIEvent, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/events", c.cfg.BaseURL, c.cfg.Sport)
	params := url.Values{"apiKey": {c.cfg.APIKey}}

	var events []APIEvent
	if err := c.get(ctx, endpoint, params, &events); err != nil {
		return nil, fmt.Errorf("oddsapi: fetch events: %w", err)
	}
	return events, nil
}

// Odds returns upcoming events with bookmaker prices for the configured
// markets, in American format.
func (c *Client) Odds(ctx context.Context) ([]APIEvent, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds", c.cfg.BaseURL, c.cfg.Sport)
	params := url.Values{
		"apiKey":     {c.cfg.APIKey},
		"regions":    {c.cfg.Regions},
		"markets":    {c.cfg.Markets},
		"oddsFormat": {"american"},
		"dateFormat": {"iso"},
	}

	var events []APIEvent
	if err := c.get(ctx, endpoint, params, &events); err != nil {
		return nil, fmt.Errorf("oddsapi: fetch odds: %w", err)
	}
	return events, nil
}

// get issues a GET request and decodes the JSON body into out. The API's
// quota headers are logged on every call so operators can watch the monthly
// allowance burn down.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if remaining := resp.Header.Get("X-Requests-Remaining"); remaining != "" {
		c.logger.Debug("odds api quota",
			slog.String("remaining", remaining),
			slog.String("used", resp.Header.Get("X-Requests-Used")),
		)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
