// Package scraper collects NFL game lines and prop prices straight off a
// sportsbook's event pages with a headless browser. It is the fallback
// collector for markets the odds API plan doesn't carry; like every
// collector it only emits quotes, never prices or picks.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// Config holds scraper parameters.
type Config struct {
	// BaseURL is the sportsbook root, e.g. "https://sportsbook.draftkings.com".
	BaseURL string
	// HubPath is the league page listing event links.
	HubPath string
	// MaxEvents caps how many event pages one run visits.
	MaxEvents int
	// NavTimeout bounds each page navigation; WaitTimeout bounds waiting for
	// content to render.
	NavTimeout  time.Duration
	WaitTimeout time.Duration
	Headless    bool
	UserAgent   string
}

// DefaultConfig returns the production scraper settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://sportsbook.draftkings.com",
		HubPath:     "/leagues/football/nfl",
		MaxEvents:   12,
		NavTimeout:  90 * time.Second,
		WaitTimeout: 60 * time.Second,
		Headless:    true,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/125.0 Safari/537.36",
	}
}

// EventPage is everything scraped off one event page: the game header, the
// posted lines, and the priced outcome cells classified into quotes.
type EventPage struct {
	URL    string
	Title  string
	Lines  domain.GameContext
	Quotes []domain.Quote
}

// Scraper drives a headless Chrome via chromedp.
type Scraper struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Scraper.
func New(cfg Config, logger *slog.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "scraper")),
	}
}

// newBrowser allocates a fresh headless browser context. The returned cancel
// must be called to tear the browser down.
func (s *Scraper) newBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(s.cfg.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}
	return browserCtx, cancel
}

// EventURLs discovers event page links from the league hub, deduplicated and
// capped at MaxEvents.
func (s *Scraper) EventURLs(ctx context.Context) ([]string, error) {
	browserCtx, cancel := s.newBrowser(ctx)
	defer cancel()

	navCtx, cancelNav := context.WithTimeout(browserCtx, s.cfg.NavTimeout)
	defer cancelNav()

	if err := chromedp.Run(navCtx, chromedp.Navigate(s.cfg.BaseURL+s.cfg.HubPath)); err != nil {
		return nil, fmt.Errorf("scraper: navigate to hub: %w", err)
	}

	waitCtx, cancelWait := context.WithTimeout(browserCtx, s.cfg.WaitTimeout)
	defer cancelWait()

	var hrefs []string
	err := chromedp.Run(waitCtx,
		chromedp.WaitReady(`a[href*="/event/"]`, chromedp.ByQuery),
		chromedp.Evaluate(
			`Array.from(document.querySelectorAll('a[href*="/event/"]')).map(a => a.getAttribute('href'))`,
			&hrefs,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("scraper: discover event links: %w", err)
	}

	seen := make(map[string]bool)
	urls := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		if href == "" || !strings.Contains(href, "/event/") {
			continue
		}
		if strings.HasPrefix(href, "/") {
			href = s.cfg.BaseURL + href
		}
		if i := strings.IndexByte(href, '?'); i >= 0 {
			href = href[:i]
		}
		if seen[href] {
			continue
		}
		seen[href] = true
		urls = append(urls, href)
		if len(urls) >= s.cfg.MaxEvents {
			break
		}
	}

	s.logger.Info("discovered event pages", slog.Int("count", len(urls)))
	return urls, nil
}

// Event scrapes one event page: title, game lines, and every outcome cell it
// can classify into a quote.
func (s *Scraper) Event(ctx context.Context, url string) (EventPage, error) {
	browserCtx, cancel := s.newBrowser(ctx)
	defer cancel()

	navCtx, cancelNav := context.WithTimeout(browserCtx, s.cfg.NavTimeout)
	defer cancelNav()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return EventPage{}, fmt.Errorf("scraper: navigate to event %s: %w", url, err)
	}

	waitCtx, cancelWait := context.WithTimeout(browserCtx, s.cfg.WaitTimeout)
	defer cancelWait()

	var title, bodyText string
	var cells []string
	err := chromedp.Run(waitCtx,
		chromedp.WaitReady("main", chromedp.ByQuery),
		chromedp.Title(&title),
		chromedp.Text("body", &bodyText, chromedp.ByQuery),
		chromedp.Evaluate(
			`Array.from(document.querySelectorAll('button, [data-test*="outcome"], .sportsbook-outcome-cell'))
				.map(el => el.innerText).filter(t => t && t.trim())`,
			&cells,
		),
	)
	if err != nil {
		return EventPage{}, fmt.Errorf("scraper: scrape event %s: %w", url, err)
	}

	page := EventPage{
		URL:   url,
		Title: cleanTitle(title),
		Lines: parseGameLines(bodyText),
	}
	for _, cell := range cells {
		if q, ok := classify(cell); ok {
			page.Quotes = append(page.Quotes, q)
		}
	}

	s.logger.Debug("scraped event page",
		slog.String("title", page.Title),
		slog.Int("quotes", len(page.Quotes)),
		slog.Float64("total", page.Lines.TotalPoints),
		slog.Float64("spread", page.Lines.SpreadPoints),
	)
	return page, nil
}

// cleanTitle strips the sportsbook suffix ("... | DraftKings") from a page
// title.
func cleanTitle(title string) string {
	if i := strings.IndexByte(title, '|'); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}
