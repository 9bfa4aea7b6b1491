package pipeline

import (
	"fmt"
	"strings"

	"github.com/tkonrad/gridironbot/internal/domain"
	"github.com/tkonrad/gridironbot/internal/schedule"
)

// WindowBanner renders the header line for a run window.
func WindowBanner(window string) string {
	switch window {
	case schedule.WindowFinal:
		return "=== FINAL 30-MINUTE BOARD ==="
	case schedule.WindowPreview:
		return "*** 90-MINUTE PREVIEW ***"
	default:
		return ""
	}
}

// priceLine renders the core comparison line for one candidate:
//
//	True: +650 | Book: +900 | Edge: +2.8%
func priceLine(c domain.Candidate) string {
	return fmt.Sprintf("True: %+d | Book: %+d | Edge: %+.1f%%", c.FairAmerican, c.Book, c.Edge)
}

// FormatAlert renders a single-best selection for one game. Empty results
// render as an empty string; the caller skips the game.
func FormatAlert(game domain.Game, res domain.SelectionResult) string {
	if res.Empty() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", game.Title())
	fmt.Fprintf(&b, "%s\n", res.Primary.Label)
	fmt.Fprintf(&b, "%s\n", priceLine(*res.Primary))
	if res.Primary.Stake != domain.StakeNone {
		fmt.Fprintf(&b, ">> %s\n", res.Primary.Stake)
	}
	if res.Backup != nil {
		fmt.Fprintf(&b, "Backup: %s (%s)\n", res.Backup.Label, priceLine(*res.Backup))
	}
	return b.String()
}

// FormatBoard renders one game's favorites-plus-coin-flip board.
func FormatBoard(board domain.GameBoard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", board.Title)

	fmt.Fprintf(&b, "Favorites:\n")
	for _, f := range board.Favorites {
		fmt.Fprintf(&b, "  %s\n  %s\n", f.Label, priceLine(f))
	}

	fmt.Fprintf(&b, "Coin flip:\n")
	fmt.Fprintf(&b, "  %s\n  %s\n", board.CoinFlip.Label, priceLine(board.CoinFlip))
	return b.String()
}

// FormatRun stitches per-game sections under the window banner. Sections are
// separated by a blank line; empty sections are skipped.
func FormatRun(window string, sections []string) string {
	parts := make([]string, 0, len(sections)+1)
	if banner := WindowBanner(window); banner != "" {
		parts = append(parts, banner)
	}
	for _, s := range sections {
		if strings.TrimSpace(s) == "" {
			continue
		}
		parts = append(parts, strings.TrimRight(s, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// FormatQuoteSummary renders a raw best-price summary for scrape mode: one
// line per quote, no model output.
func FormatQuoteSummary(title string, quotes []domain.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	for _, q := range quotes {
		fmt.Fprintf(&b, "  [%s] %s %+d\n", q.Market, q.Label, q.Price)
	}
	return b.String()
}
