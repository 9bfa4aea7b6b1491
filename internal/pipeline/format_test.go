package pipeline

import (
	"strings"
	"testing"

	"github.com/tkonrad/gridironbot/internal/domain"
	"github.com/tkonrad/gridironbot/internal/schedule"
)

func pick(label string, fairAmerican, book int, edge float64, stake domain.StakeLabel) domain.Candidate {
	return domain.Candidate{
		GameID:       "COW@EAG",
		Market:       domain.MarketFirstTD,
		Label:        label,
		FairAmerican: fairAmerican,
		Book:         book,
		Edge:         edge,
		Stake:        stake,
	}
}

func TestWindowBanner(t *testing.T) {
	if got := WindowBanner(schedule.WindowFinal); got != "=== FINAL 30-MINUTE BOARD ===" {
		t.Errorf("final banner = %q", got)
	}
	if got := WindowBanner(schedule.WindowPreview); got != "*** 90-MINUTE PREVIEW ***" {
		t.Errorf("preview banner = %q", got)
	}
	if got := WindowBanner("unknown"); got != "" {
		t.Errorf("unknown window banner = %q, want empty", got)
	}
}

func TestFormatAlert(t *testing.T) {
	game := domain.Game{ID: "COW@EAG", Home: "Philadelphia Eagles", Away: "Dallas Cowboys"}
	primary := pick("AJ Brown", 650, 900, 2.8, domain.StakeFull)
	backup := pick("D. Smith", 700, 850, 2.1, domain.StakeHalf)

	out := FormatAlert(game, domain.SelectionResult{Primary: &primary, Backup: &backup})

	for _, want := range []string{
		"Dallas Cowboys at Philadelphia Eagles",
		"AJ Brown",
		"True: +650 | Book: +900 | Edge: +2.8%",
		">> FULL STAKE",
		"Backup: D. Smith",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatAlertEmpty(t *testing.T) {
	if out := FormatAlert(domain.Game{}, domain.SelectionResult{}); out != "" {
		t.Errorf("empty selection formatted as %q, want empty string", out)
	}
}

func TestFormatBoard(t *testing.T) {
	board := domain.GameBoard{
		GameID: "COW@EAG",
		Title:  "Dallas Cowboys at Philadelphia Eagles",
		Favorites: []domain.Candidate{
			pick("Eagles ML", -310, -300, 3.2, domain.StakeNone),
			pick("J. Hurts 1+ Pass TD", -200, -180, 2.9, domain.StakeNone),
		},
		CoinFlip: pick("D. Smith Over 3.5 Receptions", -105, 105, 3.5, domain.StakeNone),
	}

	out := FormatBoard(board)
	for _, want := range []string{
		"Favorites:",
		"Eagles ML",
		"J. Hurts 1+ Pass TD",
		"Coin flip:",
		"D. Smith Over 3.5 Receptions",
		"True: -105 | Book: +105 | Edge: +3.5%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatRun(t *testing.T) {
	out := FormatRun(schedule.WindowFinal, []string{"section one\n", "", "section two\n"})

	if !strings.HasPrefix(out, "=== FINAL 30-MINUTE BOARD ===") {
		t.Errorf("run output missing banner:\n%s", out)
	}
	if !strings.Contains(out, "section one\n\nsection two") {
		t.Errorf("sections not blank-line separated:\n%s", out)
	}
	if strings.Contains(out, "\n\n\n") {
		t.Errorf("empty section left a gap:\n%s", out)
	}
}
