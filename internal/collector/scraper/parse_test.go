package scraper

import (
	"math"
	"testing"

	"github.com/tkonrad/gridironbot/internal/domain"
)

func TestParseAmerican(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"+150", 150, true},
		{"-110", -110, true},
		{"Eagles ML -320", -320, true},
		{"J. Hurts 1+ Pass TD –145", -145, true}, // en-dash
		{"Over 3.5 +120", 120, true},
		{"no price here", 0, false},
		{"+50", 0, false}, // magnitude under 100 is not a price
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseAmerican(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseAmerican(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseGameLines(t *testing.T) {
	t.Run("reads posted lines", func(t *testing.T) {
		text := "Spread -6.5 Total 47.5 Moneyline"
		ctx := parseGameLines(text)
		if ctx.TotalPoints != 47.5 {
			t.Errorf("total = %v, want 47.5", ctx.TotalPoints)
		}
		if ctx.SpreadPoints != -6.5 {
			t.Errorf("spread = %v, want -6.5", ctx.SpreadPoints)
		}
	})

	t.Run("falls back when missing", func(t *testing.T) {
		ctx := parseGameLines("nothing useful on this page")
		if ctx.TotalPoints != fallbackTotal {
			t.Errorf("total = %v, want fallback %v", ctx.TotalPoints, fallbackTotal)
		}
		if ctx.SpreadPoints != fallbackSpread {
			t.Errorf("spread = %v, want fallback %v", ctx.SpreadPoints, fallbackSpread)
		}
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantMarket string
		wantSlot   domain.Slot
		wantPrice  int
		wantLine   float64
		ok         bool
	}{
		{"pass TD prop", "J. Hurts 1+ Pass TD -145", domain.MarketPassTD, domain.SlotFavorite, -145, 0, true},
		{"reception over 3.5", "D. Smith Over 3.5 Receptions +105", domain.MarketReceptionsOver, domain.SlotCoinFlip, 105, 3.5, true},
		{"reception over 4.5", "D. Smith Over 4.5 Receptions +160", domain.MarketReceptionsOver, domain.SlotCoinFlip, 160, 4.5, true},
		{"moneyline favorite", "Eagles -320", domain.MarketMoneyline, domain.SlotFavorite, -320, 0, true},
		{"positive price without market text", "Cowboys +260", "", "", 0, 0, false},
		{"unpriced cell", "Anytime TD Scorer", "", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := classify(tt.in)
			if ok != tt.ok {
				t.Fatalf("classify(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if q.Market != tt.wantMarket || q.Slot != tt.wantSlot || q.Price != tt.wantPrice {
				t.Errorf("classify(%q) = %+v", tt.in, q)
			}
			if math.Abs(q.Line-tt.wantLine) > 1e-9 {
				t.Errorf("line = %v, want %v", q.Line, tt.wantLine)
			}
		})
	}
}

func TestStripPrice(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"J. Hurts 1+ Pass TD -145", "J. Hurts 1+ Pass TD"},
		{"Eagles –320", "Eagles"},
		{"D. Smith\nOver 4.5 Receptions\n+160", "D. Smith Over 4.5 Receptions"},
	}
	for _, tt := range tests {
		if got := stripPrice(tt.in); got != tt.want {
			t.Errorf("stripPrice(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
