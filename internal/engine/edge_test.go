package engine_test

import (
	"math"
	"testing"

	"github.com/tkonrad/gridironbot/internal/engine"
	"github.com/tkonrad/gridironbot/internal/odds"
)

func TestEdgePoints(t *testing.T) {
	tests := []struct {
		name       string
		fair, book float64
		want       float64
	}{
		{"model ahead of market", 0.50, 0.40, 10.0},
		{"model behind market", 0.40, 0.50, -10.0},
		{"agreement", 0.25, 0.25, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.EdgePoints(tt.fair, tt.book); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EdgePoints(%v, %v) = %v, want %v", tt.fair, tt.book, got, tt.want)
			}
		})
	}
}

func TestExpectedValueFairBetIsZero(t *testing.T) {
	// When the fair probability matches the book-implied probability the bet
	// has no expectation either way.
	for _, a := range []int{-300, -110, 100, 150, 900} {
		p, err := odds.ProbFromAmerican(a)
		if err != nil {
			t.Fatalf("ProbFromAmerican(%d): %v", a, err)
		}
		d, err := odds.DecimalFromAmerican(a)
		if err != nil {
			t.Fatalf("DecimalFromAmerican(%d): %v", a, err)
		}
		if ev := engine.ExpectedValue(p, d); math.Abs(ev) > 1e-9 {
			t.Errorf("fair bet at %+d has EV %v, want 0", a, ev)
		}
	}
}

func TestExpectedValueKnownCase(t *testing.T) {
	// +150 implies 0.40; a fair probability of 0.50 at decimal 2.5 returns
	// 0.50*1.5 - 0.50 = 0.25 per unit staked.
	book, err := odds.ProbFromAmerican(150)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(book-0.40) > 1e-9 {
		t.Fatalf("ProbFromAmerican(150) = %v, want 0.40", book)
	}
	if e := engine.EdgePoints(0.50, book); math.Abs(e-10.0) > 1e-9 {
		t.Errorf("EdgePoints(0.50, 0.40) = %v, want 10.0", e)
	}
	if ev := engine.ExpectedValue(0.50, 2.5); math.Abs(ev-0.25) > 1e-9 {
		t.Errorf("ExpectedValue(0.50, 2.5) = %v, want 0.25", ev)
	}
}
