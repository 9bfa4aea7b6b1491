package odds_test

import (
	"math"
	"testing"

	"github.com/tkonrad/gridironbot/internal/odds"
)

func TestProbFromAmerican(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{"Even money +100", 100, 0.50},
		{"Even money -100", -100, 0.50},
		{"Underdog +150", 150, 0.40},
		{"Heavy underdog +900", 900, 0.10},
		{"Favorite -110", -110, 0.5238},
		{"Heavy favorite -300", -300, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := odds.ProbFromAmerican(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("ProbFromAmerican(%d) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestProbFromAmericanRejectsShortMagnitudes(t *testing.T) {
	for _, a := range []int{0, 1, -1, 50, -50, 99, -99} {
		if _, err := odds.ProbFromAmerican(a); err == nil {
			t.Errorf("ProbFromAmerican(%d): expected error, got nil", a)
		}
	}
}

func TestAmericanFromProbRoundTrip(t *testing.T) {
	// Integer rounding loses at most a fraction of a percentage point.
	for p := 0.01; p <= 0.99; p += 0.005 {
		a := odds.AmericanFromProb(p)
		back, err := odds.ProbFromAmerican(a)
		if err != nil {
			t.Fatalf("round trip p=%f produced invalid odds %d: %v", p, a, err)
		}
		if math.Abs(back-p) > 0.01 {
			t.Errorf("round trip p=%f: odds %d re-derives to %f (drift %.4f)", p, a, back, math.Abs(back-p))
		}
	}
}

func TestAmericanFromProbMonotonic(t *testing.T) {
	// Higher probability never lengthens the odds.
	prev := odds.AmericanFromProb(0.01)
	for p := 0.02; p <= 0.99; p += 0.01 {
		cur := odds.AmericanFromProb(p)
		if cur > prev {
			t.Fatalf("AmericanFromProb not non-increasing: p=%f gave %d after %d", p, cur, prev)
		}
		prev = cur
	}
}

func TestAmericanFromProbFavoriteSign(t *testing.T) {
	if a := odds.AmericanFromProb(0.75); a >= 0 {
		t.Errorf("p=0.75 should be favorite-style negative odds, got %d", a)
	}
	if a := odds.AmericanFromProb(0.25); a <= 0 {
		t.Errorf("p=0.25 should be underdog-style positive odds, got %d", a)
	}
}

func TestDecimalConversions(t *testing.T) {
	tests := []struct {
		american int
		decimal  float64
	}{
		{100, 2.0},
		{150, 2.5},
		{900, 10.0},
		{-110, 1.909091},
		{-200, 1.5},
	}

	for _, tt := range tests {
		d, err := odds.DecimalFromAmerican(tt.american)
		if err != nil {
			t.Fatalf("DecimalFromAmerican(%d): %v", tt.american, err)
		}
		if math.Abs(d-tt.decimal) > 0.0001 {
			t.Errorf("DecimalFromAmerican(%d) = %f, want %f", tt.american, d, tt.decimal)
		}

		p, err := odds.ProbFromDecimal(d)
		if err != nil {
			t.Fatalf("ProbFromDecimal(%f): %v", d, err)
		}
		pa, err := odds.ProbFromAmerican(tt.american)
		if err != nil {
			t.Fatalf("ProbFromAmerican(%d): %v", tt.american, err)
		}
		if math.Abs(p-pa) > 0.0001 {
			t.Errorf("decimal and american paths disagree for %d: %f vs %f", tt.american, p, pa)
		}
	}
}

func TestProbFromDecimalRejectsShortPrices(t *testing.T) {
	for _, d := range []float64{0, 0.5, 1.0} {
		if _, err := odds.ProbFromDecimal(d); err == nil {
			t.Errorf("ProbFromDecimal(%f): expected error, got nil", d)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := odds.Clamp(-0.2); got != odds.MinProb {
		t.Errorf("Clamp(-0.2) = %v, want %v", got, odds.MinProb)
	}
	if got := odds.Clamp(1.2); got != odds.MaxProb {
		t.Errorf("Clamp(1.2) = %v, want %v", got, odds.MaxProb)
	}
	if got := odds.Clamp(0.37); got != 0.37 {
		t.Errorf("Clamp(0.37) = %v, want 0.37", got)
	}
	// DecimalFromProb stays finite at the boundaries because of the clamp.
	if d := odds.DecimalFromProb(0); math.IsInf(d, 0) {
		t.Error("DecimalFromProb(0) should be finite after clamping")
	}
}
