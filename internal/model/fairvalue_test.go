package model_test

import (
	"math"
	"testing"

	"github.com/tkonrad/gridironbot/internal/model"
)

func TestWinProbFromSpread(t *testing.T) {
	m := model.New(model.DefaultParams())

	t.Run("pick'em is exactly even", func(t *testing.T) {
		if got := m.WinProbFromSpread(0); got != 0.5 {
			t.Errorf("WinProbFromSpread(0) = %v, want exactly 0.5", got)
		}
	})

	t.Run("strictly increasing in advantage", func(t *testing.T) {
		prev := m.WinProbFromSpread(0)
		for _, s := range []float64{1, 3, 7, 10, 14, 20} {
			got := m.WinProbFromSpread(s)
			if got <= prev {
				t.Fatalf("WinProbFromSpread(%v) = %v, not above %v", s, got, prev)
			}
			prev = got
		}
	})

	t.Run("sides are complements", func(t *testing.T) {
		for _, s := range []float64{1, 3.5, 7, 13.86} {
			fav := m.WinProbFromSpread(s)
			dog := m.WinProbFromSpread(-s)
			if math.Abs(fav+dog-1.0) > 1e-12 {
				t.Errorf("spread %v: fav %v + dog %v != 1", s, fav, dog)
			}
		}
	})

	t.Run("familiar spreads land in familiar ranges", func(t *testing.T) {
		// A 3-point favorite wins roughly 58-59% of the time; a 7-point
		// favorite roughly 69-70%.
		if got := m.WinProbFromSpread(3); got < 0.57 || got > 0.60 {
			t.Errorf("WinProbFromSpread(3) = %v, want ~0.585", got)
		}
		if got := m.WinProbFromSpread(7); got < 0.68 || got > 0.71 {
			t.Errorf("WinProbFromSpread(7) = %v, want ~0.693", got)
		}
	})

	t.Run("NaN input returns neutral", func(t *testing.T) {
		if got := m.WinProbFromSpread(math.NaN()); got != model.NeutralProb {
			t.Errorf("WinProbFromSpread(NaN) = %v, want %v", got, model.NeutralProb)
		}
	})
}

func TestTeamTotals(t *testing.T) {
	m := model.New(model.DefaultParams())

	tests := []struct {
		name          string
		total, spread float64
		wantFav       float64
	}{
		{"pick'em splits evenly", 44, 0, 22},
		{"3-point favorite", 47, 3, 25},
		{"double-digit favorite", 51, 10, 30.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fav, dog := m.TeamTotals(tt.total, tt.spread)
			if math.Abs(fav-tt.wantFav) > 1e-9 {
				t.Errorf("fav = %v, want %v", fav, tt.wantFav)
			}
			if math.Abs(fav+dog-tt.total) > 1e-9 {
				t.Errorf("fav %v + dog %v != total %v", fav, dog, tt.total)
			}
		})
	}

	t.Run("non-positive total yields zeros", func(t *testing.T) {
		if fav, dog := m.TeamTotals(0, 3); fav != 0 || dog != 0 {
			t.Errorf("TeamTotals(0, 3) = %v, %v, want 0, 0", fav, dog)
		}
	})

	t.Run("negative spread is treated by magnitude", func(t *testing.T) {
		f1, _ := m.TeamTotals(47, 3)
		f2, _ := m.TeamTotals(47, -3)
		if f1 != f2 {
			t.Errorf("spread sign changed favorite total: %v vs %v", f1, f2)
		}
	})
}

func TestFirstScoreProb(t *testing.T) {
	m := model.New(model.DefaultParams())

	t.Run("higher team total raises the probability", func(t *testing.T) {
		lo := m.FirstScoreProb(14, 0.64)
		hi := m.FirstScoreProb(31, 0.64)
		if hi <= lo {
			t.Errorf("FirstScoreProb(31) = %v not above FirstScoreProb(14) = %v", hi, lo)
		}
	})

	t.Run("matches the Poisson closed form", func(t *testing.T) {
		// 24.5-point total, 0.64 share: lambda = 3.5, p = 1 - e^(-2.24).
		got := m.FirstScoreProb(24.5, 0.64)
		want := 1 - math.Exp(-(24.5/7.0)*0.64)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("FirstScoreProb(24.5, 0.64) = %v, want %v", got, want)
		}
	})

	t.Run("bad inputs return neutral", func(t *testing.T) {
		if got := m.FirstScoreProb(0, 0.64); got != model.NeutralProb {
			t.Errorf("zero total: got %v, want neutral", got)
		}
		if got := m.FirstScoreProb(-7, 0.64); got != model.NeutralProb {
			t.Errorf("negative total: got %v, want neutral", got)
		}
		if got := m.FirstScoreProb(24, math.NaN()); got != model.NeutralProb {
			t.Errorf("NaN share: got %v, want neutral", got)
		}
	})
}

func TestPassingTDProb(t *testing.T) {
	p := model.DefaultParams()
	m := model.New(p)
	got := m.PassingTDProb(28)
	want := m.FirstScoreProb(28, p.PassTDShare)
	if got != want {
		t.Errorf("PassingTDProb(28) = %v, want %v", got, want)
	}
}

func TestReceptionOverProb(t *testing.T) {
	m := model.New(model.DefaultParams())

	t.Run("lower line is easier to clear", func(t *testing.T) {
		over35 := m.ReceptionOverProb(44, -3, 3.5)
		over45 := m.ReceptionOverProb(44, -3, 4.5)
		if over35 <= over45 {
			t.Errorf("over 3.5 (%v) should beat over 4.5 (%v)", over35, over45)
		}
	})

	t.Run("lopsided spread bumps the pass rate either way", func(t *testing.T) {
		even := m.ReceptionOverProb(44, -3, 4.5)
		blownOutHome := m.ReceptionOverProb(44, -10, 4.5)
		blownOutAway := m.ReceptionOverProb(44, 10, 4.5)
		if blownOutHome <= even {
			t.Errorf("spread -10 (%v) should raise the over past spread -3 (%v)", blownOutHome, even)
		}
		if math.Abs(blownOutHome-blownOutAway) > 1e-12 {
			t.Errorf("bump should be symmetric in spread sign: %v vs %v", blownOutHome, blownOutAway)
		}
	})

	t.Run("continuity-corrected mean sits near the funnel output", func(t *testing.T) {
		// Default funnel: 60 plays x 0.55 pass x 0.90 x 0.20 targets x 0.66
		// catch = 3.92 mean receptions. Over 3.5 needs > 4, slightly
		// against; the probability should sit just under a coin flip.
		got := m.ReceptionOverProb(44, -3, 3.5)
		if got < 0.40 || got > 0.55 {
			t.Errorf("ReceptionOverProb(44, -3, 3.5) = %v, want near 0.48", got)
		}
	})

	t.Run("bad inputs return neutral", func(t *testing.T) {
		if got := m.ReceptionOverProb(0, -3, 3.5); got != model.NeutralProb {
			t.Errorf("zero total: got %v, want neutral", got)
		}
		if got := m.ReceptionOverProb(44, math.NaN(), 3.5); got != model.NeutralProb {
			t.Errorf("NaN spread: got %v, want neutral", got)
		}
		if got := m.ReceptionOverProb(44, -3, -1); got != model.NeutralProb {
			t.Errorf("negative line: got %v, want neutral", got)
		}
	})
}
