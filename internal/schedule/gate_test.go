package schedule

import (
	"testing"
	"time"
)

func TestEvalWindows(t *testing.T) {
	kick := time.Date(2025, 11, 9, 13, 0, 0, 0, time.UTC)
	preview := 90 * time.Minute
	final := 30 * time.Minute
	tol := 10 * time.Minute

	tests := []struct {
		name       string
		now        time.Time
		wantWindow string
		wantOK     bool
	}{
		{"exactly 90 out", kick.Add(-90 * time.Minute), WindowPreview, true},
		{"preview window early edge", kick.Add(-100 * time.Minute), WindowPreview, true},
		{"preview window late edge", kick.Add(-80 * time.Minute), WindowPreview, true},
		{"exactly 30 out", kick.Add(-30 * time.Minute), WindowFinal, true},
		{"final window early edge", kick.Add(-40 * time.Minute), WindowFinal, true},
		{"final window late edge", kick.Add(-20 * time.Minute), WindowFinal, true},
		{"between windows", kick.Add(-60 * time.Minute), "", false},
		{"too early", kick.Add(-3 * time.Hour), "", false},
		{"after kickoff", kick.Add(5 * time.Minute), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, gotKick, ok := evalWindows(tt.now, []time.Time{kick}, preview, final, tol)
			if ok != tt.wantOK || window != tt.wantWindow {
				t.Errorf("evalWindows = %q, %v; want %q, %v", window, ok, tt.wantWindow, tt.wantOK)
			}
			if ok && !gotKick.Equal(kick) {
				t.Errorf("kickoff = %v, want %v", gotKick, kick)
			}
		})
	}
}

func TestEvalWindowsPicksEarliestMatch(t *testing.T) {
	early := time.Date(2025, 11, 9, 13, 0, 0, 0, time.UTC)
	late := early.Add(3 * time.Hour)
	now := early.Add(-30 * time.Minute)

	window, kick, ok := evalWindows(now, []time.Time{early, late}, 90*time.Minute, 30*time.Minute, 10*time.Minute)
	if !ok || window != WindowFinal || !kick.Equal(early) {
		t.Errorf("got %q %v %v, want final window on the early kickoff", window, kick, ok)
	}
}

func TestEvalWindowsNoKickoffs(t *testing.T) {
	if _, _, ok := evalWindows(time.Now(), nil, 90*time.Minute, 30*time.Minute, 10*time.Minute); ok {
		t.Error("expected no window with an empty slate")
	}
}
