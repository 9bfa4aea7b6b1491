package domain

import "time"

// Pick is a surfaced candidate persisted for audit history. One row per
// announced outcome per run window.
type Pick struct {
	ID           string // UUID
	GameID       string
	Market       string
	Label        string
	Slot         Slot
	Book         int
	FairAmerican int
	FairProb     float64
	EdgePoints   float64
	EV           float64
	Stake        StakeLabel
	Window       string // "T90" or "T30"
	IsBackup     bool
	CreatedAt    time.Time
}
