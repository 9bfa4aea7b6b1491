package domain

import "time"

// Game identifies one NFL game on the slate.
type Game struct {
	ID      string // "AWY@HOM"
	Home    string
	Away    string
	Kickoff time.Time
}

// Title renders the game in the "Away at Home" display form.
func (g Game) Title() string {
	return g.Away + " at " + g.Home
}

// GameContext carries the game-level inputs the fair-value estimators work
// from. SpreadPoints follows market convention: negative means the home side
// is favored by that many points.
type GameContext struct {
	TotalPoints  float64
	SpreadPoints float64
}

// SpreadMagnitude returns the favorite's advantage as a positive number.
func (c GameContext) SpreadMagnitude() float64 {
	if c.SpreadPoints < 0 {
		return -c.SpreadPoints
	}
	return c.SpreadPoints
}
