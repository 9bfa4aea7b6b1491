// Package model derives "true" probabilities for NFL propositions from game
// context (point spread, total). The estimators are deliberately simple
// closed-form approximations: a normal margin model for win probability, a
// Poisson scoring model for 1+ touchdown props, and a normal count model for
// reception overs. They are heuristics, not fitted models; every constant is
// a tunable parameter.
package model

import "math"

// NeutralProb is returned when an estimator's inputs are missing or
// nonsensical. The engine treats it as "no opinion" rather than failing.
const NeutralProb = 0.5

// Params holds every tunable constant of the estimators. Construct with
// DefaultParams and override as needed; the model never reads package-level
// state.
type Params struct {
	// MarginSigma is the standard deviation of the final-score margin.
	// 13.86 maps a pick'em to 50% and the familiar spreads (3, 7, 10, 14)
	// to their historical win rates.
	MarginSigma float64

	// PointsPerScore converts a team total into an expected number of
	// scoring events (touchdowns average out near 7 points with the try).
	PointsPerScore float64

	// PassTDShare is the fraction of touchdowns thrown rather than run or
	// returned.
	PassTDShare float64

	// Reception count model: a fixed play volume funnels through pass rate,
	// dropback rate, target share, and catch rate into a mean, with a fixed
	// dispersion.
	PlaysPerGame    float64
	BasePassRate    float64
	BlowoutPassBump float64 // added to pass rate when the spread is lopsided
	BlowoutSpread   float64 // spread magnitude that counts as lopsided
	DropbackRate    float64
	TargetShare     float64
	CatchRate       float64
	ReceptionSigma  float64
}

// DefaultParams returns the production constants.
func DefaultParams() Params {
	return Params{
		MarginSigma:     13.86,
		PointsPerScore:  7.0,
		PassTDShare:     0.64,
		PlaysPerGame:    60,
		BasePassRate:    0.55,
		BlowoutPassBump: 0.06,
		BlowoutSpread:   6.0,
		DropbackRate:    0.90,
		TargetShare:     0.20,
		CatchRate:       0.66,
		ReceptionSigma:  1.2,
	}
}

// Model evaluates the fair-value estimators under a fixed parameter set.
type Model struct {
	p Params
}

// New returns a Model using the given parameters.
func New(p Params) *Model {
	return &Model{p: p}
}

// WinProbFromSpread returns the probability that a side favored by
// advantage points wins, modeling the final margin as normal with mean
// advantage and deviation MarginSigma. Pass a negative advantage for the
// underdog side; the two sides are complements. A zero spread returns
// exactly 0.5.
func (m *Model) WinProbFromSpread(advantage float64) float64 {
	if math.IsNaN(advantage) {
		return NeutralProb
	}
	return normCDF(advantage / m.p.MarginSigma)
}

// TeamTotals splits a game total into favorite and underdog implied totals
// using the spread magnitude. The two always sum to total.
func (m *Model) TeamTotals(total, spreadMagnitude float64) (fav, dog float64) {
	if total <= 0 || math.IsNaN(total) || math.IsNaN(spreadMagnitude) {
		return 0, 0
	}
	fav = total/2 + math.Abs(spreadMagnitude)/2
	dog = total - fav
	return fav, dog
}

// FirstScoreProb returns the probability of at least one scoring event of the
// target class for a team with the given implied total. The team's scoring
// rate is teamTotal/PointsPerScore, scaled by share (the fraction of scoring
// events attributable to the proposition), under a Poisson arrival
// assumption.
func (m *Model) FirstScoreProb(teamTotal, share float64) float64 {
	if teamTotal <= 0 || math.IsNaN(teamTotal) || math.IsNaN(share) {
		return NeutralProb
	}
	lam := teamTotal / m.p.PointsPerScore
	return 1 - math.Exp(-lam*share)
}

// PassingTDProb is FirstScoreProb with the configured passing-touchdown
// share. It prices "QB throws 1+ TD" props from the team's implied total.
func (m *Model) PassingTDProb(teamTotal float64) float64 {
	return m.FirstScoreProb(teamTotal, m.p.PassTDShare)
}

// ReceptionOverProb returns the probability a receiver clears line
// receptions. Play volume is fixed; the pass rate bumps up when the spread is
// lopsided in either direction (trailing teams throw to catch up, leading
// teams see softer coverage); the volume funnels through dropback rate,
// target share, and catch rate into a mean, and the over probability comes
// from the normal complement at the continuity-corrected line.
func (m *Model) ReceptionOverProb(total, spread, line float64) float64 {
	if total <= 0 || math.IsNaN(total) || math.IsNaN(spread) || math.IsNaN(line) || line < 0 {
		return NeutralProb
	}
	rate := m.p.BasePassRate
	if math.Abs(spread) > m.p.BlowoutSpread {
		rate += m.p.BlowoutPassBump
	}
	dropbacks := m.p.PlaysPerGame * rate
	targets := dropbacks * m.p.DropbackRate * m.p.TargetShare
	mu := targets * m.p.CatchRate
	sigma := m.p.ReceptionSigma

	z := (line + 0.5 - mu) / (sigma + 1e-6)
	return 1 - normCDF(z)
}

// normCDF is the standard normal CDF. erf(0) is exactly 0, so normCDF(0) is
// exactly 0.5.
func normCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}
