package engine

import (
	"math"
	"sort"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// Selector picks the single best candidate per game (first-TD style markets)
// plus an optional backup under a fixed Policy.
type Selector struct {
	policy Policy
}

// NewSelector creates a Selector with the given policy.
func NewSelector(policy Policy) *Selector {
	return &Selector{policy: policy}
}

// Policy returns the selector's policy.
func (s *Selector) Policy() Policy {
	return s.policy
}

// SelectBest filters the scored candidates through the stake cascade and the
// eligibility floors, ranks survivors, and returns the top pick plus the
// runner-up as a backup when its model probability is within the configured
// gap. An empty result is normal when nothing qualifies.
//
// Ranking is by EV descending, ties broken by higher fair probability, then
// lexicographically smaller label, so repeated runs over the same input
// produce identical output.
func (s *Selector) SelectBest(cands []domain.Candidate) domain.SelectionResult {
	survivors := make([]domain.Candidate, 0, len(cands))
	for _, c := range cands {
		c.Stake = s.policy.StakeFor(c.EV, c.FairProb)
		if c.Stake == domain.StakeNone {
			continue
		}
		if c.Edge < s.policy.MinEdgePoints {
			continue
		}
		if c.BookDecimal < s.policy.MinDecimalPrice {
			continue
		}
		survivors = append(survivors, c)
	}

	if len(survivors) == 0 {
		return domain.SelectionResult{}
	}

	sort.Slice(survivors, func(i, j int) bool {
		a, b := survivors[i], survivors[j]
		if a.EV != b.EV {
			return a.EV > b.EV
		}
		if a.FairProb != b.FairProb {
			return a.FairProb > b.FairProb
		}
		return a.Label < b.Label
	})

	result := domain.SelectionResult{Primary: &survivors[0]}
	if len(survivors) > 1 {
		gap := math.Abs(survivors[0].FairProb - survivors[1].FairProb)
		if gap <= s.policy.BackupMaxProbGap {
			result.Backup = &survivors[1]
		}
	}
	return result
}
