// Package scoring resolves winners and running totals for a play session.
//
// A session scores through exactly one source: a non-empty special-points
// map wins over the laps matrix, and an unusable source never falls through
// once selected. Both resolution and totals are pure functions; malformed
// records narrow to empty output instead of failing.
package scoring

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
)

// Winners returns the participant IDs tied for first place. The result is
// empty when neither scoring source is usable. Ties keep seating order,
// with off-roster special entries evaluated last in sorted order.
func Winners(s domain.PlaySession) []string {
	if len(s.SpecialPoints) > 0 {
		// Authoritative even when every entry is malformed: an empty
		// filtered result stays empty rather than deferring to laps.
		return argMax(specialTotals(s))
	}

	if len(s.Laps) > 0 && s.Players != nil {
		return argMax(lapTotals(s))
	}

	return []string{}
}

// Totals computes every participant's current total from the session's
// active scoring source, in seating order. Participants without a usable
// entry total zero.
func Totals(s domain.PlaySession) []domain.ScoreTotal {
	out := make([]domain.ScoreTotal, 0, len(s.Players))

	if len(s.SpecialPoints) > 0 {
		for _, id := range specialIDs(s) {
			t := decimal.Zero
			if sp, ok := s.SpecialPoints[id]; ok && sp.Level != nil {
				t = effectiveScore(sp)
			}
			out = append(out, domain.ScoreTotal{PlayerID: id, Total: t.InexactFloat64()})
		}
		return out
	}

	for _, t := range lapTotals(s) {
		out = append(out, domain.ScoreTotal{PlayerID: t.playerID, Total: t.score.InexactFloat64()})
	}
	return out
}

type total struct {
	playerID string
	score    decimal.Decimal
}

// specialTotals keeps only entries carrying a numeric level. Every map
// entry is evaluated, on the roster or not.
func specialTotals(s domain.PlaySession) []total {
	out := make([]total, 0, len(s.SpecialPoints))
	for _, id := range specialIDs(s) {
		sp, ok := s.SpecialPoints[id]
		if !ok || sp.Level == nil {
			continue
		}
		out = append(out, total{playerID: id, score: effectiveScore(sp)})
	}
	return out
}

// specialIDs fixes the evaluation order for a special-points session:
// every participant in seating order (player list, then teams), then any
// off-roster map keys sorted, so ties resolve deterministically and no
// entry is dropped.
func specialIDs(s domain.PlaySession) []string {
	ids := []string{}
	seen := make(map[string]bool, len(s.SpecialPoints))
	for _, id := range s.Participants() {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	rest := make([]string, 0, len(s.SpecialPoints))
	for id := range s.SpecialPoints {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)

	return append(ids, rest...)
}

func effectiveScore(sp domain.SpecialPoints) decimal.Decimal {
	score := decimal.NewFromFloat(*sp.Level)
	if sp.Bonus != nil {
		score = score.Add(decimal.NewFromFloat(*sp.Bonus))
	}
	return score
}

// lapTotals sums each participant's column across all rounds. Only scalar
// cells count; composite and absent cells contribute zero.
func lapTotals(s domain.PlaySession) []total {
	out := make([]total, 0, len(s.Players))
	for i, id := range s.Players {
		sum := decimal.Zero
		for _, round := range s.Laps {
			if i >= len(round) {
				continue
			}
			if c := round[i]; c.Kind == domain.CellScalar {
				sum = sum.Add(decimal.NewFromFloat(c.Value))
			}
		}
		out = append(out, total{playerID: id, score: sum})
	}
	return out
}

// argMax applies the strictly-greater-replaces, equal-appends rule, so a
// tie yields every participant sharing the maximum.
func argMax(totals []total) []string {
	winners := []string{}
	var best decimal.Decimal
	for i, t := range totals {
		switch {
		case i == 0 || t.score.GreaterThan(best):
			best = t.score
			winners = append(winners[:0], t.playerID)
		case t.score.Equal(best):
			winners = append(winners, t.playerID)
		}
	}
	return winners
}
