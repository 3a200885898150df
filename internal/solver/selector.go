package solver

import (
	"github.com/samber/lo"
)

// Selection reports how Select reached its decision.
type Selection struct {
	// Index into the candidate slice passed to Select.
	Index int
	// Profile is the name of the flow profile that scored the cascade.
	Profile string
	// Cell is the priority cell that produced a unique winner, or NoFlow
	// when the open-cell fallback decided.
	Cell int
}

type scored struct {
	idx  int
	vals [Cells]int
	open int
}

// Select walks the active profile's priority cells and narrows cands to the
// one that improves the earliest cell over the real board. Candidates are
// always valued under the default flow map; the alternate profile only
// replaces the real board's values and the priority order. The second result
// is false only when cands is empty.
func Select(real Board, cands []Candidate, p Policy) (Selection, bool) {
	if len(cands) == 0 {
		return Selection{Cell: NoFlow}, false
	}

	profile := p.Default
	realVals := profile.Flow.Values(real)
	if p.inDanger(realVals) {
		profile = p.Alt
		realVals = profile.Flow.Values(real)
	}

	pool := lo.Map(cands, func(c Candidate, i int) scored {
		return scored{idx: i, vals: p.Default.Flow.Values(c.Board), open: c.Board.EmptyCount()}
	})

	for _, cell := range profile.Priority {
		if len(pool) <= 1 {
			break
		}
		target := realVals[cell]

		better := lo.Filter(pool, func(s scored, _ int) bool { return s.vals[cell] > target })
		if len(better) > 0 {
			best := lo.MaxBy(better, func(a, b scored) bool { return a.vals[cell] > b.vals[cell] })
			winners := lo.Filter(better, func(s scored, _ int) bool { return s.vals[cell] == best.vals[cell] })
			if len(winners) == 1 {
				return Selection{Index: winners[0].idx, Profile: profile.Name, Cell: cell}, true
			}
			pool = winners
			continue
		}

		negligible := abs(target) <= p.NegligibleMagnitude
		pushes := lo.Filter(pool, func(s scored, _ int) bool { return negligible || s.vals[cell] == target })
		if len(pushes) > 0 {
			pool = pushes
		}
	}

	// lo.MaxBy keeps the first of equal elements.
	best := lo.MaxBy(pool, func(a, b scored) bool { return a.open > b.open })
	return Selection{Index: best.idx, Profile: profile.Name, Cell: NoFlow}, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
