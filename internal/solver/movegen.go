package solver

import (
	"slices"
	"strings"
)

// Candidate is a board reachable by one real move, optionally followed by
// chased slides that were only simulated to look at merges they unlock.
type Candidate struct {
	// Vector is the real move; follow-ups inherit it from their parent.
	Vector Vector
	Board  Board
	Trace  []Vector
	// Open is the empty-cell count of the base move after the pessimistic
	// spawn. Follow-ups carry their parent's count.
	Open int
}

// TraceString renders the trace as comma separated signed vectors,
// e.g. "+4,-1".
func (c Candidate) TraceString() string {
	parts := make([]string, len(c.Trace))
	for i, v := range c.Trace {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

// Generate lists the candidate boards reachable from b.
//
// The four base moves come first, in the order down, right, left, up. When
// the anchor is established and more than one base move is legal, moves that
// leave merges on the board are chased with horizontal and vertical
// follow-ups, appended to the same slice and examined in turn up to the
// policy's worklist cap.
func Generate(b Board, p Policy) []Candidate {
	var cands []Candidate
	for _, v := range moveVectors {
		next, ok := Simulate(b, v)
		if !ok {
			continue
		}
		open := next.EmptyCount()
		if open == 1 {
			next = next.Replace(0, p.SpawnValue)
			open = 0
		}
		cands = append(cands, Candidate{
			Vector: v,
			Board:  next,
			Trace:  []Vector{v},
			Open:   open,
		})
	}

	if b[AnchorCell] <= p.ChaseAnchorMin || len(cands) < 2 {
		return cands
	}

	for i := 0; i < len(cands) && i <= p.ChaseLimit; i++ {
		c := cands[i]
		if c.Open >= p.ChaseMaxOpen {
			continue
		}
		limit := p.TraceLimit
		if c.Vector == VecLeft {
			limit = p.TraceLimitLeft
		}
		if len(c.Trace) > limit {
			continue
		}

		// Up-based candidates only chase merges in the bottom two rows.
		lowerOnly := c.Vector == VecUp
		if HasHorizontalMerges(c.Board, lowerOnly) {
			cands = c.follow(cands, VecRight, p)
			cands = c.follow(cands, VecLeft, p)
		}
		if HasVerticalMerges(c.Board, lowerOnly) {
			cands = c.follow(cands, VecDown, p)
		}
	}
	return cands
}

// follow appends the result of sliding c's board along v, if it moves.
func (c Candidate) follow(cands []Candidate, v Vector, p Policy) []Candidate {
	next, ok := Simulate(c.Board, v)
	if !ok {
		return cands
	}
	if c.Open <= 1 {
		next = next.Replace(0, p.SpawnValue)
	}
	trace := slices.Clone(c.Trace)
	return append(cands, Candidate{
		Vector: c.Vector,
		Board:  next,
		Trace:  append(trace, v),
		Open:   c.Open,
	})
}
