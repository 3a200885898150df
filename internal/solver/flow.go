package solver

import (
	"fmt"

	"github.com/samber/lo"
)

// NoFlow marks a cell without a downstream neighbour.
const NoFlow = -1

// FlowMap assigns each cell the cell its mass should flow into.
// Unmapped cells hold NoFlow.
type FlowMap [Cells]int

// NewFlowMap builds a FlowMap from cell -> downstream pairs.
func NewFlowMap(pairs map[int]int) (FlowMap, error) {
	var m FlowMap
	for i := range m {
		m[i] = NoFlow
	}
	for from, to := range pairs {
		if from < 0 || from >= Cells || to < 0 || to >= Cells {
			return m, fmt.Errorf("solver: flow %d -> %d out of range", from, to)
		}
		m[from] = to
	}
	return m, m.Validate()
}

// Validate checks that every edge stays on the board and that following
// edges always ends at an unmapped sink.
func (m FlowMap) Validate() error {
	for i, to := range m {
		if to == NoFlow {
			continue
		}
		if to < 0 || to >= Cells {
			return fmt.Errorf("solver: flow %d -> %d out of range", i, to)
		}
	}
	for i := range m {
		cur := i
		for steps := 0; m[cur] != NoFlow; steps++ {
			if steps >= Cells {
				return fmt.Errorf("solver: flow map has a cycle through cell %d", i)
			}
			cur = m[cur]
		}
	}
	return nil
}

// Values returns the signed per-cell heuristic for b: a cell's value,
// negated when it exceeds its downstream cell.
func (m FlowMap) Values(b Board) [Cells]int {
	out := b
	for i, to := range m {
		if to != NoFlow && b[i] > b[to] {
			out[i] = -out[i]
		}
	}
	return out
}

// Score sums Values. A board that decreases monotonically away from the
// sinks scores exactly its tile sum.
func (m FlowMap) Score(b Board) int {
	vals := m.Values(b)
	return lo.Sum(vals[:])
}

// Profile pairs a flow map with the order in which its cells break ties.
type Profile struct {
	Name     string
	Flow     FlowMap
	Priority []int
}

// Validate checks the flow map and that priority cells are on the board.
func (p Profile) Validate() error {
	if err := p.Flow.Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	if len(p.Priority) == 0 {
		return fmt.Errorf("solver: profile %s: empty priority list", p.Name)
	}
	for _, c := range p.Priority {
		if c < 0 || c >= Cells {
			return fmt.Errorf("solver: profile %s: priority cell %d out of range", p.Name, c)
		}
	}
	return nil
}

// DefaultProfile snakes down the columns' edge into the bottom-right corner.
func DefaultProfile() Profile {
	return mustProfile("default", map[int]int{
		14: 15, 13: 14, 12: 13,
		11: 10, 10: 9, 9: 8, 8: 12,
		7: 6, 6: 5, 5: 4, 4: 8,
		3: 2, 2: 1, 1: 0, 0: 4,
	}, []int{15, 14, 13, 12, 8, 4, 9, 0, 5, 10, 1})
}

// AltProfile drains the upper rows through the right column instead, for
// boards where the default snake has broken behind a large anchor.
func AltProfile() Profile {
	return mustProfile("alt", map[int]int{
		14: 15, 13: 14, 12: 13,
		11: 15, 10: 11, 9: 10, 8: 12,
		7: 11, 6: 7, 5: 6, 4: 5,
		3: 7, 2: 3, 1: 2, 0: 1,
	}, []int{15, 14, 13, 12, 9, 8, 11, 10})
}

func mustProfile(name string, pairs map[int]int, priority []int) Profile {
	m, err := NewFlowMap(pairs)
	if err != nil {
		panic(err)
	}
	return Profile{Name: name, Flow: m, Priority: priority}
}
