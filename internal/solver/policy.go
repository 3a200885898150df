package solver

import (
	"errors"
	"fmt"
)

// DangerSignal fires when the default flow value of Cell drops below Below.
type DangerSignal struct {
	Cell  int
	Below int
}

// Policy holds every tuned constant the engine uses. The values are
// empirical; DefaultPolicy reproduces the hand-tuned set.
type Policy struct {
	Default Profile
	Alt     Profile

	// Orientation is searched again when the current score falls below
	// -sum/StabilityRatio, and a new transform must beat the current
	// score by sum/SwitchMarginDivisor.
	StabilityRatio      float64
	SwitchMarginDivisor float64

	// The alternate profile is used when any danger signal fires and the
	// anchor already holds at least AltAnchorMin.
	Danger       []DangerSignal
	AltAnchorMin int

	// Follow-up moves are only chased when the anchor exceeds
	// ChaseAnchorMin. At most ChaseLimit+1 worklist entries are examined
	// and entries with ChaseMaxOpen or more empty cells are skipped.
	ChaseAnchorMin int
	ChaseLimit     int
	ChaseMaxOpen   int

	// Longest trace (in vectors) that may still be extended, and the
	// tighter limit for traces that start with a left slide.
	TraceLimit     int
	TraceLimitLeft int

	// SpawnValue fills a lone empty cell to model the worst next spawn.
	SpawnValue int

	// Real-board flow values at or below this magnitude count as a push
	// for every candidate.
	NegligibleMagnitude int
}

// DefaultPolicy returns the hand-tuned constants.
func DefaultPolicy() Policy {
	return Policy{
		Default:             DefaultProfile(),
		Alt:                 AltProfile(),
		StabilityRatio:      1.5,
		SwitchMarginDivisor: 20,
		Danger: []DangerSignal{
			{Cell: 8, Below: -8},
			{Cell: 9, Below: -16},
			{Cell: 12, Below: -16},
		},
		AltAnchorMin:        64,
		ChaseAnchorMin:      8,
		ChaseLimit:          20,
		ChaseMaxOpen:        13,
		TraceLimit:          2,
		TraceLimitLeft:      1,
		SpawnValue:          2,
		NegligibleMagnitude: 2,
	}
}

// Validate rejects policies the engine cannot run with.
func (p Policy) Validate() error {
	if err := p.Default.Validate(); err != nil {
		return err
	}
	if err := p.Alt.Validate(); err != nil {
		return err
	}
	if p.StabilityRatio <= 0 || p.SwitchMarginDivisor <= 0 {
		return errors.New("solver: orientation ratios must be positive")
	}
	for _, d := range p.Danger {
		if d.Cell < 0 || d.Cell >= Cells {
			return fmt.Errorf("solver: danger cell %d out of range", d.Cell)
		}
	}
	if p.ChaseLimit < 0 || p.TraceLimit < 1 || p.TraceLimitLeft < 1 {
		return errors.New("solver: chase limits must be positive")
	}
	if p.SpawnValue < 2 {
		return fmt.Errorf("solver: spawn value %d is not a tile", p.SpawnValue)
	}
	return nil
}

// inDanger reports whether the alternate profile should take over for a
// board with the given default flow values.
func (p Policy) inDanger(vals [Cells]int) bool {
	if vals[AnchorCell] < p.AltAnchorMin {
		return false
	}
	for _, d := range p.Danger {
		if vals[d.Cell] < d.Below {
			return true
		}
	}
	return false
}
