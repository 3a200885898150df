package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cand(b Board) Candidate {
	return Candidate{Vector: VecDown, Board: b, Trace: []Vector{VecDown}, Open: b.EmptyCount()}
}

func TestSelectEmpty(t *testing.T) {
	_, ok := Select(Board{}, nil, DefaultPolicy())
	assert.False(t, ok)
}

func TestSelectUniqueWinner(t *testing.T) {
	real := row(3, 0, 0, 2, 2)
	cands := []Candidate{
		cand(row(3, 0, 0, 2, 2)),
		cand(row(3, 0, 0, 0, 4)),
	}
	sel, ok := Select(real, cands, DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, 1, sel.Index)
	assert.Equal(t, AnchorCell, sel.Cell)
	assert.Equal(t, "default", sel.Profile)
}

func TestSelectNarrowsToBestWinners(t *testing.T) {
	real := row(3, 0, 0, 2, 8)
	cands := []Candidate{
		cand(row(3, 0, 0, 4, 8)),
		cand(row(3, 0, 2, 4, 8)),
		cand(row(3, 0, 0, 2, 8)),
	}
	// Cells 15 and 14 cannot separate the first two; cell 13 can.
	sel, ok := Select(real, cands, DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, 1, sel.Index)
	assert.Equal(t, 13, sel.Cell)
}

func TestSelectFallsBackToMostOpen(t *testing.T) {
	real := row(3, 0, 0, 0, 4)
	crowded := row(3, 0, 0, 0, 4)
	crowded[3] = 2
	cands := []Candidate{
		cand(crowded),
		cand(row(3, 0, 0, 0, 4)),
	}
	sel, ok := Select(real, cands, DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, 1, sel.Index)
	assert.Equal(t, NoFlow, sel.Cell)
}

func TestSelectTiesGoToFirst(t *testing.T) {
	b := row(3, 0, 0, 0, 4)
	sel, ok := Select(b, []Candidate{cand(b), cand(b), cand(b)}, DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, 0, sel.Index)
}

func TestSelectSwitchesToAltProfile(t *testing.T) {
	var real Board
	real[15] = 64
	real[8] = 16
	require.True(t, DefaultPolicy().inDanger(DefaultProfile().Flow.Values(real)))

	sel, ok := Select(real, []Candidate{cand(real), cand(real)}, DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, "alt", sel.Profile)

	// The same shape behind a small anchor keeps the default profile.
	real[15] = 32
	sel, ok = Select(real, []Candidate{cand(real), cand(real)}, DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, "default", sel.Profile)
}

func TestSelectAltProfileKeepsDefaultCandidateValues(t *testing.T) {
	var real Board
	real[15] = 64
	real[8] = 16

	// Cell 9 drains into 8 by default and into 10 under the alternate map,
	// so this candidate improves it only when valued the default way.
	filled := real
	filled[9] = 4
	require.Positive(t, DefaultProfile().Flow.Values(filled)[9])
	require.Negative(t, AltProfile().Flow.Values(filled)[9])

	sel, ok := Select(real, []Candidate{cand(filled), cand(real)}, DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, "alt", sel.Profile)
	assert.Equal(t, 0, sel.Index)
	assert.Equal(t, 9, sel.Cell)
}
