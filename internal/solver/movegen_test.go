package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traces(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.TraceString()
	}
	return out
}

func TestGeneratePessimisticSpawn(t *testing.T) {
	b := Board{
		0, 4, 8, 16,
		32, 64, 128, 256,
		512, 1024, 2, 4,
		8, 16, 32, 64,
	}
	cands := Generate(b, DefaultPolicy())
	require.Equal(t, []string{"-1", "-4"}, traces(cands))

	left := cands[0]
	assert.Equal(t, VecLeft, left.Vector)
	assert.Equal(t, 0, left.Open)
	assert.Equal(t, 2, left.Board[3], "lone empty cell filled with a 2")
	assert.Equal(t, 0, left.Board.EmptyCount())

	up := cands[1]
	assert.Equal(t, 2, up.Board[12])
}

func chaseBoard() Board {
	return Board{
		0, 0, 0, 0,
		0, 0, 0, 0,
		4, 0, 0, 0,
		4, 8, 2, 16,
	}
}

func TestGenerateChasesMerges(t *testing.T) {
	cands := Generate(chaseBoard(), DefaultPolicy())
	require.Equal(t, []string{"+4", "+1", "-4", "+4,+1", "+4,-1"}, traces(cands))

	for _, c := range cands[3:] {
		assert.Equal(t, VecDown, c.Vector)
		assert.Equal(t, cands[0].Open, c.Open)
	}
	assert.Equal(t, row(3, 0, 16, 2, 16), cands[3].Board)
	assert.Equal(t, row(3, 16, 2, 16, 0), cands[4].Board)
}

func TestGenerateSkipsChaseWithoutAnchor(t *testing.T) {
	p := DefaultPolicy()
	p.ChaseAnchorMin = 16
	cands := Generate(chaseBoard(), p)
	assert.Equal(t, []string{"+4", "+1", "-4"}, traces(cands))
}

func TestGenerateSkipsOpenBoards(t *testing.T) {
	p := DefaultPolicy()
	p.ChaseMaxOpen = 12
	cands := Generate(chaseBoard(), p)
	assert.Len(t, cands, 3)
}

func TestGenerateFollowUpSpawnsWhenTight(t *testing.T) {
	b := Board{
		2, 4, 8, 16,
		32, 64, 128, 256,
		512, 1024, 2048, 4,
		16, 16, 0, 32,
	}
	cands := Generate(b, DefaultPolicy())
	require.NotEmpty(t, cands)
	for _, c := range cands {
		if len(c.Trace) > 1 && c.Open <= 1 {
			assert.Equal(t, 0, c.Board.EmptyCount(), "trace %s", c.TraceString())
		}
	}
}

func TestGenerateRespectsWorklistCap(t *testing.T) {
	p := DefaultPolicy()
	p.ChaseLimit = 0
	cands := Generate(chaseBoard(), p)
	// Only the first base move is examined, and it unlocks two follow-ups.
	assert.Equal(t, []string{"+4", "+1", "-4", "+4,+1", "+4,-1"}, traces(cands))

	p.TraceLimit = 0
	p.TraceLimitLeft = 0
	assert.Len(t, Generate(chaseBoard(), p), 3)
}

func TestGenerateNoMoves(t *testing.T) {
	b := Board{
		2, 4, 2, 4,
		4, 2, 4, 2,
		2, 4, 2, 4,
		4, 2, 4, 2,
	}
	assert.Empty(t, Generate(b, DefaultPolicy()))
}

func TestGenerateUpMoveChasesBottomRowsOnly(t *testing.T) {
	b := Board{
		0, 0, 0, 0,
		0, 0, 0, 0,
		2, 0, 0, 0,
		4, 2, 8, 16,
	}
	cands := Generate(b, DefaultPolicy())
	require.Equal(t, []string{"+1", "-4"}, traces(cands))

	// Sliding up leaves a pair in the top row, which is not chased.
	up := cands[1]
	assert.Equal(t, []int{2, 2, 8, 16}, up.Board[:Side])
	assert.True(t, HasHorizontalMerges(up.Board, false))
}
