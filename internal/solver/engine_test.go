package solver

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultPolicy(), opts...)
	require.NoError(t, err)
	return e
}

func TestNewEngineRejectsBadPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.Default.Priority = nil
	_, err := NewEngine(p)
	assert.Error(t, err)
}

func deadBoard() Board {
	return Board{
		2, 4, 2, 4,
		4, 2, 4, 2,
		2, 4, 2, 4,
		4, 2, 4, 2,
	}
}

func TestRecommendNoMoves(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Recommend(deadBoard())
	assert.ErrorIs(t, err, ErrNoMoves)

	dec, err := e.Analyze(deadBoard())
	assert.ErrorIs(t, err, ErrNoMoves)
	assert.Equal(t, -1, dec.Chosen)
	assert.Empty(t, dec.Candidates)
	assert.Contains(t, dec.Reason, "random fallback")
}

func TestRecommendNoMovesFallsBackToSeededRandom(t *testing.T) {
	pick := func(seed int64) []Direction {
		e := newTestEngine(t, WithSeed(seed))
		var dirs []Direction
		for range 32 {
			d, err := e.Recommend(deadBoard())
			require.ErrorIs(t, err, ErrNoMoves)
			require.True(t, d.Valid(), "direction %d", d)
			dirs = append(dirs, d)
		}
		return dirs
	}

	first := pick(5)
	assert.Equal(t, first, pick(5))
	assert.Greater(t, len(lo.Uniq(first)), 1)
}

func TestRecommendInvalidBoard(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Recommend(Board{0: 3})
	assert.ErrorIs(t, err, ErrInvalidBoard)
}

func TestRecommendOnlyMove(t *testing.T) {
	e := newTestEngine(t)
	b := Board{
		0, 0, 0, 0,
		2, 4, 8, 16,
		32, 64, 128, 256,
		512, 1024, 2048, 4096,
	}
	dec, err := e.Analyze(b)
	require.NoError(t, err)
	assert.Equal(t, DirUp, dec.Direction)
	assert.Equal(t, "only legal move", dec.Reason)
	assert.Len(t, dec.Candidates, 1)
}

func TestOrientationFindsCorner(t *testing.T) {
	e := newTestEngine(t)
	_, oriented := e.Transform()
	assert.False(t, oriented)

	var b Board
	b[0], b[1] = 1024, 2
	_, err := e.Recommend(b)
	require.NoError(t, err)

	tr, oriented := e.Transform()
	require.True(t, oriented)
	assert.Equal(t, MirrorH|MirrorV, tr)

	e.Reset()
	tr, oriented = e.Transform()
	assert.False(t, oriented)
	assert.Equal(t, Identity, tr)
}

func TestOrientationHysteresis(t *testing.T) {
	e := newTestEngine(t)

	var first Board
	first[0], first[1] = 1024, 2
	_, err := e.Recommend(first)
	require.NoError(t, err)
	tr, _ := e.Transform()
	require.Equal(t, MirrorH|MirrorV, tr)

	// Identity would score better here, but the current frame is not bad
	// enough to trigger a new search.
	var mild Board
	mild[0], mild[15] = 2, 4
	for range 3 {
		_, err = e.Recommend(mild)
		require.NoError(t, err)
		tr, _ = e.Transform()
		assert.Equal(t, MirrorH|MirrorV, tr)
	}

	// Under the current frame the big tile sits in the far corner.
	var flipped Board
	flipped[15] = 1024
	_, err = e.Recommend(flipped)
	require.NoError(t, err)
	tr, _ = e.Transform()
	assert.Equal(t, Identity, tr)
}

func TestOrientationStableOnTies(t *testing.T) {
	e := newTestEngine(t)
	b := snakeBoard()
	first, err := e.Recommend(b)
	require.NoError(t, err)
	tr, _ := e.Transform()
	for range 5 {
		got, err := e.Recommend(b)
		require.NoError(t, err)
		assert.Equal(t, first, got)
		again, _ := e.Transform()
		assert.Equal(t, tr, again)
	}
}

func TestAnalyzeRecordsDecision(t *testing.T) {
	e := newTestEngine(t)
	dec, err := e.Analyze(chaseBoard())
	require.NoError(t, err)
	require.Len(t, dec.Scores, len(dec.Candidates))
	require.GreaterOrEqual(t, dec.Chosen, 0)
	assert.NotEmpty(t, dec.Reason)
	assert.NotEmpty(t, dec.Profile)
	assert.Equal(t, dec.Transform.Direction(dec.Candidates[dec.Chosen].Vector), dec.Direction)
}

func TestEngineLogsOrientation(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	e := newTestEngine(t, WithLogger(logger), WithSeed(3))

	var b Board
	b[0], b[1] = 1024, 2
	_, err := e.Recommend(b)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "orientation switch")
}

// Every recommendation must be a legal move on the real board, whatever
// frame the engine is working in.
func TestRecommendPlaysLegalMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := newTestEngine(t)

	for game := range 5 {
		e.Reset()
		b := spawn(rng, spawn(rng, Board{}))
		for move := 0; ; move++ {
			d, err := e.Recommend(b)
			if err != nil {
				require.ErrorIs(t, err, ErrNoMoves, "game %d move %d", game, move)
				break
			}
			next, ok := Simulate(b, d.Vector())
			require.True(t, ok, "game %d move %d: %s is not legal on\n%s", game, move, d, b)
			b = spawn(rng, next)
		}
		assert.Greater(t, b.MaxTile(), 16, "game %d", game)
	}
}

func spawn(rng *rand.Rand, b Board) Board {
	var empty []int
	for i, v := range b {
		if v == 0 {
			empty = append(empty, i)
		}
	}
	if len(empty) == 0 {
		return b
	}
	val := 2
	if rng.Intn(10) == 0 {
		val = 4
	}
	b[empty[rng.Intn(len(empty))]] = val
	return b
}
