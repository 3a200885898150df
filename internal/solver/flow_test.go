package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snakeBoard decreases along every edge of the default flow map.
func snakeBoard() Board {
	return Board{
		2, 2, 0, 0,
		4, 2, 0, 0,
		64, 32, 16, 8,
		128, 256, 512, 1024,
	}
}

func TestFlowScoreMonotoneBoard(t *testing.T) {
	b := snakeBoard()
	flow := DefaultProfile().Flow
	assert.Equal(t, b.Sum(), flow.Score(b))
	assert.Equal(t, [Cells]int(b), flow.Values(b))
}

func TestFlowValuesNegateUphill(t *testing.T) {
	var b Board
	b[14], b[15] = 4, 2
	vals := DefaultProfile().Flow.Values(b)
	assert.Equal(t, -4, vals[14])
	assert.Equal(t, 2, vals[15])
	assert.Equal(t, -2, DefaultProfile().Flow.Score(b))
}

func TestFlowScoreRanksOrientation(t *testing.T) {
	b := snakeBoard()
	flow := DefaultProfile().Flow
	for tr := Identity + 1; tr < TransformCount; tr++ {
		assert.Less(t, flow.Score(tr.Apply(b)), flow.Score(b), "transform %s", tr)
	}
}

func TestNewFlowMapRejectsBadEdges(t *testing.T) {
	_, err := NewFlowMap(map[int]int{0: 1, 1: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")

	_, err = NewFlowMap(map[int]int{0: 16})
	require.Error(t, err)

	_, err = NewFlowMap(map[int]int{-1: 3})
	require.Error(t, err)

	m, err := NewFlowMap(map[int]int{0: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, m[0])
	assert.Equal(t, NoFlow, m[1])
}

func TestProfiles(t *testing.T) {
	for _, p := range []Profile{DefaultProfile(), AltProfile()} {
		require.NoError(t, p.Validate(), p.Name)
		assert.Equal(t, NoFlow, p.Flow[AnchorCell], p.Name)
		assert.Equal(t, AnchorCell, p.Priority[0], p.Name)
	}

	bad := DefaultProfile()
	bad.Priority = []int{15, 99}
	assert.Error(t, bad.Validate())
}

func TestPolicyValidate(t *testing.T) {
	require.NoError(t, DefaultPolicy().Validate())

	p := DefaultPolicy()
	p.StabilityRatio = 0
	assert.Error(t, p.Validate())

	p = DefaultPolicy()
	p.SpawnValue = 3
	assert.Error(t, p.Validate())

	p = DefaultPolicy()
	p.Danger = append(p.Danger, DangerSignal{Cell: 20, Below: -1})
	assert.Error(t, p.Validate())
}
