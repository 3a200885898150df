package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeBoard(t *testing.T) {
	b := Board{
		2, 4, 0, 0,
		0, 0, 0, 0,
		0, 0, 1024, 0,
		0, 0, 0, 32768,
	}
	code, err := EncodeBoard(b)
	require.NoError(t, err)
	assert.Equal(t, "1200000000a0000f", code)

	got, err := DecodeBoard(code)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	got, err = DecodeBoard("1200000000A0000F")
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestEncodeBoardRejects(t *testing.T) {
	var b Board
	b[0] = 3
	_, err := EncodeBoard(b)
	assert.True(t, errors.Is(err, ErrInvalidBoard))

	b[0] = 65536
	_, err = EncodeBoard(b)
	assert.Error(t, err)

	assert.Panics(t, func() { MustEncodeBoard(Board{0: 5}) })
}

func TestDecodeBoardRejects(t *testing.T) {
	for _, code := range []string{"", "123", "00000000000000000", "000000000000000g"} {
		_, err := DecodeBoard(code)
		assert.Error(t, err, "code %q", code)
	}
}

func TestParseBoard(t *testing.T) {
	want := row(3, 2, 2, 0, 0)

	got, err := ParseBoard("0000000000001100")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseBoard("0 0 0 0  0 0 0 0  0 0 0 0  2 2 0 0")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseBoard("[0,0,0,0, 0,0,0,0, 0,0,0,0, 2,2,0,0]")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseBoard("./././. 0/0/0/0 0/0/0/0 2/2/./.")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseBoard("0 0 0")
	assert.Error(t, err)

	_, err = ParseBoard("0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 6")
	assert.True(t, errors.Is(err, ErrInvalidBoard))

	_, err = ParseBoard("0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 x")
	assert.Error(t, err)
}

func TestBoardHelpers(t *testing.T) {
	b := snakeBoard()
	assert.Equal(t, 2050, b.Sum())
	assert.Equal(t, 4, b.EmptyCount())
	assert.Equal(t, 1024, b.MaxTile())
	assert.Equal(t, 3, b.Count(2))
	assert.Equal(t, 0, b.Replace(0, 2).EmptyCount())
	assert.Equal(t, 4, b.EmptyCount(), "Replace must not modify the receiver")
	require.NoError(t, b.Validate())

	b[3] = -2
	assert.ErrorIs(t, b.Validate(), ErrInvalidBoard)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", DirUp},
		{"R", DirRight},
		{" down ", DirDown},
		{"3", DirLeft},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseDirection("sideways")
	assert.Error(t, err)

	assert.Equal(t, "▶", DirRight.Arrow())
	assert.Equal(t, VecDown, DirDown.Vector())
	assert.False(t, Direction(4).Valid())
}
