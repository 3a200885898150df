// Package solver picks moves for a 4x4 2048 board.
//
// It scores boards with a positional "flow" heuristic instead of searching
// the game tree: the board is normalized into a stable orientation, every
// legal slide (plus a few merge-triggered follow-up slides) is simulated,
// and a priority cascade over the heuristic's per-cell values decides the
// winner. The package never touches real game state; callers hand it a
// flat snapshot and get a direction back.
package solver

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Side is the board dimension.
const Side = 4

// Cells is the number of cells on the board.
const Cells = Side * Side

// AnchorCell is the corner the default flow map accumulates into.
const AnchorCell = Cells - 1

// ErrInvalidBoard is returned when a board holds values a 2048 game cannot produce.
var ErrInvalidBoard = errors.New("solver: invalid board")

// Board is a row-major snapshot of cell values. Zero means empty.
type Board [Cells]int

// Vector is a slide expressed in row-major index arithmetic.
type Vector int

const (
	VecUp    Vector = -Side
	VecLeft  Vector = -1
	VecRight Vector = 1
	VecDown  Vector = Side
)

// moveVectors is the order in which base moves are generated.
var moveVectors = [...]Vector{VecDown, VecRight, VecLeft, VecUp}

// Horizontal reports whether the vector moves within a row.
func (v Vector) Horizontal() bool {
	return v == VecLeft || v == VecRight
}

// String renders the vector with an explicit sign, e.g. "+4" or "-1".
func (v Vector) String() string {
	if v < 0 {
		return strconv.Itoa(int(v))
	}
	return "+" + strconv.Itoa(int(v))
}

// Direction is the public move code: 0=up, 1=right, 2=down, 3=left.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// directionVectors maps a direction code to its untransformed vector.
var directionVectors = [...]Vector{VecUp, VecRight, VecDown, VecLeft}

// Valid reports whether d is one of the four direction codes.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

// Vector returns the slide vector for d in the untransformed frame.
func (d Direction) Vector() Vector {
	if !d.Valid() {
		return 0
	}
	return directionVectors[d]
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Arrow returns a glyph for displaying d as a hint.
func (d Direction) Arrow() string {
	switch d {
	case DirUp:
		return "▲"
	case DirRight:
		return "▶"
	case DirDown:
		return "▼"
	case DirLeft:
		return "◀"
	default:
		return "?"
	}
}

// ParseDirection accepts a direction name, its initial, or its numeric code.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "0":
		return DirUp, nil
	case "right", "r", "1":
		return DirRight, nil
	case "down", "d", "2":
		return DirDown, nil
	case "left", "l", "3":
		return DirLeft, nil
	}
	return 0, fmt.Errorf("solver: unknown direction %q", s)
}

// directionOf maps an untransformed vector back to its direction code.
func directionOf(v Vector) Direction {
	idx := lo.IndexOf(directionVectors[:], v)
	if idx < 0 {
		return DirUp
	}
	return Direction(idx)
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	return lo.Sum(b[:])
}

// Count returns how many cells hold val.
func (b Board) Count(val int) int {
	return lo.Count(b[:], val)
}

// EmptyCount returns the number of empty cells.
func (b Board) EmptyCount() int {
	return b.Count(0)
}

// MaxTile returns the largest tile on the board.
func (b Board) MaxTile() int {
	return lo.Max(b[:])
}

// Replace returns a copy of b with every occurrence of old set to val.
func (b Board) Replace(old, val int) Board {
	for i := range b {
		if b[i] == old {
			b[i] = val
		}
	}
	return b
}

// Validate checks that every cell is empty or a power of two >= 2.
func (b Board) Validate() error {
	for i, v := range b {
		if v == 0 {
			continue
		}
		if v < 2 || bits.OnesCount(uint(v)) != 1 {
			return fmt.Errorf("%w: cell %d holds %d", ErrInvalidBoard, i, v)
		}
	}
	return nil
}

// String renders the board as four right-aligned rows.
func (b Board) String() string {
	var sb strings.Builder
	for row := range Side {
		for col := range Side {
			v := b[row*Side+col]
			if v == 0 {
				sb.WriteString("     .")
				continue
			}
			fmt.Fprintf(&sb, "%6d", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
