package solver

import "strings"

// Transform is one of the eight symmetries of the square board.
// Bit 0 mirrors horizontally, bit 1 mirrors vertically and bit 2 rotates a
// quarter turn counter-clockwise. Apply composes rotate, then vertical, then
// horizontal.
type Transform uint8

const (
	MirrorH Transform = 1 << iota
	MirrorV
	Rotate
)

// Identity leaves the board as is.
const Identity Transform = 0

// TransformCount is the number of distinct transforms.
const TransformCount = 8

// Valid reports whether t is one of the eight transform codes.
func (t Transform) Valid() bool {
	return t < TransformCount
}

// Apply re-expresses b in the transformed frame.
func (t Transform) Apply(b Board) Board {
	if t&Rotate != 0 {
		b = rotate(b)
	}
	if t&MirrorV != 0 {
		b = mirrorV(b)
	}
	if t&MirrorH != 0 {
		b = mirrorH(b)
	}
	return b
}

// Invert maps a board from the transformed frame back to the real one.
func (t Transform) Invert(b Board) Board {
	if t&MirrorH != 0 {
		b = mirrorH(b)
	}
	if t&MirrorV != 0 {
		b = mirrorV(b)
	}
	if t&Rotate != 0 {
		b = unrotate(b)
	}
	return b
}

// Direction translates a vector chosen in the transformed frame into the
// real-world direction code.
func (t Transform) Direction(v Vector) Direction {
	if t&MirrorH != 0 && v.Horizontal() {
		v = -v
	}
	if t&MirrorV != 0 && !v.Horizontal() {
		v = -v
	}
	d := directionOf(v)
	if t&Rotate != 0 {
		d = (d + 1) % 4
	}
	return d
}

func (t Transform) String() string {
	if t == Identity {
		return "identity"
	}
	var parts []string
	if t&Rotate != 0 {
		parts = append(parts, "rotate")
	}
	if t&MirrorV != 0 {
		parts = append(parts, "vertical")
	}
	if t&MirrorH != 0 {
		parts = append(parts, "horizontal")
	}
	return strings.Join(parts, "+")
}

// rotate turns the board a quarter turn counter-clockwise.
func rotate(b Board) Board {
	var out Board
	for i, v := range b {
		row, col := i/Side, i%Side
		out[(Side-1-col)*Side+row] = v
	}
	return out
}

func unrotate(b Board) Board {
	var out Board
	for i := range out {
		row, col := i/Side, i%Side
		out[i] = b[(Side-1-col)*Side+row]
	}
	return out
}

func mirrorH(b Board) Board {
	var out Board
	for i, v := range b {
		row, col := i/Side, i%Side
		out[row*Side+Side-1-col] = v
	}
	return out
}

func mirrorV(b Board) Board {
	var out Board
	for i, v := range b {
		row, col := i/Side, i%Side
		out[(Side-1-row)*Side+col] = v
	}
	return out
}
