package solver

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"unicode"
)

// maxExponent is the largest exponent a single hex digit can encode (32768).
const maxExponent = 15

// EncodeBoard renders b as 16 hex digits in row-major order: '0' for an
// empty cell, otherwise log2 of the tile.
func EncodeBoard(b Board) (string, error) {
	var sb strings.Builder
	sb.Grow(Cells)
	for i, v := range b {
		if v == 0 {
			sb.WriteByte('0')
			continue
		}
		if v < 2 || bits.OnesCount(uint(v)) != 1 {
			return "", fmt.Errorf("%w: cell %d holds %d", ErrInvalidBoard, i, v)
		}
		exp := bits.TrailingZeros(uint(v))
		if exp > maxExponent {
			return "", fmt.Errorf("solver: encode: tile %d too large", v)
		}
		sb.WriteString(strconv.FormatInt(int64(exp), 16))
	}
	return sb.String(), nil
}

// MustEncodeBoard is EncodeBoard for boards known to be valid.
func MustEncodeBoard(b Board) string {
	s, err := EncodeBoard(b)
	if err != nil {
		panic(err)
	}
	return s
}

// DecodeBoard parses the form produced by EncodeBoard.
func DecodeBoard(code string) (Board, error) {
	var b Board
	code = strings.TrimSpace(code)
	if len(code) != Cells {
		return b, fmt.Errorf("solver: decode: want %d digits, got %d", Cells, len(code))
	}
	for i := range Cells {
		exp, err := strconv.ParseUint(code[i:i+1], 16, 8)
		if err != nil {
			return b, fmt.Errorf("solver: decode: cell %d: %w", i, err)
		}
		if exp > 0 {
			b[i] = 1 << exp
		}
	}
	return b, nil
}

// ParseBoard accepts either a 16-digit hex code or 16 integers separated by
// spaces, commas or slashes.
func ParseBoard(s string) (Board, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '/' || r == '[' || r == ']'
	})
	switch len(fields) {
	case 1:
		return DecodeBoard(fields[0])
	case Cells:
		var b Board
		for i, f := range fields {
			if f == "." {
				continue
			}
			v, err := strconv.Atoi(f)
			if err != nil {
				return b, fmt.Errorf("solver: parse: cell %d: %w", i, err)
			}
			b[i] = v
		}
		return b, b.Validate()
	}
	return Board{}, fmt.Errorf("solver: parse: want a %d-digit code or %d values, got %d fields", Cells, Cells, len(fields))
}
