package solver

// lowerHalfStart is the first index of the bottom two rows.
const lowerHalfStart = Cells / 2

// HasHorizontalMerges reports whether some row holds two equal tiles with
// only empty cells between them. With lowerHalfOnly set, only the bottom two
// rows are scanned.
func HasHorizontalMerges(b Board, lowerHalfOnly bool) bool {
	start := 0
	if lowerHalfOnly {
		start = lowerHalfStart
	}
	for i := start; i < Cells; i++ {
		if b[i] == 0 {
			continue
		}
		j := i + 1
		for j%Side != 0 && b[j] == 0 {
			j++
		}
		if j%Side != 0 && b[i] == b[j] {
			return true
		}
	}
	return false
}

// HasVerticalMerges reports whether some column holds two equal tiles with
// only empty cells between them. With lowerHalfOnly set, only tiles in the
// third row are used as the upper tile of a pair.
func HasVerticalMerges(b Board, lowerHalfOnly bool) bool {
	start := 0
	if lowerHalfOnly {
		start = lowerHalfStart
	}
	for i := start; i < Cells-Side; i++ {
		if b[i] == 0 {
			continue
		}
		j := i + Side
		for j < Cells && b[j] == 0 {
			j += Side
		}
		if j < Cells && b[i] == b[j] {
			return true
		}
	}
	return false
}
