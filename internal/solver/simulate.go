package solver

// Simulate slides every tile of start along v and merges equal neighbours.
//
// Tiles nearest the destination edge are resolved first, one step at a time.
// A tile may enter an empty cell, or merge into an equal tile only while that
// cell still holds the value it had in start. A tile that slid into place
// during this call therefore never absorbs a merge, and neither does a merge
// result. Horizontal vectors never wrap into the neighbouring row.
//
// The second result is false when nothing moved; the returned board is then
// start unchanged.
func Simulate(start Board, v Vector) (Board, bool) {
	data := start
	moved := false

	first, last, step := 0, Cells, 1
	if v > 0 {
		first, last, step = Cells-1, -1, -1
	}

	for idx := first; idx != last; idx += step {
		if start[idx] == 0 {
			continue
		}

		i := idx
		for {
			next := i + int(v)
			if next < 0 || next >= Cells {
				break
			}
			if v.Horizontal() && next/Side != i/Side {
				break
			}

			dst := data[next]
			if dst == 0 {
				data[next] = data[i]
				data[i] = 0
				i = next
				moved = true
				continue
			}
			if dst == data[i] && dst == start[next] {
				data[next] += data[i]
				data[i] = 0
				moved = true
			}
			break
		}
	}

	if !moved {
		return start, false
	}
	return data, true
}
