package t2048

import (
	"github.com/vovakirdan/flow2048/internal/solver"
)

// BoardSize is the board dimension.
const BoardSize = solver.Side

// Board is the row-major game grid shared with the solver.
type Board = solver.Board

// line returns the cell indices of row or column k in slide order: the
// first index is the wall the tiles move towards.
func line(dir solver.Direction, k int) [BoardSize]int {
	var idx [BoardSize]int
	for i := range BoardSize {
		switch dir {
		case solver.DirLeft:
			idx[i] = k*BoardSize + i
		case solver.DirRight:
			idx[i] = k*BoardSize + BoardSize - 1 - i
		case solver.DirUp:
			idx[i] = i*BoardSize + k
		case solver.DirDown:
			idx[i] = (BoardSize-1-i)*BoardSize + k
		}
	}
	return idx
}

// slideRow slides and merges a single line towards index 0.
// Returns the updated line and the score gained from merges.
func slideRow(row [BoardSize]int) (result [BoardSize]int, score int) {
	writePos := 0
	mergeable := false

	for _, v := range row {
		if v == 0 {
			continue
		}
		if mergeable && result[writePos-1] == v {
			result[writePos-1] *= 2
			score += result[writePos-1]
			mergeable = false
			continue
		}
		result[writePos] = v
		writePos++
		mergeable = true
	}

	return result, score
}

// Slide performs a move in the given direction.
// Returns the new board, score gained, and whether the board changed.
func Slide(board Board, dir solver.Direction) (Board, int, bool) {
	if !dir.Valid() {
		return board, 0, false
	}

	out := board
	total := 0
	for k := range BoardSize {
		idx := line(dir, k)
		var row [BoardSize]int
		for i, cell := range idx {
			row[i] = board[cell]
		}
		slid, score := slideRow(row)
		for i, cell := range idx {
			out[cell] = slid[i]
		}
		total += score
	}

	return out, total, out != board
}

// EmptyCells returns the indices of all empty cells.
func EmptyCells(board Board) []int {
	var cells []int
	for i, v := range board {
		if v == 0 {
			cells = append(cells, i)
		}
	}
	return cells
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func HasPossibleMerge(board Board) bool {
	return solver.HasHorizontalMerges(board, false) || solver.HasVerticalMerges(board, false)
}

// CanMove returns true if any move is possible.
func CanMove(board Board) bool {
	return board.EmptyCount() > 0 || HasPossibleMerge(board)
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(board Board) bool {
	return !CanMove(board)
}
