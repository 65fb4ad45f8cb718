package domain

// winDirections in tie-break order: horizontal, vertical, diagonal \, diagonal /.
var winDirections = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// CheckWin scans the four line directions through the placed cell for a run
// of at least ToWin discs of the given color. The first direction (in
// declared order) that reaches ToWin wins; its full contiguous run is
// returned so the winning cells can be highlighted.
func CheckWin(board [][]Cell, row, column int, c Cell) ([]Position, bool) {
	for _, dir := range winDirections {
		run := contiguousRun(board, row, column, dir[0], dir[1], c)
		if len(run) >= ToWin {
			return run, true
		}
	}
	return nil, false
}

// contiguousRun collects the placed cell plus every same-colored cell
// reachable from it along (dr,dc) and its opposite, ordered along the line.
func contiguousRun(board [][]Cell, row, column, dr, dc int, c Cell) []Position {
	if board[row][column] != c {
		return nil
	}

	// walk backwards to the start of the run
	r, col := row, column
	for inBounds(r-dr, col-dc) && board[r-dr][col-dc] == c {
		r -= dr
		col -= dc
	}

	run := []Position{}
	for inBounds(r, col) && board[r][col] == c {
		run = append(run, Position{Row: r, Col: col})
		r += dr
		col += dc
	}
	return run
}

func inBounds(row, column int) bool {
	return row >= 0 && row < Rows && column >= 0 && column < Columns
}
