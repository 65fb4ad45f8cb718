package domain

func NewBoard() [][]Cell {
	board := make([][]Cell, Rows)
	for i := range board {
		board[i] = make([]Cell, Columns)
	}
	return board
}

func IsValidColumn(column int) bool {
	return column >= 0 && column < Columns
}

// DropDisc lands a disc in the lowest empty row of the column.
// board[0] is the top row, board[Rows-1] the bottom.
func DropDisc(board [][]Cell, column int, c Cell) (int, error) {
	if !IsValidColumn(column) {
		return -1, ErrInvalidMove
	}

	for row := Rows - 1; row >= 0; row-- {
		if board[row][column] == Empty {
			board[row][column] = c
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// IsBoardFull reports whether the top row has no empty cell left.
func IsBoardFull(board [][]Cell) bool {
	for c := 0; c < Columns; c++ {
		if board[0][c] == Empty {
			return false
		}
	}

	return true
}

// CopyBoard creates a deep copy of the board
func CopyBoard(board [][]Cell) [][]Cell {
	newBoard := make([][]Cell, len(board))
	for i := range board {
		newBoard[i] = make([]Cell, len(board[i]))
		copy(newBoard[i], board[i])
	}
	return newBoard
}
