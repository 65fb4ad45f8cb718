package domain

import "testing"

func TestDropDiscLandsInLowestEmptyRow(t *testing.T) {
	board := NewBoard()

	row, err := DropDisc(board, 3, Red)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row != Rows-1 {
		t.Errorf("expected first disc at bottom row %d, got %d", Rows-1, row)
	}

	row, err = DropDisc(board, 3, Yellow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row != Rows-2 {
		t.Errorf("expected second disc at row %d, got %d", Rows-2, row)
	}

	if board[Rows-1][3] != Red || board[Rows-2][3] != Yellow {
		t.Errorf("board does not reflect dropped discs: %v", board)
	}
}

func TestDropDiscFullColumn(t *testing.T) {
	board := NewBoard()

	for i := 0; i < Rows; i++ {
		if _, err := DropDisc(board, 0, Red); err != nil {
			t.Fatalf("drop %d failed: %v", i, err)
		}
	}

	if _, err := DropDisc(board, 0, Yellow); err != ErrColumnFull {
		t.Errorf("expected ErrColumnFull, got %v", err)
	}
}

func TestDropDiscInvalidColumn(t *testing.T) {
	board := NewBoard()

	for _, column := range []int{-1, Columns, Columns + 5} {
		if _, err := DropDisc(board, column, Red); err != ErrInvalidMove {
			t.Errorf("column %d: expected ErrInvalidMove, got %v", column, err)
		}
	}
}

func TestIsBoardFull(t *testing.T) {
	board := NewBoard()
	if IsBoardFull(board) {
		t.Error("empty board reported full")
	}

	// fill only the top row; that's all the check should look at
	for c := 0; c < Columns; c++ {
		board[0][c] = Red
	}
	if !IsBoardFull(board) {
		t.Error("board with occupied top row not reported full")
	}
}

func TestCopyBoardIsDeep(t *testing.T) {
	board := NewBoard()
	board[5][0] = Red

	copied := CopyBoard(board)
	copied[5][0] = Yellow

	if board[5][0] != Red {
		t.Error("mutating the copy changed the original")
	}
}
