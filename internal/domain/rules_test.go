package domain

import "testing"

// boardFromRows parses a top-to-bottom textual board. '.' is empty, 'R'
// red, 'Y' yellow.
func boardFromRows(t *testing.T, rows [Rows]string) [][]Cell {
	t.Helper()
	board := NewBoard()
	for r, line := range rows {
		if len(line) != Columns {
			t.Fatalf("row %d has %d cells, want %d", r, len(line), Columns)
		}
		for c, ch := range line {
			switch ch {
			case 'R':
				board[r][c] = Red
			case 'Y':
				board[r][c] = Yellow
			}
		}
	}
	return board
}

func TestCheckWinDirections(t *testing.T) {
	tests := []struct {
		name     string
		rows     [Rows]string
		row, col int
		want     bool
	}{
		{
			name: "horizontal",
			rows: [Rows]string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"RRRR...",
			},
			row: 5, col: 3, want: true,
		},
		{
			name: "vertical",
			rows: [Rows]string{
				".......",
				".......",
				"R......",
				"R......",
				"R......",
				"R......",
			},
			row: 2, col: 0, want: true,
		},
		{
			name: "diagonal down-right",
			rows: [Rows]string{
				".......",
				".......",
				"R......",
				"YR.....",
				"YYR....",
				"YYYR...",
			},
			row: 2, col: 0, want: true,
		},
		{
			name: "diagonal up-right",
			rows: [Rows]string{
				".......",
				".......",
				"...R...",
				"..RY...",
				".RYY...",
				"RYYY...",
			},
			row: 2, col: 3, want: true,
		},
		{
			name: "three in a row is not enough",
			rows: [Rows]string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"RRR....",
			},
			row: 5, col: 2, want: false,
		},
		{
			name: "broken run does not win",
			rows: [Rows]string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"RRYRR..",
			},
			row: 5, col: 3, want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := boardFromRows(t, tt.rows)
			run, won := CheckWin(board, tt.row, tt.col, Red)
			if won != tt.want {
				t.Fatalf("CheckWin = %v, want %v", won, tt.want)
			}
			if won && len(run) < ToWin {
				t.Errorf("winning run has %d cells, want at least %d", len(run), ToWin)
			}
		})
	}
}

func TestCheckWinTieBreakPrefersHorizontal(t *testing.T) {
	// The disc at (2,3) completes a horizontal and a vertical run at once;
	// the horizontal direction is declared first and must win.
	board := boardFromRows(t, [Rows]string{
		".......",
		".......",
		"RRRR...",
		"YYYR...",
		"YYYR...",
		"YYYR...",
	})

	run, won := CheckWin(board, 2, 3, Red)
	if !won {
		t.Fatal("expected a win")
	}
	for _, pos := range run {
		if pos.Row != 2 {
			t.Fatalf("expected the horizontal run on row 2, got position %+v", pos)
		}
	}
	if len(run) != 4 {
		t.Errorf("expected 4 winning cells, got %d", len(run))
	}
}

func TestCheckWinReturnsFullContiguousRun(t *testing.T) {
	// Five in a row: every contiguous cell should be reported.
	board := boardFromRows(t, [Rows]string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"RRRRR..",
	})

	run, won := CheckWin(board, 5, 2, Red)
	if !won {
		t.Fatal("expected a win")
	}
	if len(run) != 5 {
		t.Errorf("expected 5 winning cells, got %d", len(run))
	}
}
