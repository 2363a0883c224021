package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Full board without four in a row for either side.
var drawRows = []string{
	"OOXXOOX",
	"XXOOXXO",
	"OOXXOOX",
	"XXOOXXO",
	"OOXXOOX",
	"XXOOXXO",
}

func mustParse(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := ParseBoard(rows...)
	require.NoError(t, err)
	return b
}

func requireGravity(t *testing.T, b *Board) {
	t.Helper()
	for col := 0; col < b.Columns(); col++ {
		for row := 1; row < b.Rows(); row++ {
			if b.At(row, col) != Empty {
				require.NotEqual(t, Empty, b.At(row-1, col), "Piece at row %d column %d should not float", row, col)
			}
		}
	}
}

func TestNewBoard(t *testing.T) {
	t.Run("creating an empty standard board", func(t *testing.T) {
		b := NewStandardBoard()

		require.Equal(t, 6, b.Rows())
		require.Equal(t, 7, b.Columns())
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, b.ValidColumns(), "All columns should be open")
		require.False(t, b.IsTerminal(), "Empty board should not be terminal")
	})

	t.Run("rejecting boards too small to connect four", func(t *testing.T) {
		_, err := NewBoard(3, 7)
		require.ErrorIs(t, err, ErrInvalidDimensions)

		_, err = NewBoard(6, 3)
		require.ErrorIs(t, err, ErrInvalidDimensions)
	})
}

func TestParseBoard(t *testing.T) {
	t.Run("reading rows top first", func(t *testing.T) {
		b := mustParse(t,
			"....",
			"....",
			"O...",
			"XX..",
		)

		require.Equal(t, Player1, b.At(0, 0))
		require.Equal(t, Player1, b.At(0, 1))
		require.Equal(t, Player2, b.At(1, 0))
		require.Equal(t, Empty, b.At(1, 1))
	})

	t.Run("rejecting floating pieces", func(t *testing.T) {
		_, err := ParseBoard(
			"....",
			"....",
			"X...",
			"....",
		)
		require.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("rejecting ragged rows", func(t *testing.T) {
		_, err := ParseBoard("....", "...", "....", "....")
		require.ErrorIs(t, err, ErrInvalidBoard)
	})
}

func TestDrop(t *testing.T) {
	t.Run("stacking pieces from the bottom", func(t *testing.T) {
		b := NewStandardBoard()

		for want := 0; want < 3; want++ {
			row, err := b.Drop(3, Player1)
			require.NoError(t, err)
			require.Equal(t, want, row, "Piece should land on the lowest open row")
		}
		requireGravity(t, b)
	})

	t.Run("refusing a full column without touching the board", func(t *testing.T) {
		b := NewStandardBoard()
		for i := 0; i < b.Rows(); i++ {
			_, err := b.Drop(0, Piece(i%2+1))
			require.NoError(t, err)
		}
		before := b.Copy()

		require.False(t, b.IsValidColumn(0), "Full column should not be valid")
		_, err := b.LowestOpenRow(0)
		require.ErrorIs(t, err, ErrColumnFull)
		_, err = b.Drop(0, Player1)
		require.ErrorIs(t, err, ErrColumnFull)
		require.Equal(t, before, b, "Board should not change on a rejected drop")
	})

	t.Run("refusing out of range columns", func(t *testing.T) {
		b := NewStandardBoard()

		require.False(t, b.IsValidColumn(-1))
		require.False(t, b.IsValidColumn(7))
		_, err := b.Drop(7, Player1)
		require.ErrorIs(t, err, ErrColumnOutOfRange)
	})

	t.Run("keeping gravity for every valid column", func(t *testing.T) {
		b := NewStandardBoard()
		piece := Player1
		for !b.IsFull() {
			for _, col := range b.ValidColumns() {
				next := b.Copy()
				row, err := next.LowestOpenRow(col)
				require.NoError(t, err)
				require.Equal(t, Empty, next.At(row, col), "Lowest open row should be empty")
				next.Place(row, col, piece)
				requireGravity(t, next)
			}
			_, err := b.Drop(b.ValidColumns()[0], piece)
			require.NoError(t, err)
			piece = piece.Opponent()
		}
	})
}

func TestCopy(t *testing.T) {
	b := NewStandardBoard()
	c := b.Copy()

	_, err := c.Drop(2, Player2)
	require.NoError(t, err)

	require.Equal(t, Empty, b.At(0, 2), "Original should not see changes to the copy")
	require.Equal(t, Player2, c.At(0, 2))
}

func TestValidColumns(t *testing.T) {
	b := mustParse(t,
		"X....O.",
		"O....X.",
		"X....O.",
		"O....X.",
		"X....O.",
		"O....X.",
	)

	require.Equal(t, []int{1, 2, 3, 4, 6}, b.ValidColumns(), "Open columns should be listed in ascending order")
}

func TestHasFourInARow(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		winner Piece
	}{
		{
			name: "horizontal",
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				".XXXX..",
			},
			winner: Player1,
		},
		{
			name: "vertical",
			rows: []string{
				".......",
				".......",
				"..X....",
				"..X....",
				"..X....",
				"..X....",
			},
			winner: Player1,
		},
		{
			name: "ascending diagonal",
			rows: []string{
				".......",
				".......",
				"...X...",
				"..XO...",
				".XOO...",
				"XOOO...",
			},
			winner: Player1,
		},
		{
			name: "descending diagonal",
			rows: []string{
				".......",
				".......",
				"...O...",
				"...XO..",
				"...XXO.",
				"...XXXO",
			},
			winner: Player2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.rows...)

			require.True(t, b.HasFourInARow(tt.winner), "Winner should have four in a row")
			require.False(t, b.HasFourInARow(tt.winner.Opponent()), "Loser should not have four in a row")
			require.True(t, b.IsTerminal(), "A won board is terminal")
			require.Equal(t, tt.winner, b.Winner())
		})
	}

	t.Run("three in a row is not a win", func(t *testing.T) {
		b := mustParse(t,
			".......",
			".......",
			".......",
			".......",
			".......",
			"XXX.OOO",
		)

		require.False(t, b.HasFourInARow(Player1))
		require.False(t, b.HasFourInARow(Player2))
		require.False(t, b.IsTerminal())
	})

	t.Run("empty never wins", func(t *testing.T) {
		require.False(t, NewStandardBoard().HasFourInARow(Empty))
	})
}

func TestIsTerminal(t *testing.T) {
	t.Run("full board without winner is a draw", func(t *testing.T) {
		b := mustParse(t, drawRows...)

		require.True(t, b.IsFull())
		require.Empty(t, b.ValidColumns())
		require.Equal(t, Empty, b.Winner(), "Draw board should have no winner")
		require.True(t, b.IsTerminal())
	})
}

func TestGrid(t *testing.T) {
	b := mustParse(t,
		"....",
		"....",
		"O...",
		"X..X",
	)

	grid := b.Grid()

	require.Equal(t, []int{0, 0, 0, 0}, grid[0], "First row should be the top row")
	require.Equal(t, []int{2, 0, 0, 0}, grid[2])
	require.Equal(t, []int{1, 0, 0, 1}, grid[3])
	require.Equal(t, "....\n....\nO...\nX..X\n0123\n", b.String())

	back, err := FromGrid(grid)
	require.NoError(t, err)
	require.Equal(t, b, back, "FromGrid should undo Grid")

	_, err = FromGrid([][]int{{0, 0, 0, 3}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	require.ErrorIs(t, err, ErrInvalidBoard)
}
