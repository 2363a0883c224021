package game

import (
	"fmt"
	"strings"
)

// Board is a fixed size grid of pieces. Row 0 is the bottom row. Pieces
// are only ever written to the lowest open row of a column, so every
// column stays contiguous from the bottom up.
type Board struct {
	rows    int
	columns int
	cells   []Piece // row-major, indexed by row*columns+col
}

// NewBoard returns an empty board with the given dimensions.
func NewBoard(rows, columns int) (*Board, error) {
	if rows < WindowLength || columns < WindowLength {
		return nil, fmt.Errorf("%dx%d: %w", rows, columns, ErrInvalidDimensions)
	}
	return &Board{
		rows:    rows,
		columns: columns,
		cells:   make([]Piece, rows*columns),
	}, nil
}

// NewStandardBoard returns an empty 6x7 board.
func NewStandardBoard() *Board {
	b, _ := NewBoard(6, 7)
	return b
}

// ParseBoard builds a board from one string per row, top row first.
// '.' is empty, 'X' is Player1 and 'O' is Player2. The layout must obey
// gravity.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, ErrInvalidDimensions
	}
	b, err := NewBoard(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, line := range rows {
		if len(line) != b.columns {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(line), b.columns, ErrInvalidBoard)
		}
		row := b.rows - 1 - i
		for col, ch := range line {
			var p Piece
			switch ch {
			case '.':
				p = Empty
			case 'X', 'x':
				p = Player1
			case 'O', 'o':
				p = Player2
			default:
				return nil, fmt.Errorf("unknown cell %q: %w", ch, ErrInvalidBoard)
			}
			b.Place(row, col, p)
		}
	}
	for col := 0; col < b.columns; col++ {
		for row := 1; row < b.rows; row++ {
			if b.At(row, col) != Empty && b.At(row-1, col) == Empty {
				return nil, fmt.Errorf("floating piece at row %d column %d: %w", row, col, ErrInvalidBoard)
			}
		}
	}
	return b, nil
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.columns }

// At returns the piece at (row, col). Row 0 is the bottom row.
func (b *Board) At(row, col int) Piece {
	return b.cells[row*b.columns+col]
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	cells := make([]Piece, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		rows:    b.rows,
		columns: b.columns,
		cells:   cells,
	}
}

// IsValidColumn reports whether a piece can be dropped into col.
func (b *Board) IsValidColumn(col int) bool {
	if col < 0 || col >= b.columns {
		return false
	}
	return b.At(b.rows-1, col) == Empty
}

// LowestOpenRow returns the row a piece dropped into col would land on.
// Callers are expected to check IsValidColumn first.
func (b *Board) LowestOpenRow(col int) (int, error) {
	if col < 0 || col >= b.columns {
		return -1, ErrColumnOutOfRange
	}
	for row := 0; row < b.rows; row++ {
		if b.At(row, col) == Empty {
			return row, nil
		}
	}
	return -1, ErrColumnFull
}

// Place writes piece into (row, col) without any validation. row must be
// the lowest open row of col.
func (b *Board) Place(row, col int, piece Piece) {
	b.cells[row*b.columns+col] = piece
}

// Drop places piece at the lowest open row of col and returns that row.
// The board is left untouched on error.
func (b *Board) Drop(col int, piece Piece) (int, error) {
	row, err := b.LowestOpenRow(col)
	if err != nil {
		return -1, err
	}
	b.Place(row, col, piece)
	return row, nil
}

// ValidColumns returns the open columns in ascending order.
func (b *Board) ValidColumns() []int {
	cols := make([]int, 0, b.columns)
	for col := 0; col < b.columns; col++ {
		if b.IsValidColumn(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

func (b *Board) IsFull() bool {
	for col := 0; col < b.columns; col++ {
		if b.IsValidColumn(col) {
			return false
		}
	}
	return true
}

// HasFourInARow reports whether piece has WindowLength contiguous cells in
// any orientation.
func (b *Board) HasFourInARow(piece Piece) bool {
	if piece == Empty {
		return false
	}
	// Horizontal
	for row := 0; row < b.rows; row++ {
		for col := 0; col <= b.columns-WindowLength; col++ {
			if b.line(row, col, 0, 1, piece) {
				return true
			}
		}
	}
	// Vertical
	for col := 0; col < b.columns; col++ {
		for row := 0; row <= b.rows-WindowLength; row++ {
			if b.line(row, col, 1, 0, piece) {
				return true
			}
		}
	}
	// Diagonal /
	for row := 0; row <= b.rows-WindowLength; row++ {
		for col := 0; col <= b.columns-WindowLength; col++ {
			if b.line(row, col, 1, 1, piece) {
				return true
			}
		}
	}
	// Diagonal \
	for row := WindowLength - 1; row < b.rows; row++ {
		for col := 0; col <= b.columns-WindowLength; col++ {
			if b.line(row, col, -1, 1, piece) {
				return true
			}
		}
	}
	return false
}

func (b *Board) line(row, col, dRow, dCol int, piece Piece) bool {
	for i := 0; i < WindowLength; i++ {
		if b.At(row+i*dRow, col+i*dCol) != piece {
			return false
		}
	}
	return true
}

// IsTerminal reports whether either side has won or the board is full.
func (b *Board) IsTerminal() bool {
	return b.HasFourInARow(Player1) || b.HasFourInARow(Player2) || b.IsFull()
}

// Winner returns the side with four in a row, or Empty.
func (b *Board) Winner() Piece {
	switch {
	case b.HasFourInARow(Player1):
		return Player1
	case b.HasFourInARow(Player2):
		return Player2
	default:
		return Empty
	}
}

// Grid returns the board as rows of ints, top row first.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.rows)
	for i := range grid {
		row := b.rows - 1 - i
		grid[i] = make([]int, b.columns)
		for col := 0; col < b.columns; col++ {
			grid[i][col] = int(b.At(row, col))
		}
	}
	return grid
}

// FromGrid is the inverse of Grid.
func FromGrid(grid [][]int) (*Board, error) {
	rows := make([]string, len(grid))
	for i, cells := range grid {
		var sb strings.Builder
		for _, v := range cells {
			if v < int(Empty) || v > int(Player2) {
				return nil, fmt.Errorf("unknown cell value %d: %w", v, ErrInvalidBoard)
			}
			sb.WriteString(Piece(v).String())
		}
		rows[i] = sb.String()
	}
	return ParseBoard(rows...)
}

// String renders the board top row first, followed by column indices.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.columns; col++ {
			sb.WriteString(b.At(row, col).String())
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < b.columns; col++ {
		sb.WriteString(fmt.Sprintf("%d", col%10))
	}
	sb.WriteByte('\n')
	return sb.String()
}
