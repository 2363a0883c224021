package game

// Piece identifies the owner of a cell. It doubles as the side-to-move
// indicator during search.
type Piece uint8

const (
	Empty Piece = iota
	Player1
	Player2
)

// WindowLength is the number of contiguous pieces needed to win, and the
// width of the windows scored by the evaluator.
const WindowLength = 4

// Opponent returns the other side. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (p Piece) String() string {
	switch p {
	case Player1:
		return "X"
	case Player2:
		return "O"
	default:
		return "."
	}
}

// Evaluates a board from piece's perspective. Higher is better for piece.
type Evaluate func(b *Board, piece Piece) int

// Error is a sentinel error that can be compared with errors.Is.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrColumnFull        Error = "column is full"
	ErrColumnOutOfRange  Error = "column is out of range"
	ErrInvalidMove       Error = "invalid move"
	ErrGameOver          Error = "game is over"
	ErrInvalidDimensions Error = "board must be at least 4x4"
	ErrInvalidBoard      Error = "invalid board layout"
)
