package game

type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusDraw   Status = "draw"
)

// Game is the live state owned by the game loop. Search never touches it;
// it works on copies of Board.
type Game struct {
	Board     *Board
	Turn      Piece
	Status    Status
	Winner    Piece
	MoveCount int
}

// NewGame starts a game on board with first to move. A board that already
// holds four in a row or has no open column gives a finished game.
func NewGame(board *Board, first Piece) *Game {
	g := &Game{
		Board:  board,
		Turn:   first,
		Status: StatusActive,
		Winner: board.Winner(),
	}
	switch {
	case g.Winner != Empty:
		g.Status = StatusWon
		g.Turn = g.Winner
	case board.IsFull():
		g.Status = StatusDraw
	}
	return g
}

// Play drops the side to move into col, updates the status and hands the
// turn over. It returns the row the piece landed on.
func (g *Game) Play(col int) (int, error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}
	if !g.Board.IsValidColumn(col) {
		return -1, ErrInvalidMove
	}

	row, err := g.Board.Drop(col, g.Turn)
	if err != nil {
		return -1, err
	}
	g.MoveCount++

	if g.Board.HasFourInARow(g.Turn) {
		g.Status = StatusWon
		g.Winner = g.Turn
		return row, nil
	}
	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.Turn = g.Turn.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
