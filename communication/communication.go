package communication

import (
	"connectfour/engine"
	"connectfour/game"
)

// Client message types
const (
	MessageNew  = "new"
	MessageMove = "move"
)

// Server message types
const (
	MessageState    = "state"
	MessageGameOver = "game_over"
	MessageError    = "error"
)

type ClientMessage struct {
	Type       string `json:"type"`
	HumanFirst *bool  `json:"humanFirst,omitempty"` // nil flips a coin
	Column     int    `json:"column"`
}

type Move struct {
	Column int `json:"column"`
	Row    int `json:"row"`
	Player int `json:"player"`
}

type ServerMessage struct {
	Type     string  `json:"type"`
	Grid     [][]int `json:"grid,omitempty"` // top row first
	LastMove *Move   `json:"lastMove,omitempty"`
	NextTurn int     `json:"nextTurn,omitempty"`
	Human    int     `json:"human,omitempty"`
	Winner   int     `json:"winner,omitempty"`
	Draw     bool    `json:"draw,omitempty"`
	Message  string  `json:"message,omitempty"`
}

// Communicator is an interface that abstracts the communication mechanism.
type Communicator interface {
	Send(msg ServerMessage) error
}

// StateMessage describes board with next to move.
func StateMessage(board *game.Board, last *Move, next, human game.Piece) ServerMessage {
	return ServerMessage{
		Type:     MessageState,
		Grid:     board.Grid(),
		LastMove: last,
		NextTurn: int(next),
		Human:    int(human),
	}
}

func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: MessageError, Message: err.Error()}
}

// Presenter sends the engine's updates through a Communicator.
type Presenter struct {
	Comm  Communicator
	Human game.Piece
	// OnTurn is called with the side to move before its state is sent.
	OnTurn func(next game.Piece)
}

func (p *Presenter) Show(u engine.Update) {
	p.turn(u.Next)
	last := &Move{Column: u.Column, Row: u.Row, Player: int(u.Side)}
	p.Comm.Send(StateMessage(u.Board, last, u.Next, p.Human))
}

func (p *Presenter) Invalid(side game.Piece, column int, err error) {
	p.turn(side)
	p.Comm.Send(ErrorMessage(err))
}

func (p *Presenter) GameOver(r engine.Result) {
	p.turn(game.Empty)
	p.Comm.Send(ServerMessage{
		Type:   MessageGameOver,
		Grid:   r.Board.Grid(),
		Human:  int(p.Human),
		Winner: int(r.Winner),
		Draw:   r.Status == game.StatusDraw,
	})
}

func (p *Presenter) turn(next game.Piece) {
	if p.OnTurn != nil {
		p.OnTurn(next)
	}
}
