package player

import (
	"context"
	"fmt"

	"connectfour/communication"
	"connectfour/engine"
	"connectfour/game"
)

// ErrServer is returned when the server reports an error nobody asked for.
const ErrServer game.Error = "server error"

// Connection is the client side of the play server, see client.Client.
type Connection interface {
	NewGame(humanFirst *bool) error
	Move(column int) error
	Receive() (communication.ServerMessage, error)
}

// PlayRemote plays one game against a play server with the terminal as the
// human side. It returns when the server reports the game over.
func PlayRemote(ctx context.Context, conn Connection, t *Terminal, humanFirst *bool) error {
	if err := conn.NewGame(humanFirst); err != nil {
		return err
	}

	// pending is set while a sent move waits for the server's state
	pending := false
	started := false
	for {
		msg, err := conn.Receive()
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}

		switch msg.Type {
		case communication.MessageState:
			pending = false
			board, err := game.FromGrid(msg.Grid)
			if err != nil {
				return err
			}
			if !started {
				started = true
				t.human = game.Piece(msg.Human)
				t.Start(board)
			} else if msg.LastMove != nil {
				t.showMessage(fmt.Sprintf("%s played column %d", game.Piece(msg.LastMove.Player), msg.LastMove.Column))
				t.showMessage(board.String())
			}
			if msg.NextTurn != msg.Human {
				continue
			}
			t.showMessage("your move")

		case communication.MessageError:
			t.showMessage("server: " + msg.Message)
			if !pending {
				// The server only answers moves; anything else ends its game.
				return fmt.Errorf("%w: %s", ErrServer, msg.Message)
			}

		case communication.MessageGameOver:
			board, err := game.FromGrid(msg.Grid)
			if err != nil {
				return err
			}
			status := game.StatusWon
			if msg.Draw {
				status = game.StatusDraw
			}
			t.GameOver(engine.Result{Status: status, Winner: game.Piece(msg.Winner), Board: board})
			return nil

		default:
			continue
		}

		col, err := t.ReadMove(ctx)
		if err != nil {
			return err
		}
		if err := conn.Move(col); err != nil {
			return err
		}
		pending = true
	}
}
