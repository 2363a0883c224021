package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"connectfour/communication"
	"connectfour/engine"
	"connectfour/game"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// The browser always plays X.
const human = game.Player1

const (
	errNoGame      game.Error = "no game in progress"
	errNotYourTurn game.Error = "not your turn"
)

// connection runs at most one game at a time for a single websocket.
type connection struct {
	server *Server
	conn   *websocket.Conn

	// conn.WriteJSON is not safe for concurrent use
	writeMu sync.Mutex

	moves chan int

	mu        sync.Mutex
	humanTurn bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func newConnection(s *Server, conn *websocket.Conn) *connection {
	return &connection{
		server: s,
		conn:   conn,
		moves:  make(chan int, 1),
	}
}

func (c *connection) Send(msg communication.ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Debug().Err(err).Str("type", msg.Type).Msg("websocket-write")
		return err
	}
	return nil
}

func (c *connection) serve() {
	defer c.conn.Close()
	defer c.stopGame()

	pongWait := c.server.pongWait
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go c.ping(pongWait*9/10, stopPing)

	log.Debug().Str("remote", c.conn.RemoteAddr().String()).Msg("connected")
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("client disconnected unexpectedly")
			}
			return
		}

		var msg communication.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.Send(communication.ErrorMessage(fmt.Errorf("bad message: %w", err)))
			continue
		}

		switch msg.Type {
		case communication.MessageNew:
			c.startGame(msg.HumanFirst)
		case communication.MessageMove:
			c.move(msg.Column)
		default:
			c.Send(communication.ErrorMessage(fmt.Errorf("unknown message type %q", msg.Type)))
		}
	}
}

// Keep-alive pinger
func (c *connection) ping(period time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *connection) startGame(humanFirst *bool) {
	c.stopGame()

	board, err := c.server.newBoard()
	if err != nil {
		c.Send(communication.ErrorMessage(err))
		return
	}
	first := human.Opponent()
	if (humanFirst == nil && c.server.humanFirst()) || (humanFirst != nil && *humanFirst) {
		first = human
	}

	// A move sent to the previous game may still be waiting.
	select {
	case <-c.moves:
	default:
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.humanTurn = first == human
	c.mu.Unlock()

	c.Send(communication.StateMessage(board, nil, first, human))

	presenter := &communication.Presenter{Comm: c, Human: human, OnTurn: c.setTurn}
	players := []engine.Player{
		engine.NewInputPlayer(engine.ChannelSource(c.moves)),
		engine.NewAgentPlayer(c.server.newAgent()),
	}
	e := engine.LocalEngine(players, presenter, engine.WithBoard(board), engine.WithStartingSide(first))

	go func() {
		defer close(done)
		if _, err := e.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("game loop")
			c.Send(communication.ErrorMessage(err))
		}
	}()
}

// stopGame cancels the running game and waits for its loop to exit.
func (c *connection) stopGame() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.humanTurn = false
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (c *connection) setTurn(next game.Piece) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.humanTurn = next == human
}

// move hands col to the game loop. It is only accepted while the loop waits
// for the human, so the buffered channel never blocks.
func (c *connection) move(col int) {
	c.mu.Lock()
	done, turn := c.done, c.humanTurn
	if turn {
		c.humanTurn = false
	}
	c.mu.Unlock()

	switch {
	case done == nil:
		c.Send(communication.ErrorMessage(errNoGame))
		return
	case isClosed(done):
		c.Send(communication.ErrorMessage(game.ErrGameOver))
		return
	case !turn:
		c.Send(communication.ErrorMessage(errNotYourTurn))
		return
	}
	c.moves <- col
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
