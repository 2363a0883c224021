package player

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"connectfour/communication"
	"connectfour/engine"
	"connectfour/game"
	"connectfour/searcher/agent"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type line struct {
	text string
	err  error
}

// lines replays scripted input, then EOF.
type lines []line

func (l *lines) Readline() (string, error) {
	if len(*l) == 0 {
		return "", io.EOF
	}
	next := (*l)[0]
	*l = (*l)[1:]
	return next.text, next.err
}

func input(texts ...string) *lines {
	l := lines{}
	for _, text := range texts {
		l = append(l, line{text: text})
	}
	return &l
}

type rightmost struct{}

func (rightmost) FindMove(_ context.Context, board *game.Board, _ game.Piece) (agent.Decision, error) {
	cols := board.ValidColumns()
	return agent.Decision{Column: cols[len(cols)-1]}, nil
}

func TestReadMove(t *testing.T) {
	t.Run("skipping blank and bad lines", func(t *testing.T) {
		var out bytes.Buffer
		term := NewTerminal(input("", "left", " 4 "), &out, game.Player1)

		col, err := term.ReadMove(context.Background())

		require.NoError(t, err)
		require.Equal(t, 4, col)
		require.Contains(t, out.String(), `"left" is not a column number`)
	})

	t.Run("quitting", func(t *testing.T) {
		for _, in := range []*lines{
			input("quit"),
			input("q"),
			input(),
			{{text: "", err: readline.ErrInterrupt}},
		} {
			_, err := NewTerminal(in, io.Discard, game.Player1).ReadMove(context.Background())
			require.ErrorIs(t, err, ErrQuit)
		}
	})

	t.Run("ignoring an interrupt with text", func(t *testing.T) {
		in := &lines{{text: "12", err: readline.ErrInterrupt}, {text: "2"}}

		col, err := NewTerminal(in, io.Discard, game.Player1).ReadMove(context.Background())

		require.NoError(t, err)
		require.Equal(t, 2, col)
	})

	t.Run("passing on read errors", func(t *testing.T) {
		boom := errors.New("boom")
		in := &lines{{err: boom}}

		_, err := NewTerminal(in, io.Discard, game.Player1).ReadMove(context.Background())

		require.ErrorIs(t, err, boom)
	})
}

func TestTerminalGame(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(input("0", "7", "0", "0", "0"), &out, game.Player1)
	players := []engine.Player{engine.NewInputPlayer(term), engine.NewAgentPlayer(rightmost{})}

	res, err := engine.LocalEngine(players, term).Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, game.Player1, res.Winner)
	require.Contains(t, out.String(), "column 7: invalid move, try again")
	require.Contains(t, out.String(), "computer (O) played column 6")
	require.Contains(t, out.String(), "you win!")
}

type fakeConnection struct {
	messages []communication.ServerMessage
	moves    []int
	newGames int
}

func (f *fakeConnection) NewGame(*bool) error {
	f.newGames++
	return nil
}

func (f *fakeConnection) Move(column int) error {
	f.moves = append(f.moves, column)
	return nil
}

func (f *fakeConnection) Receive() (communication.ServerMessage, error) {
	if len(f.messages) == 0 {
		return communication.ServerMessage{}, io.EOF
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func grid(t *testing.T, rows ...string) [][]int {
	t.Helper()
	b, err := game.ParseBoard(rows...)
	require.NoError(t, err)
	return b.Grid()
}

func TestPlayRemote(t *testing.T) {
	empty := grid(t, ".......", ".......", ".......", ".......", ".......", ".......")
	one := grid(t, ".......", ".......", ".......", ".......", ".......", "X......")
	two := grid(t, ".......", ".......", ".......", ".......", ".......", "X.....O")

	conn := &fakeConnection{messages: []communication.ServerMessage{
		{Type: communication.MessageState, Grid: empty, NextTurn: 1, Human: 1},
		{Type: communication.MessageError, Message: "invalid move"},
		{Type: communication.MessageState, Grid: one, NextTurn: 2, Human: 1, LastMove: &communication.Move{Column: 0, Player: 1}},
		{Type: communication.MessageState, Grid: two, NextTurn: 1, Human: 1, LastMove: &communication.Move{Column: 6, Player: 2}},
		{Type: communication.MessageGameOver, Grid: two, Human: 1, Winner: 2},
	}}
	var out bytes.Buffer
	term := NewTerminal(input("9", "0", "1"), &out, game.Empty)

	err := PlayRemote(context.Background(), conn, term, nil)

	require.NoError(t, err)
	require.Equal(t, 1, conn.newGames)
	require.Equal(t, []int{9, 0, 1}, conn.moves, "Rejected move should be asked again")
	require.Contains(t, out.String(), "server: invalid move")
	require.Contains(t, out.String(), "O played column 6")
	require.Contains(t, out.String(), "computer wins")
}

func TestPlayRemoteServerFailure(t *testing.T) {
	empty := grid(t, ".......", ".......", ".......", ".......", ".......", ".......")
	conn := &fakeConnection{messages: []communication.ServerMessage{
		{Type: communication.MessageState, Grid: empty, NextTurn: 2, Human: 1},
		{Type: communication.MessageError, Message: "player O: boom"},
		{Type: communication.MessageState, Grid: empty, NextTurn: 1, Human: 1},
	}}
	var out bytes.Buffer

	err := PlayRemote(context.Background(), conn, NewTerminal(input("0"), &out, game.Empty), nil)

	require.ErrorIs(t, err, ErrServer)
	require.ErrorContains(t, err, "boom")
	require.Empty(t, conn.moves, "Nothing is sent after the server gives up")
	require.Contains(t, out.String(), "server: player O: boom")
}

func TestPlayRemoteLostConnection(t *testing.T) {
	conn := &fakeConnection{}

	err := PlayRemote(context.Background(), conn, NewTerminal(input(), io.Discard, game.Player1), nil)

	require.ErrorIs(t, err, io.EOF)
}
