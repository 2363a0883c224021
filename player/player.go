package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"connectfour/engine"
	"connectfour/game"

	"github.com/chzyer/readline"
)

// ErrQuit is returned when the person at the terminal gives up.
const ErrQuit game.Error = "player quit"

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
}

// Terminal is the human side of a game in a terminal. It reads columns
// and prints the board.
type Terminal struct {
	in    LineReader
	out   io.Writer
	human game.Piece
}

func NewTerminal(in LineReader, out io.Writer, human game.Piece) *Terminal {
	return &Terminal{in: in, out: out, human: human}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewReadline returns a line editor with history kept in historyFile.
func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "\033[33mcolumn>\033[0m ",
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
}

// ReadMove reads lines until one holds a column number. "q" or "quit",
// Ctrl-C on an empty line and EOF return ErrQuit.
func (t *Terminal) ReadMove(ctx context.Context) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		line, err := t.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return 0, ErrQuit
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return 0, ErrQuit
		} else if err != nil {
			return 0, err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "q", "quit", "exit":
			return 0, ErrQuit
		}
		col, err := strconv.Atoi(line)
		if err != nil {
			t.showMessage(fmt.Sprintf("%q is not a column number", line))
			continue
		}
		return col, nil
	}
}

func (t *Terminal) Show(u engine.Update) {
	who := "computer"
	if u.Side == t.human {
		who = "you"
	}
	t.showMessage(fmt.Sprintf("%s (%s) played column %d", who, u.Side, u.Column))
	t.showMessage(u.Board.String())
	if u.Next == t.human {
		t.showMessage("your move")
	}
}

func (t *Terminal) Invalid(_ game.Piece, column int, err error) {
	t.showMessage(fmt.Sprintf("column %d: %v, try again", column, err))
}

func (t *Terminal) GameOver(r engine.Result) {
	switch {
	case r.Status == game.StatusDraw:
		t.showMessage("draw")
	case r.Winner == t.human:
		t.showMessage("you win!")
	case r.Winner != game.Empty:
		t.showMessage("computer wins")
	default:
		t.showMessage("game stopped")
	}
}

// Start prints the opening board.
func (t *Terminal) Start(board *game.Board) {
	t.showMessage(fmt.Sprintf("you play %s, columns are numbered below the board", t.human))
	t.showMessage(board.String())
}

func (t *Terminal) showMessage(msg string) {
	io.WriteString(t.out, msg)
	io.WriteString(t.out, "\n")
}
