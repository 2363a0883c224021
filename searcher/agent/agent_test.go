package agent

import (
	"context"
	"os"
	"testing"

	"connectfour/game"
	"connectfour/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type fixedRandom int

func (f fixedRandom) Intn(n int) int {
	return int(f) % n
}

func mustParse(t *testing.T, rows ...string) *game.Board {
	t.Helper()
	b, err := game.ParseBoard(rows...)
	require.NoError(t, err)
	return b
}

var (
	winningRows = []string{
		".......",
		".......",
		".......",
		".......",
		"XX.....",
		"OOO..X.",
	}
	wonRows = []string{
		".......",
		".......",
		".......",
		".......",
		"OOO....",
		"XXXX...",
	}
	fullRows = []string{
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
	}
	// No move scores above zero for O here.
	fallbackRows = []string{
		".......",
		".......",
		".......",
		"......X",
		"......X",
		"XXX...X",
	}
)

func TestChooseMove(t *testing.T) {
	t.Run("completing a four", func(t *testing.T) {
		col, err := ChooseMove(mustParse(t, winningRows...), game.Player2, 3)

		require.NoError(t, err)
		require.Equal(t, 3, col)
	})

	t.Run("using the heuristic at depth zero", func(t *testing.T) {
		col, err := ChooseMove(game.NewStandardBoard(), game.Player1, 0)

		require.NoError(t, err)
		require.Equal(t, 3, col, "Center is the only column scoring above zero")
	})

	t.Run("rejecting a negative depth", func(t *testing.T) {
		col, err := ChooseMove(game.NewStandardBoard(), game.Player1, -1)

		require.ErrorIs(t, err, searcher.ErrInvalidDepth)
		require.Equal(t, searcher.NoColumn, col)
	})

	t.Run("rejecting a won board", func(t *testing.T) {
		_, err := ChooseMove(mustParse(t, wonRows...), game.Player2, 3)

		require.ErrorIs(t, err, game.ErrGameOver)
	})

	t.Run("rejecting a full board", func(t *testing.T) {
		_, err := ChooseMove(mustParse(t, fullRows...), game.Player1, 3)

		require.ErrorIs(t, err, game.ErrGameOver)
	})

	t.Run("rejecting the empty side", func(t *testing.T) {
		_, err := ChooseMove(game.NewStandardBoard(), game.Empty, 3)

		require.ErrorIs(t, err, game.ErrInvalidMove)
	})
}

func TestAdversarialAgent(t *testing.T) {
	t.Run("reporting search metrics", func(t *testing.T) {
		a := NewAdversarialAgent(searcher.WithDepth(2), searcher.WithMetrics())

		d, err := a.FindMove(context.Background(), game.NewStandardBoard(), game.Player1)

		require.NoError(t, err)
		require.Greater(t, d.Metric.Nodes, 0)
		require.Equal(t, 2, d.Metric.Depth)
	})

	t.Run("falling back with the shared random source", func(t *testing.T) {
		a := NewAdversarialAgent(searcher.WithDepth(0), searcher.WithRandom(fixedRandom(2)))

		d, err := a.FindMove(context.Background(), mustParse(t, fallbackRows...), game.Player2)

		require.NoError(t, err)
		require.Equal(t, 2, d.Column)
		require.Equal(t, 0, d.Value)
	})

	t.Run("agreeing with parallel workers", func(t *testing.T) {
		b := mustParse(t, winningRows...)
		sequential, err := NewAdversarialAgent(searcher.WithDepth(4)).FindMove(context.Background(), b, game.Player1)
		require.NoError(t, err)

		parallel, err := NewAdversarialAgent(searcher.WithDepth(4), searcher.WithGoroutines(4)).FindMove(context.Background(), b, game.Player1)
		require.NoError(t, err)

		require.Equal(t, sequential.Column, parallel.Column)
		require.Equal(t, sequential.Value, parallel.Value)
	})

	t.Run("passing on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewAdversarialAgent().FindMove(ctx, game.NewStandardBoard(), game.Player1)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestHeuristicAgent(t *testing.T) {
	t.Run("taking the center", func(t *testing.T) {
		d, err := NewHeuristicAgent(nil).FindMove(context.Background(), game.NewStandardBoard(), game.Player2)

		require.NoError(t, err)
		require.Equal(t, 3, d.Column)
		require.Equal(t, game.CenterWeight, d.Value)
	})

	t.Run("falling back to the random column", func(t *testing.T) {
		d, err := NewHeuristicAgent(fixedRandom(5)).FindMove(context.Background(), mustParse(t, fallbackRows...), game.Player2)

		require.NoError(t, err)
		require.Equal(t, 5, d.Column)
	})

	t.Run("rejecting a won board with open columns", func(t *testing.T) {
		d, err := NewHeuristicAgent(nil).FindMove(context.Background(), mustParse(t, wonRows...), game.Player2)

		require.ErrorIs(t, err, game.ErrGameOver)
		require.Equal(t, searcher.NoColumn, d.Column)
	})
}
