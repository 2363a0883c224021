package agent

import (
	"context"
	"fmt"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher"
)

// Decision is the column an agent wants to play.
type Decision struct {
	Column int
	Value  int
	Metric metrics.SearchMetric // zero unless the agent collects metrics
}

type Agent interface {
	// FindMove returns a column for side on board. The board is not modified.
	FindMove(ctx context.Context, board *game.Board, side game.Piece) (Decision, error)
}

// ChooseMove runs a depth limited adversarial search for side and returns
// the chosen column. Depth 0 falls back to the one-ply heuristic.
func ChooseMove(board *game.Board, side game.Piece, depth int) (int, error) {
	if depth < 0 {
		return searcher.NoColumn, searcher.ErrInvalidDepth
	}
	d, err := NewAdversarialAgent(searcher.WithDepth(depth)).FindMove(context.Background(), board, side)
	if err != nil {
		return searcher.NoColumn, err
	}
	return d.Column, nil
}

// checkPosition rejects boards where no move can be chosen.
func checkPosition(board *game.Board, side game.Piece) error {
	if side == game.Empty {
		return fmt.Errorf("no side to move: %w", game.ErrInvalidMove)
	}
	if board.IsTerminal() {
		return game.ErrGameOver
	}
	return nil
}
