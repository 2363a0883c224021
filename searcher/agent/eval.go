package agent

import (
	"context"

	"connectfour/game"
	"connectfour/searcher"
)

type adversarialAgent struct {
	minimax  *searcher.Minimax
	fallback *searcher.Heuristic
}

// NewAdversarialAgent returns an agent that plays the minimax move. With
// depth 0 the search has no move to offer, so the agent picks the column
// with the one-ply heuristic instead.
func NewAdversarialAgent(options ...searcher.Option) Agent {
	m := searcher.NewMinimax(options...)
	return adversarialAgent{minimax: m, fallback: m.Heuristic()}
}

func (a adversarialAgent) FindMove(ctx context.Context, board *game.Board, side game.Piece) (Decision, error) {
	if err := checkPosition(board, side); err != nil {
		return Decision{Column: searcher.NoColumn}, err
	}

	result, err := a.minimax.Search(ctx, board, side)
	if err != nil {
		return Decision{Column: searcher.NoColumn}, err
	}
	if result.Column == searcher.NoColumn {
		heuristic, err := a.fallback.Search(ctx, board, side)
		if err != nil {
			return Decision{Column: searcher.NoColumn}, err
		}
		result.Column, result.Value = heuristic.Column, heuristic.Value
	}
	return Decision{Column: result.Column, Value: result.Value, Metric: result.Metric}, nil
}
