package agent

import (
	"context"

	"connectfour/game"
	"connectfour/searcher"
)

type heuristicAgent struct {
	heuristic *searcher.Heuristic
}

// NewHeuristicAgent returns an agent that only looks one move ahead. A nil
// random uses the default source.
func NewHeuristicAgent(random searcher.Random) Agent {
	return heuristicAgent{heuristic: searcher.NewHeuristic(random, nil)}
}

func (a heuristicAgent) FindMove(ctx context.Context, board *game.Board, side game.Piece) (Decision, error) {
	if err := checkPosition(board, side); err != nil {
		return Decision{Column: searcher.NoColumn}, err
	}
	result, err := a.heuristic.Search(ctx, board, side)
	if err != nil {
		return Decision{Column: searcher.NoColumn}, err
	}
	return Decision{Column: result.Column, Value: result.Value}, nil
}
