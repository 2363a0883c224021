package searcher

import (
	"context"

	"connectfour/game"
)

// Heuristic picks the column whose resulting position scores best for the
// mover, without looking at any reply. A column must beat a score of zero
// to be preferred over a random one.
type Heuristic struct {
	random   Random
	evaluate game.Evaluate
}

func NewHeuristic(random Random, evaluate game.Evaluate) *Heuristic {
	if random == nil {
		random = NewRandom()
	}
	if evaluate == nil {
		evaluate = game.ScorePosition
	}
	return &Heuristic{random: random, evaluate: evaluate}
}

func (h *Heuristic) Search(ctx context.Context, board *game.Board, piece game.Piece) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Column: NoColumn}, err
	}
	moves := board.ValidColumns()
	if len(moves) == 0 {
		return Result{Column: NoColumn}, game.ErrGameOver
	}

	best := 0
	column := choose(h.random, moves)
	for _, col := range moves {
		child := board.Copy()
		if _, err := child.Drop(col, piece); err != nil {
			return Result{Column: NoColumn}, err
		}
		if score := h.evaluate(child, piece); score > best {
			best = score
			column = col
		}
	}
	return Result{Column: column, Value: best}, nil
}
