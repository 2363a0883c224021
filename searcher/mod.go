package searcher

import (
	"context"

	"connectfour/experiments/metrics"
	"connectfour/game"
)

// Terminal values. They do not depend on how deep the win was found, so a
// win in one move and a win in three moves look the same to the search.
const (
	WinScore  = 100_000_000
	LossScore = -WinScore
	DrawScore = 0
)

// NoColumn is returned with base case values, where no move was made.
const NoColumn = -1

const ErrInvalidDepth game.Error = "search depth must not be negative"

// Result is the outcome of a search from the searching side's perspective.
type Result struct {
	Column int
	Value  int
	Metric metrics.SearchMetric
}

// Searcher picks a column for piece on board.
type Searcher interface {
	Search(ctx context.Context, board *game.Board, piece game.Piece) (Result, error)
}
