package engine

import (
	"context"

	"connectfour/experiments/metrics"
	"connectfour/game"
)

type Engine interface {
	// Run plays a game till there's a winner, a draw or a max number of moves is reached
	Run(ctx context.Context) (Result, error)
}

// Update is sent to the presenter after every move.
type Update struct {
	Step   int
	Side   game.Piece // side that moved
	Column int
	Row    int
	Next   game.Piece // side to move, Empty once the game is over
	Board  *game.Board
	Metric metrics.SearchMetric
}

type Result struct {
	Status game.Status
	Winner game.Piece // Empty for a draw or an unfinished game
	Board  *game.Board

	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}

// Presenter shows the game to whoever is watching. All calls happen on the
// engine's goroutine.
type Presenter interface {
	Show(u Update)
	// Invalid reports a rejected column from an input player, who is then asked again.
	Invalid(side game.Piece, column int, err error)
	GameOver(r Result)
}

type NopPresenter struct{}

func (NopPresenter) Show(Update)                    {}
func (NopPresenter) Invalid(game.Piece, int, error) {}
func (NopPresenter) GameOver(Result)                {}
