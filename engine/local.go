package engine

import (
	"context"
	"fmt"
	"time"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/meta"
	"connectfour/searcher"
	"connectfour/searcher/agent"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// Local runs a game between two players in this process. players[0] plays
// Player1 (X) and players[1] plays Player2 (O).
type Local struct {
	players   []Player
	presenter Presenter
	board     *game.Board
	first     game.Piece
	maxMoves  int
}

func WithBoard(board *game.Board) Option {
	return func(e *Local) {
		if board != nil {
			e.board = board
		}
	}
}

func WithStartingSide(side game.Piece) Option {
	return func(e *Local) {
		if side != game.Empty {
			e.first = side
		}
	}
}

// RandomStart lets a coin flip decide who moves first.
func RandomStart(random searcher.Random) Option {
	return func(e *Local) {
		if random == nil {
			random = searcher.NewRandom()
		}
		e.first = game.Player1
		if random.Intn(2) == 1 {
			e.first = game.Player2
		}
	}
}

func WithMaxMoves(maxMoves int) Option {
	return func(e *Local) {
		if maxMoves > 0 {
			e.maxMoves = maxMoves
		}
	}
}

func LocalEngine(players []Player, presenter Presenter, options ...Option) *Local {
	if len(players) != 2 {
		panic("need exactly two players")
	}
	if presenter == nil {
		presenter = NopPresenter{}
	}
	e := &Local{ // Default values
		players:   players,
		presenter: presenter,
		board:     game.NewStandardBoard(),
		first:     game.Player1,
		maxMoves:  meta.MAX_MOVES,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until the game is decided. The board
// given with WithBoard is the live board and is modified.
func (e *Local) Run(ctx context.Context) (Result, error) {
	g := game.NewGame(e.board, e.first)
	log.Info().Msgf("player %s is starting", g.Turn)

	gameMetric := metrics.GameMetric{
		StartingPlayer: int(g.Turn),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	for !g.IsFinished() && g.MoveCount < e.maxMoves {
		side := g.Turn
		player := e.players[side-1]

		d, err := e.ask(ctx, player, g.Board.Copy(), side)
		col := d.Column
		if err != nil {
			return e.result(g, gameMetric, moveMetrics), fmt.Errorf("player %s: %w", side, err)
		}

		row, err := g.Play(col)
		if err != nil {
			if _, ok := player.(*InputPlayer); ok {
				log.Debug().Stringer("side", side).Int("column", col).Err(err).Msg("rejected-input")
				e.presenter.Invalid(side, col, err)
				continue
			}
			return e.result(g, gameMetric, moveMetrics), fmt.Errorf("player %s chose column %d: %w", side, col, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         g.MoveCount,
			Player:       int(side),
			Column:       col,
			Value:        d.Value,
			SearchMetric: d.Metric,
		})
		log.Debug().
			Int("step", g.MoveCount).
			Stringer("side", side).
			Int("column", col).
			Int("row", row).
			Msg("move")

		next := g.Turn
		if g.IsFinished() {
			next = game.Empty
		}
		e.presenter.Show(Update{
			Step:   g.MoveCount,
			Side:   side,
			Column: col,
			Row:    row,
			Next:   next,
			Board:  g.Board.Copy(),
			Metric: d.Metric,
		})
	}

	if !g.IsFinished() {
		log.Warn().Msgf("stopped after %d moves (no result yet)", g.MoveCount)
	}

	result := e.result(g, gameMetric, moveMetrics)
	log.Info().
		Str("status", string(result.Status)).
		Stringer("winner", result.Winner).
		Int("moves", result.GameMetric.TotalMoves).
		Msg("game-over")
	e.presenter.GameOver(result)
	return result, nil
}

// ask gets a column from player, with the search value and metrics when
// the player is an agent.
func (e *Local) ask(ctx context.Context, player Player, board *game.Board, side game.Piece) (agent.Decision, error) {
	if p, ok := player.(*AgentPlayer); ok {
		return p.Agent.FindMove(ctx, board, side)
	}
	col, err := player.NextMove(ctx, board, side)
	return agent.Decision{Column: col}, err
}

func (e *Local) result(g *game.Game, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric) Result {
	gameMetric.Winner = int(g.Winner)
	gameMetric.Draw = g.Status == game.StatusDraw
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = g.MoveCount
	return Result{
		Status:      g.Status,
		Winner:      g.Winner,
		Board:       g.Board.Copy(),
		GameMetric:  gameMetric,
		MoveMetrics: moveMetrics,
	}
}
