package searcher

import (
	"context"
	"math"
	"time"

	"connectfour/experiments/metrics"
	"connectfour/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultDepth is the number of plies searched when no depth is given.
const DefaultDepth = 3

type Option func(m *Minimax)

// Minimax is a depth limited minimax search with alpha-beta pruning. Every
// node works on its own copy of the board, so the caller's board is never
// modified. A Minimax runs one search at a time.
type Minimax struct {
	depth      int
	goroutines int
	timeout    time.Duration
	pruning    bool
	random     Random
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		m.depth = depth
	}
}

// WithGoroutines evaluates the root moves concurrently.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(m *Minimax) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

func WithRandom(random Random) Option {
	return func(m *Minimax) {
		if random != nil {
			m.random = random
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

// WithoutPruning searches the full tree. Only useful to measure what
// pruning saves.
func WithoutPruning() Option {
	return func(m *Minimax) {
		m.pruning = false
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:      DefaultDepth,
		goroutines: 1,
		pruning:    true,
		random:     NewRandom(),
		evaluate:   game.ScorePosition,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.depth < 0 {
		panic("search depth must not be negative")
	}
	if m.goroutines > 1 {
		m.random = &lockedRandom{r: m.random}
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// Heuristic returns a one-ply selector sharing this search's random source
// and evaluation function.
func (m *Minimax) Heuristic() *Heuristic {
	return NewHeuristic(m.random, m.evaluate)
}

// Search returns the best column for piece and its value. On a terminal
// board, or with depth 0, the column is NoColumn.
func (m *Minimax) Search(ctx context.Context, board *game.Board, piece game.Piece) (Result, error) {
	if piece == game.Empty {
		panic("cannot search for the empty piece")
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	s := &search{Minimax: m, piece: piece, opponent: piece.Opponent()}

	m.metrics.Start(m.depth, m.goroutines, m.pruning)
	var column, value int
	var err error
	if m.goroutines > 1 && m.depth > 0 && !board.IsTerminal() {
		column, value, err = s.parallel(ctx, board)
	} else {
		column, value, err = s.minimax(ctx, board, m.depth, math.MinInt, math.MaxInt, true)
	}
	metric := m.metrics.Complete()
	if err != nil {
		return Result{Column: NoColumn, Metric: metric}, err
	}

	log.Debug().
		Stringer("piece", piece).
		Int("depth", m.depth).
		Int("column", column).
		Int("value", value).
		Int("nodes", metric.Nodes).
		Msg("minimax-search")

	return Result{Column: column, Value: value, Metric: metric}, nil
}

// search holds the state of a single Search call.
type search struct {
	*Minimax
	piece    game.Piece // maximizing side
	opponent game.Piece
}

func (s *search) minimax(ctx context.Context, board *game.Board, depth int, alpha, beta int, maximizing bool) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return NoColumn, 0, err
	}
	s.metrics.AddNode()

	if depth == 0 || board.IsTerminal() {
		s.metrics.AddLeaf()
		return NoColumn, s.leaf(board), nil
	}

	moves := board.ValidColumns()
	column := choose(s.random, moves)

	if maximizing {
		value := math.MinInt
		for _, col := range moves {
			child := board.Copy()
			if _, err := child.Drop(col, s.piece); err != nil {
				return NoColumn, 0, err
			}
			_, score, err := s.minimax(ctx, child, depth-1, alpha, beta, false)
			if err != nil {
				return NoColumn, 0, err
			}
			if score > value {
				value = score
				column = col
			}
			alpha = max(alpha, value)
			if s.pruning && alpha >= beta {
				s.metrics.AddCutoff()
				break
			}
		}
		return column, value, nil
	}

	value := math.MaxInt
	for _, col := range moves {
		child := board.Copy()
		if _, err := child.Drop(col, s.opponent); err != nil {
			return NoColumn, 0, err
		}
		_, score, err := s.minimax(ctx, child, depth-1, alpha, beta, true)
		if err != nil {
			return NoColumn, 0, err
		}
		if score < value {
			value = score
			column = col
		}
		beta = min(beta, value)
		if s.pruning && alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
	}
	return column, value, nil
}

// leaf values a board where the search stops. An opponent win is checked
// first.
func (s *search) leaf(board *game.Board) int {
	switch {
	case board.HasFourInARow(s.opponent):
		return LossScore
	case board.HasFourInARow(s.piece):
		return WinScore
	case board.IsFull():
		return DrawScore
	default:
		return s.evaluate(board, s.piece)
	}
}

// parallel searches every root move in its own goroutine with a full
// window, then picks the first strictly best column in ascending order.
// This gives the same answer as the sequential search.
func (s *search) parallel(ctx context.Context, board *game.Board) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return NoColumn, 0, err
	}
	s.metrics.AddNode()

	moves := board.ValidColumns()
	scores := make([]int, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.goroutines)
	for i, col := range moves {
		i, col := i, col
		g.Go(func() error {
			child := board.Copy()
			if _, err := child.Drop(col, s.piece); err != nil {
				return err
			}
			_, score, err := s.minimax(gctx, child, s.depth-1, math.MinInt, math.MaxInt, false)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return NoColumn, 0, err
	}

	column := choose(s.random, moves)
	value := math.MinInt
	for i, col := range moves {
		if scores[i] > value {
			value = scores[i]
			column = col
		}
	}
	return column, value, nil
}
