package experiments

import (
	"context"
	"fmt"

	"connectfour/engine"
	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/meta"
	"connectfour/searcher"
	"connectfour/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type settings struct {
	outDir      string
	seed        uint64
	concurrency int
	rows        int
	columns     int
}

type Option func(s *settings)

// WithOutputDir writes the CSV files below dir. Without it nothing is
// written.
func WithOutputDir(dir string) Option {
	return func(s *settings) {
		s.outDir = dir
	}
}

// WithSeed makes the random choices of every game reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

// WithConcurrency plays up to n games of a matchup at once.
func WithConcurrency(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithBoardSize(rows, columns int) Option {
	return func(s *settings) {
		s.rows = rows
		s.columns = columns
	}
}

// Summary aggregates the games of one matchup. Agent1 moves first in the
// odd numbered games, Agent2 in the even ones.
type Summary struct {
	Agent1     int
	Agent2     int
	Games      int
	Agent1Wins int
	Agent2Wins int
	Draws      int
	Unfinished int
	// Mean search nodes per move
	Agent1Nodes float64
	Agent2Nodes float64
}

func newSettings(options ...Option) *settings {
	s := &settings{ // Default values
		concurrency: 1,
		rows:        meta.ROWS,
		columns:     meta.COLUMNS,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

// Run plays games for every matchup, alternating the starting side, and
// returns one summary per matchup.
func Run(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, games int, options ...Option) ([]Summary, error) {
	s := newSettings(options...)
	if games < 1 {
		return nil, fmt.Errorf("need at least one game per matchup, got %d", games)
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summaries := make([]Summary, 0, len(matchUps))

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		if len(matchup) != 2 {
			return nil, fmt.Errorf("matchup %d has %d agents, need two", mi+1, len(matchup))
		}
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		results := make([]gameResult, games)
		base := count
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for i := 0; i < games; i++ {
			i := i
			g.Go(func() error {
				res, err := s.runGame(gctx, config1, config2, i, base+i)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				results[i] = res
				log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, res.record.Winner)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		matchGames := make([]metrics.GameRecord, 0, games)
		matchMoves := []metrics.MoveRecord{}
		for _, res := range results {
			count++
			res.record.ID = count
			matchGames = append(matchGames, res.record)
			for _, mm := range res.moves {
				mm.Game = count
				matchMoves = append(matchMoves, mm)
			}
		}
		gameRecords = append(gameRecords, matchGames...)
		moveRecords = append(moveRecords, matchMoves...)
		summaries = append(summaries, summarize(config1, config2, matchGames, matchMoves))

		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	if s.outDir != "" {
		if err := store(s.outDir, name, configs, gameRecords, moveRecords); err != nil {
			return summaries, err
		}
	}
	return summaries, nil
}

// runGame plays a single game. Games with an even round start with agent1.
// The seed index keeps random sources distinct across the experiment.
func (s *settings) runGame(ctx context.Context, config1, config2 metrics.AgentConfig, round, index int) (gameResult, error) {
	board, err := game.NewBoard(s.rows, s.columns)
	if err != nil {
		return gameResult{}, err
	}
	first := game.Player1
	if round%2 == 1 {
		first = game.Player2
	}

	players := []engine.Player{
		engine.NewAgentPlayer(newAgent(config1, s.random(index, 1))),
		engine.NewAgentPlayer(newAgent(config2, s.random(index, 2))),
	}
	e := engine.LocalEngine(players, nil, engine.WithBoard(board), engine.WithStartingSide(first))

	result, err := e.Run(ctx)
	if err != nil {
		return gameResult{}, err
	}

	record := metrics.GameRecord{
		Agent1:     config1.ID,
		Agent2:     config2.ID,
		GameMetric: result.GameMetric,
	}
	moves := lo.Map(result.MoveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
		return metrics.MoveRecord{MoveMetric: mm}
	})
	return gameResult{record: record, moves: moves}, nil
}

func (s *settings) random(index, player int) searcher.Random {
	if s.seed == 0 {
		return searcher.NewRandom()
	}
	return searcher.NewSeededRandom(s.seed + uint64(2*index+player))
}

func newAgent(config metrics.AgentConfig, random searcher.Random) agent.Agent {
	if config.Kind == metrics.Heuristic {
		return agent.NewHeuristicAgent(random)
	}

	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithRandom(random),
		searcher.WithMetrics(),
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.NoPruning {
		options = append(options, searcher.WithoutPruning())
	}
	return agent.NewAdversarialAgent(options...)
}

func summarize(config1, config2 metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) Summary {
	nodes := func(player int) float64 {
		agentMoves := lo.Filter(moves, func(m metrics.MoveRecord, _ int) bool { return m.Player == player })
		return lo.MeanBy(agentMoves, func(m metrics.MoveRecord) float64 { return float64(m.Nodes) })
	}

	return Summary{
		Agent1:      config1.ID,
		Agent2:      config2.ID,
		Games:       len(games),
		Agent1Wins:  lo.CountBy(games, func(r metrics.GameRecord) bool { return r.Winner == int(game.Player1) }),
		Agent2Wins:  lo.CountBy(games, func(r metrics.GameRecord) bool { return r.Winner == int(game.Player2) }),
		Draws:       lo.CountBy(games, func(r metrics.GameRecord) bool { return r.Draw }),
		Unfinished:  lo.CountBy(games, func(r metrics.GameRecord) bool { return r.Winner == 0 && !r.Draw }),
		Agent1Nodes: nodes(int(game.Player1)),
		Agent2Nodes: nodes(int(game.Player2)),
	}
}

func store(outDir, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
