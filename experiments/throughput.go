package experiments

import (
	"context"
	"slices"

	"connectfour/experiments/metrics"
)

// ThroughputDepth is deep enough for the root moves to be worth a goroutine.
const ThroughputDepth = 6

// RunThroughputExperiment measures search time against the number of
// goroutines for the root moves. Each matchup uses the same config for both
// players, so the games are of similar length. Games always run one at a
// time, whatever concurrency the caller asks for.
func RunThroughputExperiment(ctx context.Context, games int, options ...Option) ([]Summary, error) {
	options = sequential(options)
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.Minimax, Depth: ThroughputDepth, Goroutines: 1},
		{ID: 2, Kind: metrics.Minimax, Depth: ThroughputDepth, Goroutines: 2},
		{ID: 3, Kind: metrics.Minimax, Depth: ThroughputDepth, Goroutines: 4},
		{ID: 4, Kind: metrics.Minimax, Depth: ThroughputDepth, Goroutines: 7},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return Run(ctx, "throughput", configs, matchUps, games, options...)
}

// sequential overrides any WithConcurrency in options, so that search
// durations are not inflated by other games competing for the CPU.
func sequential(options []Option) []Option {
	return append(slices.Clone(options), WithConcurrency(1))
}
