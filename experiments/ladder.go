package experiments

import (
	"context"

	"connectfour/experiments/metrics"
)

// BaselineDepth is the depth of the default computer opponent.
const BaselineDepth = 3

// RunDepthExperiment pairs agents of increasing depth, and the one-ply
// heuristic agent, against the baseline agent.
func RunDepthExperiment(ctx context.Context, games int, options ...Option) ([]Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.Minimax, Depth: BaselineDepth, Goroutines: 1}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.Heuristic},
		{ID: 2, Kind: metrics.Minimax, Depth: 1, Goroutines: 1},
		{ID: 3, Kind: metrics.Minimax, Depth: 2, Goroutines: 1},
		{ID: 4, Kind: metrics.Minimax, Depth: 3, Goroutines: 1}, // Baseline equivalent
		{ID: 5, Kind: metrics.Minimax, Depth: 4, Goroutines: 1},
		{ID: 6, Kind: metrics.Minimax, Depth: 5, Goroutines: 1},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return Run(ctx, "depth", append(configs, baseline), matchUps, games, options...)
}

// RunPruningExperiment plays alpha-beta against full width search of the
// same depth. Both choose the same moves; the node counts show the savings.
func RunPruningExperiment(ctx context.Context, games int, options ...Option) ([]Summary, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for depth := 2; depth <= 4; depth++ {
		pruned := metrics.AgentConfig{ID: 2 * depth, Kind: metrics.Minimax, Depth: depth, Goroutines: 1}
		full := metrics.AgentConfig{ID: 2*depth + 1, Kind: metrics.Minimax, Depth: depth, Goroutines: 1, NoPruning: true}
		configs = append(configs, pruned, full)
		matchUps = append(matchUps, []metrics.AgentConfig{pruned, full})
	}

	return Run(ctx, "pruning", configs, matchUps, games, options...)
}
