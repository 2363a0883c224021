package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"connectfour/communication/client"
	"connectfour/communication/server"
	"connectfour/config"
	"connectfour/engine"
	"connectfour/experiments"
	"connectfour/game"
	"connectfour/player"
	"connectfour/searcher/agent"

	"github.com/rs/zerolog/log"
)

const usage = `usage: connectfour <play|serve|remote|experiment> [flags]

  play        play against the computer in this terminal
  serve       serve games to browsers over a websocket
  remote      play in this terminal against a running server
  experiment  run self-play experiments and write CSV results
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	mode := os.Args[1]

	fs := flag.NewFlagSet(mode, flag.ExitOnError)
	configPath := fs.String("config", "", "optional config file (yaml, json or toml)")
	first := fs.String("first", "random", "who moves first: human, computer or random")
	url := fs.String("url", "ws://localhost:8080/ws", "play server websocket URL (remote)")
	name := fs.String("experiment", "depth", "experiment to run: depth, pruning or throughput")
	fs.Parse(os.Args[2:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	terminal := mode == "play" || mode == "remote"
	if err := config.SetupLogging(cfg.LogLevel, os.Stderr, terminal); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "play":
		err = play(ctx, cfg, *first)
	case "serve":
		err = serve(ctx, cfg)
	case "remote":
		err = remote(ctx, *url, *first)
	case "experiment":
		err = experiment(ctx, cfg, *name)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, player.ErrQuit) && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg(mode)
		os.Exit(1)
	}
}

func historyFile() string {
	return filepath.Join(os.TempDir(), "connectfour.history")
}

// humanFirst maps the -first flag; nil means a coin flip.
func humanFirst(first string) (*bool, error) {
	yes, no := true, false
	switch first {
	case "human":
		return &yes, nil
	case "computer":
		return &no, nil
	case "random":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown -first %q", first)
	}
}

func play(ctx context.Context, cfg *config.Config, first string) error {
	hf, err := humanFirst(first)
	if err != nil {
		return err
	}
	board, err := game.NewBoard(cfg.Rows, cfg.Columns)
	if err != nil {
		return err
	}

	rl, err := player.NewReadline(historyFile())
	if err != nil {
		return err
	}
	defer rl.Close()

	human := player.NewTerminal(rl, rl.Stdout(), game.Player1)
	players := []engine.Player{
		engine.NewInputPlayer(human),
		engine.NewAgentPlayer(agent.NewAdversarialAgent(cfg.SearchOptions()...)),
	}

	options := []engine.Option{engine.WithBoard(board), engine.RandomStart(cfg.Random())}
	if hf != nil && *hf {
		options = append(options, engine.WithStartingSide(game.Player1))
	} else if hf != nil {
		options = append(options, engine.WithStartingSide(game.Player2))
	}

	human.Start(board)
	_, err = engine.LocalEngine(players, human, options...).Run(ctx)
	return err
}

func serve(ctx context.Context, cfg *config.Config) error {
	s := server.NewServer(
		func() agent.Agent { return agent.NewAdversarialAgent(cfg.SearchOptions()...) },
		server.WithAllowedOrigins(cfg.AllowedOrigins),
		server.WithBoardSize(cfg.Rows, cfg.Columns),
		server.WithRandom(cfg.Random()),
	)
	return s.Start(ctx, cfg.ListenAddr)
}

func remote(ctx context.Context, url, first string) error {
	hf, err := humanFirst(first)
	if err != nil {
		return err
	}
	c, _, err := client.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer c.Close()

	rl, err := player.NewReadline(historyFile())
	if err != nil {
		return err
	}
	defer rl.Close()

	return player.PlayRemote(ctx, c, player.NewTerminal(rl, rl.Stdout(), game.Empty), hf)
}

func experiment(ctx context.Context, cfg *config.Config, name string) error {
	options := []experiments.Option{
		experiments.WithOutputDir(cfg.OutputDir),
		experiments.WithSeed(cfg.Seed),
		experiments.WithConcurrency(runtime.NumCPU()),
		experiments.WithBoardSize(cfg.Rows, cfg.Columns),
	}

	var summaries []experiments.Summary
	var err error
	switch name {
	case "depth":
		summaries, err = experiments.RunDepthExperiment(ctx, cfg.ExperimentGames, options...)
	case "pruning":
		summaries, err = experiments.RunPruningExperiment(ctx, cfg.ExperimentGames, options...)
	case "throughput":
		summaries, err = experiments.RunThroughputExperiment(ctx, cfg.ExperimentGames, options...)
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}
	if err != nil {
		return err
	}

	for _, s := range summaries {
		log.Info().
			Int("agent1", s.Agent1).
			Int("agent2", s.Agent2).
			Int("games", s.Games).
			Int("agent1_wins", s.Agent1Wins).
			Int("agent2_wins", s.Agent2Wins).
			Int("draws", s.Draws).
			Float64("agent1_nodes", s.Agent1Nodes).
			Float64("agent2_nodes", s.Agent2Nodes).
			Msg("matchup")
	}
	return nil
}
