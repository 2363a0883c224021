package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"connectfour/meta"
	"connectfour/searcher"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key read from the environment, e.g.
// CONNECT4_DEPTH.
const EnvPrefix = "CONNECT4"

type Config struct {
	Rows            int           `mapstructure:"rows"`
	Columns         int           `mapstructure:"columns"`
	Depth           int           `mapstructure:"depth"`
	Goroutines      int           `mapstructure:"goroutines"`
	Timeout         time.Duration `mapstructure:"timeout"` // 0 means no deadline
	Seed            uint64        `mapstructure:"seed"`    // 0 means unseeded
	LogLevel        string        `mapstructure:"log_level"`
	ListenAddr      string        `mapstructure:"listen_addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ExperimentGames int           `mapstructure:"experiment_games"`
	OutputDir       string        `mapstructure:"output_dir"`
}

// Load reads .env (if present), then the config file at path (if given),
// then the environment. Later sources win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("rows", meta.ROWS)
	v.SetDefault("columns", meta.COLUMNS)
	v.SetDefault("depth", meta.DEPTH)
	v.SetDefault("goroutines", meta.GO_ROUTINES)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("seed", 0)
	v.SetDefault("log_level", meta.LOG_LEVEL)
	v.SetDefault("listen_addr", meta.LISTEN_ADDR)
	v.SetDefault("allowed_origins", []string{})
	v.SetDefault("experiment_games", meta.EXPERIMENT_GAMES)
	v.SetDefault("output_dir", meta.OUTPUT_DIR)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Depth < 0 {
		errs = append(errs, fmt.Errorf("depth %d: %w", c.Depth, searcher.ErrInvalidDepth))
	}
	if c.Rows < 4 || c.Columns < 4 {
		errs = append(errs, fmt.Errorf("board %dx%d: board must be at least 4x4", c.Rows, c.Columns))
	}
	if c.Goroutines < 1 {
		errs = append(errs, fmt.Errorf("goroutines %d: need at least one", c.Goroutines))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout %s: must not be negative", c.Timeout))
	}
	if c.ExperimentGames < 1 {
		errs = append(errs, fmt.Errorf("experiment games %d: need at least one", c.ExperimentGames))
	}
	return errors.Join(errs...)
}

// Random returns the random source for searches and coin flips.
func (c *Config) Random() searcher.Random {
	if c.Seed == 0 {
		return searcher.NewRandom()
	}
	return searcher.NewSeededRandom(c.Seed)
}

// SearchOptions configures the computer opponent.
func (c *Config) SearchOptions() []searcher.Option {
	return []searcher.Option{
		searcher.WithDepth(c.Depth),
		searcher.WithGoroutines(c.Goroutines),
		searcher.WithTimeout(c.Timeout),
		searcher.WithRandom(c.Random()),
	}
}
