// flow2048 plays 2048 in the terminal with a flow-based move solver that can
// hint, analyze, or play on its own.
//
// Usage:
//
//	flow2048 play             - Pick a mode from the menu and play
//	flow2048 hint <board>     - Print the solver's move for a board
//	flow2048 analyze [board]  - Interactive board analyzer
//	flow2048 autoplay         - Let the solver play a batch of games
//	flow2048 scores [mode]    - Show high scores or solver runs
//	flow2048 serve            - Start SSH server for remote play
//	flow2048 list             - List game modes
//	flow2048 config           - Print or write the solver config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.flow2048/flow2048.db)
//	--config <path>     - Solver config YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"lukechampine.com/frand"

	"github.com/vovakirdan/flow2048/internal/config"
	"github.com/vovakirdan/flow2048/internal/core"
	// Import the game to register its modes
	_ "github.com/vovakirdan/flow2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flow2048",
	Short: "flow2048 - 2048 with a solver that plays along",
	Long: `flow2048 is a terminal 2048 game with a built-in move solver.
The solver keeps the big tiles flowing toward one corner and can
suggest moves, explain them, or take over the game.

Available commands:
  play      - Play from the mode menu
  hint      - Print the solver's move for a board
  analyze   - Interactive board analyzer
  autoplay  - Let the solver play a batch of games
  scores    - View high scores and solver runs
  serve     - Start SSH server for remote play
  list      - Show game modes
  config    - Print or write the solver config

Examples:
  flow2048 play
  flow2048 hint 0000000000120134
  flow2048 analyze
  flow2048 autoplay --games 200 --workers 8
  flow2048 serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flow2048/flow2048.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to solver config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command's logger. Full-screen commands pass
// io.Discard so log lines never land on top of the game; --log-file
// overrides the writer for every command.
func newLogger(w io.Writer) (*log.Logger, func()) {
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			w = f
			closer = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flow2048",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger, closer
}

// loadConfig reads the solver config or exits.
func loadConfig(logger *log.Logger) config.Config {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", "source", source)
	return cfg
}

// seed returns --seed, or a random seed when it is 0.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return int64(frand.Uint64n(math.MaxInt64-1)) + 1
}

func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}
}

// spawn4 resolves a spawn preset name; empty means classic.
func spawn4(preset string) (float64, error) {
	if preset == "" {
		return config.SpawnClassic.Spawn4(), nil
	}
	p, err := config.ParseSpawnPreset(preset)
	if err != nil {
		return 0, err
	}
	return p.Spawn4(), nil
}
