package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flow2048/internal/config"
	"github.com/vovakirdan/flow2048/internal/games/t2048"
	"github.com/vovakirdan/flow2048/internal/platform/tui"
	"github.com/vovakirdan/flow2048/internal/storage"
)

var (
	flagEndless    bool
	flagWatch      bool
	flagLevel      int
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start the game. Without flags a menu lets you pick a mode.

Controls:
  WASD/Arrows - Slide tiles
  H/?         - Show the solver's hint
  N/.         - Let the solver make one move
  Shift+A/Tab - Toggle solver autoplay
  U/Ctrl+Z    - Undo
  P/Space     - Pause
  R           - Restart (after game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options (chance that a new tile is a 4):
  easy     - never
  classic  - 10%
  hard     - 25%
  brutal   - 50%

Examples:
  flow2048 play
  flow2048 play --endless
  flow2048 play --level 4 --difficulty hard
  flow2048 play --watch --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Skip the menu and play endless mode")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Skip the menu and watch the solver play endless mode")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Skip the menu and start the campaign at this level")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Spawn preset: easy, classic, hard, brutal")
}

// gameOptions builds the options every game of this process starts with:
// the configured policy and autoplay speed plus an optional spawn preset.
func gameOptions(cfg config.Config, difficulty string, logger *log.Logger) ([]t2048.Option, error) {
	policy, err := cfg.Policy.Policy()
	if err != nil {
		return nil, err
	}
	opts := []t2048.Option{
		t2048.WithPolicy(policy),
		t2048.WithAutoInterval(cfg.Game.AutoInterval),
		t2048.WithLogger(logger),
	}
	if difficulty != "" {
		preset, err := config.ParseSpawnPreset(difficulty)
		if err != nil {
			return nil, err
		}
		opts = append(opts, t2048.WithSpawn4(preset.Spawn4()))
	}
	return opts, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(io.Discard)
	defer closeLog()
	cfg := loadConfig(logger)

	opts, err := gameOptions(cfg, flagDifficulty, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel < 0 || flagLevel > t2048.LevelCount() {
		fmt.Fprintf(os.Stderr, "Error: level must be 1-%d\n", t2048.LevelCount())
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := runtimeConfig(width, height)
	logger.Debug("starting", "seed", rc.Seed, "size", fmt.Sprintf("%dx%d", width, height))

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var runErr error
	if flagEndless || flagWatch || flagLevel > 0 {
		sel := tui.Selection{Mode: tui.ModeCampaign, Level: flagLevel, Watch: flagWatch}
		if flagEndless || flagWatch {
			sel.Mode = tui.ModeEndless
		}
		runErr = tui.Run(sel.NewGame(opts...), store, rc, logger)
	} else {
		runErr = tui.RunSession(store, rc, logger, opts...)
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
