package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flow2048/internal/autoplay"
	"github.com/vovakirdan/flow2048/internal/config"
	"github.com/vovakirdan/flow2048/internal/storage"
)

var (
	flagGames      int
	flagWorkers    int
	flagMaxMoves   int
	flagSpawn      string
	flagConfidence float64
	flagNoSave     bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the solver play a batch of games",
	Long: `Play games headlessly with the solver and print a summary: mean score
with a confidence interval, how often each tile was reached, and a
score histogram. Game i uses seed --seed+i, so any game can be replayed.

Unset flags fall back to the autoplay section of the solver config.
Runs are saved to the database unless --no-save is given; see them with
'flow2048 scores --runs'.

Examples:
  flow2048 autoplay
  flow2048 autoplay --games 1000 --workers 8
  flow2048 autoplay --spawn brutal --seed 1
  flow2048 autoplay --config ./tuned.yaml --no-save`,
	Args: cobra.NoArgs,
	Run:  runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVarP(&flagGames, "games", "n", 0, "Number of games (default from config)")
	autoplayCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "Parallel games (default from config, then CPU count)")
	autoplayCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop each game after this many moves (default from config)")
	autoplayCmd.Flags().StringVar(&flagSpawn, "spawn", "", "Spawn preset: easy, classic, hard, brutal (default from config)")
	autoplayCmd.Flags().Float64Var(&flagConfidence, "confidence", 0.95, "Confidence level of the mean score interval")
	autoplayCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the database")
}

func runAutoplay(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()
	cfg := loadConfig(logger)

	if flagSpawn != "" {
		preset, err := config.ParseSpawnPreset(flagSpawn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.ApplySpawnPreset(&cfg, preset)
	}

	policy, err := cfg.Policy.Policy()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagConfidence <= 0 || flagConfidence >= 1 {
		fmt.Fprintf(os.Stderr, "Error: confidence must be between 0 and 1, got %g\n", flagConfidence)
		os.Exit(1)
	}

	opts := autoplay.Options{
		Games:    lo.CoalesceOrEmpty(flagGames, cfg.Autoplay.Games),
		Workers:  lo.CoalesceOrEmpty(flagWorkers, cfg.Autoplay.Workers, runtime.NumCPU()),
		Seed:     seed(),
		Spawn4:   cfg.Autoplay.Spawn4,
		MaxMoves: lo.CoalesceOrEmpty(flagMaxMoves, cfg.Autoplay.MaxMoves),
		Policy:   policy,
		Logger:   logger,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("autoplay starting", "games", opts.Games, "workers", opts.Workers, "seed", opts.Seed, "spawn4", opts.Spawn4)
	start := time.Now()
	results, err := autoplay.Run(ctx, opts)
	elapsed := time.Since(start)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		logger.Warn("interrupted", "finished", len(results))
	}

	report := autoplay.Summarize(results, flagConfidence)
	if err := report.Fprint(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n%d games in %s\n", len(results), elapsed.Round(time.Millisecond))

	if flagNoSave || len(results) == 0 {
		return
	}
	saveRun(report, results, opts, elapsed)
}

// saveRun records the batch. A database problem is only a warning: the
// summary has already been printed.
func saveRun(report autoplay.Report, results []autoplay.GameResult, opts autoplay.Options, elapsed time.Duration) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return
	}
	defer store.Close()

	run := storage.Run{
		ID:        uuid.NewString(),
		Policy:    opts.Policy.Default.Name + "/" + opts.Policy.Alt.Name,
		Games:     report.Games,
		Spawn4:    opts.Spawn4,
		Seed:      opts.Seed,
		MeanScore: report.MeanScore,
		StdDev:    report.StdDev,
		BestScore: report.Best.Score,
		BestTile:  report.Best.MaxTile,
		Duration:  elapsed,
	}
	games := lo.Map(results, func(g autoplay.GameResult, _ int) storage.RunGame {
		return storage.RunGame{
			RunID:   run.ID,
			Index:   g.Index,
			Seed:    g.Seed,
			Score:   g.Score,
			MaxTile: g.MaxTile,
			Moves:   g.Moves,
			Board:   g.Code,
		}
	})
	if err := store.SaveRun(run, games); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save run: %v\n", err)
		return
	}
	fmt.Printf("Saved run %s\n", run.ID)
}
