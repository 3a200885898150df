package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flow2048/internal/registry"
	"github.com/vovakirdan/flow2048/internal/storage"
)

var (
	flagRuns        bool
	flagRunID       string
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores or solver runs",
	Long: `Display the top 10 scores for a game mode (default: 2048), or the
recorded autoplay runs.

Examples:
  flow2048 scores
  flow2048 scores 2048_endless
  flow2048 scores --runs
  flow2048 scores --run 3f2a9c1e-...
  flow2048 scores 2048_endless --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "List recent autoplay runs")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show the games of one autoplay run")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every score of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := "2048"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !flagRuns && flagRunID == "" && !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'flow2048 list' to see available modes.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClearScores:
		if err = store.ClearScores(gameID); err == nil {
			fmt.Printf("Cleared scores for %s\n", gameID)
		}
	case flagRunID != "":
		err = printRunGames(store, flagRunID)
	case flagRuns:
		err = printRuns(store)
	default:
		err = printScores(store, gameID)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flow2048 play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Tile", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.MaxTile, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d (tile %d) over %d games, average %.0f\n",
		stats.HighScore, stats.BestTile, stats.GamesCount, stats.AvgScore)
	return nil
}

func printRuns(store *storage.Store) error {
	runs, err := store.RecentRuns(10)
	if err != nil {
		return err
	}

	fmt.Println("Solver Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'flow2048 autoplay' to record one.")
		return nil
	}

	fmt.Printf("  %-36s  %-6s  %-10s  %-8s  %-6s  %-6s  %s\n", "Run", "Games", "Mean", "Best", "Tile", "Spawn4", "Date")
	fmt.Printf("  %-36s  %-6s  %-10s  %-8s  %-6s  %-6s  %s\n", "---", "-----", "----", "----", "----", "------", "----")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-6d  %-10.1f  %-8d  %-6d  %-6.2f  %s\n",
			r.ID, r.Games, r.MeanScore, r.BestScore, r.BestTile, r.Spawn4, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRunGames(store *storage.Store, runID string) error {
	games, err := store.RunGames(runID)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return fmt.Errorf("no games recorded for run %q", runID)
	}

	fmt.Printf("Run %s\n", runID)
	fmt.Println()
	fmt.Printf("  %-5s  %-20s  %-8s  %-6s  %-6s  %s\n", "Game", "Seed", "Score", "Tile", "Moves", "Board")
	fmt.Printf("  %-5s  %-20s  %-8s  %-6s  %-6s  %s\n", "----", "----", "-----", "----", "-----", "-----")
	for _, g := range games {
		fmt.Printf("  %-5d  %-20d  %-8d  %-6d  %-6d  %s\n", g.Index, g.Seed, g.Score, g.MaxTile, g.Moves, g.Board)
	}
	fmt.Println()
	fmt.Println("Replay a game with 'flow2048 analyze <board>' or 'flow2048 autoplay --games 1 --seed <seed>'.")
	return nil
}
