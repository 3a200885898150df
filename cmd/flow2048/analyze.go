package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flow2048/internal/shell"
)

var flagAnalyzeDifficulty string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [board]",
	Short: "Interactive board analyzer",
	Long: `Open a prompt for exploring the solver's decisions. Load a board,
ask for a hint or a full analysis, make moves by hand or let the
solver play, and undo as you go. Type 'help' at the prompt for the
command list.

Examples:
  flow2048 analyze
  flow2048 analyze 0000000000120134
  flow2048 analyze --difficulty brutal`,
	Run: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&flagAnalyzeDifficulty, "difficulty", "classic", "Spawn preset for tiles added after moves")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()
	cfg := loadConfig(logger)

	policy, err := cfg.Policy.Policy()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts := shell.Options{Policy: policy, Seed: seed(), Out: os.Stdout, Logger: logger}
	if opts.Spawn4, err = spawn4(flagAnalyzeDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c, err := shell.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := "new"
	if len(args) > 0 {
		start = "board " + strings.Join(args, " ")
	}
	if err := c.Execute(start); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := c.Loop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
