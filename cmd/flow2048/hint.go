package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flow2048/internal/shell"
	"github.com/vovakirdan/flow2048/internal/solver"
)

var flagExplain bool

var hintCmd = &cobra.Command{
	Use:   "hint <board>",
	Short: "Print the solver's move for a board",
	Long: `Print the move the solver would make on the given board.

The board is either a 16-digit hex code (one digit per cell, row-major
from the top left: 0 empty, 1=2, 2=4 ... f=32768) or 16 tile values.

Examples:
  flow2048 hint 0000000000120134
  flow2048 hint 0 0 0 0  0 0 0 0  0 0 2 4  2 8 4 16
  flow2048 hint --explain 0000000000120134`,
	Args: cobra.MinimumNArgs(1),
	Run:  runHint,
}

func init() {
	hintCmd.Flags().BoolVarP(&flagExplain, "explain", "e", false, "Show every candidate the solver weighed")
}

func runHint(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()
	cfg := loadConfig(logger)

	board, err := solver.ParseBoard(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	policy, err := cfg.Policy.Policy()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c, err := shell.New(shell.Options{Policy: policy, Seed: seed(), Out: os.Stdout, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := c.SetBoard(board); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	command := "hint"
	if flagExplain {
		command = "analyze"
	}
	if err := c.Execute(command); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
