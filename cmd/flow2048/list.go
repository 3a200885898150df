package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flow2048/internal/games/t2048"
	"github.com/vovakirdan/flow2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and campaign levels",
	Long:  `Shows the registered game modes and the campaign's levels.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No game modes available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Campaign levels:")
	fmt.Println()
	for _, label := range t2048.LevelLabels() {
		fmt.Printf("  %s\n", label)
	}

	fmt.Println()
	fmt.Println("Run 'flow2048 play' to pick a mode, or 'flow2048 play --level <n>'.")
}
