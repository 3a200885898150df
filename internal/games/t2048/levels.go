// Package t2048 is the playable 2048 game: the authoritative board, spawns,
// scoring and campaign levels, plus a solver assist that can hint, step,
// play automatically and undo.
package t2048

import "fmt"

// Level is a campaign stage: reach Target to clear it.
type Level struct {
	ID     int
	Name   string
	Target int
	Spawn4 float64 // Probability that a spawned tile is a 4
}

// Levels raises the target up to 8192 and then tightens the spawn odds.
var Levels = []Level{
	{ID: 1, Name: "Warm-up", Target: 128, Spawn4: 0.10},
	{ID: 2, Name: "Getting Started", Target: 256, Spawn4: 0.10},
	{ID: 3, Name: "Building Momentum", Target: 512, Spawn4: 0.10},
	{ID: 4, Name: "The Climb", Target: 1024, Spawn4: 0.10},
	{ID: 5, Name: "Classic 2048", Target: 2048, Spawn4: 0.10},
	{ID: 6, Name: "Beyond Limits", Target: 4096, Spawn4: 0.12},
	{ID: 7, Name: "Master Class", Target: 8192, Spawn4: 0.15},
	{ID: 8, Name: "Expert Challenge", Target: 8192, Spawn4: 0.18},
	{ID: 9, Name: "Grandmaster", Target: 8192, Spawn4: 0.20},
	{ID: 10, Name: "Ultimate Champion", Target: 8192, Spawn4: 0.25},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based), or nil.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// Label renders the level for menus, e.g. "3. Building Momentum (512)".
func (l Level) Label() string {
	return fmt.Sprintf("%d. %s (%d)", l.ID, l.Name, l.Target)
}

// LevelLabels returns Label for every level.
func LevelLabels() []string {
	labels := make([]string, len(Levels))
	for i, lvl := range Levels {
		labels[i] = lvl.Label()
	}
	return labels
}
