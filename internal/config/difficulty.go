package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// SpawnPreset names a spawn-4 probability.
type SpawnPreset string

const (
	SpawnEasy    SpawnPreset = "easy"    // Only 2s spawn
	SpawnClassic SpawnPreset = "classic" // The usual 90/10 split
	SpawnHard    SpawnPreset = "hard"
	SpawnBrutal  SpawnPreset = "brutal"
)

var spawnPresets = map[SpawnPreset]float64{
	SpawnEasy:    0,
	SpawnClassic: 0.10,
	SpawnHard:    0.25,
	SpawnBrutal:  0.50,
}

// SpawnPresets lists the preset names in increasing difficulty.
func SpawnPresets() []SpawnPreset {
	return []SpawnPreset{SpawnEasy, SpawnClassic, SpawnHard, SpawnBrutal}
}

// ParseSpawnPreset accepts a preset name in any case.
func ParseSpawnPreset(s string) (SpawnPreset, error) {
	p := SpawnPreset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := spawnPresets[p]; !ok {
		names := lo.Map(SpawnPresets(), func(p SpawnPreset, _ int) string { return string(p) })
		return "", fmt.Errorf("config: unknown spawn preset %q (want one of %s)", s, strings.Join(names, ", "))
	}
	return p, nil
}

// Spawn4 returns the preset's probability that a spawned tile is a 4.
func (p SpawnPreset) Spawn4() float64 {
	return spawnPresets[p]
}

// ApplySpawnPreset sets the autoplay spawn probability from a preset.
func ApplySpawnPreset(cfg *Config, preset SpawnPreset) {
	cfg.Autoplay.Spawn4 = preset.Spawn4()
}
