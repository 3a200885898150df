package config

import (
	_ "embed"

	"github.com/vovakirdan/flow2048/internal/solver"
)

//go:embed defaults/solver.yaml
var defaultSolverYAML []byte

// DefaultConfig returns the hard-coded configuration. It matches the
// embedded defaults/solver.yaml.
func DefaultConfig() Config {
	return Config{
		Policy: DefaultPolicyConfig(),
		Autoplay: AutoplayConfig{
			Games:    100,
			Workers:  4,
			Spawn4:   0.10,
			MaxMoves: 0,
		},
		Game: GameConfig{
			AutoInterval: 6,
		},
	}
}

// DefaultPolicyConfig returns solver.DefaultPolicy in YAML form.
func DefaultPolicyConfig() PolicyConfig {
	p := solver.DefaultPolicy()
	c := PolicyConfig{
		Orientation: OrientationConfig{
			StabilityRatio:      p.StabilityRatio,
			SwitchMarginDivisor: p.SwitchMarginDivisor,
		},
		Danger: DangerConfig{AnchorMin: p.AltAnchorMin},
		Chase: ChaseConfig{
			AnchorMin:      p.ChaseAnchorMin,
			Limit:          p.ChaseLimit,
			MaxOpen:        p.ChaseMaxOpen,
			TraceLimit:     p.TraceLimit,
			TraceLimitLeft: p.TraceLimitLeft,
		},
		SpawnValue:          p.SpawnValue,
		NegligibleMagnitude: p.NegligibleMagnitude,
		Profiles: ProfilesConfig{
			Default: profileConfig(p.Default),
			Alt:     profileConfig(p.Alt),
		},
	}
	for _, d := range p.Danger {
		c.Danger.Signals = append(c.Danger.Signals, SignalConfig{Cell: d.Cell, Below: d.Below})
	}
	return c
}

func profileConfig(p solver.Profile) ProfileConfig {
	flow := make(map[int]int)
	for from, to := range p.Flow {
		if to != solver.NoFlow {
			flow[from] = to
		}
	}
	return ProfileConfig{Flow: flow, Priority: append([]int(nil), p.Priority...)}
}

// DefaultYAML returns the embedded default solver.yaml.
func DefaultYAML() []byte {
	return defaultSolverYAML
}
