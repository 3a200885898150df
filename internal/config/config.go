// Package config loads the solver's tuned constants and the autoplay and
// game defaults from YAML.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/flow2048/internal/solver"
)

// Config is the full contents of solver.yaml.
type Config struct {
	Policy   PolicyConfig   `yaml:"policy"`
	Autoplay AutoplayConfig `yaml:"autoplay"`
	Game     GameConfig     `yaml:"game"`
}

// PolicyConfig mirrors solver.Policy in YAML form.
type PolicyConfig struct {
	Orientation OrientationConfig `yaml:"orientation"`
	Danger      DangerConfig      `yaml:"danger"`
	Chase       ChaseConfig       `yaml:"chase"`

	SpawnValue          int `yaml:"spawn_value"`          // Value a lone empty cell is filled with
	NegligibleMagnitude int `yaml:"negligible_magnitude"` // Flow values this small never block a candidate

	Profiles ProfilesConfig `yaml:"profiles"`
}

// OrientationConfig controls when the board frame is searched and switched.
type OrientationConfig struct {
	StabilityRatio      float64 `yaml:"stability_ratio"`
	SwitchMarginDivisor float64 `yaml:"switch_margin_divisor"`
}

// DangerConfig controls the switch to the alternate profile.
type DangerConfig struct {
	AnchorMin int            `yaml:"anchor_min"`
	Signals   []SignalConfig `yaml:"signals"`
}

// SignalConfig is one danger threshold.
type SignalConfig struct {
	Cell  int `yaml:"cell"`
	Below int `yaml:"below"`
}

// ChaseConfig bounds the follow-up move search.
type ChaseConfig struct {
	AnchorMin      int `yaml:"anchor_min"`
	Limit          int `yaml:"limit"`
	MaxOpen        int `yaml:"max_open"`
	TraceLimit     int `yaml:"trace_limit"`
	TraceLimitLeft int `yaml:"trace_limit_left"`
}

// ProfilesConfig holds both flow profiles.
type ProfilesConfig struct {
	Default ProfileConfig `yaml:"default"`
	Alt     ProfileConfig `yaml:"alt"`
}

// ProfileConfig is a flow map (cell -> downstream cell) and its tie-break order.
type ProfileConfig struct {
	Flow     map[int]int `yaml:"flow"`
	Priority []int       `yaml:"priority"`
}

// AutoplayConfig holds the batch defaults for the autoplay command.
type AutoplayConfig struct {
	Games   int     `yaml:"games"`
	Workers int     `yaml:"workers"`
	Spawn4  float64 `yaml:"spawn4"`
	// MaxMoves stops a runaway game; 0 means no limit.
	MaxMoves int `yaml:"max_moves"`
}

// GameConfig holds interactive game settings.
type GameConfig struct {
	AutoInterval int `yaml:"auto_interval"` // Ticks between solver moves in auto mode
}

// Policy converts the YAML form into a validated solver.Policy.
func (c PolicyConfig) Policy() (solver.Policy, error) {
	def, err := c.Profiles.Default.profile(solver.DefaultProfile().Name)
	if err != nil {
		return solver.Policy{}, err
	}
	alt, err := c.Profiles.Alt.profile(solver.AltProfile().Name)
	if err != nil {
		return solver.Policy{}, err
	}

	p := solver.Policy{
		Default:             def,
		Alt:                 alt,
		StabilityRatio:      c.Orientation.StabilityRatio,
		SwitchMarginDivisor: c.Orientation.SwitchMarginDivisor,
		AltAnchorMin:        c.Danger.AnchorMin,
		ChaseAnchorMin:      c.Chase.AnchorMin,
		ChaseLimit:          c.Chase.Limit,
		ChaseMaxOpen:        c.Chase.MaxOpen,
		TraceLimit:          c.Chase.TraceLimit,
		TraceLimitLeft:      c.Chase.TraceLimitLeft,
		SpawnValue:          c.SpawnValue,
		NegligibleMagnitude: c.NegligibleMagnitude,
	}
	for _, s := range c.Danger.Signals {
		p.Danger = append(p.Danger, solver.DangerSignal{Cell: s.Cell, Below: s.Below})
	}

	if err := p.Validate(); err != nil {
		return solver.Policy{}, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

func (c ProfileConfig) profile(name string) (solver.Profile, error) {
	if len(c.Flow) == 0 {
		return solver.Profile{}, fmt.Errorf("config: profile %s: empty flow map", name)
	}
	flow, err := solver.NewFlowMap(c.Flow)
	if err != nil {
		return solver.Profile{}, fmt.Errorf("config: profile %s: %w", name, err)
	}
	return solver.Profile{Name: name, Flow: flow, Priority: c.Priority}, nil
}

// Validate checks the non-policy sections.
func (c Config) Validate() error {
	var errs []error
	if c.Autoplay.Games < 1 {
		errs = append(errs, fmt.Errorf("config: autoplay.games must be positive, got %d", c.Autoplay.Games))
	}
	if c.Autoplay.Workers < 1 {
		errs = append(errs, fmt.Errorf("config: autoplay.workers must be positive, got %d", c.Autoplay.Workers))
	}
	if c.Autoplay.Spawn4 < 0 || c.Autoplay.Spawn4 > 1 {
		errs = append(errs, fmt.Errorf("config: autoplay.spawn4 %v outside [0, 1]", c.Autoplay.Spawn4))
	}
	if c.Game.AutoInterval < 1 {
		errs = append(errs, fmt.Errorf("config: game.auto_interval must be positive, got %d", c.Game.AutoInterval))
	}
	if _, err := c.Policy.Policy(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
