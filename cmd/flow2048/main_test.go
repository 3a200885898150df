package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flow2048/internal/config"
)

func TestSpawn4(t *testing.T) {
	tests := []struct {
		preset string
		want   float64
	}{
		{"", 0.10},
		{"easy", 0},
		{"Brutal", 0.50},
	}
	for _, tt := range tests {
		got, err := spawn4(tt.preset)
		if err != nil {
			t.Errorf("spawn4(%q): %v", tt.preset, err)
			continue
		}
		if got != tt.want {
			t.Errorf("spawn4(%q) = %g, want %g", tt.preset, got, tt.want)
		}
	}
	if _, err := spawn4("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestGameOptions(t *testing.T) {
	logger := log.New(io.Discard)

	opts, err := gameOptions(config.DefaultConfig(), "", logger)
	if err != nil {
		t.Fatalf("gameOptions: %v", err)
	}
	if len(opts) != 3 {
		t.Errorf("len(opts) = %d, want policy, interval and logger", len(opts))
	}

	opts, err = gameOptions(config.DefaultConfig(), "hard", logger)
	if err != nil || len(opts) != 4 {
		t.Errorf("with a preset: %d options, err %v", len(opts), err)
	}

	if _, err := gameOptions(config.DefaultConfig(), "nope", logger); err == nil {
		t.Error("bad preset should fail")
	}

	broken := config.DefaultConfig()
	broken.Policy.Profiles.Default.Flow = map[int]int{0: 1, 1: 0}
	if _, err := gameOptions(broken, "", logger); err == nil {
		t.Error("a cyclic flow map should fail")
	}
}

func TestSeed(t *testing.T) {
	defer func(s int64) { flagSeed = s }(flagSeed)

	flagSeed = 42
	if got := seed(); got != 42 {
		t.Errorf("seed() = %d, want 42", got)
	}
	flagSeed = 0
	if got := seed(); got <= 0 {
		t.Errorf("random seed = %d, want positive", got)
	}
}
