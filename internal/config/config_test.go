package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/flow2048/internal/solver"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	is := is.New(t)

	cfg, err := decode(DefaultYAML())
	is.NoErr(err)
	is.Equal(cfg, DefaultConfig())
	is.NoErr(cfg.Validate())
}

func TestDefaultPolicyRoundTrip(t *testing.T) {
	is := is.New(t)

	p, err := DefaultPolicyConfig().Policy()
	is.NoErr(err)
	is.Equal(p, solver.DefaultPolicy())
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "solver.yaml")
	data := []byte("autoplay:\n  games: 7\npolicy:\n  chase:\n    limit: 5\n")
	is.NoErr(os.WriteFile(path, data, 0o600))

	cfg, source, err := Load(path)
	is.NoErr(err)
	is.Equal(source, path)
	is.Equal(cfg.Autoplay.Games, 7)
	is.Equal(cfg.Autoplay.Workers, 4)   // untouched keys keep their defaults
	is.Equal(cfg.Policy.Chase.Limit, 5) // nested override
	is.Equal(cfg.Policy.Chase.MaxOpen, 13)
	is.Equal(len(cfg.Policy.Profiles.Default.Flow), 15)
}

func TestLoadReplacesFlowMaps(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "solver.yaml")
	data := []byte("policy:\n  profiles:\n    alt:\n      flow: {14: 15}\n      priority: [15, 14]\n")
	is.NoErr(os.WriteFile(path, data, 0o600))

	cfg, _, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.Policy.Profiles.Alt.Flow, map[int]int{14: 15})
	is.Equal(len(cfg.Policy.Profiles.Default.Flow), 15)

	p, err := cfg.Policy.Policy()
	is.NoErr(err)
	is.Equal(p.Alt.Flow[14], 15)
	is.Equal(p.Alt.Flow[13], solver.NoFlow)
}

func TestLoadCustomPathErrors(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	_, _, err := Load(filepath.Join(dir, "missing.yaml"))
	is.True(err != nil) // missing file

	bad := filepath.Join(dir, "bad.yaml")
	is.NoErr(os.WriteFile(bad, []byte("policy: [not, a, map"), 0o600))
	_, _, err = Load(bad)
	is.True(err != nil) // malformed yaml

	cyclic := filepath.Join(dir, "cyclic.yaml")
	is.NoErr(os.WriteFile(cyclic, []byte("policy:\n  profiles:\n    default:\n      flow: {0: 1, 1: 0}\n"), 0o600))
	_, _, err = Load(cyclic)
	is.True(err != nil) // cyclic flow map
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	is := is.New(t)

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, source, err := Load("")
	is.NoErr(err)
	is.Equal(source, "embedded")
	is.Equal(cfg, DefaultConfig())
}

func TestLoadPrefersUserDir(t *testing.T) {
	is := is.New(t)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg := DefaultConfig()
	cfg.Autoplay.Games = 3
	path := filepath.Join(home, ".flow2048", "configs", FileName)
	is.NoErr(Save(path, cfg))

	got, source, err := Load("")
	is.NoErr(err)
	is.Equal(source, path)
	is.Equal(got.Autoplay.Games, 3)
}

func TestValidateCollectsErrors(t *testing.T) {
	is := is.New(t)

	cfg := DefaultConfig()
	cfg.Autoplay.Games = 0
	cfg.Autoplay.Spawn4 = 2
	cfg.Policy.Chase.TraceLimit = 0

	err := cfg.Validate()
	is.True(err != nil)
	msg := err.Error()
	for _, want := range []string{"autoplay.games", "autoplay.spawn4", "chase limits"} {
		is.True(strings.Contains(msg, want)) // every problem is reported
	}
}

func TestSaveWritesYAML(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "nested", "solver.yaml")
	is.NoErr(Save(path, DefaultConfig()))

	data, err := os.ReadFile(path)
	is.NoErr(err)
	var back Config
	is.NoErr(yaml.Unmarshal(data, &back))
	is.Equal(back, DefaultConfig())
}

func TestSpawnPresets(t *testing.T) {
	is := is.New(t)

	p, err := ParseSpawnPreset(" Hard ")
	is.NoErr(err)
	is.Equal(p, SpawnHard)
	is.Equal(p.Spawn4(), 0.25)

	_, err = ParseSpawnPreset("nightmare")
	is.True(err != nil)

	cfg := DefaultConfig()
	ApplySpawnPreset(&cfg, SpawnEasy)
	is.Equal(cfg.Autoplay.Spawn4, 0.0)
	is.Equal(len(SpawnPresets()), 4)
}
