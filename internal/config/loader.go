package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in each search directory.
const FileName = "solver.yaml"

// Load reads the solver configuration.
// Search order: customPath -> ~/.flow2048/configs/solver.yaml ->
// ./configs/solver.yaml -> embedded default -> DefaultConfig.
//
// Files are decoded over DefaultConfig, so a file may set only the keys it
// wants to change. A custom path that cannot be read or parsed is an error;
// broken files in the search directories are skipped.
func Load(customPath string) (Config, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, cfg.Validate()
	}

	candidates := []string{userConfigPath(FileName), filepath.Join("configs", FileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, path, nil
		}
	}

	cfg, err := decode(defaultSolverYAML)
	if err != nil {
		return DefaultConfig(), "", nil
	}
	return cfg, "embedded", nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := decode(data)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte) (Config, error) {
	cfg := DefaultConfig()
	// Maps are merged key by key, so flow maps start empty: a file that
	// sets a profile's flow replaces it entirely.
	var probe struct {
		Policy struct {
			Profiles struct {
				Default struct {
					Flow yaml.Node `yaml:"flow"`
				} `yaml:"default"`
				Alt struct {
					Flow yaml.Node `yaml:"flow"`
				} `yaml:"alt"`
			} `yaml:"profiles"`
		} `yaml:"policy"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return cfg, err
	}
	if probe.Policy.Profiles.Default.Flow.Kind != 0 {
		cfg.Policy.Profiles.Default.Flow = nil
	}
	if probe.Policy.Profiles.Alt.Flow.Kind != 0 {
		cfg.Policy.Profiles.Alt.Flow = nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes cfg in the same YAML form Load reads.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// UserConfigDir returns ~/.flow2048/configs, or empty if home is unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flow2048", "configs")
}

func userConfigPath(filename string) string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}
