package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flow2048/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the solver config",
	Long: `Print the solver config in effect, or write it to a file to start tuning.

The config is looked up in this order:
  --config <path>
  ~/.flow2048/configs/solver.yaml
  ./configs/solver.yaml
  built-in defaults

Examples:
  flow2048 config show
  flow2048 config init
  flow2048 config init ./tuned.yaml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config as YAML",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective config to a file",
	Args:  cobra.MaximumNArgs(1),
	Run:   runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", "source", source)

	fmt.Printf("# source: %s\n", source)
	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()
	cfg := loadConfig(logger)

	var path string
	switch {
	case len(args) > 0:
		path = args[0]
	case config.UserConfigDir() != "":
		path = filepath.Join(config.UserConfigDir(), config.FileName)
	default:
		fmt.Fprintln(os.Stderr, "Error: no home directory, pass a path")
		os.Exit(1)
	}
	if _, err := os.Stat(path); err == nil && !flagForce {
		fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", path)
		os.Exit(1)
	}

	if err := config.Save(path, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
