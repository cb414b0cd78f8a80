package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/counterflow/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, as YAML, together with
where it was loaded from. The output is a valid config file.

Search order:
  1. --config <path>
  2. $XDG_CONFIG_HOME/counterflow/config.yaml
  3. ./configs/counterflow.yaml
  4. built-in defaults

Examples:
  counterflow config
  counterflow config > ~/.config/counterflow/config.yaml
  counterflow config --config ./fast.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	data, err := cfg.YAML()
	if err != nil {
		fail("encoding config: %v", err)
	}

	fmt.Printf("# source: %s\n", source)
	fmt.Printf("# presets: %s\n", strings.Join(cfg.PresetNames(), ", "))
	os.Stdout.Write(data)
}
