package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/eastertap/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the game configuration as YAML after applying the config file and
EASTERTAP_* environment overrides. The output can be saved to
~/.eastertap/configs/eastertap.yaml and edited.

Examples:
  eastertap config
  eastertap config --defaults > ~/.eastertap/configs/eastertap.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return nil
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
