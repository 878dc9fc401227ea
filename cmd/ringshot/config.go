package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringshot/internal/config"
)

var (
	flagDumpFormat  string
	flagDumpDefault bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration",
	Long: `Print the configuration a new round would use, after the search path
and the --difficulty preset are applied. The output is a complete config
file and can be saved to ~/.ringshot/configs/ as a starting point.
--default ignores config files and prints the built-in defaults; as YAML
without a preset that is the commented default file itself.

Examples:
  ringshot config dump
  ringshot config dump --format toml > ~/.ringshot/configs/ringshot.toml
  ringshot config dump --difficulty hard
  ringshot config dump --default > ringshot.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigDump,
}

func init() {
	configDumpCmd.Flags().StringVar(&flagDumpFormat, "format", "yaml", "Output format: yaml or toml")
	configDumpCmd.Flags().BoolVar(&flagDumpDefault, "default", false, "Ignore config files and print the built-in defaults")
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(cmd *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	var (
		cfg    config.RingshotConfig
		source string
	)
	if flagDumpDefault {
		if preset == "" && isYAMLFormat(flagDumpFormat) {
			fmt.Fprintf(cmd.ErrOrStderr(), "# source: %s\n", config.EmbeddedSource)
			_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
			return err
		}
		cfg, source = config.EmbeddedDefault(), config.EmbeddedSource
	} else {
		cfg, source, err = config.LoadSource(flagConfig)
		if err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	config.ApplyPreset(&cfg, preset)

	data, err := config.Encode(cfg, flagDumpFormat)
	if err != nil {
		return err
	}

	// The source goes to stderr so the output stays a valid file.
	fmt.Fprintf(cmd.ErrOrStderr(), "# source: %s\n", source)
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func isYAMLFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		return true
	}
	return false
}
