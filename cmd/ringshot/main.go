// ringshot is an arcade survival shooter for the terminal: enemies spawn on a
// ring around the field and home in, you aim with the mouse and keep firing.
//
// Usage:
//
//	ringshot list                 - List available modes
//	ringshot play [mode]          - Play a mode (default: ringshot)
//	ringshot serve                - Start SSH server for remote play
//	ringshot scores [mode]        - Show the best runs for a mode
//	ringshot config dump          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.ringshot/scores.db)
//	--config <path>       - Use a specific config file (yaml or toml)
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringshot/internal/config"
	"github.com/vovakirdan/ringshot/internal/games/ringshot"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ringshot",
	Short: "Ringshot - survive the ring in your terminal",
	Long: `Ringshot is a minimal arcade survival shooter. Enemies appear on a ring
around the field and home in on you; aim with the mouse and hold the
button (or toggle the trigger with space) to keep firing.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  serve    - Start SSH server for remote play
  scores   - View the best runs
  config   - Inspect the configuration

Examples:
  ringshot play
  ringshot play classic --difficulty hard
  ringshot serve --ssh :2222
  ringshot scores ringshot --limit 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.ringshot/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to a custom config file (.yaml or .toml)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Logs go to --log-file when set,
// otherwise to fallback. The returned close func is never nil.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "ringshot",
	})
	return logger, closeFn, nil
}

// configureGames applies the config, difficulty and logger flags to every
// ringshot instance created afterwards.
func configureGames(logger *log.Logger) error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	ringshot.SetConfigPath(flagConfig)
	ringshot.SetDifficultyPreset(flagDifficulty)
	ringshot.SetLogger(logger)
	return nil
}
