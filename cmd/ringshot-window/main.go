// ringshot-window plays ringshot in a desktop window with sound.
//
// Usage:
//
//	ringshot-window [mode] [--difficulty hard] [--mute]
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringshot/internal/config"
	"github.com/vovakirdan/ringshot/internal/core"
	"github.com/vovakirdan/ringshot/internal/games/ringshot"
	"github.com/vovakirdan/ringshot/internal/platform/audio"
	"github.com/vovakirdan/ringshot/internal/platform/session"
	"github.com/vovakirdan/ringshot/internal/platform/window"
	"github.com/vovakirdan/ringshot/internal/registry"
	"github.com/vovakirdan/ringshot/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "ringshot-window [mode]",
	Short: "Play ringshot in a window",
	Long: `Open a window and play ringshot with the mouse.

Controls:
  Mouse         - Aim; hold the left button to fire
  Space/F       - Toggle the trigger
  WASD/Arrows   - Step
  P/Esc         - Pause
  R             - Restart
  M             - Mute
  Q             - Quit`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.IntVar(&flagFPS, "fps", 60, "Updates per second")
	f.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	f.StringVar(&flagDBPath, "db", "~/.ringshot/scores.db", "Path to scores database")
	f.StringVar(&flagConfig, "config", "", "Path to a custom config file (.yaml or .toml)")
	f.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	f.BoolVar(&flagMute, "mute", false, "Start with sound off")
	f.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, args []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "ringshot-window",
	})

	mode := string(ringshot.ModeArcade)
	if len(args) == 1 {
		id, ok := registry.Resolve(args[0])
		if !ok {
			return fmt.Errorf("unknown mode %q", args[0])
		}
		mode = id
	}

	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	ringshot.SetConfigPath(flagConfig)
	ringshot.SetDifficultyPreset(flagDifficulty)
	ringshot.SetLogger(logger)

	game, err := registry.Create(mode)
	if err != nil {
		return err
	}
	round, ok := game.(session.Round)
	if !ok {
		return fmt.Errorf("mode %q cannot be played in a window", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	sounds := audio.NewPlayer(logger)
	if err := sounds.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
	} else {
		defer sounds.Close()
	}
	sounds.SetMuted(flagMute)

	s := session.New(round, core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed},
		session.WithStore(store),
		session.WithLogger(logger),
		session.WithSounds(sounds),
	)

	app, err := window.New(s, sounds)
	if err != nil {
		return err
	}

	logger.Info("starting", "mode", mode, "fps", flagFPS)
	return window.Run(app, game.Title(), flagFPS)
}
