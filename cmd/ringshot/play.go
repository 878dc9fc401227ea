package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ringshot/internal/core"
	"github.com/vovakirdan/ringshot/internal/platform/tui"
	"github.com/vovakirdan/ringshot/internal/registry"
	"github.com/vovakirdan/ringshot/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: ringshot).

Modes:
  ringshot          - Arcade rules: bullets retire off-screen, pierce is
                      consumed and the first hit ends the run
  ringshot_classic  - Classic rules: hits are counted but never end the run

A mode can be abbreviated to its unique suffix, e.g. "classic".

Controls:
  Mouse         - Aim; hold the left button to fire
  Space/F       - Toggle the trigger
  WASD/Arrows   - Step
  P/Esc         - Pause
  R             - Restart
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Slow spawns, no ramp
  normal - Default spawn rate, no ramp
  hard   - Fast spawns that keep speeding up
  fixed  - Keep the configured difficulty, no ramp

Examples:
  ringshot play
  ringshot play classic
  ringshot play --difficulty hard
  ringshot play --config ./my-ringshot.toml --log-file ringshot.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// resolveMode maps a command-line argument to a registered mode.
func resolveMode(args []string) (string, error) {
	if len(args) == 0 {
		return "ringshot", nil
	}
	id, ok := registry.Resolve(args[0])
	if !ok {
		return "", fmt.Errorf("unknown mode %q (run 'ringshot list' to see available modes)", args[0])
	}
	return id, nil
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Failure is reported and the game
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	mode, err := resolveMode(args)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs only go to a file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := configureGames(logger); err != nil {
		return err
	}

	game, err := registry.Create(mode)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting", "mode", mode, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
