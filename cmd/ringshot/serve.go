package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringshot/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagDefaultMode string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ringshot SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own round. The command sent over SSH picks
the mode, so "ssh -t host -p 23234 classic" plays the classic rules.
Runs are stored per-server (all users share the same history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ringshot/host_key

Examples:
  ringshot serve                           # Listen on :23234 with auto-generated key
  ringshot serve --ssh :2222               # Listen on port 2222
  ringshot serve --host-key ./my_host_key  # Use specific host key
  ringshot serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh -t localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagDefaultMode, "mode", "ringshot", "Mode played when the session names none")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := configureGames(logger); err != nil {
		return err
	}

	defaultMode, err := resolveMode([]string{flagDefaultMode})
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		DefaultMode: defaultMode,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting ringshot SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
