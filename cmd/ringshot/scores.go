package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ringshot/internal/platform/tui"
	"github.com/vovakirdan/ringshot/internal/registry"
	"github.com/vovakirdan/ringshot/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs for a mode",
	Long: `Display the best recorded runs, ranked by kills and then survival time.

On a terminal this opens an interactive browser (Tab switches modes).
When output is redirected a plain table is printed instead.
With --all a one-line summary per played mode is printed.

Examples:
  ringshot scores
  ringshot scores classic --limit 25
  ringshot scores ringshot > runs.txt
  ringshot scores classic --clear
  ringshot scores --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs for the mode")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Summarize every played mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	mode, err := resolveMode(args)
	if err != nil {
		return err
	}
	if flagScoresLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", flagScoresLimit)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresAll {
		stats, err := store.GetAllModeStats()
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}
		fmt.Fprint(out, tui.RenderModeStatsTable(stats))
		return nil
	}

	if flagScoresClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared runs for %s.\n", mode)
		return nil
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := terminalConfig()
		return tui.RunScoreboard(store, mode, flagScoresLimit, cfg.ScreenW, cfg.ScreenH)
	}

	runs, err := store.TopRuns(mode, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	title := mode
	if game, err := registry.Create(mode); err == nil {
		title = game.Title()
	}
	fmt.Fprint(out, tui.RenderRunsTable("Best Runs - "+title, runs))

	if stats, err := store.GetModeStats(mode); err == nil && stats.Runs > 0 {
		fmt.Fprintf(out, "\nRuns: %d  Best: %d  Avg: %.1f  Longest: %.1fs\n",
			stats.Runs, stats.BestKills, stats.AvgKills, stats.LongestSurvival)
	}
	return nil
}
