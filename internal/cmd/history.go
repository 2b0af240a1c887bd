package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/harrison/treegen/internal/display"
	"github.com/harrison/treegen/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'treegen history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded treegen runs",
		Long: `List the most recent runs recorded with --history (or history.enabled in
the config file), newest first.

Pass a run id to show that run's skipped entries.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .treegen/config.yaml)")
	cmd.Flags().Int("limit", 10, "Number of runs to show (0 = all)")
	cmd.Flags().String("db", "", "History database path (overrides config)")

	return cmd
}

// runHistory executes the history command
func runHistory(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dbPath := cfg.History.DBPath
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		dbPath = v
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No runs recorded yet\n")
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		run, err := store.GetRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		displayRun(output, run)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintf(output, "No runs recorded yet\n")
		return nil
	}

	displayRuns(output, runs)
	return nil
}

// displayRuns prints one line per run
func displayRuns(w io.Writer, runs []*history.Run) {
	header := color.New(color.Bold)
	if !display.UseColor(w) {
		header.DisableColor()
	}

	fmt.Fprintln(w, header.Sprintf("%-36s  %-19s  %5s  %5s  %5s  %s", "RUN", "STARTED", "DIRS", "FILES", "SKIP", "INPUT"))
	for _, run := range runs {
		input := run.Input
		if run.DryRun {
			input += " (dry)"
		}
		fmt.Fprintf(w, "%-36s  %-19s  %5d  %5d  %5d  %s\n",
			run.RunID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.DirsCreated,
			run.FilesCreated,
			run.Skipped,
			input,
		)
	}
}

// displayRun prints the details of a single run
func displayRun(w io.Writer, run *history.Run) {
	fmt.Fprintf(w, "Run: %s\n", run.RunID)
	fmt.Fprintf(w, "Input: %s\n", run.Input)
	fmt.Fprintf(w, "Output root: %s\n", run.OutputRoot)
	fmt.Fprintf(w, "Started: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Duration: %s\n", run.Duration)
	fmt.Fprintf(w, "Dry run: %t\n", run.DryRun)
	fmt.Fprintf(w, "Directories created: %d\n", run.DirsCreated)
	fmt.Fprintf(w, "Files created: %d\n", run.FilesCreated)
	fmt.Fprintf(w, "Skipped: %d\n", run.Skipped)
	for _, skip := range run.SkipRecords {
		fmt.Fprintf(w, " - %s: %s\n", skip.Reason, display.Truncate(skip.Target, display.DefaultNameLimit))
	}
}
