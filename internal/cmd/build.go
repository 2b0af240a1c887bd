package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrison/treegen/internal/config"
	"github.com/harrison/treegen/internal/display"
	"github.com/harrison/treegen/internal/executor"
	"github.com/harrison/treegen/internal/filelock"
	"github.com/harrison/treegen/internal/history"
	"github.com/harrison/treegen/internal/logger"
	"github.com/harrison/treegen/internal/models"
	"github.com/harrison/treegen/internal/parser"
	"github.com/harrison/treegen/internal/watch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewBuildCommand creates the build command
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <tree-file>",
		Short: "Create the directories and files described by a tree diagram",
		Long: `Build reads a tree diagram and creates every directory and empty file it
describes under the output directory.

Entries ending in "/" become directories, everything else becomes an empty
file. Names that are too long or read like prose are skipped. Markdown
inputs (.md, .markdown) are reduced to their tree code blocks first, and
"-" reads the diagram from stdin.

Configuration is loaded from .treegen/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  treegen build tree.txt
  treegen build --dry tree.txt           # Print what would be created
  treegen build --out ./scaffold README.md
  tree -F src | treegen build -          # Read from stdin
  treegen build --manifest tree.yaml tree.txt
  treegen build --watch tree.txt         # Rebuild on every save`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .treegen/config.yaml)")
	cmd.Flags().Bool("dry", false, "Print the actions without touching the filesystem")
	cmd.Flags().Int("maxlen", executor.DefaultMaxNameLen, "Maximum accepted entry name length")
	cmd.Flags().String("out", ".", "Directory the tree is created under")
	cmd.Flags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().Bool("verbose", false, "Log every entry (same as --log-level debug)")
	cmd.Flags().String("log-dir", "", "Directory for run log files")
	cmd.Flags().Bool("no-lock", false, "Do not lock the output directory")
	cmd.Flags().String("manifest", "", "Write the run result as YAML to this file")
	cmd.Flags().Bool("history", false, "Record the run in the history database")
	cmd.Flags().Bool("watch", false, "Rebuild whenever the input file changes")

	return cmd
}

// runBuild implements the build command logic
func runBuild(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(buildFlags(cmd))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchInput, _ := cmd.Flags().GetBool("watch")
	if !watchInput {
		return buildOnce(ctx, cmd, cfg, input)
	}

	if input == parser.StdinPath {
		return fmt.Errorf("--watch needs an input file, not stdin")
	}

	// start watching before the first build so no edit is missed
	w, err := watch.New(input)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", input, err)
	}
	defer w.Close()

	if err := buildOnce(ctx, cmd, cfg, input); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", input)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: watcher: %v\n", err)
		case <-w.Changes():
			// a broken edit should not end the watch
			if err := buildOnce(ctx, cmd, cfg, input); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		}
	}
}

// buildOnce runs the pipeline over input a single time and handles the
// summary, manifest and history for that run.
func buildOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Config, input string) error {
	src, err := parser.OpenInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer src.Close()

	if !cfg.DryRun && cfg.Lock {
		lock, err := filelock.AcquireRoot(cfg.OutputDir)
		if err != nil {
			return err
		}
		defer lock.Unlock()
	}

	log, closeLog, err := buildLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	var m executor.Materializer
	if cfg.DryRun {
		m = executor.NewDryRunMaterializer(cmd.OutOrStdout(), cfg.OutputDir)
	} else {
		m = executor.NewFSMaterializer(cfg.OutputDir)
	}

	runner := executor.NewRunner(m, log, executor.RunnerConfig{
		MaxNameLen: cfg.MaxNameLen,
		DryRun:     cfg.DryRun,
		OutputRoot: cfg.OutputDir,
	})

	result, runErr := runner.Run(ctx, input, src)
	if result != nil {
		summary := display.NewSummary(cmd.OutOrStdout())
		summary.SkipPreview = cfg.SkipPreview
		summary.Render(result)
	}
	if runErr != nil {
		return runErr
	}

	if len(result.CreatedDirs) == 0 && len(result.CreatedFiles) == 0 {
		display.WarnNothingCreated(input, len(result.Skipped)).Display(cmd.ErrOrStderr())
	}

	if cfg.Manifest != "" {
		if err := writeManifest(cfg.Manifest, result); err != nil {
			return err
		}
		log.LogInfo(fmt.Sprintf("Manifest written to %s", cfg.Manifest))
	}

	if cfg.History.Enabled {
		if err := recordHistory(ctx, cfg.History.DBPath, result); err != nil {
			return err
		}
		log.LogDebug(fmt.Sprintf("Run %s recorded in %s", result.RunID, cfg.History.DBPath))
	}

	return nil
}

// loadConfig reads --config if given, otherwise .treegen/config.yaml.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// buildFlags collects the flags that were explicitly set on the command line.
func buildFlags(cmd *cobra.Command) config.Flags {
	var f config.Flags
	flags := cmd.Flags()

	if flags.Changed("maxlen") {
		v, _ := flags.GetInt("maxlen")
		f.MaxNameLen = &v
	}
	if flags.Changed("dry") {
		v, _ := flags.GetBool("dry")
		f.DryRun = &v
	}
	if flags.Changed("out") {
		v, _ := flags.GetString("out")
		f.OutputDir = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		f.LogLevel = &v
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		v := "debug"
		f.LogLevel = &v
	}
	if flags.Changed("log-dir") {
		v, _ := flags.GetString("log-dir")
		f.LogDir = &v
	}
	if flags.Changed("no-lock") {
		v, _ := flags.GetBool("no-lock")
		lock := !v
		f.Lock = &lock
	}
	if flags.Changed("manifest") {
		v, _ := flags.GetString("manifest")
		f.Manifest = &v
	}
	if flags.Changed("history") {
		v, _ := flags.GetBool("history")
		f.History = &v
	}

	return f
}

// buildLogger fans out to the console logger on stderr and, when a log
// directory is configured, a file logger. The returned func closes the file log.
func buildLogger(cmd *cobra.Command, cfg *config.Config) (executor.Logger, func(), error) {
	consoleLog := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.LogDir == "" {
		return consoleLog, func() {}, nil
	}

	fileLog, err := logger.NewFileLoggerWithLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}

	multiLog := &multiLogger{
		loggers: []executor.Logger{consoleLog, fileLog},
	}
	return multiLog, func() { fileLog.Close() }, nil
}

// writeManifest writes result as YAML to path.
func writeManifest(path string, result *models.Result) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

// recordHistory stores result in the history database at dbPath.
func recordHistory(ctx context.Context, dbPath string, result *models.Result) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	if err := store.RecordRun(ctx, result); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
