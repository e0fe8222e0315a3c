package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/uibuilder/internal/config"
	"git.home.luguber.info/inful/uibuilder/internal/frontend"
	"git.home.luguber.info/inful/uibuilder/internal/history"
	"git.home.luguber.info/inful/uibuilder/internal/logfields"
	"git.home.luguber.info/inful/uibuilder/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Root   string `short:"r" help:"Package root directory" default:"."`
	Report bool   `help:"Write build-report.json next to the log (overrides config)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Report {
		cfg.Report.Enabled = true
	}
	rootDir, err := resolveRoot(b.Root)
	if err != nil {
		return fmt.Errorf("resolve package root: %w", err)
	}
	return RunBuild(cfg, rootDir)
}

func RunBuild(cfg *config.Config, rootDir string) error {
	// Friendly progress goes to stdout; diagnostics go through slog.
	fmt.Println("Starting frontend build")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var opts []frontend.Option
	var recorder *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, frontend.WithRecorder(recorder))
	}

	orch := frontend.New(cfg, rootDir, opts...)
	report, runErr := orch.Run(ctx)

	if report != nil {
		journalRun(cfg, orch.Paths().HistoryFile, report)
		if recorder != nil {
			if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				slog.Warn("Failed to write metrics textfile",
					logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
			}
		}
		fmt.Println(report.Summary())
	}

	if runErr != nil {
		fmt.Println("Build failed")
		return runErr
	}
	fmt.Println("Build completed successfully")
	return nil
}

// journalRun records the report in the history database. Best effort: a
// broken journal never fails a build that already happened.
func journalRun(cfg *config.Config, historyFile string, report *frontend.Report) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.NewSQLiteStore(historyFile)
	if err != nil {
		slog.Warn("Failed to open history database", logfields.Path(historyFile), logfields.Error(err))
		return
	}
	defer func() { _ = store.Close() }()

	// A fresh context: the run's own context may already be canceled.
	if err := store.Record(context.Background(), report); err != nil {
		slog.Warn("Failed to journal build run", logfields.RunID(report.RunID), logfields.Error(err))
	}
}
