package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/uibuilder/internal/config"
	"git.home.luguber.info/inful/uibuilder/internal/frontend"
	"git.home.luguber.info/inful/uibuilder/internal/logfields"
	"git.home.luguber.info/inful/uibuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Root string `short:"r" help:"Package root directory" default:"."`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rootDir, err := resolveRoot(w.Root)
	if err != nil {
		return fmt.Errorf("resolve package root: %w", err)
	}
	return RunWatch(cfg, rootDir)
}

func RunWatch(cfg *config.Config, rootDir string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// One orchestrator serves every rebuild; the watcher guarantees builds
	// never overlap.
	orch := frontend.New(cfg, rootDir)
	paths := orch.Paths()

	build := func(ctx context.Context) error {
		report, err := orch.Run(ctx)
		if report != nil {
			journalRun(cfg, paths.HistoryFile, report)
		}
		return err
	}

	watcher, err := watch.New(paths, build)
	if err != nil {
		return err
	}

	slog.Info("Watch mode started, press Ctrl-C to stop", logfields.Dir(paths.FrontendDir))
	return watcher.Run(ctx)
}
