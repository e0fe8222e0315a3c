package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/uibuilder/internal/config"
	"git.home.luguber.info/inful/uibuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Root string `short:"r" help:"Package root directory" default:"."`
	N    int    `short:"n" help:"Number of runs to show" default:"10"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rootDir, err := resolveRoot(h.Root)
	if err != nil {
		return fmt.Errorf("resolve package root: %w", err)
	}
	return RunHistory(cfg, rootDir, h.N)
}

func RunHistory(cfg *config.Config, rootDir string, n int) error {
	paths := cfg.ResolvePaths(rootDir)

	store, err := history.NewSQLiteStore(paths.HistoryFile)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(context.Background(), n)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No build runs recorded")
		return nil
	}

	fmt.Printf("%-19s  %-8s  %9s  %-5s  %-7s  %s\n",
		"STARTED", "OUTCOME", "DURATION", "MGR", "OUTPUT", "PACKAGE")
	for _, r := range records {
		output := "missing"
		if r.OutputVerified {
			output = "ok"
		}
		fmt.Printf("%-19s  %-8s  %9s  %-5s  %-7s  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Outcome,
			r.Duration().Truncate(time.Millisecond),
			r.Manager,
			output,
			r.Package)
	}
	return nil
}
