package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/uibuilder/internal/config"
	"git.home.luguber.info/inful/uibuilder/internal/frontend"
)

// DoctorCmd implements the 'doctor' command.
type DoctorCmd struct {
	Root string `short:"r" help:"Package root directory" default:"."`
}

func (d *DoctorCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rootDir, err := resolveRoot(d.Root)
	if err != nil {
		return fmt.Errorf("resolve package root: %w", err)
	}
	return RunDoctor(cfg, rootDir)
}

func RunDoctor(cfg *config.Config, rootDir string) error {
	fmt.Println("Checking frontend toolchain")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := frontend.New(cfg, rootDir).Doctor(ctx)
	if report != nil {
		printFact("node", report.NodeVersion)
		printFact(report.Manager, report.ManagerVersion)
		printFact("package.json", report.ManifestVersion)
		for _, w := range report.Warnings {
			fmt.Printf("  warning: %v\n", w)
		}
	}
	if err != nil {
		fmt.Println("Doctor found problems")
		return err
	}
	fmt.Println("Doctor checks passed")
	return nil
}

func printFact(name, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Printf("  %-12s %s\n", name+":", value)
}
