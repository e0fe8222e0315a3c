package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/uibuilder/internal/config"
	"git.home.luguber.info/inful/uibuilder/internal/manifest"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Root  string `short:"r" help:"Package root directory" default:"."`
	Force bool   `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	rootDir, err := resolveRoot(i.Root)
	if err != nil {
		return err
	}
	// The config conventionally sits in the package root; an absolute
	// --config path wins.
	cfgPath := root.Config
	if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(rootDir, cfgPath)
	}
	return RunInit(rootDir, cfgPath, i.Force)
}

func RunInit(rootDir, configPath string, force bool) error {
	fmt.Println("Initializing uibuilder project")
	fmt.Printf("Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		fmt.Println("Initialization failed")
		return err
	}

	// A first build fails on a missing manifest, so point out when the
	// conventional layout is not in place yet.
	manifestPath := filepath.Join(rootDir, config.Default().FrontendDir, manifest.FileName)
	if _, err := os.Stat(manifestPath); err != nil {
		fmt.Printf("Note: no %s yet - set frontend_dir if the frontend lives elsewhere\n", manifestPath)
	}

	fmt.Println("initialized successfully")
	return nil
}
