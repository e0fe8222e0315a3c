package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePathsConventionalLayout(t *testing.T) {
	p := Default().ResolvePaths("/work/pkg")

	assert.Equal(t, "/work/pkg", p.Root)
	assert.Equal(t, filepath.Join("/work/pkg", "frontend"), p.FrontendDir)
	assert.Equal(t, filepath.Join("/work/pkg", "frontend", "package.json"), p.ManifestFile)
	assert.Equal(t, filepath.Join("/work/pkg", "frontend", "node_modules"), p.ModulesDir)
	assert.Equal(t, filepath.Join("/work/pkg", "frontend", "build"), p.OutputDir)
	assert.Equal(t, filepath.Join("/work/pkg", "setup.log"), p.LogFile)
	assert.Equal(t, "/work/pkg", p.ReportDir)
	assert.Equal(t, filepath.Join("/work/pkg", ".uibuilder", "history.db"), p.HistoryFile)
}

func TestResolvePathsAbsoluteOverrides(t *testing.T) {
	cfg := Default()
	cfg.LogFile = "/var/log/uibuilder/setup.log"
	cfg.OutputDir = "/srv/static"

	p := cfg.ResolvePaths("/work/pkg")
	assert.Equal(t, "/var/log/uibuilder/setup.log", p.LogFile)
	assert.Equal(t, "/srv/static", p.OutputDir)
}

// The output directory nests under the frontend directory, not the root.
// That is where npm-style build scripts emit their bundles.
func TestOutputDirAnchorsToFrontendDir(t *testing.T) {
	cfg := Default()
	cfg.FrontendDir = "ui"
	cfg.OutputDir = "dist"

	p := cfg.ResolvePaths("/repo")
	assert.Equal(t, filepath.Join("/repo", "ui", "dist"), p.OutputDir)
}
