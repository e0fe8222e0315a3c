package config

import "path/filepath"

// Paths is the resolved on-disk layout for one package root. All relative
// configuration values are anchored here once, so the rest of the pipeline
// never consults the process working directory.
type Paths struct {
	Root         string // package root
	FrontendDir  string // root of the JavaScript project
	ManifestFile string // package.json inside FrontendDir
	ModulesDir   string // node_modules inside FrontendDir
	OutputDir    string // build output inside FrontendDir
	LogFile      string // per-run transcript
	ReportDir    string // where build reports are persisted
	HistoryFile  string // SQLite run journal
}

// ResolvePaths anchors the configured layout at root. Absolute configuration
// values are honored as-is.
func (c *Config) ResolvePaths(root string) Paths {
	frontend := resolve(root, c.FrontendDir)
	return Paths{
		Root:         root,
		FrontendDir:  frontend,
		ManifestFile: filepath.Join(frontend, "package.json"),
		ModulesDir:   filepath.Join(frontend, "node_modules"),
		OutputDir:    resolve(frontend, c.OutputDir),
		LogFile:      resolve(root, c.LogFile),
		ReportDir:    resolve(root, c.Report.Dir),
		HistoryFile:  resolve(root, c.History.Path),
	}
}

func resolve(base, p string) string {
	if p == "" {
		return base
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
