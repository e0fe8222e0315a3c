package frontend

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/uibuilder/internal/logfields"
	"git.home.luguber.info/inful/uibuilder/internal/manifest"
)

// stageCheckManifest parses package.json and compares its declared version
// against the configured expectation. Syntax errors abort the run; a missing
// or mismatching version only warns.
func stageCheckManifest(_ context.Context, bs *BuildState) error {
	o := bs.Orchestrator
	o.log.Msg("Checking package.json version...", 0)

	pkg, err := manifest.Load(o.paths.ManifestFile)
	if err != nil {
		if manifest.IsSyntaxError(err) {
			o.log.Msg("Unable to read package.json file - syntax error", 0)
		}
		return newBuildError(ErrKindManifestParse, StageCheckManifest,
			"unable to read "+o.paths.ManifestFile, err)
	}

	bs.Manifest = pkg
	bs.Report.ManifestVersion = pkg.Version
	if bs.Report.Package == "" {
		bs.Report.Package = pkg.Name
	}
	slog.Debug("Manifest loaded",
		logfields.Path(o.paths.ManifestFile),
		logfields.Version(pkg.Version))

	expected := o.cfg.ExpectedVersion
	switch {
	case !pkg.VersionPresent:
		o.log.Msg(fmt.Sprintf("WARNING: package.json:version is missing, should be %s", expected), 0)
		return NewWarnStageError(StageCheckManifest,
			fmt.Errorf("package.json version missing, expected %s", expected))
	case pkg.Version != expected:
		o.log.Msg(fmt.Sprintf("WARNING: package.json:version should be %s not %s", expected, pkg.Version), 0)
		return NewWarnStageError(StageCheckManifest,
			fmt.Errorf("package.json version is %s, expected %s", pkg.Version, expected))
	}
	return nil
}
