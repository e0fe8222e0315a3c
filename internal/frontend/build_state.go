package frontend

import (
	"git.home.luguber.info/inful/uibuilder/internal/manifest"
	"git.home.luguber.info/inful/uibuilder/internal/metrics"
	"git.home.luguber.info/inful/uibuilder/internal/runner"
)

// BuildState carries mutable state across stages.
type BuildState struct {
	Orchestrator *Orchestrator
	Report       *Report
	Recorder     metrics.Recorder

	// Manifest holds the parsed package.json once check_manifest ran.
	Manifest *manifest.PackageJSON

	// InstallResult keeps the captured install invocation so audit_fix can
	// look for the remediation hint in its stdout.
	InstallResult *runner.Result
}

// newBuildState constructs a BuildState.
func newBuildState(o *Orchestrator, report *Report) *BuildState {
	return &BuildState{Orchestrator: o, Report: report, Recorder: o.recorder}
}
