package frontend

import (
	"context"

	feerrors "git.home.luguber.info/inful/uibuilder/internal/frontend/errors"
)

// stageVerifyOutput is the single success gate of the pipeline: the build
// must have left the output directory behind, whatever the earlier exit
// codes claimed.
func stageVerifyOutput(_ context.Context, bs *BuildState) error {
	o := bs.Orchestrator

	o.log.Msg("Checking if frontend was built...", 0)
	if dirExists(o.paths.OutputDir) {
		o.log.Msg("Found build directory", 2)
		bs.Report.OutputVerified = true
		return nil
	}
	return newBuildError(ErrKindOutputMissing, StageVerifyOutput,
		"failed to create output directory", feerrors.ErrOutputMissing)
}
