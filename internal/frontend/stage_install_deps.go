package frontend

import (
	"context"
	"fmt"
)

// stageInstallDeps installs the frontend's declared dependencies. The exit
// code is transcribed but never gates the run: installers warn loudly and
// still produce a usable node_modules, so only verify_output decides whether
// the build worked.
func stageInstallDeps(ctx context.Context, bs *BuildState) error {
	o := bs.Orchestrator
	inv := o.manager.InstallInvocation(o.paths.FrontendDir)

	o.log.Msg(fmt.Sprintf("Running %s...", inv.Command()), 0)
	res, err := o.runCmd(ctx, inv)
	bs.InstallResult = &res

	if err != nil {
		if ctx.Err() != nil {
			return NewCanceledStageError(StageInstallDeps, ctx.Err())
		}
		return NewWarnStageError(StageInstallDeps,
			fmt.Errorf("%s could not run: %w", inv.Command(), err))
	}
	if res.ExitCode != 0 {
		return NewWarnStageError(StageInstallDeps,
			fmt.Errorf("%s exited %d (tolerated)", inv.Command(), res.ExitCode))
	}
	return nil
}
