package frontend

import (
	"context"
	"fmt"
)

// stageRunBuild invokes the manifest's build script. Like install, the exit
// code is transcribed but does not gate the run.
func stageRunBuild(ctx context.Context, bs *BuildState) error {
	o := bs.Orchestrator
	inv := o.manager.BuildInvocation(o.paths.FrontendDir, o.cfg.BuildScript)

	o.log.Msg(fmt.Sprintf("Running %s...", inv.Command()), 0)
	res, err := o.runCmd(ctx, inv)

	if err != nil {
		if ctx.Err() != nil {
			return NewCanceledStageError(StageRunBuild, ctx.Err())
		}
		return NewWarnStageError(StageRunBuild,
			fmt.Errorf("%s could not run: %w", inv.Command(), err))
	}
	if res.ExitCode != 0 {
		return NewWarnStageError(StageRunBuild,
			fmt.Errorf("%s exited %d (tolerated)", inv.Command(), res.ExitCode))
	}
	return nil
}
