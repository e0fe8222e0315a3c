package frontend

import (
	"context"
	"fmt"
	"log/slog"

	feerrors "git.home.luguber.info/inful/uibuilder/internal/frontend/errors"
	"git.home.luguber.info/inful/uibuilder/internal/logfields"
	"git.home.luguber.info/inful/uibuilder/internal/toolchain"
)

// stageCheckToolchain verifies the node runtime and the configured package
// manager respond to --version, and for corepack-provisioned managers that
// corepack can enable its shims. Any failure here is fatal: nothing later in
// the pipeline can succeed without the toolchain.
func stageCheckToolchain(ctx context.Context, bs *BuildState) error {
	o := bs.Orchestrator

	o.log.Msg("Checking node is installed...", 0)
	res, err := o.runCmd(ctx, toolchain.NodeVersionInvocation(o.paths.Root))
	if ctx.Err() != nil {
		return NewCanceledStageError(StageCheckToolchain, ctx.Err())
	}
	if err != nil || res.ExitCode != 0 {
		return toolchainMissing("could not find node - it is required for React components", err)
	}
	bs.Report.NodeVersion = toolchain.ParseVersion(res.Stdout)
	slog.Debug("Node runtime detected", logfields.Version(bs.Report.NodeVersion))

	o.log.Msg(fmt.Sprintf("Checking %s is installed...", o.manager), 0)
	res, err = o.runCmd(ctx, o.manager.VersionInvocation(o.paths.Root))
	if ctx.Err() != nil {
		return NewCanceledStageError(StageCheckToolchain, ctx.Err())
	}
	if err != nil || res.ExitCode != 0 {
		return toolchainMissing(
			fmt.Sprintf("could not find %s - it is required to install node packages", o.manager), err)
	}
	bs.Report.ManagerVersion = toolchain.ParseVersion(res.Stdout)
	slog.Debug("Package manager detected",
		logfields.Manager(o.manager.String()),
		logfields.Version(bs.Report.ManagerVersion))

	if o.manager.CorepackManaged() {
		o.log.Msg(fmt.Sprintf("Checking %s corepack is installed", o.manager), 0)
		res, err = o.runCmd(ctx, toolchain.CorepackEnableInvocation(o.paths.Root))
		if ctx.Err() != nil {
			return NewCanceledStageError(StageCheckToolchain, ctx.Err())
		}
		if err != nil || res.ExitCode != 0 {
			return toolchainMissing(
				fmt.Sprintf("could not find corepack/%s - it is required to install node packages", o.manager), err)
		}
	}
	return nil
}

func toolchainMissing(msg string, err error) *BuildError {
	cause := error(feerrors.ErrToolchainMissing)
	if err != nil {
		cause = fmt.Errorf("%w: %w", feerrors.ErrToolchainMissing, err)
	}
	return newBuildError(ErrKindToolchainMissing, StageCheckToolchain, msg, cause)
}
