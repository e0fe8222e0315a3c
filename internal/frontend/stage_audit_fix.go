package frontend

import (
	"context"
	"fmt"
	"strings"
)

// auditFixHint is the literal remediation phrase npm prints when installed
// packages have known vulnerabilities. Its presence in the install stdout is
// the only trigger for the audit stage.
const auditFixHint = "npm audit fix"

// stageAuditFix runs the package manager's audit when the install output
// suggested it. Best effort: the result is transcribed, never inspected.
func stageAuditFix(ctx context.Context, bs *BuildState) error {
	if bs.InstallResult == nil || !strings.Contains(bs.InstallResult.Stdout, auditFixHint) {
		return nil
	}

	o := bs.Orchestrator
	inv := o.manager.AuditInvocation(o.paths.FrontendDir)

	o.log.Msg(fmt.Sprintf("Running %s...", inv.Command()), 0)
	if _, err := o.runCmd(ctx, inv); err != nil && ctx.Err() != nil {
		return NewCanceledStageError(StageAuditFix, ctx.Err())
	}
	return nil
}
