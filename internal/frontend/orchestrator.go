package frontend

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/uibuilder/internal/buildlog"
	"git.home.luguber.info/inful/uibuilder/internal/config"
	"git.home.luguber.info/inful/uibuilder/internal/logfields"
	"git.home.luguber.info/inful/uibuilder/internal/metrics"
	"git.home.luguber.info/inful/uibuilder/internal/runner"
	"git.home.luguber.info/inful/uibuilder/internal/toolchain"
)

// Orchestrator drives one package's frontend build: pre-flight checks,
// dependency install, build script, output verification. Every subprocess
// invocation is transcribed into the build log.
type Orchestrator struct {
	cfg      *config.Config
	paths    config.Paths
	manager  toolchain.Manager
	runner   runner.Runner
	recorder metrics.Recorder

	// log is open for the duration of one run.
	log *buildlog.Log
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithRunner swaps the subprocess runner (tests inject fakes here).
func WithRunner(r runner.Runner) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.runner = r
		}
	}
}

// WithRecorder injects a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(o *Orchestrator) {
		if rec != nil {
			o.recorder = rec
		}
	}
}

// New creates an Orchestrator for the package rooted at root. All relative
// configuration paths are resolved against root once; subprocess working
// directories are threaded per invocation, so the caller's working directory
// is never touched.
func New(cfg *config.Config, root string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		paths:    cfg.ResolvePaths(root),
		manager:  cfg.Manager(),
		runner:   runner.New(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Paths exposes the resolved layout (read-only usage by callers).
func (o *Orchestrator) Paths() config.Paths { return o.paths }

// Run executes the full build pipeline and returns the run report. The
// report is returned for failed runs too, so callers can journal them.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	pipeline := NewPipeline().
		Add(StageCheckManifest, stageCheckManifest).
		Add(StagePreflight, stagePreflight).
		Add(StageCheckToolchain, stageCheckToolchain).
		Add(StageInstallDeps, stageInstallDeps).
		Add(StageAuditFix, stageAuditFix).
		Add(StageRunBuild, stageRunBuild).
		Add(StageVerifyOutput, stageVerifyOutput).
		Build()
	return o.run(ctx, pipeline, true)
}

// Doctor executes the diagnostic stages only: manifest and toolchain checks.
// Nothing is installed or built.
func (o *Orchestrator) Doctor(ctx context.Context) (*Report, error) {
	pipeline := NewPipeline().
		Add(StageCheckManifest, stageCheckManifest).
		Add(StagePreflight, stagePreflight).
		Add(StageCheckToolchain, stageCheckToolchain).
		Build()
	return o.run(ctx, pipeline, false)
}

func (o *Orchestrator) run(ctx context.Context, stages []StageDef, full bool) (*Report, error) {
	log, err := buildlog.Create(o.paths.LogFile)
	if err != nil {
		return nil, err
	}
	o.log = log
	defer func() {
		if closeErr := log.Close(); closeErr != nil {
			slog.Warn("Failed to close build log", logfields.Path(o.paths.LogFile), logfields.Error(closeErr))
		}
		o.log = nil
	}()

	report := NewReport(o.cfg.PackageName, o.manager.String())
	bs := newBuildState(o, report)

	slog.Info("Starting frontend build",
		logfields.RunID(report.RunID),
		logfields.Manager(o.manager.String()),
		logfields.Dir(o.paths.FrontendDir))

	runErr := runStages(ctx, bs, stages)

	report.DeriveOutcome()
	report.Finish()

	if full {
		if o.cfg.Report.Enabled {
			if err := report.Persist(o.paths.ReportDir); err != nil {
				slog.Warn("Failed to persist build report", logfields.Error(err))
			}
		}
		o.recorder.ObserveBuildDuration(report.Duration())
		o.recorder.IncBuildOutcome(string(report.Outcome))
	}

	slog.Info("Frontend build finished",
		logfields.RunID(report.RunID),
		logfields.Outcome(string(report.Outcome)),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))

	return report, runErr
}

// runCmd executes inv, transcribes the result into the build log and counts
// the invocation in metrics. The returned error reports spawn failures and
// cancellation only; exit codes are the caller's to interpret.
func (o *Orchestrator) runCmd(ctx context.Context, inv runner.Invocation) (runner.Result, error) {
	res, err := o.runner.Run(ctx, inv)
	o.recorder.IncCommandResult(inv.Command(), res.ExitCode)
	o.log.Result(res, 2)
	if err != nil {
		o.log.Msg(fmt.Sprintf("invocation error: %v", err), 4)
	}
	return res, err
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
