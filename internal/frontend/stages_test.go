package frontend

import (
	"context"
	"errors"
	"testing"
	"time"

	"git.home.luguber.info/inful/uibuilder/internal/config"
)

// fake stage functions for testing classification.
func failingFatalStage(_ context.Context, _ *BuildState) error {
	return NewFatalStageError(StageName("fatal_stage"), errors.New("boom"))
}

func failingWarnStage(_ context.Context, _ *BuildState) error {
	return NewWarnStageError(StageName("warn_stage"), errors.New("soft"))
}

func passingStage(_ context.Context, _ *BuildState) error { return nil }

func newTestBuildState(t *testing.T) *BuildState {
	t.Helper()
	o := New(config.Default(), t.TempDir())
	return newBuildState(o, NewReport("pkg", "npm"))
}

func TestRunStages_ErrorClassification(t *testing.T) {
	bs := newTestBuildState(t)

	stages := []StageDef{
		{StageName("warn_stage"), failingWarnStage},
		{StageName("fatal_stage"), failingFatalStage},
		{StageName("never_runs"), passingStage},
	}

	err := runStages(context.Background(), bs, stages)
	if err == nil {
		t.Fatalf("expected fatal error")
	}
	if len(bs.Report.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(bs.Report.Warnings))
	}
	if len(bs.Report.Errors) != 1 {
		t.Fatalf("expected 1 fatal error, got %d", len(bs.Report.Errors))
	}
	if bs.Report.StageErrorKinds[StageName("warn_stage")] != StageErrorWarning {
		t.Fatalf("expected warning kind recorded")
	}
	if bs.Report.StageErrorKinds[StageName("fatal_stage")] != StageErrorFatal {
		t.Fatalf("fatal_stage kind mismatch")
	}
	if _, ran := bs.Report.StageDurations["never_runs"]; ran {
		t.Fatalf("stage after a fatal error must not run")
	}
}

func TestRunStages_UnknownErrorTreatedAsFatal(t *testing.T) {
	bs := newTestBuildState(t)

	bare := func(_ context.Context, _ *BuildState) error { return errors.New("unclassified") }
	err := runStages(context.Background(), bs, []StageDef{{StageName("odd"), bare}})
	if err == nil {
		t.Fatalf("expected error")
	}
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StageError, got %T", err)
	}
	if se.Kind != StageErrorFatal {
		t.Fatalf("expected fatal classification, got %s", se.Kind)
	}
	if bs.Report.StageErrorKinds[StageName("odd")] != StageErrorFatal {
		t.Fatalf("expected fatal kind recorded")
	}
}

func TestRunStages_Canceled(t *testing.T) {
	bs := newTestBuildState(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runStages(ctx, bs, []StageDef{{StageName("stalled"), passingStage}})
	if err == nil {
		t.Fatalf("expected canceled error")
	}
	if len(bs.Report.Errors) != 1 {
		t.Fatalf("expected 1 canceled error recorded, got %d", len(bs.Report.Errors))
	}
	if bs.Report.StageErrorKinds[StageName("stalled")] != StageErrorCanceled {
		t.Fatalf("expected canceled kind for stalled")
	}
	if _, ran := bs.Report.StageDurations["stalled"]; ran {
		t.Fatalf("canceled stage must not have executed")
	}
}

func TestRunStages_TimingRecordedOnWarning(t *testing.T) {
	bs := newTestBuildState(t)

	stages := []StageDef{{StageName("warn_stage"), failingWarnStage}}
	if err := runStages(context.Background(), bs, stages); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := bs.Report.StageDurations["warn_stage"]; !ok {
		t.Fatalf("expected timing recorded for warn_stage")
	}
	if bs.Report.StageErrorKinds[StageName("warn_stage")] != StageErrorWarning {
		t.Fatalf("expected warning kind recorded")
	}
	// Sanity check timing value
	if bs.Report.StageDurations["warn_stage"] < 0 || bs.Report.StageDurations["warn_stage"] > 1*time.Second {
		t.Fatalf("unexpected duration range: %v", bs.Report.StageDurations["warn_stage"])
	}
}

func TestRunStages_StageCountsAggregated(t *testing.T) {
	bs := newTestBuildState(t)

	stages := []StageDef{
		{StageName("ok"), passingStage},
		{StageName("warn_stage"), failingWarnStage},
	}
	if err := runStages(context.Background(), bs, stages); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bs.Report.StageCounts[StageName("ok")].Success != 1 {
		t.Fatalf("expected success count for ok stage: %+v", bs.Report.StageCounts)
	}
	if bs.Report.StageCounts[StageName("warn_stage")].Warning != 1 {
		t.Fatalf("expected warning count for warn_stage: %+v", bs.Report.StageCounts)
	}
}

func TestPipeline_AddIf(t *testing.T) {
	p := NewPipeline().
		Add(StageName("always"), passingStage).
		AddIf(false, StageName("skipped"), passingStage).
		AddIf(true, StageName("kept"), passingStage)

	defs := p.Build()
	if len(defs) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(defs))
	}
	if defs[0].Name != StageName("always") || defs[1].Name != StageName("kept") {
		t.Fatalf("unexpected stage order: %v, %v", defs[0].Name, defs[1].Name)
	}

	// Build returns a copy: mutating it must not affect the pipeline.
	defs[0].Name = StageName("mutated")
	if p.Defs[0].Name != StageName("always") {
		t.Fatalf("pipeline definitions must not alias the built slice")
	}
}

func TestStageError_Message(t *testing.T) {
	se := NewFatalStageError(StageRunBuild, errors.New("exit status 2"))
	want := "fatal stage run_build: exit status 2"
	if se.Error() != want {
		t.Fatalf("unexpected message: %s", se.Error())
	}
	if !errors.Is(se, se.Err) {
		t.Fatalf("expected unwrap to reach the cause")
	}
}
