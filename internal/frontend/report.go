package frontend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/uibuilder/internal/metrics"
	"git.home.luguber.info/inful/uibuilder/internal/version"
)

// Outcome is the typed enumeration of final build result states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StageCount aggregates outcome counts for a stage.
type StageCount struct {
	Success  int
	Warning  int
	Fatal    int
	Canceled int
}

// Report captures what one orchestration run did: which stages ran, how long
// they took, what the toolchain looked like and how the run ended. It is the
// machine-readable companion to the plain-text build log.
type Report struct {
	SchemaVersion int
	RunID         string
	Package       string
	Manager       string
	Start         time.Time
	End           time.Time
	Errors        []error // fatal errors causing build abortion (at most one today)
	Warnings      []error // non-fatal issues (version mismatch, tolerated exits)

	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount

	// Toolchain and manifest facts gathered during the run.
	ManifestVersion string // version declared in package.json (may be empty)
	NodeVersion     string // parsed from `node --version`
	ManagerVersion  string // parsed from `<manager> --version`

	OutputVerified bool // true once verify_output saw the build directory

	Outcome Outcome

	// UIBuilderVersion stamps which binary produced this report.
	UIBuilderVersion string
}

// NewReport constructs a Report for one run of pkg's frontend build.
func NewReport(pkg, manager string) *Report {
	return &Report{
		SchemaVersion:    1,
		RunID:            uuid.NewString(),
		Package:          pkg,
		Manager:          manager,
		Start:            time.Now(),
		StageDurations:   make(map[string]time.Duration),
		StageErrorKinds:  make(map[StageName]StageErrorKind),
		StageCounts:      make(map[StageName]StageCount),
		UIBuilderVersion: version.Version,
	}
}

// Finish sets the end time of the report.
func (r *Report) Finish() { r.End = time.Now() }

// Duration is the wall-clock time of the run so far.
func (r *Report) Duration() time.Duration {
	end := r.End
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(r.Start)
}

// RecordStageResult updates stage counters and emits metrics (if recorder non-nil).
func (r *Report) RecordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	if r.StageCounts == nil {
		r.StageCounts = make(map[StageName]StageCount)
	}
	sc := r.StageCounts[stage]
	switch res {
	case StageResultSuccess:
		sc.Success++
		if recorder != nil {
			recorder.IncStageResult(string(stage), metrics.ResultSuccess)
		}
	case StageResultWarning:
		sc.Warning++
		if recorder != nil {
			recorder.IncStageResult(string(stage), metrics.ResultWarning)
		}
	case StageResultFatal:
		sc.Fatal++
		if recorder != nil {
			recorder.IncStageResult(string(stage), metrics.ResultFatal)
		}
	case StageResultCanceled:
		sc.Canceled++
		if recorder != nil {
			recorder.IncStageResult(string(stage), metrics.ResultCanceled)
		}
	}
	r.StageCounts[stage] = sc
}

// DeriveOutcome sets the Outcome field based on recorded errors and warnings.
func (r *Report) DeriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("package=%s manager=%s duration=%s errors=%d warnings=%d stages=%d output=%t outcome=%s",
		r.Package, r.Manager, r.Duration().Truncate(time.Millisecond),
		len(r.Errors), len(r.Warnings), len(r.StageDurations), r.OutputVerified, string(r.Outcome))
}

// Persist writes build-report.json and build-report.txt atomically into dir.
func (r *Report) Persist(dir string) error {
	if r.End.IsZero() {
		r.Finish()
		r.DeriveOutcome()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}
	jb, err := json.MarshalIndent(r.SanitizedCopy(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	jsonPath := filepath.Join(dir, "build-report.json")
	tmpJSON := jsonPath + ".tmp"
	if err := os.WriteFile(tmpJSON, jb, 0o600); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmpJSON, jsonPath); err != nil {
		return fmt.Errorf("atomic rename json: %w", err)
	}
	summaryPath := filepath.Join(dir, "build-report.txt")
	tmpTxt := summaryPath + ".tmp"
	if err := os.WriteFile(tmpTxt, []byte(r.Summary()+"\n"), 0o600); err != nil {
		return fmt.Errorf("write temp report summary: %w", err)
	}
	if err := os.Rename(tmpTxt, summaryPath); err != nil {
		return fmt.Errorf("atomic rename summary: %w", err)
	}
	return nil
}

// SanitizedCopy returns a copy with error fields converted to strings for
// JSON friendliness.
func (r *Report) SanitizedCopy() *ReportSerializable {
	sek := make(map[string]string, len(r.StageErrorKinds))
	for k, v := range r.StageErrorKinds {
		sek[string(k)] = string(v)
	}
	stageCounts := make(map[string]StageCount, len(r.StageCounts))
	for k, v := range r.StageCounts {
		stageCounts[string(k)] = v
	}
	if r.StageDurations == nil {
		r.StageDurations = map[string]time.Duration{}
	}

	s := &ReportSerializable{
		SchemaVersion:    r.SchemaVersion,
		RunID:            r.RunID,
		Package:          r.Package,
		Manager:          r.Manager,
		Start:            r.Start,
		End:              r.End,
		Errors:           make([]string, len(r.Errors)),
		Warnings:         make([]string, len(r.Warnings)),
		StageDurations:   r.StageDurations,
		StageErrorKinds:  sek,
		StageCounts:      stageCounts,
		ManifestVersion:  r.ManifestVersion,
		NodeVersion:      r.NodeVersion,
		ManagerVersion:   r.ManagerVersion,
		OutputVerified:   r.OutputVerified,
		Outcome:          string(r.Outcome),
		UIBuilderVersion: r.UIBuilderVersion,
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	return s
}

// ReportSerializable mirrors Report but with string errors for JSON output.
type ReportSerializable struct {
	SchemaVersion    int                      `json:"schema_version"`
	RunID            string                   `json:"run_id"`
	Package          string                   `json:"package,omitempty"`
	Manager          string                   `json:"manager"`
	Start            time.Time                `json:"start"`
	End              time.Time                `json:"end"`
	Errors           []string                 `json:"errors"`
	Warnings         []string                 `json:"warnings"`
	StageDurations   map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds  map[string]string        `json:"stage_error_kinds"`
	StageCounts      map[string]StageCount    `json:"stage_counts"`
	ManifestVersion  string                   `json:"manifest_version,omitempty"`
	NodeVersion      string                   `json:"node_version,omitempty"`
	ManagerVersion   string                   `json:"manager_version,omitempty"`
	OutputVerified   bool                     `json:"output_verified"`
	Outcome          string                   `json:"outcome"`
	UIBuilderVersion string                   `json:"uibuilder_version,omitempty"`
}
