package frontend

import (
	"fmt"
)

// BuildErrorKind tags the distinguished failure modes of a build run.
type BuildErrorKind string

const (
	ErrKindManifestParse    BuildErrorKind = "manifest_parse"
	ErrKindToolchainMissing BuildErrorKind = "toolchain_missing"
	ErrKindOutputMissing    BuildErrorKind = "output_missing"
)

// BuildError is the distinguished error a failed orchestration surfaces to the
// packaging system. Kind makes the taxonomy matchable without string parsing;
// the wrapped cause keeps errors.Is working against the sentinel errors in
// internal/frontend/errors.
type BuildError struct {
	Kind  BuildErrorKind
	Stage StageName
	Msg   string
	Err   error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *BuildError) Unwrap() error { return e.Err }

// newBuildError constructs the distinguished error for a stage.
func newBuildError(kind BuildErrorKind, stage StageName, msg string, err error) *BuildError {
	return &BuildError{Kind: kind, Stage: stage, Msg: msg, Err: err}
}
