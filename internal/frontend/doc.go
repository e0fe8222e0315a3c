// Package frontend implements the frontend build pipeline for UIBuilder.
//
// # Architecture
//
// The orchestrator composes a fixed sequence of build "stages" (check_manifest,
// preflight, check_toolchain, install_deps, audit_fix, run_build,
// verify_output). Each stage operates on a shared mutable BuildState carrying
// the parsed manifest, captured subprocess results and the run report. Stage
// execution order is defined in orchestrator.go and measured in stages.go;
// timings are exported through Report.StageDurations for observability.
//
// The pipeline is deliberately linear with a single conditional stage:
// audit_fix only performs work when the install output suggests it. Install
// and build exit codes are transcribed but never gate the run; only
// verify_output decides whether the build produced its output directory.
//
// Subprocess working directories are passed explicitly per invocation, so the
// orchestrator never mutates process-global state and the caller's working
// directory is identical before and after any run.
package frontend
