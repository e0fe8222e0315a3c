package errors

// Package errors provides sentinel errors for the frontend build stages.
// These enable consistent classification with errors.Is while keeping
// user-facing messages descriptive via wrapping.

import "errors"

var (
	// ErrManifestParse indicates package.json could not be read or decoded.
	ErrManifestParse = errors.New("package.json parse failed")
	// ErrToolchainMissing indicates the JavaScript runtime or package manager
	// was not usable on PATH.
	ErrToolchainMissing = errors.New("frontend toolchain missing")
	// ErrOutputMissing indicates the build produced no output directory.
	ErrOutputMissing = errors.New("frontend output directory missing")
)
