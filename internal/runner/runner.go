package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/uibuilder/internal/logfields"
)

// Invocation describes a single external command to execute.
// Dir is threaded through to the child process instead of mutating the
// orchestrator's own working directory, so concurrent callers never race
// on global process state.
type Invocation struct {
	Path string   // executable name, resolved against PATH at spawn time
	Args []string // arguments, excluding the executable itself
	Dir  string   // working directory of the child; empty inherits the parent's
}

// Command renders the invocation the way a shell user would type it.
func (inv Invocation) Command() string {
	if len(inv.Args) == 0 {
		return inv.Path
	}
	return inv.Path + " " + strings.Join(inv.Args, " ")
}

// Result captures everything a completed invocation produced. ExitCode is -1
// when the process never ran (lookup or spawn failure) or died on a signal.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner abstracts subprocess execution so stage logic can be exercised in
// tests without a real node toolchain on PATH.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExecRunner runs invocations with os/exec, capturing both output streams in
// full. Builds are batch operations, so buffering the streams is fine.
type ExecRunner struct{}

// New returns the default process-spawning runner.
func New() *ExecRunner { return &ExecRunner{} }

// Run executes inv and blocks until the child exits or ctx is canceled.
// A non-zero exit status is not an error: the Result carries the code and
// err stays nil. err is non-nil only when the process could not be started
// (missing executable, bad working directory) or was killed by ctx.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Invoking command", logfields.Command(inv.Command()), logfields.Dir(inv.Dir))
	err := cmd.Run()

	res := Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			// Cancellation kills the child, which also reports as an
			// ExitError; the context reason takes precedence.
			res.ExitCode = -1
			return res, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The child ran to completion; the caller decides whether a
			// non-zero status matters.
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, err
	}
	return res, nil
}
