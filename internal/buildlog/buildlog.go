// Package buildlog writes the per-run frontend build log. Every orchestration
// run truncates the file and appends plain-text messages plus the exit code,
// stdout and stderr of each subprocess, so a failed packaging run leaves a
// complete transcript behind.
package buildlog

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"git.home.luguber.info/inful/uibuilder/internal/runner"
)

// lineSeparator matches what native tooling on the host would emit, keeping
// the log readable in Notepad and friends on Windows checkouts.
func lineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Log is the transcript of one build run. Writes go through a buffered
// writer and are flushed after every message batch, so the file stays
// useful even when the run aborts partway. Write failures are sticky:
// the first one is remembered, later calls become no-ops, and Close
// reports it.
type Log struct {
	path string
	f    *os.File
	w    *bufio.Writer
	sep  string
	err  error
}

// Create opens the log at path, truncating any previous run's content.
func Create(path string) (*Log, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create build log: %w", err)
	}
	return &Log{path: path, f: f, w: bufio.NewWriter(f), sep: lineSeparator()}, nil
}

// Path returns the location the log writes to.
func (l *Log) Path() string { return l.path }

// Msg writes text line by line at the given indent. Blank lines are
// dropped, which keeps subprocess output compact in the transcript.
func (l *Log) Msg(text string, indent int) {
	if l.err != nil {
		return
	}
	prefix := strings.Repeat(" ", indent)
	norm := strings.ReplaceAll(text, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, "\r", "\n")
	for _, line := range strings.Split(norm, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := l.w.WriteString(prefix + line + l.sep); err != nil {
			l.err = err
			return
		}
	}
	l.err = l.w.Flush()
}

// Result records a completed subprocess: its exit code followed by both
// output streams, with the stream bodies indented two further spaces.
// The STDOUT/STDERR headers are always written, even for silent commands.
func (l *Log) Result(res runner.Result, indent int) {
	l.Msg(fmt.Sprintf("RC:%d", res.ExitCode), indent)
	l.Msg("STDOUT:", indent)
	l.Msg(res.Stdout, indent+2)
	l.Msg("STDERR:", indent)
	l.Msg(res.Stderr, indent+2)
}

// Err reports the first write failure, if any.
func (l *Log) Err() error { return l.err }

// Close flushes pending output and closes the file. It returns the first
// error seen over the log's lifetime.
func (l *Log) Close() error {
	flushErr := l.w.Flush()
	closeErr := l.f.Close()
	switch {
	case l.err != nil:
		return l.err
	case flushErr != nil:
		return flushErr
	default:
		return closeErr
	}
}
