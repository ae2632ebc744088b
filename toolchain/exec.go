// Package toolchain runs external compilers and build tools and captures
// their output and exit status.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"
)

// Command is one process invocation.
type Command struct {
	Name string   // Executable to run (looked up in PATH)
	Args []string // Arguments passed to the executable
	Dir  string   // Working directory, empty for the current one
}

// String returns the command line shell-quoted, suitable for logs.
func (c Command) String() string {
	return shellescape.QuoteCommand(append([]string{c.Name}, c.Args...))
}

// Result is what a process that was started left behind.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration
	// TimedOut is set when the process was killed by the per-invocation timeout
	TimedOut bool
}

// Success reports whether the process exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0 && !r.TimedOut
}

// Runner starts processes. Run returns an error only when the process could
// not be started or the caller's context ended; a process that ran and exited
// non-zero is reported through Result.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

const waitDelay = 2 * time.Second

// Exec implements Runner on top of os/exec.
type Exec struct {
	logger  zerolog.Logger
	timeout time.Duration
}

var _ Runner = &Exec{}

// NewExec creates a runner. A zero timeout waits for processes indefinitely.
func NewExec(logger zerolog.Logger, timeout time.Duration) *Exec {
	return &Exec{logger: logger, timeout: timeout}
}

func (e *Exec) Run(ctx context.Context, c Command) (*Result, error) {
	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	// children that inherited the output pipes must not keep Run blocked
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug().
		Str("command", c.String()).
		Str("dir", c.Dir).
		Msg("Executing command")

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	// The caller gave up; this is not something the exercise did.
	if ctx.Err() != nil {
		return nil, fmt.Errorf("command %s interrupted: %w", c.Name, ctx.Err())
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		e.logger.Info().
			Str("command", c.String()).
			Dur("timeout", e.timeout).
			Msg("Command timed out")
		result.ExitCode = -1
		result.TimedOut = true
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		e.logger.Debug().
			Str("command", c.Name).
			Int("exit_code", result.ExitCode).
			Msg("Command exited with failure")
		return result, nil
	}

	return nil, fmt.Errorf("failed to execute %s: %w", c.Name, err)
}
