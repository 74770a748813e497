package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"github.com/adehecq/make-workflow/internal/ctxlog"
)

// lockRetryDelay is how often a blocked run re-attempts the description
// lock while waiting for a concurrent run to finish.
const lockRetryDelay = 100 * time.Millisecond

// RunOptions configures one engine invocation against a description file.
type RunOptions struct {
	// Jobs is the maximum number of independent targets the engine may run
	// concurrently. Must be at least 1; 1 means fully serial.
	Jobs int

	// DryRun prints the commands a run would execute without running them.
	DryRun bool

	// IgnoreErrors keeps the run going past failing commands (`-i`), useful
	// when several independent branches should each get their chance.
	IgnoreErrors bool

	// Force re-runs every step regardless of staleness (`-B`).
	Force bool

	// Debug enables the engine's own dependency-resolution trace (`-d`).
	Debug bool

	// Clean additionally requests the workflow's clean goal.
	Clean bool

	// ExtraArgs are passed to the engine verbatim, after all generated
	// flags and before the clean goal.
	ExtraArgs []string

	// Dir is the working directory for the run. Empty means the caller's.
	Dir string

	// Stdout and Stderr receive the engine's trace, which includes the
	// per-command echo lines. They default to the process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// args maps the options to the engine's argv. Kept separate from Run so
// the mapping is testable without executing anything.
func (o *RunOptions) args(description string) ([]string, error) {
	if o.Jobs < 1 {
		return nil, fmt.Errorf("jobs must be at least 1, got %d", o.Jobs)
	}

	args := []string{"-f", description}
	if o.Jobs > 1 {
		args = append(args, "-j", strconv.Itoa(o.Jobs))
	}
	if o.DryRun {
		args = append(args, "-n", "--no-print-directory")
	}
	if o.Debug {
		args = append(args, "-d")
	}
	if o.IgnoreErrors {
		args = append(args, "-i")
	}
	if o.Force {
		args = append(args, "-B")
	}
	args = append(args, o.ExtraArgs...)
	if o.Clean {
		args = append(args, "clean")
	}
	return args, nil
}

// Run invokes the engine against the description file and blocks until the
// run completes or the context is cancelled (which kills the engine
// process). A file lock next to the description serializes concurrent runs
// of the same workflow; cancellation also aborts the wait for that lock.
//
// A nil return means the aggregate root target and all of its transitive
// dependencies are up to date. A *CommandError means a step's command
// sequence failed; an *EngineError means the engine itself could not run.
func (m *Make) Run(ctx context.Context, description string, opts RunOptions) error {
	logger := ctxlog.FromContext(ctx)

	argv, err := opts.args(description)
	if err != nil {
		return err
	}

	lock := flock.New(description + ".lock")
	if _, err := lock.TryLockContext(ctx, lockRetryDelay); err != nil {
		return &EngineError{Op: "lock description", Err: err}
	}
	defer lock.Unlock()

	cmd := exec.CommandContext(ctx, m.path, argv...)
	cmd.Dir = opts.Dir
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger.Debug("engine: invoking make.", "path", m.path, "argv", argv)
	err = cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		if ctx.Err() != nil {
			return &EngineError{Op: "run", Err: ctx.Err()}
		}
		return &CommandError{ExitCode: exitErr.ExitCode()}
	default:
		return &EngineError{Op: "invoke " + m.path, Err: err}
	}
}
