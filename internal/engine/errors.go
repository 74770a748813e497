package engine

import "fmt"

// EngineError reports that the build engine itself could not run: missing
// binary, unreadable description, failed lock. No user command ran.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("build engine: %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// CommandError reports that the engine ran and at least one step's command
// sequence failed. Targets depending on the failed step were not attempted;
// partial outputs are left in place for the next run's staleness check.
type CommandError struct {
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("workflow run failed with exit status %d", e.ExitCode)
}
