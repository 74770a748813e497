package workflow

import (
	"errors"
	"fmt"
)

// Declaration errors. They are surfaced at Append time, before any
// execution, because they make the derived graph ill-formed.
var (
	// ErrNoOutputs is returned for a step without outputs; such a step
	// cannot be tracked for staleness.
	ErrNoOutputs = errors.New("step declares no outputs")

	// ErrNoCommands is returned for a step without commands.
	ErrNoCommands = errors.New("step declares no commands")

	// ErrSealed is returned when a workflow is modified after compilation
	// has begun.
	ErrSealed = errors.New("workflow is sealed: compilation already started")
)

// DuplicateOutputError reports an output file claimed by two steps, which
// would make the dependency graph ambiguous.
type DuplicateOutputError struct {
	Path  string
	First int // index of the step that already owns the output
}

func (e *DuplicateOutputError) Error() string {
	return fmt.Sprintf("output %q already produced by step %d", e.Path, e.First)
}

// BadPathError reports a file path that cannot be expressed in a make
// target or prerequisite list.
type BadPathError struct {
	Path   string
	Reason string
}

func (e *BadPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}
