package workflow

// Step is one declared unit of work: an ordered list of shell commands,
// the files they read and the files they produce. Steps may be declared in
// any order; the dependency graph is inferred from the input/output sets.
type Step struct {
	// Title is an optional human-readable label printed when the step runs.
	Title string

	// Commands are run in order when the step is triggered. Any command
	// exiting non-zero aborts the step and the run.
	Commands []string

	// Inputs are the files the step depends on. An empty set means the step
	// is a source producer and is only re-run when its outputs are missing.
	Inputs []string

	// SoftInputs are order-only prerequisites: they must be built before the
	// step runs, but a newer timestamp on them never re-triggers the step.
	SoftInputs []string

	// Outputs are the files the step produces. Must be non-empty, and must
	// not overlap any other step's outputs.
	Outputs []string
}
