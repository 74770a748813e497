package workflow

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Options configures a new Workflow.
type Options struct {
	// Title, when set, is announced unconditionally before anything else
	// runs.
	Title string

	// Quiet sends the stdout of every step command to /dev/null. Command
	// echo lines and titles are still printed.
	Quiet bool
}

// Workflow is an ordered sequence of step declarations plus the set of
// outputs the caller ultimately cares about. It owns its steps; the
// dependency graph and the make description are derived from it at run time
// and never stored.
type Workflow struct {
	title        string
	quiet        bool
	finalOutputs []string

	steps     []Step
	owners    map[string]int // cleaned output path -> index of producing step
	secondary []string
	isSec     map[string]bool
	cleanCmds []string

	sealed bool
}

// New creates an empty workflow. finalOutputs establishes the direct
// dependencies of the aggregate root target; outputs of later appended
// steps are added to the root unless marked secondary.
func New(finalOutputs []string, opts *Options) (*Workflow, error) {
	outs, err := normalizePaths(finalOutputs)
	if err != nil {
		return nil, fmt.Errorf("final outputs: %w", err)
	}
	w := &Workflow{
		finalOutputs: outs,
		owners:       make(map[string]int),
		isSec:        make(map[string]bool),
	}
	if opts != nil {
		w.title = opts.Title
		w.quiet = opts.Quiet
	}
	return w, nil
}

// Append adds one step declaration. It fails without mutating the workflow
// if the step has no outputs or no commands, if a path cannot be expressed
// in a make rule, or if an output is already claimed by an earlier step.
func (w *Workflow) Append(s Step) error {
	if w.sealed {
		return ErrSealed
	}
	idx := len(w.steps)
	if len(s.Outputs) == 0 {
		return fmt.Errorf("step %d: %w", idx, ErrNoOutputs)
	}
	if len(s.Commands) == 0 {
		return fmt.Errorf("step %d: %w", idx, ErrNoCommands)
	}

	outs, err := normalizePaths(s.Outputs)
	if err != nil {
		return fmt.Errorf("step %d outputs: %w", idx, err)
	}
	if len(outs) == 0 {
		return fmt.Errorf("step %d: %w", idx, ErrNoOutputs)
	}
	ins, err := normalizePaths(s.Inputs)
	if err != nil {
		return fmt.Errorf("step %d inputs: %w", idx, err)
	}
	soft, err := normalizePaths(s.SoftInputs)
	if err != nil {
		return fmt.Errorf("step %d soft inputs: %w", idx, err)
	}
	for _, out := range outs {
		if first, ok := w.owners[out]; ok {
			return fmt.Errorf("step %d: %w", idx, &DuplicateOutputError{Path: out, First: first})
		}
	}

	for _, out := range outs {
		w.owners[out] = idx
	}
	w.steps = append(w.steps, Step{
		Title:      s.Title,
		Commands:   append([]string(nil), s.Commands...),
		Inputs:     ins,
		SoftInputs: soft,
		Outputs:    outs,
	})
	return nil
}

// AppendCommand is a convenience wrapper around Append for the common
// positional form: a title, output files, input files and one or more
// commands.
func (w *Workflow) AppendCommand(title string, outputs, inputs []string, cmds ...string) error {
	return w.Append(Step{
		Title:    title,
		Commands: cmds,
		Inputs:   inputs,
		Outputs:  outputs,
	})
}

// MarkSecondary exempts the given outputs from must-exist enforcement.
// A secondary output is rebuilt only when something downstream needs it and
// it is missing or stale; its absence alone never fails a run.
func (w *Workflow) MarkSecondary(outputs ...string) error {
	if w.sealed {
		return ErrSealed
	}
	outs, err := normalizePaths(outputs)
	if err != nil {
		return fmt.Errorf("secondary outputs: %w", err)
	}
	for _, out := range outs {
		if w.isSec[out] {
			continue
		}
		w.isSec[out] = true
		w.secondary = append(w.secondary, out)
	}
	return nil
}

// Clean adds commands to the workflow's clean goal. They only run when a
// clean is explicitly requested.
func (w *Workflow) Clean(cmds ...string) error {
	if w.sealed {
		return ErrSealed
	}
	w.cleanCmds = append(w.cleanCmds, cmds...)
	return nil
}

// Seal freezes the workflow. Compilation calls this; any later mutation
// fails with ErrSealed.
func (w *Workflow) Seal() { w.sealed = true }

// Title returns the workflow's announcement title, if any.
func (w *Workflow) Title() string { return w.title }

// Quiet reports whether step command stdout is suppressed.
func (w *Workflow) Quiet() bool { return w.quiet }

// FinalOutputs returns the outputs declared when the workflow was created.
func (w *Workflow) FinalOutputs() []string {
	return append([]string(nil), w.finalOutputs...)
}

// Steps returns a copy of the declared steps, in declaration order.
func (w *Workflow) Steps() []Step {
	return append([]Step(nil), w.steps...)
}

// SecondaryOutputs returns the outputs marked secondary, in marking order.
func (w *Workflow) SecondaryOutputs() []string {
	return append([]string(nil), w.secondary...)
}

// IsSecondary reports whether the given (cleaned) output path is secondary.
func (w *Workflow) IsSecondary(path string) bool {
	return w.isSec[filepath.Clean(path)]
}

// CleanCommands returns the commands of the clean goal.
func (w *Workflow) CleanCommands() []string {
	return append([]string(nil), w.cleanCmds...)
}

// RootOutputs returns the aggregate root target's dependency list: the
// final outputs followed by every non-secondary step output, de-duplicated,
// in declaration order.
func (w *Workflow) RootOutputs() []string {
	seen := make(map[string]bool)
	var root []string
	add := func(path string) {
		if seen[path] || w.isSec[path] {
			return
		}
		seen[path] = true
		root = append(root, path)
	}
	for _, out := range w.finalOutputs {
		add(out)
	}
	for _, s := range w.steps {
		for _, out := range s.Outputs {
			add(out)
		}
	}
	return root
}

// normalizePaths cleans each path so spelling variants of the same file
// (`a//b`, `a/./b`) collapse into one name, drops empty entries, and
// rejects paths that make's rule syntax cannot express at all.
func normalizePaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if strings.ContainsAny(p, "\n\r") {
			return nil, &BadPathError{Path: p, Reason: "contains a line break"}
		}
		if strings.ContainsRune(p, '\\') {
			return nil, &BadPathError{Path: p, Reason: "contains a backslash"}
		}
		out = append(out, filepath.Clean(p))
	}
	return out, nil
}
