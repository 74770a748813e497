package makefile

import (
	"fmt"
	"strings"

	"github.com/adehecq/make-workflow/internal/workflow"
)

// Options selects rendering variants that depend on the engine.
type Options struct {
	// GroupedTargets enables the `outs &: ins` grouped-target syntax for
	// multi-output steps (GNU make >= 4.3). Without it, the first output
	// carries the recipe and the remaining outputs chain behind it.
	GroupedTargets bool

	// Quiet redirects the stdout of every step command to /dev/null.
	Quiet bool
}

// Reserved rule names emitted by the renderer itself. A step output with
// one of these names would silently merge with the generated rule.
var reservedTargets = map[string]bool{
	rootTarget:   true,
	bannerTarget: true,
	listTarget:   true,
	cleanTarget:  true,
}

const (
	rootTarget   = "MAIN"
	bannerTarget = "banner"
	listTarget   = "list"
	cleanTarget  = "clean"
)

// touchChain is the guard recipe for extra outputs of a multi-output step
// on engines without grouped targets: refresh the extra output if it
// exists, otherwise force the primary output (and with it the real recipe)
// to be rebuilt.
const touchChain = `@if test -f $@; then touch -h $@; else if [ -f $< ]; then rm -f $< && $(MAKE) -f $(lastword $(MAKEFILE_LIST)) $<; fi; fi`

// Render serializes the workflow into a make description. It seals the
// workflow: the description must stay a faithful snapshot of what was
// declared, so no mutation is allowed once rendering has happened.
func Render(w *workflow.Workflow, opts Options) (string, error) {
	w.Seal()
	steps := w.Steps()

	for _, s := range steps {
		for _, out := range s.Outputs {
			if reservedTargets[out] {
				return "", fmt.Errorf("output %q collides with a generated rule name", out)
			}
		}
	}

	var b strings.Builder
	b.WriteString("# Generated by makeflow; do not edit.\n\n")

	phony := []string{rootTarget}
	if w.Title() != "" {
		phony = append(phony, bannerTarget)
	}
	phony = append(phony, listTarget)
	if len(w.CleanCommands()) > 0 {
		phony = append(phony, cleanTarget)
	}
	fmt.Fprintf(&b, ".PHONY: %s\n\n", strings.Join(phony, " "))

	// ANSI colors for the per-command echo lines.
	b.WriteString("CMDCOL := \x1b[32m\n")
	b.WriteString("DEFCOL := \x1b[0m\n\n")

	// Aggregate root: one entry point that transitively requires everything.
	rootDeps := make([]string, 0, len(steps)+1)
	if w.Title() != "" {
		rootDeps = append(rootDeps, bannerTarget)
	}
	for _, out := range w.RootOutputs() {
		rootDeps = append(rootDeps, Path(out))
	}
	if len(rootDeps) == 0 {
		fmt.Fprintf(&b, "%s:\n\n", rootTarget)
	} else {
		fmt.Fprintf(&b, "%s: %s\n\n", rootTarget, strings.Join(rootDeps, " "))
	}

	if w.Title() != "" {
		fmt.Fprintf(&b, "%s:\n", bannerTarget)
		fmt.Fprintf(&b, "\t@printf '%%b\\n' '%s'\n\n", Display(w.Title()))
	}

	writeListTarget(&b, w.Title() != "")

	for _, s := range steps {
		writeStep(&b, s, opts)
	}

	if sec := w.SecondaryOutputs(); len(sec) > 0 {
		escaped := make([]string, len(sec))
		for i, out := range sec {
			escaped[i] = Path(out)
		}
		fmt.Fprintf(&b, ".SECONDARY: %s\n\n", strings.Join(escaped, " "))
	}

	if cmds := w.CleanCommands(); len(cmds) > 0 {
		fmt.Fprintf(&b, "%s:\n", cleanTarget)
		for _, cmd := range cmds {
			writeCommand(&b, cmd, opts.Quiet)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// writeListTarget emits a debugging helper: `make list` prints the outputs
// that a run would have to remake, without running anything.
func writeListTarget(b *strings.Builder, hasBanner bool) {
	fmt.Fprintf(b, "%s:\n", listTarget)
	b.WriteString("\t@printf '%b\\n' '** Missing outputs **'\n")
	filter := fmt.Sprintf("sed -e '/%s/d'", rootTarget)
	if hasBanner {
		filter += fmt.Sprintf(" -e '/%s/d'", bannerTarget)
	}
	fmt.Fprintf(b,
		"\t@$(MAKE) -n --debug -f $(lastword $(MAKEFILE_LIST)) | sed -n -e 's/^.*Must remake target //p' | %s\n\n",
		filter)
}

// writeStep emits one step's rule: target line, optional title, and the
// echo+run pair for each command.
func writeStep(b *strings.Builder, s workflow.Step, opts Options) {
	outs := make([]string, len(s.Outputs))
	for i, out := range s.Outputs {
		outs[i] = Path(out)
	}
	ins := make([]string, len(s.Inputs))
	for i, in := range s.Inputs {
		ins[i] = Path(in)
	}
	soft := make([]string, len(s.SoftInputs))
	for i, in := range s.SoftInputs {
		soft[i] = Path(in)
	}

	grouped := len(outs) > 1 && opts.GroupedTargets
	var targets string
	switch {
	case grouped:
		targets = strings.Join(outs, " ") + " &:"
	default:
		targets = outs[0] + ":"
	}
	line := targets
	if len(ins) > 0 {
		line += " " + strings.Join(ins, " ")
	}
	if len(soft) > 0 {
		line += " | " + strings.Join(soft, " ")
	}
	b.WriteString(line + "\n")

	if s.Title != "" {
		fmt.Fprintf(b, "\t@printf '%%b\\n' '%s'\n", Display(s.Title))
	}
	for _, cmd := range s.Commands {
		writeCommand(b, cmd, opts.Quiet)
	}
	b.WriteString("\n")

	// Without grouped targets, the extra outputs of a multi-output step
	// chain behind the primary one.
	if len(outs) > 1 && !opts.GroupedTargets {
		for i := 1; i < len(outs); i++ {
			fmt.Fprintf(b, "%s: %s\n", outs[i], outs[i-1])
			fmt.Fprintf(b, "\t%s\n\n", touchChain)
		}
	}
}

// writeCommand emits the echo line and the execution line(s) for one shell
// command. The echo never fails the rule; the command itself does.
func writeCommand(b *strings.Builder, cmd string, quiet bool) {
	fmt.Fprintf(b, "\t-@printf '%%b\\n' '${CMDCOL}+%s${DEFCOL}'\n", Display(cmd))
	for _, line := range RecipeLines(cmd) {
		if line == "" {
			continue
		}
		if quiet {
			line += " 1> /dev/null"
		}
		fmt.Fprintf(b, "\t@%s\n", line)
	}
}
