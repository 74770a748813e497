package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/adehecq/make-workflow/internal/ctxlog"
	"github.com/adehecq/make-workflow/internal/dag"
	"github.com/adehecq/make-workflow/internal/engine"
	"github.com/adehecq/make-workflow/internal/makefile"
	"github.com/adehecq/make-workflow/internal/workflow"
)

// Run executes one invocation: load, validate, and then — depending on the
// configuration — print the plan, print the description, or compile and
// drive the engine.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	w, err := a.loader.Load(ctx, a.config.Path)
	if err != nil {
		return err
	}

	graph, err := dag.Build(ctx, w.Steps())
	if err != nil {
		return err
	}

	if a.config.Plan {
		return a.printPlan(graph)
	}
	if a.config.Print {
		return a.printDescription(ctx, w)
	}

	m, err := engine.Find()
	if err != nil {
		return err
	}
	caps, err := m.Probe(ctx)
	if err != nil {
		return err
	}

	text, err := makefile.Render(w, renderOptions(w, caps))
	if err != nil {
		return err
	}

	path := a.config.MakefilePath
	if path == "" {
		tmp, err := os.CreateTemp("", "makeflow-*.mk")
		if err != nil {
			return fmt.Errorf("create description file: %w", err)
		}
		path = tmp.Name()
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("close description file: %w", err)
		}
		defer os.Remove(path)
	}
	// The run lock lives beside the description; a pinned description stays,
	// its lock file does not.
	defer os.Remove(path + ".lock")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write description file: %w", err)
	}
	a.logger.Debug("description compiled.", "path", path, "steps", len(w.Steps()))

	return m.Run(ctx, path, engine.RunOptions{
		Jobs:         a.config.Jobs,
		DryRun:       a.config.DryRun,
		IgnoreErrors: a.config.IgnoreErrors,
		Force:        a.config.Force,
		Debug:        a.config.DebugMake,
		Clean:        a.config.Clean,
		Stdout:       a.outW,
		Stderr:       a.errW,
	})
}

// printPlan writes the derived execution order, one step per line, with
// the dependencies that force its position.
func (a *App) printPlan(graph *dag.Graph) error {
	order, err := graph.TopoOrder()
	if err != nil {
		return err
	}
	for i, id := range order {
		deps, err := graph.Dependencies(id)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%d. %s", i+1, id)
		if len(deps) > 0 {
			line += " (after: " + strings.Join(deps, ", ") + ")"
		}
		fmt.Fprintln(a.outW, line)
	}
	return nil
}

// printDescription renders and dumps the description without running it.
// The engine probe is best-effort here: with no make installed we still
// want a printable description, so we assume the modern syntax.
func (a *App) printDescription(ctx context.Context, w *workflow.Workflow) error {
	caps := engine.Caps{GroupedTargets: true}
	if m, err := engine.Find(); err == nil {
		if probed, err := m.Probe(ctx); err == nil {
			caps = probed
		}
	} else {
		a.logger.Debug("no engine found; printing with grouped-target syntax.")
	}

	text, err := makefile.Render(w, renderOptions(w, caps))
	if err != nil {
		return err
	}
	fmt.Fprint(a.outW, text)
	return nil
}

func renderOptions(w *workflow.Workflow, caps engine.Caps) makefile.Options {
	return makefile.Options{
		GroupedTargets: caps.GroupedTargets,
		Quiet:          w.Quiet(),
	}
}
