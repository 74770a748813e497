package hclcfg

import (
	"context"
	"fmt"

	"github.com/adehecq/make-workflow/internal/ctxlog"
	"github.com/adehecq/make-workflow/internal/schema"
	"github.com/adehecq/make-workflow/internal/workflow"
)

// translate converts the decoded schema into a workflow via the builder, so
// declaration errors (duplicate outputs, empty sets) surface with the same
// types regardless of how the workflow was declared.
func translate(ctx context.Context, f *schema.File) (*workflow.Workflow, error) {
	logger := ctxlog.FromContext(ctx)

	var opts workflow.Options
	var targets []string
	if f.Workflow != nil {
		opts.Title = f.Workflow.Title
		opts.Quiet = f.Workflow.Quiet
		targets = f.Workflow.Targets
	}

	w, err := workflow.New(targets, &opts)
	if err != nil {
		return nil, fmt.Errorf("workflow block: %w", err)
	}

	seen := make(map[string]bool)
	for _, s := range f.Steps {
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate step label %q", s.Name)
		}
		seen[s.Name] = true

		err := w.Append(workflow.Step{
			Title:      s.Title,
			Commands:   s.Commands,
			Inputs:     s.Inputs,
			SoftInputs: s.SoftInputs,
			Outputs:    s.Outputs,
		})
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Name, err)
		}
		if s.Secondary {
			if err := w.MarkSecondary(s.Outputs...); err != nil {
				return nil, fmt.Errorf("step %q: %w", s.Name, err)
			}
		}
	}

	for _, c := range f.Cleans {
		if err := w.Clean(c.Commands...); err != nil {
			return nil, err
		}
	}

	logger.Debug("hclcfg: workflow translated.", "steps", len(f.Steps))
	return w, nil
}
