package dag

import (
	"context"
	"fmt"

	"github.com/adehecq/make-workflow/internal/ctxlog"
	"github.com/adehecq/make-workflow/internal/workflow"
)

// Build constructs a validated dependency graph from the declared steps.
// Each step becomes one node, identified by its first output. An edge is
// added from step A to step B whenever one of A's outputs appears among
// B's inputs or soft inputs. Inputs no step produces are source files and
// contribute no edge.
func Build(ctx context.Context, steps []workflow.Step) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	graph := New()

	// First pass: create all nodes and index every output by its producer.
	producers := make(map[string]string) // output path -> node ID
	ids := make([]string, len(steps))
	for i, s := range steps {
		id := s.Outputs[0]
		ids[i] = id
		graph.AddNode(id)
		for _, out := range s.Outputs {
			if prev, ok := producers[out]; ok {
				// The builder already rejects this; guard against callers
				// that bypass it.
				return nil, fmt.Errorf("output %q produced by both %q and %q", out, prev, id)
			}
			producers[out] = id
		}
	}
	logger.Debug("dag: node creation complete.", "node_count", len(steps))

	// Second pass: link producers to consumers.
	for i, s := range steps {
		for _, in := range append(append([]string(nil), s.Inputs...), s.SoftInputs...) {
			from, ok := producers[in]
			if !ok {
				continue // source file, satisfied by the filesystem
			}
			if from == ids[i] {
				return nil, fmt.Errorf("step %q lists its own output %q as an input", ids[i], in)
			}
			if err := graph.AddEdge(from, ids[i]); err != nil {
				return nil, err
			}
		}
	}
	logger.Debug("dag: node linking complete.")

	if err := graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("dag: cycle detection passed.")

	return graph, nil
}
