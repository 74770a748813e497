// Package dag derives the dependency graph of a workflow: one node per
// step, keyed by the step's first output, with an edge from producer to
// consumer whenever an output of one step appears among the inputs of
// another. The graph is validation and display machinery only — execution
// order is enforced by the build engine, not here.
package dag
