// Package workflow holds the format-agnostic model of a file-processing
// workflow: an ordered list of steps, each with shell commands, input files
// and output files. The model is pure accumulation — nothing executes here.
// Declaration-shape errors (a step without outputs, two steps claiming the
// same output) are reported at append time, before any graph is derived.
//
// The makefile and dag packages consume this model; the engine package runs
// the result.
package workflow
