// Package makefile renders a workflow into a GNU make description: one
// aggregate root target, one rule per step, and a .SECONDARY declaration
// for non-enforced outputs. Rendering is a pure function of the workflow
// snapshot and the engine capabilities; it never touches the filesystem.
//
// Escaping of make/shell metacharacters lives in escape.go and is the one
// correctness-critical string transform in this package: a missed character
// does not degrade gracefully, it produces an invalid or silently wrong
// description.
package makefile
