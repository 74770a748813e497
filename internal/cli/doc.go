// Package cli turns command-line arguments into an app.Config. It owns the
// usage text and the exit-code convention: 2 for usage and declaration
// problems, the engine's own status for failed runs.
package cli
