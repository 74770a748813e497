package app

import (
	"errors"
	"fmt"
)

// Config holds everything an App instance needs for one invocation.
type Config struct {
	// Path is the workflow declaration file, or a directory of them.
	Path string

	// MakefilePath keeps the generated description at a fixed location.
	// Empty means a temporary file, removed after the run.
	MakefilePath string

	// Jobs is the maximum number of concurrently running independent
	// steps.
	Jobs int

	// Engine pass-throughs.
	DryRun       bool
	IgnoreErrors bool
	Force        bool
	DebugMake    bool
	Clean        bool

	// Plan prints the derived execution order without running anything.
	Plan bool

	// Print dumps the generated description without running anything.
	Print bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, errors.New("a workflow path is required")
	}
	if cfg.Jobs < 1 {
		return nil, fmt.Errorf("jobs must be at least 1, got %d", cfg.Jobs)
	}
	return &cfg, nil
}
