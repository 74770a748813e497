package engine

import (
	"context"
	"os/exec"

	"github.com/adehecq/make-workflow/internal/ctxlog"
)

// DefaultBinary is the build engine looked up on $PATH.
const DefaultBinary = "make"

// Caps describes the probed capabilities of a make binary.
type Caps struct {
	// Version is the semver-shaped version string ("v4.3"), or empty when
	// the version line could not be parsed.
	Version string

	// GroupedTargets is true for GNU make >= 4.3, which understands the
	// `outs &: ins` grouped-target syntax for multi-output rules.
	GroupedTargets bool
}

// Make is a handle on a concrete make binary.
type Make struct {
	path string
}

// Find locates the default make binary on $PATH.
func Find() (*Make, error) {
	path, err := exec.LookPath(DefaultBinary)
	if err != nil {
		return nil, &EngineError{Op: "locate " + DefaultBinary, Err: err}
	}
	return &Make{path: path}, nil
}

// NewMake returns a handle on the binary at the given path, bypassing the
// $PATH lookup.
func NewMake(path string) *Make {
	return &Make{path: path}
}

// Path returns the binary's filesystem path.
func (m *Make) Path() string { return m.path }

// Probe runs `make -v` and derives the binary's capabilities from the
// version it reports. An unparseable version line is not fatal: the engine
// still works, we just assume the older rule syntax.
func (m *Make) Probe(ctx context.Context) (Caps, error) {
	logger := ctxlog.FromContext(ctx)

	out, err := exec.CommandContext(ctx, m.path, "-v").Output()
	if err != nil {
		return Caps{}, &EngineError{Op: "probe version", Err: err}
	}

	version, err := parseVersion(string(out))
	if err != nil {
		logger.Debug("engine: could not parse make version; assuming pre-4.3 syntax.", "error", err)
		return Caps{}, nil
	}

	caps := Caps{
		Version:        version,
		GroupedTargets: supportsGroupedTargets(version),
	}
	logger.Debug("engine: probed make.", "path", m.path, "version", caps.Version, "grouped_targets", caps.GroupedTargets)
	return caps, nil
}
