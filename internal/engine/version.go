package engine

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// groupedTargetsMin is the first GNU make release with grouped targets.
const groupedTargetsMin = "v4.3"

// parseVersion extracts a semver-shaped version from `make -v` output,
// whose first line looks like "GNU Make 4.3". The version number is the
// last whitespace-separated field of that line.
func parseVersion(out string) (string, error) {
	firstLine, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(firstLine)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty version output")
	}

	version := "v" + fields[len(fields)-1]
	if !semver.IsValid(version) {
		return "", fmt.Errorf("unrecognized version line %q", firstLine)
	}
	return version, nil
}

// supportsGroupedTargets reports whether the given version understands the
// `&:` grouped-target syntax.
func supportsGroupedTargets(version string) bool {
	return semver.Compare(version, groupedTargetsMin) >= 0
}
