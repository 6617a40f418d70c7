// Package python resolves a compatible Python interpreter for the agent.
package python

import (
	"strings"
	"unicode"
)

// AcceptedVersionPrefixes are the supported runtime releases, most
// recent first. Extend this table when the agent gains support for a
// new minor version; the matching logic does not change.
var AcceptedVersionPrefixes = []string{
	"Python 3.12",
	"Python 3.11",
}

// IsAcceptedVersion reports whether a version-probe output names a
// supported interpreter release.
//
// A naive substring match would accept numerically adjacent releases
// (Python 3.110 contains "Python 3.11"), so the character immediately
// after the matched prefix, when present, must be a dot or whitespace.
func IsAcceptedVersion(versionOutput string) bool {
	trimmed := strings.TrimSpace(versionOutput)

	for _, prefix := range AcceptedVersionPrefixes {
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}

		rest := trimmed[len(prefix):]
		if rest == "" {
			return true
		}

		next := rune(rest[0])
		if next == '.' || unicode.IsSpace(next) {
			return true
		}
	}

	return false
}
