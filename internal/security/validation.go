package security

import (
	"fmt"
	"strings"
)

const maxPathLength = 1000

var (
	// TrustedRootPrefixes are installation roots accepted even when the
	// path does not name python itself (e.g. a wrapper under /opt).
	TrustedRootPrefixes = []string{
		"/usr/",
		"/opt/",
	}

	// DangerousPathPatterns must never appear in an interpreter path.
	// Candidates come from environment lookups and fixed tables, but the
	// check defends against search-path poisoning and malformed
	// configuration values reaching process-spawn.
	DangerousPathPatterns = []string{
		"..",
		"//",
		"\\\\",
		"\x00",
	}
)

// IsPathAcceptable reports whether a candidate interpreter path is safe
// to execute. Pure predicate; rejection is silent at call sites (the
// candidate is skipped, not fatal).
func IsPathAcceptable(path string) bool {
	if path == "" || len(path) >= maxPathLength {
		return false
	}

	for _, pattern := range DangerousPathPatterns {
		if strings.Contains(path, pattern) {
			return false
		}
	}

	if strings.Contains(strings.ToLower(path), "python") {
		return true
	}

	for _, prefix := range TrustedRootPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// ValidateInterpreterPath is the error-reporting form of IsPathAcceptable,
// used where a descriptive message is wanted instead of a bool.
func ValidateInterpreterPath(path string) error {
	if path == "" {
		return fmt.Errorf("interpreter path cannot be empty")
	}

	if len(path) >= maxPathLength {
		return fmt.Errorf("interpreter path too long (max %d characters)", maxPathLength)
	}

	for _, pattern := range DangerousPathPatterns {
		if strings.Contains(path, pattern) {
			return fmt.Errorf("interpreter path contains dangerous pattern: %q", pattern)
		}
	}

	if !IsPathAcceptable(path) {
		return fmt.Errorf("interpreter path is neither a python executable nor under a trusted root: %s", path)
	}

	return nil
}

// ValidateEnvironmentVariableName checks an environment variable name
// before it is forwarded to the launched process.
func ValidateEnvironmentVariableName(name string) error {
	if name == "" {
		return fmt.Errorf("environment variable name cannot be empty")
	}

	if strings.ContainsAny(name, "=\x00") {
		return fmt.Errorf("invalid environment variable name: %q", name)
	}

	return nil
}
