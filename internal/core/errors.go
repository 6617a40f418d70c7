package core

import (
	"fmt"
	"strings"
)

// ErrEmptyPythonPath indicates a user override that was explicitly set to
// an empty string. Resolution must fail rather than fall through to
// discovery or emit an empty-executable command.
var ErrEmptyPythonPath = fmt.Errorf("python executable path cannot be empty")

// ErrNoParentDir indicates an interpreter path whose parent directory
// cannot be determined, which makes companion-script probing impossible.
var ErrNoParentDir = fmt.Errorf("could not determine interpreter parent directory")

// DiscoveryError is returned when no interpreter candidate passed
// validation and version matching. It carries every attempted candidate
// so the message can tell the user exactly what was tried.
type DiscoveryError struct {
	Attempted []string
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf(
		"Python 3.11 or 3.12 not found (tried: %s). %s requires Python 3.11-3.12; install a compatible version or set python_executable in the configuration",
		strings.Join(e.Attempted, ", "), AgentPackage)
}
