package core

// AgentPackage is the PyPI distribution that provides the Serena agent.
const AgentPackage = "serena-agent"

// AgentScript is the console entry point generated next to the interpreter
// when the agent package is installed with entry-point support.
const AgentScript = "serena"

// AgentModule is the importable CLI module used when no console entry
// point exists.
const AgentModule = "serena.cli"

// ServerSubcommand starts the agent in MCP stdio mode.
const ServerSubcommand = "start-mcp-server"

// EnvVar is a single environment entry passed to the launched process.
// Entries are applied by the host in order; duplicates are allowed.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LaunchCommand is the resolved executable/arguments/environment triple
// handed to the host for process creation. It is built once and never
// mutated afterward.
type LaunchCommand struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Env     []EnvVar `json:"env"`
}

// Settings is the per-launch user configuration. PythonExecutable
// distinguishes "unset" (nil) from "explicitly empty" (pointer to "");
// an explicitly empty override is a configuration error, never a silent
// fallthrough to discovery. Environment values are opaque strings.
type Settings struct {
	PythonExecutable *string           `json:"python_executable,omitempty" mapstructure:"python_executable"`
	Environment      map[string]string `json:"environment,omitempty" mapstructure:"environment"`
}

// Override returns the explicit interpreter override and whether one was set.
func (s *Settings) Override() (string, bool) {
	if s == nil || s.PythonExecutable == nil {
		return "", false
	}
	return *s.PythonExecutable, true
}

// ConfigurationSpec describes the recognized settings for a host-side
// configuration UI: human-readable setup instructions, a default settings
// document, and a JSON schema for validation.
type ConfigurationSpec struct {
	SetupInstructions string `json:"setup_instructions"`
	DefaultSettings   string `json:"default_settings"`
	SettingsSchema    string `json:"settings_schema"`
}

// CandidateSource records where a discovery candidate came from.
type CandidateSource string

const (
	SourcePath     CandidateSource = "path"
	SourceFallback CandidateSource = "fallback"
	SourceOverride CandidateSource = "override"
)

// CandidateReport is the outcome of probing a single interpreter
// candidate. Resolution only needs the first accepted candidate;
// diagnostics keep the full list.
type CandidateReport struct {
	Candidate string          `json:"candidate"`
	Source    CandidateSource `json:"source"`
	Resolved  string          `json:"resolved,omitempty"`
	Version   string          `json:"version,omitempty"`
	Accepted  bool            `json:"accepted"`
	Reason    string          `json:"reason,omitempty"`
}

// Exit codes
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitInvalidArgs = 2
	ExitNoPython    = 3
	ExitInterrupted = 130
)
