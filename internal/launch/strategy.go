// Package launch turns a resolved interpreter into the final command the
// host spawns to run the agent's MCP server.
package launch

import (
	"path/filepath"

	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/spf13/afero"
)

// Strategy identifies how the agent is invoked.
type Strategy string

const (
	// StrategyScript runs the console entry point installed next to the
	// interpreter.
	StrategyScript Strategy = "script"

	// StrategyModule runs the interpreter with a module-path argument.
	// Inline code strings are deliberately not used: a module invocation
	// survives packaging changes and is auditable from the argument list
	// alone.
	StrategyModule Strategy = "module"
)

// Selection is the outcome of strategy selection.
type Selection struct {
	Strategy   Strategy
	Executable string
	Args       []string
}

// SelectStrategy probes the directory next to the interpreter for the
// agent's console script. Present means the agent was installed with an
// entry point and the script is launched directly; absent means the
// agent exists only as an importable package and the interpreter runs
// it as a module. Either packaging outcome works without the caller
// knowing which applies.
func SelectStrategy(fs afero.Fs, interpreterPath string) (Selection, error) {
	if interpreterPath == "" {
		return Selection{}, core.ErrNoParentDir
	}

	cleaned := filepath.Clean(interpreterPath)
	dir := filepath.Dir(cleaned)
	if dir == cleaned {
		// Root or degenerate path; there is no directory to probe.
		return Selection{}, core.ErrNoParentDir
	}

	script := filepath.Join(dir, core.AgentScript)
	if info, err := fs.Stat(script); err == nil && !info.IsDir() {
		return Selection{
			Strategy:   StrategyScript,
			Executable: script,
			Args:       []string{core.ServerSubcommand},
		}, nil
	}

	return Selection{
		Strategy:   StrategyModule,
		Executable: interpreterPath,
		Args:       []string{"-m", core.AgentModule, core.ServerSubcommand},
	}, nil
}
