package launch

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/quantmind-br/serenactl/internal/security"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// InterpreterFinder locates an acceptable interpreter when no explicit
// override is configured.
type InterpreterFinder interface {
	Discover(ctx context.Context) (string, error)
}

// Synthesizer merges user settings with discovery and strategy selection
// into a final LaunchCommand. It performs no installation or other
// side effects on the target environment; probing child processes during
// discovery is the only spawning that happens here.
type Synthesizer struct {
	finder InterpreterFinder
	fs     afero.Fs
	goos   string
	log    *zerolog.Logger
}

// NewSynthesizer creates a Synthesizer for the current platform.
func NewSynthesizer(finder InterpreterFinder, fs afero.Fs, log *zerolog.Logger) *Synthesizer {
	return NewSynthesizerForPlatform(finder, fs, runtime.GOOS, log)
}

// NewSynthesizerForPlatform creates a Synthesizer with an explicit GOOS
// value, used by tests to exercise platform-specific behavior.
func NewSynthesizerForPlatform(finder InterpreterFinder, fs afero.Fs, goos string, log *zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		finder: finder,
		fs:     fs,
		goos:   goos,
		log:    log,
	}
}

// Synthesize resolves the interpreter (override first, discovery
// otherwise), selects the launch strategy, and assembles the command.
// An override is used verbatim: validation and version matching apply
// only to auto-discovered candidates.
func (s *Synthesizer) Synthesize(ctx context.Context, settings *core.Settings) (*core.LaunchCommand, error) {
	interpreter, err := s.resolveInterpreter(ctx, settings)
	if err != nil {
		return nil, err
	}

	if interpreter == "" {
		return nil, core.ErrEmptyPythonPath
	}

	interpreter = sanitizePath(interpreter, s.goos)

	selection, err := SelectStrategy(s.fs, interpreter)
	if err != nil {
		return nil, err
	}

	env, err := flattenEnvironment(settings)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("interpreter", interpreter).
		Str("strategy", string(selection.Strategy)).
		Strs("args", selection.Args).
		Msg("synthesized launch command")

	return &core.LaunchCommand{
		Command: selection.Executable,
		Args:    selection.Args,
		Env:     env,
	}, nil
}

func (s *Synthesizer) resolveInterpreter(ctx context.Context, settings *core.Settings) (string, error) {
	if override, ok := settings.Override(); ok {
		if override == "" {
			return "", core.ErrEmptyPythonPath
		}
		return override, nil
	}

	return s.finder.Discover(ctx)
}

// sanitizePath strips the spurious leading separator the host's
// path-normalization layer introduces on Windows. No-op elsewhere.
func sanitizePath(path, goos string) string {
	if goos != "windows" {
		return path
	}
	return strings.TrimLeft(path, "/")
}

// flattenEnvironment turns the settings map into an ordered entry list.
// Go maps carry no insertion order, so entries are sorted by name to
// keep output reproducible across calls.
func flattenEnvironment(settings *core.Settings) ([]core.EnvVar, error) {
	if settings == nil || len(settings.Environment) == 0 {
		return []core.EnvVar{}, nil
	}

	names := make([]string, 0, len(settings.Environment))
	for name := range settings.Environment {
		if err := security.ValidateEnvironmentVariableName(name); err != nil {
			return nil, fmt.Errorf("invalid environment configuration: %w", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	env := make([]core.EnvVar, 0, len(names))
	for _, name := range names {
		env = append(env, core.EnvVar{Name: name, Value: settings.Environment[name]})
	}

	return env, nil
}
