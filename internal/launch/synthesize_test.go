package launch

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/quantmind-br/serenactl/internal/logging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFinder struct {
	path string
	err  error
}

func (f *stubFinder) Discover(ctx context.Context) (string, error) {
	return f.path, f.err
}

func strPtr(s string) *string { return &s }

func newTestSynthesizer(finder InterpreterFinder, fs afero.Fs, goos string) *Synthesizer {
	return NewSynthesizerForPlatform(finder, fs, goos, logging.NewTestLogger(io.Discard))
}

func TestSynthesizeOverrideBypassesValidation(t *testing.T) {
	fs := afero.NewMemMapFs()
	finder := &stubFinder{err: errors.New("discovery must not run")}
	s := newTestSynthesizer(finder, fs, "linux")

	// An override is used verbatim even when it would never pass
	// discovery's own path validation.
	settings := &core.Settings{PythonExecutable: strPtr("/custom/python")}

	cmd, err := s.Synthesize(context.Background(), settings)
	require.NoError(t, err)
	assert.Equal(t, "/custom/python", cmd.Command)
	assert.Equal(t, []string{"-m", "serena.cli", "start-mcp-server"}, cmd.Args)
}

func TestSynthesizeEmptyOverrideRejected(t *testing.T) {
	fs := afero.NewMemMapFs()
	finder := &stubFinder{path: "/usr/bin/python3.12"}
	s := newTestSynthesizer(finder, fs, "linux")

	settings := &core.Settings{PythonExecutable: strPtr("")}

	_, err := s.Synthesize(context.Background(), settings)
	assert.ErrorIs(t, err, core.ErrEmptyPythonPath)
}

func TestSynthesizeDiscoveryWhenNoOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	finder := &stubFinder{path: "/usr/bin/python3.12"}
	s := newTestSynthesizer(finder, fs, "linux")

	cmd, err := s.Synthesize(context.Background(), &core.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3.12", cmd.Command)
	assert.Equal(t, []string{"-m", "serena.cli", "start-mcp-server"}, cmd.Args)
	assert.Equal(t, []core.EnvVar{}, cmd.Env)
}

func TestSynthesizeDiscoveryErrorPropagates(t *testing.T) {
	fs := afero.NewMemMapFs()
	discErr := &core.DiscoveryError{Attempted: []string{"python3.12"}}
	s := newTestSynthesizer(&stubFinder{err: discErr}, fs, "linux")

	_, err := s.Synthesize(context.Background(), nil)
	var got *core.DiscoveryError
	assert.ErrorAs(t, err, &got)
}

func TestSynthesizeScriptStrategy(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/venv/bin", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/venv/bin/serena", []byte("#!"), 0o755))

	s := newTestSynthesizer(&stubFinder{path: "/venv/bin/python3.11"}, fs, "linux")

	cmd, err := s.Synthesize(context.Background(), &core.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "/venv/bin/serena", cmd.Command)
	assert.Equal(t, []string{"start-mcp-server"}, cmd.Args)
}

func TestSynthesizeWindowsPathSanitization(t *testing.T) {
	fs := afero.NewMemMapFs()
	settings := &core.Settings{PythonExecutable: strPtr("/C:/Python312/python.exe")}

	t.Run("windows strips leading separator", func(t *testing.T) {
		s := newTestSynthesizer(&stubFinder{}, fs, "windows")
		cmd, err := s.Synthesize(context.Background(), settings)
		require.NoError(t, err)
		assert.Equal(t, "C:/Python312/python.exe", cmd.Command)
	})

	t.Run("other platforms are untouched", func(t *testing.T) {
		s := newTestSynthesizer(&stubFinder{}, fs, "darwin")
		cmd, err := s.Synthesize(context.Background(), settings)
		require.NoError(t, err)
		assert.Equal(t, "/C:/Python312/python.exe", cmd.Command)
	})
}

func TestSynthesizeEnvironmentStableOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	settings := &core.Settings{
		PythonExecutable: strPtr("/custom/python"),
		Environment: map[string]string{
			"SERENA_LOG_LEVEL": "debug",
			"API_KEY":          "secret",
			"ZZZ":              "last",
		},
	}

	s := newTestSynthesizer(&stubFinder{}, fs, "linux")

	cmd, err := s.Synthesize(context.Background(), settings)
	require.NoError(t, err)
	assert.Equal(t, []core.EnvVar{
		{Name: "API_KEY", Value: "secret"},
		{Name: "SERENA_LOG_LEVEL", Value: "debug"},
		{Name: "ZZZ", Value: "last"},
	}, cmd.Env)
}

func TestSynthesizeInvalidEnvironmentName(t *testing.T) {
	fs := afero.NewMemMapFs()
	settings := &core.Settings{
		PythonExecutable: strPtr("/custom/python"),
		Environment:      map[string]string{"FOO=BAR": "x"},
	}

	s := newTestSynthesizer(&stubFinder{}, fs, "linux")

	_, err := s.Synthesize(context.Background(), settings)
	assert.Error(t, err)
}

func TestSynthesizeIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	settings := &core.Settings{
		PythonExecutable: strPtr("/custom/python"),
		Environment:      map[string]string{"B": "2", "A": "1"},
	}

	s := newTestSynthesizer(&stubFinder{}, fs, "linux")

	first, err := s.Synthesize(context.Background(), settings)
	require.NoError(t, err)
	second, err := s.Synthesize(context.Background(), settings)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSynthesizeNeverReturnsEmptyCommand(t *testing.T) {
	fs := afero.NewMemMapFs()

	// A finder that misbehaves and returns an empty path with no error.
	s := newTestSynthesizer(&stubFinder{path: ""}, fs, "linux")

	_, err := s.Synthesize(context.Background(), &core.Settings{})
	assert.ErrorIs(t, err, core.ErrEmptyPythonPath)
}
