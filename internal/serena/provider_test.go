package serena

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/quantmind-br/serenactl/internal/helpers"
	"github.com/quantmind-br/serenactl/internal/logging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(runner helpers.CommandRunner, fs afero.Fs) *Provider {
	return NewProviderWithDeps(runner, fs, logging.NewTestLogger(io.Discard))
}

// Environment: python3.12 on PATH reporting 3.12.1, no console script.
func TestResolveEndToEndModuleInvocation(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/usr/bin", 0o755))

	runner := &helpers.MockCommandRunner{
		LookPathFunc: func(name string) (string, error) {
			if name == "python3.12" {
				return "/usr/bin/python3.12", nil
			}
			return "", exec.ErrNotFound
		},
		RunCommandWithOutputFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
			if name == "/usr/bin/python3.12" {
				return "Python 3.12.1\n", "", nil
			}
			return "", "", errors.New("spawn failed")
		},
	}

	cmd, err := newTestProvider(runner, fs).ResolveLaunchCommand(context.Background(), &core.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3.12", cmd.Command)
	assert.Equal(t, []string{"-m", "serena.cli", "start-mcp-server"}, cmd.Args)
	assert.Empty(t, cmd.Env)
}

// Same environment, but the console script exists beside the interpreter.
func TestResolveEndToEndScriptInvocation(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/usr/bin", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/serena", []byte("#!"), 0o755))

	runner := &helpers.MockCommandRunner{
		LookPathFunc: func(name string) (string, error) {
			if name == "python3.12" {
				return "/usr/bin/python3.12", nil
			}
			return "", exec.ErrNotFound
		},
		RunCommandWithOutputFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
			if name == "/usr/bin/python3.12" {
				return "Python 3.12.1\n", "", nil
			}
			return "", "", errors.New("spawn failed")
		},
	}

	cmd, err := newTestProvider(runner, fs).ResolveLaunchCommand(context.Background(), &core.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/serena", cmd.Command)
	assert.Equal(t, []string{"start-mcp-server"}, cmd.Args)
}

func TestResolveEmptyOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	empty := ""
	settings := &core.Settings{PythonExecutable: &empty}

	_, err := newTestProvider(&helpers.MockCommandRunner{}, fs).
		ResolveLaunchCommand(context.Background(), settings)
	assert.ErrorIs(t, err, core.ErrEmptyPythonPath)
}

func TestDescribeConfiguration(t *testing.T) {
	spec := newTestProvider(&helpers.MockCommandRunner{}, afero.NewMemMapFs()).DescribeConfiguration()

	assert.Contains(t, spec.SetupInstructions, "serena-agent")
	assert.Contains(t, spec.SetupInstructions, "Python 3.11")

	var defaults map[string]any
	require.NoError(t, json.Unmarshal([]byte(spec.DefaultSettings), &defaults))
	value, present := defaults["python_executable"]
	assert.True(t, present)
	assert.Nil(t, value)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(spec.SettingsSchema), &schema))
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "python_executable")
	assert.Contains(t, props, "environment")
}

func TestAgentInstalled(t *testing.T) {
	fs := afero.NewMemMapFs()
	osRunner := helpers.NewOSCommandRunner()

	t.Run("import succeeds", func(t *testing.T) {
		runner := &helpers.MockCommandRunner{
			RunCommandWithOutputFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
				assert.True(t, strings.Contains(strings.Join(args, " "), "import serena"))
				return "", "", nil
			},
		}
		assert.True(t, newTestProvider(runner, fs).AgentInstalled(context.Background(), "/usr/bin/python3.12"))
	})

	t.Run("import fails with exit code", func(t *testing.T) {
		exitErr := fmt.Errorf("command failed: %w", exitError(t, osRunner))
		runner := &helpers.MockCommandRunner{
			RunCommandWithOutputFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
				return "", "ModuleNotFoundError", exitErr
			},
			GetExitCodeFunc: osRunner.GetExitCode,
		}
		assert.False(t, newTestProvider(runner, fs).AgentInstalled(context.Background(), "/usr/bin/python3.12"))
	})

	t.Run("spawn impossible counts as installed", func(t *testing.T) {
		runner := &helpers.MockCommandRunner{
			RunCommandWithOutputFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
				return "", "", errors.New("operation not permitted")
			},
			GetExitCodeFunc: osRunner.GetExitCode,
		}
		assert.True(t, newTestProvider(runner, fs).AgentInstalled(context.Background(), "/usr/bin/python3.12"))
	})
}

// exitError produces a real *exec.ExitError by running a failing command.
func exitError(t *testing.T, runner *helpers.OSCommandRunner) error {
	t.Helper()
	_, _, err := runner.RunCommandWithOutput(context.Background(), "sh", "-c", "exit 1")
	require.Error(t, err)
	return err
}
