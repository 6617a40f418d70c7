package launch

import (
	"testing"

	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectStrategyScript(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/venv/bin", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/venv/bin/serena", []byte("#!/venv/bin/python\n"), 0o755))

	sel, err := SelectStrategy(fs, "/venv/bin/python3.12")
	require.NoError(t, err)
	assert.Equal(t, StrategyScript, sel.Strategy)
	assert.Equal(t, "/venv/bin/serena", sel.Executable)
	assert.Equal(t, []string{"start-mcp-server"}, sel.Args)
}

func TestSelectStrategyModule(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/usr/bin", 0o755))

	sel, err := SelectStrategy(fs, "/usr/bin/python3.11")
	require.NoError(t, err)
	assert.Equal(t, StrategyModule, sel.Strategy)
	assert.Equal(t, "/usr/bin/python3.11", sel.Executable)
	assert.Equal(t, []string{"-m", "serena.cli", "start-mcp-server"}, sel.Args)
}

func TestSelectStrategyIgnoresDirectoryNamedLikeScript(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/usr/bin/serena", 0o755))

	sel, err := SelectStrategy(fs, "/usr/bin/python3.12")
	require.NoError(t, err)
	assert.Equal(t, StrategyModule, sel.Strategy)
}

func TestSelectStrategyNoParent(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := SelectStrategy(fs, "")
	assert.ErrorIs(t, err, core.ErrNoParentDir)

	_, err = SelectStrategy(fs, "/")
	assert.ErrorIs(t, err, core.ErrNoParentDir)
}
