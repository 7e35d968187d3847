package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

func TestInitialize_CreatesHomeAndConfig(t *testing.T) {
	t.Setenv("NEO4J_PASSWORD", "secret")
	homeDir := filepath.Join(t.TempDir(), ".graphsync")

	result, err := Initialize(Options{HomeDir: homeDir})
	require.NoError(t, err)

	assert.Equal(t, homeDir, result.HomeDir)
	assert.True(t, result.ConfigCreated)
	assert.Empty(t, result.Warnings)

	content, err := os.ReadFile(result.ConfigPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "source:")
	assert.Contains(t, string(content), "${NEO4J_PASSWORD}")
}

func TestInitialize_ExistingConfigPreserved(t *testing.T) {
	t.Setenv("NEO4J_PASSWORD", "secret")
	homeDir := filepath.Join(t.TempDir(), ".graphsync")

	_, err := Initialize(Options{HomeDir: homeDir})
	require.NoError(t, err)

	configPath := filepath.Join(homeDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("# edited\n"), 0600))

	result, err := Initialize(Options{HomeDir: homeDir})
	require.NoError(t, err)

	assert.False(t, result.ConfigCreated)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "already exists")

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "# edited\n", string(content))
}

func TestInitialize_ForceOverwrites(t *testing.T) {
	t.Setenv("NEO4J_PASSWORD", "secret")
	homeDir := filepath.Join(t.TempDir(), ".graphsync")

	_, err := Initialize(Options{HomeDir: homeDir})
	require.NoError(t, err)

	configPath := filepath.Join(homeDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("# edited\n"), 0600))

	result, err := Initialize(Options{HomeDir: homeDir, Force: true})
	require.NoError(t, err)

	assert.True(t, result.ConfigCreated)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "graph:")
}

func TestInitialize_WarnsWhenPasswordUnset(t *testing.T) {
	t.Setenv("NEO4J_PASSWORD", "")
	homeDir := filepath.Join(t.TempDir(), ".graphsync")

	result, err := Initialize(Options{HomeDir: homeDir})
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "NEO4J_PASSWORD")
}

func TestInitialize_HomeDirBlockedByFile(t *testing.T) {
	tmp := t.TempDir()
	blocked := filepath.Join(tmp, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0600))

	_, err := Initialize(Options{HomeDir: filepath.Join(blocked, "home")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.NewError(types.INIT_DIRS_FAILED, "")))
}
