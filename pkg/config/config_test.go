package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeFolder(t *testing.T) {
	root := t.TempDir()

	created, err := InitializeFolder(root)
	require.NoError(t, err)
	assert.True(t, created)

	for _, p := range []string{"config.json", "requests", "environments", "collections", "environments/dev.yaml"} {
		_, err := os.Stat(filepath.Join(root, FolderName, p))
		assert.NoError(t, err, p)
	}

	// second run leaves an edited config alone
	require.NoError(t, os.WriteFile(ConfigPath(root), []byte(`{"theme":"light"}`), 0644))
	created, err = InitializeFolder(root)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(ConfigPath(root))
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"light"}`, string(data))
}

func TestInitializeFolder_RestoresMissingDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(Dir(root), 0755))

	_, err := InitializeFolder(root)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(Dir(root), "collections"))
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		v, err := NewViper(ConfigPath(t.TempDir()))
		require.NoError(t, err)
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file and env override", func(t *testing.T) {
		root := t.TempDir()
		_, err := InitializeFolder(root)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(ConfigPath(root), []byte(`{"collection_name":"Shop","default_target":"postman"}`), 0644))
		t.Setenv("REQPORT_DEFAULT_TARGET", "httpie")

		v, err := NewViper(ConfigPath(root))
		require.NoError(t, err)
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "Shop", cfg.CollectionName)
		assert.Equal(t, "httpie", cfg.DefaultTarget)
		assert.Equal(t, "dark", cfg.Theme)
	})

	t.Run("unknown target", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(Dir(root), 0755))
		require.NoError(t, os.WriteFile(ConfigPath(root), []byte(`{"default_target":"wget"}`), 0644))

		v, err := NewViper(ConfigPath(root))
		require.NoError(t, err)
		_, err = Load(v)
		assert.ErrorContains(t, err, "default_target")
	})

	t.Run("malformed file", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(Dir(root), 0755))
		require.NoError(t, os.WriteFile(ConfigPath(root), []byte(`{`), 0644))

		_, err := NewViper(ConfigPath(root))
		assert.Error(t, err)
	})
}
