package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "plain.db", cfg.FileName)
	require.True(t, cfg.History)
	require.Equal(t, "PlainDB", cfg.Author.Name)
	require.Equal(t, "plaindb@localhost", cfg.Author.Email)
	require.NotEmpty(t, cfg.DataDir)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data_dir: /var/lib/plaindb
file_name: prod.db
history: false
author:
  name: Ann
  email: ann@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/var/lib/plaindb", cfg.DataDir)
	require.Equal(t, "prod.db", cfg.FileName)
	require.False(t, cfg.History)
	require.Equal(t, "Ann", cfg.Author.Name)
	require.Equal(t, "ann@example.com", cfg.Author.Email)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("file_name: other.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "other.db", cfg.FileName)
	require.True(t, cfg.History)
	require.Equal(t, "PlainDB", cfg.Author.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
