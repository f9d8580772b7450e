package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/internal/config"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "apigen.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, cfg)
}

func TestLoadParsesProjectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apigen.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
language = "zig"
output = "out/generated.zig"
implementation = true
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zig", cfg.Language)
	assert.Equal(t, "out/generated.zig", cfg.Output)
	assert.True(t, cfg.Implementation)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apigen.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}
