package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "file_rankings.json", cfg.DataFile)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Discover.Gitignore)
	assert.Contains(t, cfg.Discover.Dirs, "node_modules")
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filerank.toml")
	content := `
data_file = "rankings.json"
max_depth = 5

[discover]
dirs = ["generated"]
gitignore = false

[output]
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rankings.json", cfg.DataFile)
	assert.Equal(t, 5, cfg.MaxDepth)
	assert.Equal(t, []string{"generated"}, cfg.Discover.Dirs)
	assert.False(t, cfg.Discover.Gitignore)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filerank.yaml")
	content := "data_file: custom.json\nmax_depth: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.json", cfg.DataFile)
	assert.Equal(t, 2, cfg.MaxDepth)
	// Unset sections keep defaults.
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()
	sep := string(filepath.Separator)

	assert.True(t, cfg.ShouldExclude("node_modules"+sep+"pkg"+sep+"index.js"))
	assert.True(t, cfg.ShouldExclude("src"+sep+"__pycache__"+sep+"mod.py"))
	assert.True(t, cfg.ShouldExclude("assets"+sep+"app.min.js"))
	assert.False(t, cfg.ShouldExclude("src"+sep+"main.py"))
	assert.False(t, cfg.ShouldExclude("builder.py"))
}
