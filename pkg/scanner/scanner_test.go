package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admica/file-rank-mcp/pkg/config"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func baseNames(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = filepath.Base(c.Path)
	}
	return out
}

func TestDiscover_SupportedFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":   "import os\n",
		"lib.rs":    "fn main() {}\n",
		"notes.txt": "irrelevant\n",
		"README.md": "# readme\n",
	})

	s := New(nil)
	candidates, err := s.Discover(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib.rs", "main.py"}, baseNames(candidates))
}

func TestDiscover_ExcludesConfiguredDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":              "x = 1\n",
		"node_modules/dep.js": "module.exports = {}\n",
		"__pycache__/gen.py":  "\n",
	})

	s := New(config.DefaultConfig())
	candidates, err := s.Discover(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, baseNames(candidates))
}

func TestDiscover_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bundle.min.js": "!function(){}()\n",
		"app.js":        "import x from './x'\n",
	})

	s := New(config.DefaultConfig())
	candidates, err := s.Discover(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js"}, baseNames(candidates))
}

func TestDiscover_LinesAndRanked(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py": "one\ntwo\nthree",
		"b.py": "",
	})

	ranked := filepath.Join(root, "a.py")
	s := New(nil)
	candidates, err := s.Discover(root, func(path string) bool { return path == ranked })
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, 3, candidates[0].Lines)
	assert.True(t, candidates[0].Ranked)
	assert.Equal(t, "python", candidates[0].Language)
	assert.Equal(t, 0, candidates[1].Lines)
	assert.False(t, candidates[1].Ranked)
}

func TestDiscover_HonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.py":      "x = 1\n",
		"generated.py": "y = 2\n",
		".gitignore":   "generated.py\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	s := New(config.DefaultConfig())
	candidates, err := s.Discover(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.py"}, baseNames(candidates))
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(nil))
	assert.Equal(t, 1, countLines([]byte("x")))
	assert.Equal(t, 1, countLines([]byte("x\n")))
	assert.Equal(t, 2, countLines([]byte("x\ny\n")))
}
