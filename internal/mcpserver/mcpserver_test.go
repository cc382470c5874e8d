package mcpserver

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateManifest(t *testing.T) {
	data, err := GenerateManifest("1.2.3")
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "io.github.admica/file-rank-mcp", m.Name)
	assert.Equal(t, "1.2.3", m.Version)
	require.Len(t, m.Packages, 1)
	assert.Equal(t, "oci", m.Packages[0].RegistryType)
	assert.Contains(t, m.Packages[0].Identifier, ":1.2.3")
	assert.Equal(t, "stdio", m.Packages[0].Transport.Type)
}

func TestGenerateManifest_EmptyVersion(t *testing.T) {
	data, err := GenerateManifest("")
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "0.0.0", m.Version)
}

func TestParseFrontmatter(t *testing.T) {
	desc, body := parseFrontmatter([]byte("---\ndescription: rank a codebase\n---\n\nDo the thing.\n"))
	assert.Equal(t, "rank a codebase", desc)
	assert.Equal(t, "Do the thing.\n", body)
}

func TestParseFrontmatter_NoFrontmatter(t *testing.T) {
	desc, body := parseFrontmatter([]byte("Just a prompt.\n"))
	assert.Empty(t, desc)
	assert.Equal(t, "Just a prompt.\n", body)
}

func TestParseFrontmatter_Unterminated(t *testing.T) {
	content := "---\ndescription: broken\n"
	desc, body := parseFrontmatter([]byte(content))
	assert.Empty(t, desc)
	assert.Equal(t, content, body)
}

func TestEmbeddedPrompts(t *testing.T) {
	entries, err := promptFiles.ReadDir("prompts")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		content, err := promptFiles.ReadFile("prompts/" + entry.Name())
		require.NoError(t, err)
		desc, body := parseFrontmatter(content)
		assert.NotEmpty(t, desc, "prompt %s needs a description", entry.Name())
		assert.NotEmpty(t, strings.TrimSpace(body), "prompt %s needs a body", entry.Name())
	}
}

func TestToolDescriptions(t *testing.T) {
	descriptions := []string{
		describeRankFile(),
		describeDeleteFile(),
		describeGetFile(),
		describeGetAllFiles(),
		describeGetFilesByDir(),
		describeUpdateDependencies(),
		describeScanAllDependencies(),
		describeGetDependencies(),
		describeGetDependents(),
		describeVisualizeDependencies(),
		describeFindCycles(),
		describeGenerateSummary(),
	}
	for _, d := range descriptions {
		assert.NotEmpty(t, d)
	}
}
