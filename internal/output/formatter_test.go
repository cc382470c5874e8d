package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderable struct {
	text string
	data any
}

func (f fakeRenderable) RenderText(w io.Writer, colored bool) error {
	_, err := io.WriteString(w, f.text)
	return err
}

func (f fakeRenderable) RenderData() any { return f.data }

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatTOON, ParseFormat("TOON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("bogus"))
}

func TestOutput_RenderableDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	f, err := NewFormatter(FormatText, path, true)
	require.NoError(t, err)

	require.NoError(t, f.Output(fakeRenderable{text: "hello\n", data: map[string]int{"n": 1}}))
	require.NoError(t, f.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))
	// File output disables color regardless of the flag.
	assert.False(t, f.Colored())
}

func TestOutput_JSONUsesRenderData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	f, err := NewFormatter(FormatJSON, path, false)
	require.NoError(t, err)

	require.NoError(t, f.Output(fakeRenderable{text: "ignored", data: map[string]int{"n": 1}}))
	require.NoError(t, f.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, 1, decoded["n"])
}

func TestTable_RenderData(t *testing.T) {
	tbl := NewTable("", []string{"Rank", "Path"}, [][]string{{"1", "/a.py"}}, nil)
	data, ok := tbl.RenderData().([]map[string]string)
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "1", data[0]["Rank"])
	assert.Equal(t, "/a.py", data[0]["Path"])

	wrapped := NewTable("", nil, nil, "raw")
	assert.Equal(t, "raw", wrapped.RenderData())
}

func TestTable_RenderText(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable("Ranked Files", []string{"Rank", "Path"}, [][]string{
		{"1", "/a.py"},
		{"5", "/b.py"},
	}, nil)
	tbl.Footer = []string{"Total", "2"}

	require.NoError(t, tbl.RenderText(&buf, false))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Ranked Files\n============"))
	assert.Contains(t, out, "/a.py")
	assert.Contains(t, out, "/b.py")
	assert.Contains(t, out, "Total")
}
