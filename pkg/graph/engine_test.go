package graph

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admica/file-rank-mcp/pkg/models"
	"github.com/admica/file-rank-mcp/pkg/store"
)

// fakeGraph is an in-memory RankSource + RecordStore for tests that do not
// need persistence.
type fakeGraph struct {
	ranks   map[string]int
	records map[string]models.DependencyRecord
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		ranks:   make(map[string]int),
		records: make(map[string]models.DependencyRecord),
	}
}

func (f *fakeGraph) TrackedPaths() []string {
	paths := make([]string, 0, len(f.ranks))
	for p := range f.ranks {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (f *fakeGraph) RankOf(path string) (int, bool) {
	rank, ok := f.ranks[path]
	return rank, ok
}

func (f *fakeGraph) Record(path string) (models.DependencyRecord, bool) {
	rec, ok := f.records[path]
	return rec, ok
}

func (f *fakeGraph) Records() map[string]models.DependencyRecord {
	out := make(map[string]models.DependencyRecord, len(f.records))
	for k, v := range f.records {
		out[k] = v
	}
	return out
}

func (f *fakeGraph) PutRecord(path string, rec models.DependencyRecord) error {
	f.records[path] = rec
	return nil
}

func (f *fakeGraph) DeleteRecord(path string) error {
	delete(f.records, path)
	return nil
}

func (f *fakeGraph) DropImport(path string) error {
	for owner, rec := range f.records {
		kept := rec.Imports[:0:0]
		for _, imp := range rec.Imports {
			if imp != path {
				kept = append(kept, imp)
			}
		}
		rec.Imports = kept
		f.records[owner] = rec
	}
	return nil
}

func write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}

func openStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(dir, "file_rankings.json"))
	require.NoError(t, err)
	return st
}

func TestScanOne_RecordsImports(t *testing.T) {
	dir := t.TempDir()
	a := write(t, filepath.Join(dir, "a.py"), "import b\nimport requests\n")
	b := write(t, filepath.Join(dir, "b.py"), "")

	st := openStore(t, dir)
	e := New(st, st)
	defer e.Close()

	rec, err := e.ScanOne(a)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, rec.Imports)
	assert.Equal(t, []string{"requests"}, rec.PossibleImports)
	assert.NotEmpty(t, rec.Fingerprint)

	stored, ok := st.Record(a)
	require.True(t, ok)
	assert.Equal(t, rec, stored)
}

func TestScanOne_MissingFile(t *testing.T) {
	st := openStore(t, t.TempDir())
	e := New(st, st)
	defer e.Close()

	_, err := e.ScanOne("/nonexistent/nope.py")
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestScanOne_WholesaleReplacement(t *testing.T) {
	dir := t.TempDir()
	a := write(t, filepath.Join(dir, "a.py"), "import b\n")
	write(t, filepath.Join(dir, "b.py"), "")

	st := openStore(t, dir)
	e := New(st, st)
	defer e.Close()

	rec, err := e.ScanOne(a)
	require.NoError(t, err)
	require.Len(t, rec.Imports, 1)

	write(t, filepath.Join(dir, "a.py"), "x = 1\n")
	rec, err = e.ScanOne(a)
	require.NoError(t, err)
	assert.Empty(t, rec.Imports)
	assert.Empty(t, rec.PossibleImports)
}

func TestScanOne_PromotesAgainstTrackedFiles(t *testing.T) {
	dir := t.TempDir()
	main := write(t, filepath.Join(dir, "main.rs"), "use crate::parser::Parser;\n")
	parser := write(t, filepath.Join(dir, "parser.rs"), "")

	st := openStore(t, dir)
	_, err := st.RankFile(parser, 2, "")
	require.NoError(t, err)

	e := New(st, st)
	defer e.Close()

	rec, err := e.ScanOne(main)
	require.NoError(t, err)
	assert.Equal(t, []string{parser}, rec.Imports)
	assert.Empty(t, rec.PossibleImports)
}

func TestScanAll_SkipsMissingAndCounts(t *testing.T) {
	dir := t.TempDir()
	a := write(t, filepath.Join(dir, "a.py"), "import b\n")
	b := write(t, filepath.Join(dir, "b.py"), "import sys\n")
	gone := write(t, filepath.Join(dir, "gone.py"), "")

	st := openStore(t, dir)
	for _, f := range []string{a, b, gone} {
		_, err := st.RankFile(f, 5, "")
		require.NoError(t, err)
	}
	require.NoError(t, os.Remove(gone))

	var seen []string
	e := New(st, st, WithProgress(func(path string) { seen = append(seen, path) }))
	defer e.Close()

	summary, err := e.ScanAll()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Scanned)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Certain)
	assert.Empty(t, summary.Failures)
	assert.Len(t, seen, 3)
}

func TestRemoveFile_PurgesReverseReferences(t *testing.T) {
	f := newFakeGraph()
	f.records["/p/a.py"] = models.DependencyRecord{Imports: []string{"/p/b.py"}}
	f.records["/p/b.py"] = models.DependencyRecord{Imports: []string{"/p/a.py"}}

	e := New(f, f)
	defer e.Close()

	require.NoError(t, e.RemoveFile("/p/b.py"))
	_, ok := f.records["/p/b.py"]
	assert.False(t, ok)
	assert.Empty(t, f.records["/p/a.py"].Imports)

	// Removing again is a no-op.
	require.NoError(t, e.RemoveFile("/p/b.py"))
}

func TestDependents(t *testing.T) {
	f := newFakeGraph()
	f.records["/p/a.py"] = models.DependencyRecord{Imports: []string{"/p/c.py"}}
	f.records["/p/b.py"] = models.DependencyRecord{Imports: []string{"/p/c.py"}}
	f.records["/p/c.py"] = models.DependencyRecord{}

	e := New(f, f)
	defer e.Close()

	deps, err := e.Dependents("/p/c.py")
	require.NoError(t, err)
	assert.Equal(t, []string{"/p/a.py", "/p/b.py"}, deps)

	deps, err = e.Dependents("/p/a.py")
	require.NoError(t, err)
	assert.Empty(t, deps)
}
