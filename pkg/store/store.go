// Package store persists ranked files and their dependency records in a
// single JSON document. The whole document is loaded at open and flushed
// after every mutation.
package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/admica/file-rank-mcp/pkg/models"
)

// DefaultSummary is recorded when a file is ranked without one.
const DefaultSummary = "No summary provided."

// ErrInvalidRank is returned for ranks outside 1..10.
var ErrInvalidRank = errors.New("rank must be between 1 (most important) and 10")

//go:embed schema.json
var schemaJSON string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("store.schema.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("store.schema.json")
})

type document struct {
	Files        map[string]models.TrackedFile      `json:"files"`
	Dependencies map[string]models.DependencyRecord `json:"dependencies"`
}

// Store owns both the ranking and dependency collections. All methods are
// safe for concurrent use; the underlying file sees one writer at a time.
type Store struct {
	mu      sync.Mutex
	path    string
	data    document
	loadErr error
}

// Open loads the data file at path, creating empty state when the file does
// not exist. A corrupt or schema-invalid file also yields empty state; the
// problem is reported through LoadIssue so callers can warn instead of
// failing.
func Open(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving data file path: %w", err)
	}

	s := &Store{path: abs}
	s.data.Files = make(map[string]models.TrackedFile)
	s.data.Dependencies = make(map[string]models.DependencyRecord)

	raw, err := os.ReadFile(abs)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	if err := s.decode(raw); err != nil {
		s.loadErr = err
		s.data.Files = make(map[string]models.TrackedFile)
		s.data.Dependencies = make(map[string]models.DependencyRecord)
	}
	return s, nil
}

func (s *Store) decode(raw []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compiling data schema: %w", err)
	}
	value, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return fmt.Errorf("parsing data file: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("validating data file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding data file: %w", err)
	}
	if doc.Files != nil {
		s.data.Files = doc.Files
	}
	if doc.Dependencies != nil {
		s.data.Dependencies = doc.Dependencies
	}
	return nil
}

// LoadIssue reports why existing data was discarded at open, if it was.
func (s *Store) LoadIssue() error {
	return s.loadErr
}

// Path returns the absolute data file location.
func (s *Store) Path() string {
	return s.path
}

// Canonical converts a user-supplied path to the absolute cleaned form used
// as a store key.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding data file: %w", err)
	}
	if err := os.WriteFile(s.path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}
	return nil
}

// RankFile records or overwrites a file's rank and summary. The file must
// exist on disk and the rank must be within 1..10.
func (s *Store) RankFile(path string, rank int, summary string) (models.FileEntry, error) {
	if rank < 1 || rank > 10 {
		return models.FileEntry{}, fmt.Errorf("%w: got %d", ErrInvalidRank, rank)
	}
	key, err := Canonical(path)
	if err != nil {
		return models.FileEntry{}, err
	}
	info, err := os.Stat(key)
	if err != nil || info.IsDir() {
		return models.FileEntry{}, fmt.Errorf("file does not exist: %s", key)
	}
	if summary == "" {
		summary = DefaultSummary
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Files[key] = models.TrackedFile{Rank: rank, Summary: summary}
	if err := s.flush(); err != nil {
		return models.FileEntry{}, err
	}
	return models.FileEntry{Path: key, Rank: rank, Summary: summary}, nil
}

// GetFile looks up a tracked file by path.
func (s *Store) GetFile(path string) (models.FileEntry, bool) {
	key, err := Canonical(path)
	if err != nil {
		return models.FileEntry{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tf, ok := s.data.Files[key]
	if !ok {
		return models.FileEntry{}, false
	}
	return models.FileEntry{Path: key, Rank: tf.Rank, Summary: tf.Summary}, true
}

// DeleteFile removes a file's ranking entry. Unknown paths are a no-op.
func (s *Store) DeleteFile(path string) error {
	key, err := Canonical(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.Files[key]; !ok {
		return nil
	}
	delete(s.data.Files, key)
	return s.flush()
}

// AllFiles lists every tracked file, most important first, ties by path.
func (s *Store) AllFiles() []models.FileEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortEntries(s.data.Files, func(string) bool { return true })
}

// FilesInDir lists tracked files under a directory (recursively).
func (s *Store) FilesInDir(dir string) ([]models.FileEntry, error) {
	prefix, err := Canonical(dir)
	if err != nil {
		return nil, err
	}
	prefix += string(filepath.Separator)

	s.mu.Lock()
	defer s.mu.Unlock()
	return sortEntries(s.data.Files, func(path string) bool {
		return strings.HasPrefix(path, prefix)
	}), nil
}

func sortEntries(files map[string]models.TrackedFile, keep func(string) bool) []models.FileEntry {
	entries := make([]models.FileEntry, 0, len(files))
	for path, tf := range files {
		if keep(path) {
			entries = append(entries, models.FileEntry{Path: path, Rank: tf.Rank, Summary: tf.Summary})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rank != entries[j].Rank {
			return entries[i].Rank < entries[j].Rank
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// TrackedPaths returns every tracked path sorted ascending.
func (s *Store) TrackedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.data.Files))
	for path := range s.data.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// RankOf returns the rank for a tracked path.
func (s *Store) RankOf(path string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tf, ok := s.data.Files[path]
	if !ok {
		return 0, false
	}
	return tf.Rank, true
}

// Record returns the dependency record for a path.
func (s *Store) Record(path string) (models.DependencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data.Dependencies[path]
	return rec, ok
}

// Records returns a copy of every dependency record keyed by path.
func (s *Store) Records() map[string]models.DependencyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.DependencyRecord, len(s.data.Dependencies))
	for path, rec := range s.data.Dependencies {
		out[path] = rec
	}
	return out
}

// PutRecord replaces a file's dependency record wholesale.
func (s *Store) PutRecord(path string, rec models.DependencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Dependencies[path] = rec
	return s.flush()
}

// DeleteRecord drops a file's dependency record. Unknown paths are a no-op.
func (s *Store) DeleteRecord(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.Dependencies[path]; !ok {
		return nil
	}
	delete(s.data.Dependencies, path)
	return s.flush()
}

// DropImport removes path from the certain imports of every record, so
// deleted files leave no dangling reverse references.
func (s *Store) DropImport(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for owner, rec := range s.data.Dependencies {
		kept := rec.Imports[:0:0]
		for _, imp := range rec.Imports {
			if imp != path {
				kept = append(kept, imp)
			}
		}
		if len(kept) != len(rec.Imports) {
			rec.Imports = kept
			s.data.Dependencies[owner] = rec
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.flush()
}
