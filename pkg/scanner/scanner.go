// Package scanner discovers rankable source files in a directory tree. It
// honors .gitignore and configured exclusions, keeps only files a language
// detector exists for, and reports which are already tracked.
package scanner

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/sourcegraph/conc/pool"

	"github.com/admica/file-rank-mcp/pkg/config"
	"github.com/admica/file-rank-mcp/pkg/detect"
)

// Candidate is a discovered source file.
type Candidate struct {
	Path     string `json:"path" toon:"path"`
	Language string `json:"language" toon:"language"`
	Lines    int    `json:"lines" toon:"lines"`
	Ranked   bool   `json:"ranked" toon:"ranked"`
}

// Scanner walks directories for candidate files.
type Scanner struct {
	config   *config.Config
	matchers []gitignore.Matcher
}

// New creates a scanner.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// findGitRoot walks upward looking for a .git directory.
func findGitRoot(start string) string {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadExcludePatterns combines config patterns with .gitignore files found
// anywhere in the repository.
func (s *Scanner) loadExcludePatterns(root string) {
	var patterns []gitignore.Pattern
	for _, pattern := range s.config.Discover.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}

	if s.config.Discover.Gitignore {
		if gitRoot := findGitRoot(root); gitRoot != "" {
			fsys := osfs.New(gitRoot)
			if gitPatterns, err := gitignore.ReadPatterns(fsys, nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}

	if len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

func (s *Scanner) isExcluded(path string, isDir bool) bool {
	if len(s.matchers) == 0 {
		return false
	}
	parts := strings.Split(path, string(filepath.Separator))
	for _, m := range s.matchers {
		if m.Match(parts, isDir) {
			return true
		}
	}
	return false
}

// Discover walks root and returns every supported source file, sorted by
// path. isRanked marks files that are already tracked; pass nil when the
// distinction does not matter. Line counts are gathered concurrently; the
// walk itself is sequential.
func (s *Scanner) Discover(root string, isRanked func(path string) bool) ([]Candidate, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	s.loadExcludePatterns(absRoot)

	var paths []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		relPath, _ := filepath.Rel(absRoot, path)

		if d.IsDir() {
			if path != absRoot && (s.isExcluded(relPath, true) || s.config.ShouldExclude(relPath+string(filepath.Separator))) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.isExcluded(relPath, false) || s.config.ShouldExclude(relPath) {
			return nil
		}
		if detect.Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	candidates := make([]Candidate, 0, len(paths))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(runtime.NumCPU() * 2)
	for _, path := range paths {
		p.Go(func() {
			c := Candidate{
				Path:     path,
				Language: string(detect.LanguageForPath(path)),
			}
			if data, err := os.ReadFile(path); err == nil {
				c.Lines = countLines(data)
			}
			if isRanked != nil {
				c.Ranked = isRanked(path)
			}
			mu.Lock()
			candidates = append(candidates, c)
			mu.Unlock()
		})
	}
	p.Wait()

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})
	return candidates, nil
}

func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
