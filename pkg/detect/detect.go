// Package detect extracts file dependencies from source code. Each language
// detector returns references split into two confidence tiers: certain
// imports resolve to files that exist on disk, possible imports are raw
// tokens that could not be resolved.
package detect

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language identifies a supported source language.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangCPP        Language = "cpp"
	LangRust       Language = "rust"
	LangUnknown    Language = "unknown"
)

// LanguageForPath determines the language from a file extension.
func LanguageForPath(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return LangPython
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		return LangJavaScript
	case ".c", ".h", ".cpp", ".hpp", ".cc", ".hh", ".cxx":
		return LangCPP
	case ".rs":
		return LangRust
	default:
		return LangUnknown
	}
}

// Supported reports whether a detector exists for the file.
func Supported(path string) bool {
	return LanguageForPath(path) != LangUnknown
}

// Result is the outcome of scanning one file.
type Result struct {
	Certain  []string
	Possible []string
}

// Detector runs language-specific dependency extraction. It owns a
// tree-sitter parser and must be closed after use.
type Detector struct {
	parser *sitter.Parser
}

// New creates a detector.
func New() *Detector {
	return &Detector{parser: sitter.NewParser()}
}

// Close releases parser resources.
func (d *Detector) Close() {
	d.parser.Close()
}

// Detect scans source for dependencies. Unsupported extensions yield an
// empty result. Parse problems degrade to partial or empty results rather
// than errors; a scan never fails because one file is malformed.
func (d *Detector) Detect(path string, source []byte) Result {
	var res Result
	switch LanguageForPath(path) {
	case LangPython:
		res = d.detectPython(path, source)
	case LangJavaScript:
		res = detectJavaScript(path, source)
	case LangCPP:
		res = detectC(path, source)
	case LangRust:
		res = detectRust(path, source)
	}
	return res.normalize()
}

// normalize dedupes and sorts both tiers and drops possible tokens that
// already appear as certain imports.
func (r Result) normalize() Result {
	certain := dedupeSorted(r.Certain)
	seen := make(map[string]struct{}, len(certain))
	for _, c := range certain {
		seen[c] = struct{}{}
	}
	var possible []string
	for _, p := range dedupeSorted(r.Possible) {
		if _, ok := seen[p]; !ok {
			possible = append(possible, p)
		}
	}
	return Result{Certain: certain, Possible: possible}
}

func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// firstExisting returns the first candidate that is an existing regular
// file, as an absolute cleaned path, or "".
func firstExisting(candidates ...string) string {
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		return filepath.Clean(abs)
	}
	return ""
}
