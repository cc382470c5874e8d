package detect

import (
	"path/filepath"
	"regexp"
	"strings"
)

var jsSpecifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*import\s+[^'"]*?\bfrom\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?m)^\s*import\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?m)^\s*export\s+[^'"]*?\bfrom\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"]+)['"]\s*\)`),
}

var jsExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".json"}

// detectJavaScript covers both JavaScript and TypeScript. Only path-like
// specifiers (./ ../ /) can resolve to tracked files; bare package names
// stay possible.
func detectJavaScript(path string, source []byte) Result {
	dir := filepath.Dir(path)
	var res Result
	text := string(source)

	for _, re := range jsSpecifierPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			spec := m[1]
			if spec == "" {
				continue
			}
			if !isPathLike(spec) {
				res.Possible = append(res.Possible, spec)
				continue
			}
			if resolved := resolveJSPath(dir, spec); resolved != "" {
				res.Certain = append(res.Certain, resolved)
			} else {
				res.Possible = append(res.Possible, spec)
			}
		}
	}
	return res
}

func isPathLike(spec string) bool {
	return strings.HasPrefix(spec, "./") ||
		strings.HasPrefix(spec, "../") ||
		strings.HasPrefix(spec, "/")
}

// resolveJSPath tries the literal path, then known extensions, then an
// index file inside the directory the specifier names.
func resolveJSPath(dir, spec string) string {
	target := spec
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, spec)
	}

	candidates := []string{target}
	for _, ext := range jsExtensions {
		candidates = append(candidates, target+ext)
	}
	for _, ext := range jsExtensions {
		candidates = append(candidates, filepath.Join(target, "index"+ext))
	}
	return firstExisting(candidates...)
}
