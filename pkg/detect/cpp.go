package detect

import (
	"path/filepath"
	"regexp"
)

var (
	includeSystemRe = regexp.MustCompile(`(?m)^\s*#\s*include\s*<([^>]+)>`)
	includeLocalRe  = regexp.MustCompile(`(?m)^\s*#\s*include\s*"([^"]+)"`)
)

// detectC handles C and C++. System includes never resolve to project
// files; quoted includes are tried relative to the file, then against a
// sibling include/ directory, then the parent's.
func detectC(path string, source []byte) Result {
	dir := filepath.Dir(path)
	var res Result
	text := string(source)

	for _, m := range includeSystemRe.FindAllStringSubmatch(text, -1) {
		res.Possible = append(res.Possible, m[1])
	}

	for _, m := range includeLocalRe.FindAllStringSubmatch(text, -1) {
		header := m[1]
		resolved := firstExisting(
			filepath.Join(dir, header),
			filepath.Join(dir, "include", header),
			filepath.Join(filepath.Dir(dir), "include", header),
		)
		if resolved != "" {
			res.Certain = append(res.Certain, resolved)
		} else {
			res.Possible = append(res.Possible, header)
		}
	}
	return res
}
