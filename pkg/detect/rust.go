package detect

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	rustModRe    = regexp.MustCompile(`(?m)^\s*(?:pub(?:\([^)]*\))?\s+)?mod\s+([A-Za-z_][A-Za-z0-9_]*)`)
	rustUseRe    = regexp.MustCompile(`(?m)^\s*(?:pub(?:\([^)]*\))?\s+)?use\s+([^;]+);`)
	rustExternRe = regexp.MustCompile(`(?m)^\s*extern\s+crate\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// detectRust resolves mod declarations against the module file layout
// (name.rs, then name/mod.rs). Use declarations and extern crates cannot be
// tied to files without building the crate graph, so they stay possible.
func detectRust(path string, source []byte) Result {
	dir := filepath.Dir(path)
	var res Result
	text := string(source)

	for _, m := range rustModRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		resolved := firstExisting(
			filepath.Join(dir, name+".rs"),
			filepath.Join(dir, name, "mod.rs"),
		)
		if resolved != "" {
			res.Certain = append(res.Certain, resolved)
		} else {
			res.Possible = append(res.Possible, name)
		}
	}

	for _, m := range rustUseRe.FindAllStringSubmatch(text, -1) {
		if token := normalizeUsePath(m[1]); token != "" {
			res.Possible = append(res.Possible, token)
		}
	}

	for _, m := range rustExternRe.FindAllStringSubmatch(text, -1) {
		res.Possible = append(res.Possible, m[1])
	}
	return res
}

// normalizeUsePath reduces a use-path to its module portion: path prefixes
// (crate::, self::, super::) are stripped, trailing item segments (glob,
// brace groups, capitalized type names) dropped, and the rest joined with
// dots so the last segment names a module.
func normalizeUsePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, " as "); i >= 0 {
		raw = raw[:i]
	}

	segments := strings.Split(raw, "::")
	var keep []string
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		switch {
		case seg == "", seg == "crate", seg == "self", seg == "super":
			continue
		case seg == "*", strings.HasPrefix(seg, "{"):
			// glob or group import, everything after is items
		case seg[0] >= 'A' && seg[0] <= 'Z':
			// convention: capitalized segments are types or traits
		default:
			keep = append(keep, seg)
			continue
		}
		break
	}
	return strings.Join(keep, ".")
}
