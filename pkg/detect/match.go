package detect

import (
	"path/filepath"
	"strings"
)

// Promote upgrades possible tokens into certain imports by matching them
// against tracked file paths. A token matches a tracked path when it equals
// the path's stem, its last dot-separated segment equals the stem, or it
// ends with the path's basename. The first match in tracked order wins, so
// callers pass the list in a deterministic order. Promotion never removes
// an existing certain import and never adds a duplicate.
func Promote(res Result, tracked []string) Result {
	if len(res.Possible) == 0 || len(tracked) == 0 {
		return res
	}

	certain := make(map[string]struct{}, len(res.Certain))
	for _, c := range res.Certain {
		certain[c] = struct{}{}
	}

	var remaining []string
	for _, token := range res.Possible {
		target := ""
		for _, path := range tracked {
			if tokenMatches(token, path) {
				target = path
				break
			}
		}
		if target == "" {
			remaining = append(remaining, token)
			continue
		}
		if _, ok := certain[target]; !ok {
			certain[target] = struct{}{}
			res.Certain = append(res.Certain, target)
		}
	}

	res.Possible = remaining
	return res.normalize()
}

func tokenMatches(token, path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if token == stem || token == base {
		return true
	}
	if i := strings.LastIndex(token, "."); i >= 0 && token[i+1:] == stem {
		return true
	}
	return strings.HasSuffix(token, base)
}
