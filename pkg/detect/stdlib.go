package detect

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed pystdlib.txt
var pythonStdlibList string

var pythonStdlib = sync.OnceValue(func() map[string]struct{} {
	set := make(map[string]struct{}, 256)
	for _, line := range strings.Split(pythonStdlibList, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = struct{}{}
	}
	return set
})

// isPythonStdlib reports whether a top-level module name belongs to the
// Python standard library.
func isPythonStdlib(module string) bool {
	_, ok := pythonStdlib()[module]
	return ok
}
