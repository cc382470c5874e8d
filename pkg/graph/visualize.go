package graph

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/admica/file-rank-mcp/pkg/models"
)

// unrankedSentinel sorts files without a rank after every ranked file.
const unrankedSentinel = 999

// Visualize renders an ASCII dependency tree rooted at path, plus the files
// that depend on it. maxDepth <= 0 uses the engine default. Files already
// shown in the tree, and files at the depth limit, appear once more as
// terminal leaves instead of being expanded again, so cyclic graphs render
// in finite space.
func (e *Engine) Visualize(path string, maxDepth int) (models.Visualization, error) {
	key, err := canonical(path)
	if err != nil {
		return models.Visualization{}, err
	}
	if maxDepth <= 0 {
		maxDepth = e.maxDepth
	}

	rec, err := e.Record(key)
	if err != nil {
		return models.Visualization{}, err
	}

	cwd, _ := os.Getwd()
	v := &treeRenderer{engine: e, cwd: cwd, maxDepth: maxDepth, visited: make(map[string]bool)}
	tree := v.build(key, 0, "", true)

	dependents, err := e.Dependents(key)
	if err != nil {
		return models.Visualization{}, err
	}
	depLines := make([]string, 0, len(dependents))
	for _, dep := range dependents {
		depLines = append(depLines, "→ "+v.label(dep))
	}

	return models.Visualization{
		Tree:       tree,
		Dependents: depLines,
		Stats: models.TreeStats{
			CertainDependencies: len(rec.Imports),
			PossibleImports:     len(rec.PossibleImports),
			DependentsCount:     len(dependents),
			Depth:               maxDepth,
		},
	}, nil
}

type treeRenderer struct {
	engine   *Engine
	cwd      string
	maxDepth int
	visited  map[string]bool
}

func (v *treeRenderer) build(path string, depth int, prefix string, isLast bool) []string {
	connector := ""
	childPrefix := prefix
	if depth > 0 {
		if isLast {
			connector = "└── "
			childPrefix = prefix + "    "
		} else {
			connector = "├── "
			childPrefix = prefix + "│   "
		}
	}

	lines := []string{prefix + connector + v.label(path)}
	if depth >= v.maxDepth {
		return lines
	}

	children := v.childrenOf(path)
	for i, child := range children {
		last := i == len(children)-1
		if v.visited[child] {
			leafConnector := "├── "
			if last {
				leafConnector = "└── "
			}
			lines = append(lines, childPrefix+leafConnector+v.label(child))
			continue
		}
		v.visited[child] = true
		lines = append(lines, v.build(child, depth+1, childPrefix, last)...)
	}
	return lines
}

// childrenOf returns a file's certain imports sorted by rank ascending,
// unranked files last, ties by path.
func (v *treeRenderer) childrenOf(path string) []string {
	rec, ok := v.engine.records.Record(path)
	if !ok {
		return nil
	}
	children := append([]string(nil), rec.Imports...)
	sort.SliceStable(children, func(i, j int) bool {
		ri, rj := v.rankOr(children[i]), v.rankOr(children[j])
		if ri != rj {
			return ri < rj
		}
		return children[i] < children[j]
	})
	return children
}

func (v *treeRenderer) rankOr(path string) int {
	if rank, ok := v.engine.ranks.RankOf(path); ok {
		return rank
	}
	return unrankedSentinel
}

func (v *treeRenderer) label(path string) string {
	display := path
	if v.cwd != "" {
		if rel, err := filepath.Rel(v.cwd, path); err == nil {
			display = rel
		}
	}
	if rank, ok := v.engine.ranks.RankOf(path); ok {
		return fmt.Sprintf("%s [rank: %d]", display, rank)
	}
	return display
}
