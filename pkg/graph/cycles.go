package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Cycles finds groups of files that import each other, directly or through
// intermediaries: the strongly connected components of the certain-import
// relation with more than one member. Components and their members are
// sorted for stable output.
func (e *Engine) Cycles() [][]string {
	records := e.records.Records()
	if len(records) == 0 {
		return nil
	}

	g := simple.NewDirectedGraph()
	pathToID := make(map[string]int64)
	idToPath := make(map[int64]string)

	addNode := func(path string) int64 {
		if id, ok := pathToID[path]; ok {
			return id
		}
		id := int64(len(pathToID))
		pathToID[path] = id
		idToPath[id] = path
		g.AddNode(simple.Node(id))
		return id
	}

	// Deterministic node numbering; gonum simple graphs reject self-loops.
	owners := make([]string, 0, len(records))
	for owner := range records {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	for _, owner := range owners {
		from := addNode(owner)
		for _, imp := range records[owner].Imports {
			to := addNode(imp)
			if from != to {
				g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
			}
		}
	}

	var cycles [][]string
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) <= 1 {
			continue
		}
		members := make([]string, 0, len(scc))
		for _, node := range scc {
			members = append(members, idToPath[node.ID()])
		}
		sort.Strings(members)
		cycles = append(cycles, members)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}
