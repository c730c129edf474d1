package workspace

import (
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
)

// BuildIncludeGraph turns the walk's edges into a directed graph rooted at
// the document. Cycles are legal: legacy include trees contain them, and the
// walk's seen-set already keeps traversal finite.
func BuildIncludeGraph(docPath string, walk *IncludeWalk) (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())

	if err := g.AddVertex(docPath); err != nil {
		return nil, fmt.Errorf("adding root vertex: %w", err)
	}
	for _, file := range walk.Files {
		// Duplicate vertices can appear when a file both includes and is
		// included; the first add wins.
		_ = g.AddVertex(file.Path)
	}
	for _, edge := range walk.Edges {
		_ = g.AddEdge(edge.From, edge.To)
	}
	return g, nil
}

// IncludeTreeLines renders the include graph as an indented tree in
// deterministic order, one line per edge traversal. Revisited files are
// marked instead of expanded again.
func IncludeTreeLines(docPath string, walk *IncludeWalk) []string {
	children := make(map[string][]string)
	for _, edge := range walk.Edges {
		children[edge.From] = append(children[edge.From], edge.To)
	}
	for _, list := range children {
		sort.Strings(list)
	}

	var lines []string
	visited := map[string]bool{}
	var render func(path string, depth int)
	render = func(path string, depth int) {
		indent := ""
		for i := 0; i < depth; i++ {
			indent += "  "
		}
		if visited[path] {
			lines = append(lines, indent+path+" (already shown)")
			return
		}
		visited[path] = true
		lines = append(lines, indent+path)
		for _, child := range children[path] {
			render(child, depth+1)
		}
	}
	render(docPath, 0)
	return lines
}
