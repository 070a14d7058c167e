package core

import (
	"regexp"
	"sort"
	"strings"
)

// includePattern matches an include directive embedded in a document body,
// e.g. {include:shared/style-guide}. Identifiers use the same character
// set as slash-separated file paths without extensions.
var includePattern = regexp.MustCompile(`\{include:([A-Za-z0-9._/-]+)\}`)

// ScanIncludes returns the include edges found in doc's body, in order of
// appearance, with 1-based line numbers.
func ScanIncludes(doc Document) []IncludeEdge {
	matches := includePattern.FindAllStringSubmatchIndex(doc.Body, -1)
	if len(matches) == 0 {
		return nil
	}

	edges := make([]IncludeEdge, 0, len(matches))
	for _, m := range matches {
		target := doc.Body[m[2]:m[3]]
		line := 1 + strings.Count(doc.Body[:m[0]], "\n")
		edges = append(edges, IncludeEdge{From: doc.ID, To: target, Line: line})
	}
	return edges
}

// Graph is the include dependency graph over one merged document set.
// Edges are discarded after composition; the graph is never persisted.
type Graph struct {
	edges map[string][]IncludeEdge
}

// BuildGraph scans every merged document for include directives, validates
// that each target exists, and verifies the graph is acyclic. Documents
// are processed in lexicographic identifier order so that failures are
// deterministic regardless of map iteration.
func BuildGraph(merged map[string]Document) (*Graph, error) {
	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	g := &Graph{edges: make(map[string][]IncludeEdge, len(merged))}
	for _, id := range ids {
		edges := ScanIncludes(merged[id])
		for _, e := range edges {
			if _, ok := merged[e.To]; !ok {
				return nil, &UnresolvedIncludeError{From: e.From, Missing: e.To, Line: e.Line}
			}
		}
		if len(edges) > 0 {
			g.edges[id] = edges
		}
	}

	if err := g.checkCycles(ids); err != nil {
		return nil, err
	}
	return g, nil
}

// Edges returns the outgoing include edges of one document, in body order.
func (g *Graph) Edges(id string) []IncludeEdge {
	return g.edges[id]
}

// EdgeCount returns the total number of include edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.edges {
		n += len(edges)
	}
	return n
}

// Three-color DFS marking. A back-edge to a gray node is the cycle signal.
type nodeColor int

const (
	colorWhite nodeColor = iota
	colorGray
	colorBlack
)

func (g *Graph) checkCycles(roots []string) error {
	colors := make(map[string]nodeColor, len(roots))
	var stack []string

	var visit func(id string) error
	visit = func(id string) error {
		colors[id] = colorGray
		stack = append(stack, id)

		for _, e := range g.edges[id] {
			switch colors[e.To] {
			case colorGray:
				// Cut the stack down to where the cycle re-enters.
				start := 0
				for i, s := range stack {
					if s == e.To {
						start = i
						break
					}
				}
				path := make([]string, len(stack)-start)
				copy(path, stack[start:])
				return &CyclicIncludeError{Path: path}
			case colorWhite:
				if err := visit(e.To); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		colors[id] = colorBlack
		return nil
	}

	for _, id := range roots {
		if colors[id] == colorWhite {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}
