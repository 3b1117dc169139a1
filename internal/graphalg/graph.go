// Package graphalg wraps gonum graph structures and implements the
// similarity-matrix and community-detection operations used for
// citation network analysis.
package graphalg

import (
	"gonum.org/v1/gonum/graph/simple"
)

// Graph is a directed graph over string-identified vertices. Vertex
// indices follow the order of the identifier slice passed to NewGraph,
// which keeps matrix rows and columns stable across runs.
type Graph struct {
	g   *simple.DirectedGraph
	ids []string
	idx map[string]int64
}

// NewGraph creates a directed graph containing one vertex per identifier.
func NewGraph(vertices []string) *Graph {
	gr := &Graph{
		g:   simple.NewDirectedGraph(),
		ids: append([]string(nil), vertices...),
		idx: make(map[string]int64, len(vertices)),
	}
	for i, id := range vertices {
		gr.idx[id] = int64(i)
		gr.g.AddNode(simple.Node(int64(i)))
	}
	return gr
}

// SetArc adds a directed edge between two known vertices. Unknown
// identifiers and self-loops are ignored.
func (gr *Graph) SetArc(source, target string) {
	from, ok := gr.idx[source]
	if !ok {
		return
	}
	to, ok := gr.idx[target]
	if !ok || from == to {
		return
	}
	if !gr.g.HasEdgeFromTo(from, to) {
		gr.g.SetEdge(gr.g.NewEdge(gr.g.Node(from), gr.g.Node(to)))
	}
}

// Order returns the number of vertices.
func (gr *Graph) Order() int {
	return len(gr.ids)
}

// ID returns the identifier at the given vertex index.
func (gr *Graph) ID(index int) string {
	return gr.ids[index]
}

// outNeighbors returns the vertex indices reachable by one arc from i.
func (gr *Graph) outNeighbors(i int) []int {
	var out []int
	it := gr.g.From(int64(i))
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	return out
}

// inNeighbors returns the vertex indices with an arc into i.
func (gr *Graph) inNeighbors(i int) []int {
	var in []int
	it := gr.g.To(int64(i))
	for it.Next() {
		in = append(in, int(it.Node().ID()))
	}
	return in
}
