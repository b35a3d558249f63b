package graph

import (
	"fmt"
	"sort"

	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

// Graph is a weighted undirected co-occurrence graph.
//
// Nodes keep the order in which they first appeared in the candidate
// sequence; that order drives export indexing and rank tie-breaking.
// A Graph is not modified after construction.
type Graph struct {
	nodes     []string
	index     map[string]int
	adj       []map[int]float64
	outWeight []float64
	edges     int
	selfLoops int
}

// Edge is an undirected weighted edge. U precedes V in node order
// (or equals it for a self-loop).
type Edge struct {
	U, V   string
	Weight float64
}

// Pair is an unordered node pair in canonical form (U <= V).
type Pair struct {
	U, V string
}

// NewPair returns the canonical pair for a and b.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{U: a, V: b}
}

func newGraph(capacity int) *Graph {
	return &Graph{
		index: make(map[string]int, capacity),
	}
}

// addNode registers label if unseen and returns its index.
func (g *Graph) addNode(label string) int {
	if i, ok := g.index[label]; ok {
		return i
	}
	i := len(g.nodes)
	g.index[label] = i
	g.nodes = append(g.nodes, label)
	g.adj = append(g.adj, nil)
	g.outWeight = append(g.outWeight, 0)
	return i
}

// addWeight accumulates w on the undirected edge (i, j).
func (g *Graph) addWeight(i, j int, w float64) {
	if g.adj[i] == nil {
		g.adj[i] = make(map[int]float64)
	}
	if _, ok := g.adj[i][j]; !ok {
		g.edges++
		if i == j {
			g.selfLoops++
		}
	}
	g.adj[i][j] += w
	g.outWeight[i] += w
	if i == j {
		return
	}
	if g.adj[j] == nil {
		g.adj[j] = make(map[int]float64)
	}
	g.adj[j][i] += w
	g.outWeight[j] += w
}

// FromEdges assembles a graph from an explicit node list and edge list.
// Nodes referenced by edges but missing from nodes are appended in edge
// order. Weights must be positive; repeated pairs accumulate.
func FromEdges(nodes []string, edges []Edge) (*Graph, error) {
	g := newGraph(len(nodes))
	for _, n := range nodes {
		g.addNode(n)
	}
	for _, e := range edges {
		if !(e.Weight > 0) {
			return nil, fmt.Errorf("edge %q-%q weight %v: %w", e.U, e.V, e.Weight, internalerr.ErrInvalidParameter)
		}
		g.addWeight(g.addNode(e.U), g.addNode(e.V), e.Weight)
	}
	return g, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of distinct undirected edges, self-loops included.
func (g *Graph) EdgeCount() int { return g.edges }

// Nodes returns the node labels in first-occurrence order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Index returns the zero-based position of label in node order.
func (g *Graph) Index(label string) (int, bool) {
	i, ok := g.index[label]
	return i, ok
}

// Label returns the node at position i.
func (g *Graph) Label(i int) string { return g.nodes[i] }

// Has reports whether label is a node of g.
func (g *Graph) Has(label string) bool {
	_, ok := g.index[label]
	return ok
}

// Weight returns the weight of the undirected edge (u, v), or 0.
func (g *Graph) Weight(u, v string) float64 {
	i, ok := g.index[u]
	if !ok {
		return 0
	}
	j, ok := g.index[v]
	if !ok {
		return 0
	}
	return g.adj[i][j]
}

// OutWeight returns the sum of weights of all edges incident to label.
// A self-loop contributes its weight once.
func (g *Graph) OutWeight(label string) float64 {
	i, ok := g.index[label]
	if !ok {
		return 0
	}
	return g.outWeight[i]
}

// Neighbor is an adjacent node and the connecting edge weight.
type Neighbor struct {
	Index  int
	Label  string
	Weight float64
}

// Neighbors returns the nodes adjacent to label, ordered by node index.
func (g *Graph) Neighbors(label string) []Neighbor {
	i, ok := g.index[label]
	if !ok {
		return nil
	}
	return g.neighborsOf(i)
}

func (g *Graph) neighborsOf(i int) []Neighbor {
	m := g.adj[i]
	out := make([]Neighbor, 0, len(m))
	for j, w := range m {
		out = append(out, Neighbor{Index: j, Label: g.nodes[j], Weight: w})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

// Adjacency calls fn for every directed arc (i -> j) with weight w,
// iterating sources in node order and targets in index order. Each
// undirected edge yields two arcs; a self-loop yields one.
func (g *Graph) Adjacency(fn func(i, j int, w float64)) {
	for i := range g.nodes {
		for _, n := range g.neighborsOf(i) {
			fn(i, n.Index, n.Weight)
		}
	}
}

// OutWeights returns the total incident weight per node, in node order.
func (g *Graph) OutWeights() []float64 {
	out := make([]float64, len(g.outWeight))
	copy(out, g.outWeight)
	return out
}

// Edges lists every undirected edge once, ordered by the index of the
// earlier endpoint and then the later one.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for i := range g.nodes {
		for _, n := range g.neighborsOf(i) {
			if n.Index < i {
				continue
			}
			out = append(out, Edge{U: g.nodes[i], V: n.Label, Weight: n.Weight})
		}
	}
	return out
}

// Stats summarises the shape of a graph.
type Stats struct {
	Nodes       int     `json:"nodes"`
	Edges       int     `json:"edges"`
	SelfLoops   int     `json:"self_loops"`
	Isolated    int     `json:"isolated"`
	TotalWeight float64 `json:"total_weight"`
	Density     float64 `json:"density"`
}

// Stats computes summary statistics. Density ignores self-loops.
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes:     len(g.nodes),
		Edges:     g.edges,
		SelfLoops: g.selfLoops,
	}
	for i := range g.nodes {
		if len(g.adj[i]) == 0 {
			s.Isolated++
		}
	}
	for _, e := range g.Edges() {
		s.TotalWeight += e.Weight
	}
	if n := s.Nodes; n > 1 {
		s.Density = float64(s.Edges-s.SelfLoops) / (float64(n) * float64(n-1) / 2)
	}
	return s
}
