package graph

import (
	"errors"
	"fmt"
	"iter"

	"github.com/matzehuels/graphkit/pkg/core/attr"
	"github.com/matzehuels/graphkit/pkg/core/value"
)

var (
	// ErrUnknownVertex is returned by [Graph.Validate] when an edge references a
	// vertex handle the graph never minted.
	ErrUnknownVertex = errors.New("unknown vertex")
)

// Vertex is a vertex handle. Handles are dense: 0..NumVertices()-1.
type Vertex int

// Edge is an edge handle. Handles are dense: 0..NumEdges()-1.
type Edge int

type edgeRec struct {
	source, target Vertex
}

// Graph is an attributed multigraph.
//
// The zero value is not usable - use New.
type Graph struct {
	directed bool
	edges    []edgeRec
	out      [][]Edge // vertex -> incident edges where it is the source
	in       [][]Edge // vertex -> incident edges where it is the target
	props    *attr.Store[Vertex, Edge]
}

// New creates an empty graph.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		props:    attr.New[Vertex, Edge](),
	}
}

// IsDirected reports whether edges are ordered pairs.
func (g *Graph) IsDirected() bool { return g.directed }

// Properties returns the graph's attribute store.
func (g *Graph) Properties() *attr.Store[Vertex, Edge] { return g.props }

// AddVertex adds an isolated vertex and returns its handle.
func (g *Graph) AddVertex() Vertex {
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return Vertex(len(g.out) - 1)
}

// AddEdge adds an edge from source to target. It returns false if either
// handle does not belong to this graph.
func (g *Graph) AddEdge(source, target Vertex) (Edge, bool) {
	if !g.HasVertex(source) || !g.HasVertex(target) {
		return -1, false
	}
	e := Edge(len(g.edges))
	g.edges = append(g.edges, edgeRec{source: source, target: target})
	g.out[source] = append(g.out[source], e)
	g.in[target] = append(g.in[target], e)
	return e, true
}

// HasVertex reports whether v is a vertex of g.
func (g *Graph) HasVertex(v Vertex) bool { return v >= 0 && int(v) < len(g.out) }

// HasEdge reports whether e is an edge of g.
func (g *Graph) HasEdge(e Edge) bool { return e >= 0 && int(e) < len(g.edges) }

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int { return len(g.out) }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Vertices iterates over all vertices in insertion order.
func (g *Graph) Vertices() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		for i := range g.out {
			if !yield(Vertex(i)) {
				return
			}
		}
	}
}

// Edges iterates over all edges in insertion order.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for i := range g.edges {
			if !yield(Edge(i)) {
				return
			}
		}
	}
}

// Endpoints returns the source and target of e. For undirected graphs the
// order is the one given to AddEdge.
func (g *Graph) Endpoints(e Edge) (source, target Vertex) {
	r := g.edges[e]
	return r.source, r.target
}

// OutEdges returns the edges leaving v. For undirected graphs this is every
// incident edge. The returned slice must not be modified.
func (g *Graph) OutEdges(v Vertex) []Edge {
	if g.directed {
		return g.out[v]
	}
	return g.incident(v)
}

// InEdges returns the edges entering v. For undirected graphs this is every
// incident edge. The returned slice must not be modified.
func (g *Graph) InEdges(v Vertex) []Edge {
	if g.directed {
		return g.in[v]
	}
	return g.incident(v)
}

func (g *Graph) incident(v Vertex) []Edge {
	out := make([]Edge, 0, len(g.out[v])+len(g.in[v]))
	out = append(out, g.out[v]...)
	for _, e := range g.in[v] {
		if g.edges[e].source != v { // self loops are already listed
			out = append(out, e)
		}
	}
	return out
}

// OutDegree returns the number of edges leaving v.
func (g *Graph) OutDegree(v Vertex) int { return len(g.OutEdges(v)) }

// InDegree returns the number of edges entering v.
func (g *Graph) InDegree(v Vertex) int { return len(g.InEdges(v)) }

// Neighbors returns the vertices reachable from v over one outgoing edge,
// with repetition for parallel edges.
func (g *Graph) Neighbors(v Vertex) []Vertex {
	edges := g.OutEdges(v)
	out := make([]Vertex, len(edges))
	for i, e := range edges {
		s, t := g.Endpoints(e)
		if t == v && !g.directed {
			t = s
		}
		out[i] = t
	}
	return out
}

// VertexID returns the external id of v: its passthrough id attribute when
// set, otherwise "n" followed by the handle.
func (g *Graph) VertexID(v Vertex) string {
	if id, ok := g.props.Vertex(attr.VertexIDName, v); ok {
		if s := value.Encode(id); s != "" {
			return s
		}
	}
	return fmt.Sprintf("n%d", v)
}

// EdgeID returns the external id of e, analogous to VertexID with prefix "e".
func (g *Graph) EdgeID(e Edge) string {
	if id, ok := g.props.Edge(attr.EdgeIDName, e); ok {
		if s := value.Encode(id); s != "" {
			return s
		}
	}
	return fmt.Sprintf("e%d", e)
}

// FindVertex returns the vertex whose VertexID is id.
// This is an O(N) scan.
func (g *Graph) FindVertex(id string) (Vertex, bool) {
	for v := range g.Vertices() {
		if g.VertexID(v) == id {
			return v, true
		}
	}
	return -1, false
}

// Validate checks that every edge references existing vertices and that every
// vertex and edge attribute is keyed by a live handle.
func (g *Graph) Validate() error {
	for i, r := range g.edges {
		if !g.HasVertex(r.source) || !g.HasVertex(r.target) {
			return fmt.Errorf("edge %d: %w", i, ErrUnknownVertex)
		}
	}
	for _, m := range g.props.VertexMaps() {
		for v := range m.All() {
			if !g.HasVertex(v) {
				return fmt.Errorf("attribute %q on vertex %d: %w", m.Name(), v, ErrUnknownVertex)
			}
		}
	}
	for _, m := range g.props.EdgeMaps() {
		for e := range m.All() {
			if !g.HasEdge(e) {
				return fmt.Errorf("attribute %q on unknown edge %d", m.Name(), e)
			}
		}
	}
	return nil
}
