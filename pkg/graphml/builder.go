package graphml

import "iter"

// Builder is the capability surface Read uses to materialize a document into
// an arbitrary graph representation. V and E are the builder's own vertex and
// edge handle types; handles minted by one builder type cannot be passed to
// another.
//
// The Set*Property methods receive the raw GraphML text and the declared
// attr.type name. They are expected to decode through the value registry
// (see value.DecodeAttr) and must not store anything when decoding fails.
type Builder[V, E any] interface {
	// IsDirected reports whether the destination graph is directed.
	IsDirected() bool

	// AddVertex adds a vertex and returns its handle.
	AddVertex() V

	// AddEdge adds an edge between two vertices minted by this builder.
	// It returns false if either handle is invalid.
	AddEdge(source, target V) (E, bool)

	SetGraphProperty(name, raw, typeName string) error
	SetVertexProperty(name string, v V, raw, typeName string) error
	SetEdgeProperty(name string, e E, raw, typeName string) error
}

// Topology is the read-only view of a graph that Write walks. Vertices and
// Edges must yield every element exactly once, in the graph's native order,
// and Endpoints must only return vertices yielded by Vertices.
type Topology[V, E comparable] interface {
	Vertices() iter.Seq[V]
	Edges() iter.Seq[E]
	Endpoints(e E) (source, target V)
}
