package attr

import (
	"iter"
	"maps"
	"slices"

	"github.com/matzehuels/graphkit/pkg/core/value"
	"github.com/matzehuels/graphkit/pkg/errors"
)

// Reserved passthrough attribute names.
const (
	VertexIDName = "_graphml_vertex_id"
	EdgeIDName   = "_graphml_edge_id"
)

// IsReserved reports whether name is one of the passthrough id attributes.
func IsReserved(name string) bool {
	return name == VertexIDName || name == EdgeIDName
}

// Owner is the kind of entity an attribute is attached to.
type Owner uint8

const (
	OwnerGraph Owner = iota
	OwnerVertex
	OwnerEdge
)

func (o Owner) String() string {
	switch o {
	case OwnerGraph:
		return "graph"
	case OwnerVertex:
		return "vertex"
	case OwnerEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// GraphKey is the single key of graph-scope property maps.
type GraphKey struct{}

// PropertyMap maps entities of one owner to values of a single kind.
type PropertyMap[K comparable] struct {
	name   string
	kind   value.Kind
	values map[K]value.Value
}

func newPropertyMap[K comparable](name string, kind value.Kind) *PropertyMap[K] {
	return &PropertyMap[K]{name: name, kind: kind, values: make(map[K]value.Value)}
}

// Name returns the attribute name.
func (m *PropertyMap[K]) Name() string { return m.name }

// Kind returns the kind every value in the map has.
func (m *PropertyMap[K]) Kind() value.Kind { return m.kind }

// TypeName returns the GraphML attr.type of the map's kind.
func (m *PropertyMap[K]) TypeName() string { return value.TypeName(m.kind) }

// Len returns the number of entities with a value.
func (m *PropertyMap[K]) Len() int { return len(m.values) }

// Get returns the value stored for k.
func (m *PropertyMap[K]) Get(k K) (value.Value, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Set stores v for k. It returns an ErrCodeKindMismatch error if v's kind
// differs from the map's kind.
func (m *PropertyMap[K]) Set(k K, v value.Value) error {
	if v == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil value for attribute %q", m.name)
	}
	if v.Kind() != m.kind {
		return errors.New(errors.ErrCodeKindMismatch,
			"attribute %q holds %s values, got %s", m.name, m.kind, v.Kind())
	}
	m.values[k] = v
	return nil
}

// Delete removes the value stored for k, if any.
func (m *PropertyMap[K]) Delete(k K) { delete(m.values, k) }

// All iterates over the stored entries in unspecified order.
func (m *PropertyMap[K]) All() iter.Seq2[K, value.Value] { return maps.All(m.values) }

// table is the family of property maps for one owner.
type table[K comparable] map[string]*PropertyMap[K]

func (t table[K]) ensure(owner Owner, name string, kind value.Kind) (*PropertyMap[K], error) {
	if m, ok := t[name]; ok {
		if m.kind != kind {
			return nil, errors.New(errors.ErrCodeKindMismatch,
				"%s attribute %q already holds %s values, not %s", owner, name, m.kind, kind)
		}
		return m, nil
	}
	if err := errors.ValidateAttributeName(name); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid kind %d for attribute %q", kind, name)
	}
	m := newPropertyMap[K](name, kind)
	t[name] = m
	return m, nil
}

func (t table[K]) sorted() []*PropertyMap[K] {
	out := make([]*PropertyMap[K], 0, len(t))
	for _, name := range slices.Sorted(maps.Keys(t)) {
		out = append(out, t[name])
	}
	return out
}

// Store is the attribute store of one graph.
// V and E are the graph's vertex and edge handle types.
//
// The zero value is not usable - use New.
type Store[V, E comparable] struct {
	graph  table[GraphKey]
	vertex table[V]
	edge   table[E]
}

// New creates an empty store.
func New[V, E comparable]() *Store[V, E] {
	return &Store[V, E]{
		graph:  make(table[GraphKey]),
		vertex: make(table[V]),
		edge:   make(table[E]),
	}
}

// GraphMap returns the graph-scope property map with the given name.
func (s *Store[V, E]) GraphMap(name string) (*PropertyMap[GraphKey], bool) {
	m, ok := s.graph[name]
	return m, ok
}

// VertexMap returns the vertex property map with the given name.
func (s *Store[V, E]) VertexMap(name string) (*PropertyMap[V], bool) {
	m, ok := s.vertex[name]
	return m, ok
}

// EdgeMap returns the edge property map with the given name.
func (s *Store[V, E]) EdgeMap(name string) (*PropertyMap[E], bool) {
	m, ok := s.edge[name]
	return m, ok
}

// EnsureGraphMap returns the graph-scope map name, creating it with kind if
// it does not exist. An existing map of a different kind is an error.
func (s *Store[V, E]) EnsureGraphMap(name string, kind value.Kind) (*PropertyMap[GraphKey], error) {
	return s.graph.ensure(OwnerGraph, name, kind)
}

// EnsureVertexMap is the vertex-scope counterpart of EnsureGraphMap.
func (s *Store[V, E]) EnsureVertexMap(name string, kind value.Kind) (*PropertyMap[V], error) {
	return s.vertex.ensure(OwnerVertex, name, kind)
}

// EnsureEdgeMap is the edge-scope counterpart of EnsureGraphMap.
func (s *Store[V, E]) EnsureEdgeMap(name string, kind value.Kind) (*PropertyMap[E], error) {
	return s.edge.ensure(OwnerEdge, name, kind)
}

// SetGraph assigns a graph-scope attribute.
func (s *Store[V, E]) SetGraph(name string, v value.Value) error {
	if v == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil value for attribute %q", name)
	}
	m, err := s.EnsureGraphMap(name, v.Kind())
	if err != nil {
		return err
	}
	return m.Set(GraphKey{}, v)
}

// SetVertex assigns a vertex attribute.
func (s *Store[V, E]) SetVertex(name string, vtx V, v value.Value) error {
	if v == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil value for attribute %q", name)
	}
	m, err := s.EnsureVertexMap(name, v.Kind())
	if err != nil {
		return err
	}
	return m.Set(vtx, v)
}

// SetEdge assigns an edge attribute.
func (s *Store[V, E]) SetEdge(name string, e E, v value.Value) error {
	if v == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil value for attribute %q", name)
	}
	m, err := s.EnsureEdgeMap(name, v.Kind())
	if err != nil {
		return err
	}
	return m.Set(e, v)
}

// Graph returns the graph-scope value of name.
func (s *Store[V, E]) Graph(name string) (value.Value, bool) {
	if m, ok := s.graph[name]; ok {
		return m.Get(GraphKey{})
	}
	return nil, false
}

// Vertex returns the value of name on vertex vtx.
func (s *Store[V, E]) Vertex(name string, vtx V) (value.Value, bool) {
	if m, ok := s.vertex[name]; ok {
		return m.Get(vtx)
	}
	return nil, false
}

// Edge returns the value of name on edge e.
func (s *Store[V, E]) Edge(name string, e E) (value.Value, bool) {
	if m, ok := s.edge[name]; ok {
		return m.Get(e)
	}
	return nil, false
}

// GraphMaps returns the graph-scope maps sorted by name.
func (s *Store[V, E]) GraphMaps() []*PropertyMap[GraphKey] { return s.graph.sorted() }

// VertexMaps returns the vertex maps sorted by name.
func (s *Store[V, E]) VertexMaps() []*PropertyMap[V] { return s.vertex.sorted() }

// EdgeMaps returns the edge maps sorted by name.
func (s *Store[V, E]) EdgeMaps() []*PropertyMap[E] { return s.edge.sorted() }

// Len returns the total number of property maps across all owners.
func (s *Store[V, E]) Len() int { return len(s.graph) + len(s.vertex) + len(s.edge) }
