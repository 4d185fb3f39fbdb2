package io

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/graphkit/pkg/core/attr"
	"github.com/matzehuels/graphkit/pkg/core/graph"
	"github.com/matzehuels/graphkit/pkg/core/value"
	"github.com/matzehuels/graphkit/pkg/errors"
)

// document is the node-link shape shared by the JSON and YAML codecs.
type document struct {
	Directed bool       `json:"directed" yaml:"directed"`
	Graph    attributes `json:"graph,omitempty" yaml:"graph,omitempty"`
	Nodes    []node     `json:"nodes" yaml:"nodes"`
	Edges    []edge     `json:"edges" yaml:"edges"`
}

type node struct {
	ID    string     `json:"id" yaml:"id"`
	Attrs attributes `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

type edge struct {
	ID     string     `json:"id,omitempty" yaml:"id,omitempty"`
	Source string     `json:"source" yaml:"source"`
	Target string     `json:"target" yaml:"target"`
	Attrs  attributes `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// typed is one attribute value in its GraphML text form.
type typed struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

type attributes map[string]typed

func typedOf(m interface{ TypeName() string }, v value.Value) typed {
	return typed{Type: m.TypeName(), Value: value.Encode(v)}
}

func toDocument(g *graph.Graph) document {
	props := g.Properties()
	doc := document{
		Directed: g.IsDirected(),
		Nodes:    make([]node, 0, g.NumVertices()),
		Edges:    make([]edge, 0, g.NumEdges()),
	}

	for _, m := range props.GraphMaps() {
		if v, ok := m.Get(attr.GraphKey{}); ok {
			if doc.Graph == nil {
				doc.Graph = attributes{}
			}
			doc.Graph[m.Name()] = typedOf(m, v)
		}
	}

	vertexMaps := props.VertexMaps()
	for v := range g.Vertices() {
		n := node{ID: g.VertexID(v)}
		for _, m := range vertexMaps {
			if attr.IsReserved(m.Name()) {
				continue
			}
			if val, ok := m.Get(v); ok {
				if n.Attrs == nil {
					n.Attrs = attributes{}
				}
				n.Attrs[m.Name()] = typedOf(m, val)
			}
		}
		doc.Nodes = append(doc.Nodes, n)
	}

	edgeMaps := props.EdgeMaps()
	for e := range g.Edges() {
		s, t := g.Endpoints(e)
		ed := edge{ID: g.EdgeID(e), Source: g.VertexID(s), Target: g.VertexID(t)}
		for _, m := range edgeMaps {
			if attr.IsReserved(m.Name()) {
				continue
			}
			if val, ok := m.Get(e); ok {
				if ed.Attrs == nil {
					ed.Attrs = attributes{}
				}
				ed.Attrs[m.Name()] = typedOf(m, val)
			}
		}
		doc.Edges = append(doc.Edges, ed)
	}
	return doc
}

// fromDocument builds a graph from a decoded node-link document. Attribute
// values go through the same registry decoding as GraphML data.
func fromDocument(doc document, opts Options) (*graph.Graph, error) {
	g := graph.New(doc.Directed)

	for _, name := range slices.Sorted(maps.Keys(doc.Graph)) {
		tv := doc.Graph[name]
		if err := g.SetGraphProperty(name, tv.Value, tv.Type); err != nil {
			return nil, fmt.Errorf("graph attribute %s: %w", name, err)
		}
	}

	ids := make(map[string]graph.Vertex, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node without id")
		}
		if _, dup := ids[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
		}
		v := g.AddVertex()
		ids[n.ID] = v
		if opts.StoreIDs {
			if err := g.SetVertexProperty(attr.VertexIDName, v, n.ID, value.TypeString); err != nil {
				return nil, fmt.Errorf("node %s: %w", n.ID, err)
			}
		}
		for _, name := range slices.Sorted(maps.Keys(n.Attrs)) {
			tv := n.Attrs[name]
			if err := g.SetVertexProperty(name, v, tv.Value, tv.Type); err != nil {
				return nil, fmt.Errorf("node %s: %w", n.ID, err)
			}
		}
	}

	for i, ed := range doc.Edges {
		s, ok := ids[ed.Source]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "edge %d references unknown node %q", i, ed.Source)
		}
		t, ok := ids[ed.Target]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "edge %d references unknown node %q", i, ed.Target)
		}
		e, _ := g.AddEdge(s, t)
		if opts.StoreIDs && ed.ID != "" {
			if err := g.SetEdgeProperty(attr.EdgeIDName, e, ed.ID, value.TypeString); err != nil {
				return nil, fmt.Errorf("edge %s->%s: %w", ed.Source, ed.Target, err)
			}
		}
		for _, name := range slices.Sorted(maps.Keys(ed.Attrs)) {
			tv := ed.Attrs[name]
			if err := g.SetEdgeProperty(name, e, tv.Value, tv.Type); err != nil {
				return nil, fmt.Errorf("edge %s->%s: %w", ed.Source, ed.Target, err)
			}
		}
	}
	return g, nil
}
