package graph

import "github.com/matzehuels/graphkit/pkg/core/value"

// SetGraphProperty decodes a GraphML value and assigns it at graph scope.
// Nothing is stored if decoding fails.
func (g *Graph) SetGraphProperty(name, raw, typeName string) error {
	v, err := value.DecodeAttr(name, typeName, raw)
	if err != nil {
		return err
	}
	return g.props.SetGraph(name, v)
}

// SetVertexProperty decodes a GraphML value and assigns it to vertex v.
func (g *Graph) SetVertexProperty(name string, v Vertex, raw, typeName string) error {
	val, err := value.DecodeAttr(name, typeName, raw)
	if err != nil {
		return err
	}
	return g.props.SetVertex(name, v, val)
}

// SetEdgeProperty decodes a GraphML value and assigns it to edge e.
func (g *Graph) SetEdgeProperty(name string, e Edge, raw, typeName string) error {
	v, err := value.DecodeAttr(name, typeName, raw)
	if err != nil {
		return err
	}
	return g.props.SetEdge(name, e, v)
}
