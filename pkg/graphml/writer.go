package graphml

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/matzehuels/graphkit/pkg/core/attr"
	"github.com/matzehuels/graphkit/pkg/core/value"
	"github.com/matzehuels/graphkit/pkg/errors"
)

// Namespace is the GraphML XML namespace.
const Namespace = "http://graphml.graphdrawing.org/xmlns"

const schemaLocation = Namespace + " http://graphml.graphdrawing.org/xmlns/1.0/graphml.xsd"

// WriteOptions controls document-level flags of Write.
type WriteOptions struct {
	// Directed selects edgedefault="directed" (true) or "undirected".
	Directed bool

	// OrderedVertices declares that vertex ids are canonical ("n0", "n1", ...
	// in iteration order). It is ignored when vertex ids are passed through
	// from the reserved attribute.
	OrderedVertices bool
}

// keyDecl is one <key> element of the output document.
type keyDecl struct {
	id       string
	domain   string
	name     string
	typeName string
}

// Write serializes g and its attributes as a GraphML document.
//
// Every non-reserved attribute map in s becomes a <key> declaration. Keys are
// numbered graph maps first, then vertex maps, then edge maps, each group in
// name order, so output is deterministic for a given store. Values whose
// encoding is empty are omitted.
//
// If s holds a non-empty vertex (edge) map named attr.VertexIDName
// (attr.EdgeIDName), its values become the node (edge) ids and the document
// declares parse.nodeids="free" (parse.edgeids="free"). Vertices (edges)
// without a passthrough id get a synthesized id, suffixed when it would
// repeat a passthrough id.
func Write[V, E comparable](w io.Writer, g Topology[V, E], s *attr.Store[V, E], opts WriteOptions) error {
	if s == nil {
		s = attr.New[V, E]()
	}
	ew := &errWriter{w: bufio.NewWriter(w)}

	graphMaps := unreserved(s.GraphMaps())
	vertexMaps := unreserved(s.VertexMaps())
	edgeMaps := unreserved(s.EdgeMaps())

	vertexIDs, hasVertexIDs := s.VertexMap(attr.VertexIDName)
	hasVertexIDs = hasVertexIDs && vertexIDs.Len() > 0
	edgeIDs, hasEdgeIDs := s.EdgeMap(attr.EdgeIDName)
	hasEdgeIDs = hasEdgeIDs && edgeIDs.Len() > 0

	var keys []keyDecl
	declare := func(domain, name string, k value.Kind) string {
		id := "key" + strconv.Itoa(len(keys))
		keys = append(keys, keyDecl{id: id, domain: domain, name: name, typeName: value.TypeName(k)})
		return id
	}
	graphKeys := make([]string, len(graphMaps))
	for i, m := range graphMaps {
		graphKeys[i] = declare("graph", m.Name(), m.Kind())
	}
	vertexKeys := make([]string, len(vertexMaps))
	for i, m := range vertexMaps {
		vertexKeys[i] = declare("node", m.Name(), m.Kind())
	}
	edgeKeys := make([]string, len(edgeMaps))
	for i, m := range edgeMaps {
		edgeKeys[i] = declare("edge", m.Name(), m.Kind())
	}

	ew.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	ew.printf("<graphml xmlns=%q\n", Namespace)
	ew.printf("         xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\"\n")
	ew.printf("         xsi:schemaLocation=%q>\n\n", schemaLocation)

	ew.printf("  <!-- property keys -->\n")
	for _, k := range keys {
		ew.printf("  <key id=\"%s\" for=\"%s\" attr.name=\"%s\" attr.type=\"%s\" />\n",
			k.id, k.domain, EscapeAttr(k.name), k.typeName)
	}
	ew.printf("\n")

	edgeDefault := "undirected"
	if opts.Directed {
		edgeDefault = "directed"
	}
	nodeIDs := "free"
	if opts.OrderedVertices && !hasVertexIDs {
		nodeIDs = "canonical"
	}
	edgeIDMode := "canonical"
	if hasEdgeIDs {
		edgeIDMode = "free"
	}
	ew.printf("  <graph id=\"G\" edgedefault=\"%s\" parse.nodeids=\"%s\" parse.edgeids=\"%s\" parse.order=\"nodesfirst\">\n\n",
		edgeDefault, nodeIDs, edgeIDMode)

	ew.printf("   <!-- graph properties -->\n")
	for i, m := range graphMaps {
		if v, ok := m.Get(attr.GraphKey{}); ok {
			writeData(ew, "   ", graphKeys[i], v)
		}
	}
	ew.printf("\n")

	var nodeTaken map[string]bool
	if hasVertexIDs {
		nodeTaken = passthroughIDs(g.Vertices(), vertexIDs)
	}
	ids := make(map[V]string)
	ew.printf("   <!-- vertices -->\n")
	for v := range g.Vertices() {
		id := ""
		if hasVertexIDs {
			if pv, ok := vertexIDs.Get(v); ok {
				id = value.Encode(pv)
			}
		}
		if id == "" {
			id = syntheticID("n", len(ids), nodeTaken)
		}
		ids[v] = id
		ew.printf("    <node id=\"%s\">\n", EscapeAttr(id))
		for i, m := range vertexMaps {
			if pv, ok := m.Get(v); ok {
				writeData(ew, "      ", vertexKeys[i], pv)
			}
		}
		ew.printf("    </node>\n")
	}
	ew.printf("\n")

	var edgeTaken map[string]bool
	if hasEdgeIDs {
		edgeTaken = passthroughIDs(g.Edges(), edgeIDs)
	}
	ew.printf("   <!-- edges -->\n")
	count := 0
	for e := range g.Edges() {
		src, dst := g.Endpoints(e)
		sid, ok1 := ids[src]
		tid, ok2 := ids[dst]
		if !ok1 || !ok2 {
			return errors.New(errors.ErrCodeInternal, "edge %d has an endpoint that is not a vertex of the graph", count)
		}
		id := ""
		if hasEdgeIDs {
			if pv, ok := edgeIDs.Get(e); ok {
				id = value.Encode(pv)
			}
		}
		if id == "" {
			id = syntheticID("e", count, edgeTaken)
		}
		count++
		ew.printf("    <edge id=\"%s\" source=\"%s\" target=\"%s\">\n", EscapeAttr(id), EscapeAttr(sid), EscapeAttr(tid))
		for i, m := range edgeMaps {
			if pv, ok := m.Get(e); ok {
				writeData(ew, "      ", edgeKeys[i], pv)
			}
		}
		ew.printf("    </edge>\n")
	}
	ew.printf("\n")

	ew.printf("  </graph>\n")
	ew.printf("</graphml>\n")
	return ew.flush()
}

// passthroughIDs collects the non-empty passthrough ids of seq.
func passthroughIDs[K comparable](seq iter.Seq[K], m *attr.PropertyMap[K]) map[string]bool {
	taken := make(map[string]bool)
	for k := range seq {
		if pv, ok := m.Get(k); ok {
			if id := value.Encode(pv); id != "" {
				taken[id] = true
			}
		}
	}
	return taken
}

// syntheticID returns prefix+index, suffixed with "_1", "_2", ... while the
// candidate collides with a passthrough id, and reserves the result.
func syntheticID(prefix string, index int, taken map[string]bool) string {
	id := prefix + strconv.Itoa(index)
	if taken == nil {
		return id
	}
	base := id
	for n := 1; taken[id]; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	taken[id] = true
	return id
}

func writeData(ew *errWriter, indent, key string, v value.Value) {
	text := value.Encode(v)
	if text == "" {
		return
	}
	ew.printf("%s<data key=\"%s\">%s</data>\n", indent, key, Escape(text))
}

func unreserved[K comparable](maps []*attr.PropertyMap[K]) []*attr.PropertyMap[K] {
	out := maps[:0:0]
	for _, m := range maps {
		if !attr.IsReserved(m.Name()) {
			out = append(out, m)
		}
	}
	return out
}

// errWriter keeps the first write error so the layout code stays linear.
type errWriter struct {
	w   *bufio.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) flush() error {
	if ew.err != nil {
		return ew.err
	}
	return ew.w.Flush()
}
