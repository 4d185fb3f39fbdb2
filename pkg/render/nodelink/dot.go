package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphkit/pkg/core/attr"
	"github.com/matzehuels/graphkit/pkg/core/graph"
	"github.com/matzehuels/graphkit/pkg/core/value"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes vertex attributes in node labels and edge attributes
	// as edge labels. When false, only the vertex id is shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT source. Directed graphs become a
// digraph with "->" edges, undirected graphs a graph with "--" edges. Nodes
// are named by their GraphML id (see graph.Graph.VertexID).
func ToDOT(g *graph.Graph, opts Options) string {
	kind, arrow := "graph", "--"
	if g.IsDirected() {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	props := g.Properties()
	vertexMaps := props.VertexMaps()
	for v := range g.Vertices() {
		id := g.VertexID(v)
		label := id
		if opts.Detailed {
			label = joinLabel(id, vertexMaps, v)
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, label)
	}

	buf.WriteString("\n")
	edgeMaps := props.EdgeMaps()
	for e := range g.Edges() {
		s, t := g.Endpoints(e)
		fmt.Fprintf(&buf, "  %q %s %q", g.VertexID(s), arrow, g.VertexID(t))
		if opts.Detailed {
			if label := joinLabel("", edgeMaps, e); label != "" {
				fmt.Fprintf(&buf, " [label=%q]", label)
			}
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// joinLabel renders "head\nname: value\n..." for the attributes of k, in
// attribute name order. Passthrough ids are left out.
func joinLabel[K comparable](head string, maps []*attr.PropertyMap[K], k K) string {
	var parts []string
	if head != "" {
		parts = append(parts, head)
	}
	for _, m := range maps {
		if attr.IsReserved(m.Name()) {
			continue
		}
		if v, ok := m.Get(k); ok {
			parts = append(parts, m.Name()+": "+display(v))
		}
	}
	return strings.Join(parts, "\n")
}

// display formats a value for humans. Floats use shortest decimal form
// instead of the exact hexadecimal GraphML encoding.
func display(v value.Value) string {
	switch v := v.(type) {
	case value.Float64:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case value.Float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case value.LongDouble:
		return v.String()
	case value.VectorFloat64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case value.Object:
		return v.String()
	default:
		return value.Encode(v)
	}
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with one
// whose width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
