// Package nodelink renders attributed graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render it to SVG with the embedded Graphviz:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels list every vertex attribute and edges are
//     labelled with their attributes
//
// Attribute values are shown in human form (decimal floats), not in the
// exact hexadecimal form used by GraphML. The DOT output is also a valid
// export target on its own (graphkit convert g.graphml g.dot).
package nodelink
