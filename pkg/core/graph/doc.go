// Package graph provides a small in-memory multigraph with an attached
// attribute store.
//
// # Overview
//
// Vertices and edges are dense integer handles ([Vertex], [Edge]) minted by
// the graph in insertion order. Parallel edges and self loops are allowed.
// Directedness is fixed at construction.
//
//	g := graph.New(true)
//	a, b := g.AddVertex(), g.AddVertex()
//	e, _ := g.AddEdge(a, b)
//	g.Properties().SetEdge("weight", e, value.Float64(0.5))
//
// # GraphML
//
// *Graph satisfies both sides of the GraphML codec: it is a
// graphml.Topology for writing (vertices and edges iterate in insertion order)
// and a graphml.Builder for reading, decoding property strings through the
// value registry into its [attr.Store].
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package graph
