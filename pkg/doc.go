// Package pkg provides the libraries behind graphkit, a GraphML codec for
// attributed graphs.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [core] - The attribute model: typed values, attribute stores and a
//     reference multigraph
//  2. [graphml] - The GraphML writer and streaming reader
//  3. [io] - Files, compression and the JSON/YAML/DOT interchange formats
//  4. [pipeline], [cache], [server], [config] - Cached conversions shared by
//     the CLI and the HTTP service
//
// # Architecture
//
// The typical data flow through graphkit:
//
//	GraphML / JSON / YAML bytes (optionally gzip, zstd or lz4)
//	         ↓
//	    [io] package (format detection, decompression)
//	         ↓
//	    [graphml] package (Read into any Builder)
//	         ↓
//	    [core/graph] + [core/attr] (topology and typed attributes)
//	         ↓
//	    [graphml] Write / [io] JSON, YAML / [render/nodelink] DOT, SVG
//
// # Quick Start
//
// Read a GraphML file, add an attribute, write it back:
//
//	g, err := io.ImportGraphML("network.graphml", io.Options{StoreIDs: true})
//	if err != nil {
//	    return err
//	}
//	for v := range g.Vertices() {
//	    g.Properties().SetVertex("degree", v, value.Int64(g.OutDegree(v)))
//	}
//	err = io.ExportGraphML(g, "network.graphml.gz", io.Options{})
//
// Read into your own graph type by implementing [graphml.Builder]:
//
//	err := graphml.Read(r, myBuilder, graphml.ReadOptions{})
//
// # Main Packages
//
// [core/value] - The closed set of GraphML attribute types, their text
// encodings and the type-name registry.
//
// [core/attr] - Typed property maps for graph, vertex and edge attributes,
// including the reserved id passthrough maps.
//
// [core/graph] - An in-memory directed or undirected multigraph that serves
// as both writer input and reader target.
//
// [graphml] - Write, Read, Probe and the Builder and Topology interfaces.
//
// [io] - Import/Export with transparent compression and the node-link JSON
// and YAML codecs.
//
// [render/nodelink] - Graphviz DOT output and SVG rendering.
//
// [pipeline] - Cached convert and info operations.
//
// [cache] - Null, file and Redis byte caches.
//
// [server] - The HTTP conversion service.
//
// [config] - TOML configuration.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Hooks for codec, cache and HTTP events.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/core
// [core/value]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/core/value
// [core/attr]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/core/attr
// [core/graph]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/core/graph
// [graphml]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/graphml
// [graphml.Builder]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/graphml#Builder
// [io]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/observability
package pkg
