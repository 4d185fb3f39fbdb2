// Package io reads and writes attributed graphs in files and streams.
//
// # Formats
//
// Three interchange formats are supported:
//
//   - GraphML, through pkg/graphml
//   - JSON node-link documents
//   - YAML node-link documents (same shape as JSON)
//
// The node-link documents carry every attribute as a {type, value} pair, where
// type is the GraphML attr.type name and value is the same text GraphML would
// use, so typed values survive a conversion between any two formats exactly:
//
//	{
//	  "directed": true,
//	  "graph": {"title": {"type": "string", "value": "deps"}},
//	  "nodes": [
//	    {"id": "n0", "attrs": {"weight": {"type": "float", "value": "0x1.8p+00"}}},
//	    {"id": "n1"}
//	  ],
//	  "edges": [
//	    {"id": "e0", "source": "n0", "target": "n1"}
//	  ]
//	}
//
// Unlike GraphML, node-link documents keep values whose encoding is empty.
//
// # Files
//
// [Import] and [Export] pick the format from the file extension (.graphml,
// .xml, .json, .yaml, .yml) and transparently handle a trailing compression
// extension: .gz (gzip), .zst (zstd) or .lz4. [ImportGraphML], [ImportJSON]
// and friends force a format while still honoring compression.
//
// # Streams
//
// [Decode] and [Encode] dispatch on a [Format] and report timings through the
// observability codec hooks. The Read*/Write* functions do the same work
// without hooks.
//
// The returned graphs are independent of their source and can be modified
// freely. None of the functions close the readers or writers they are given.
package io
