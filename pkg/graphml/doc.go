// Package graphml reads and writes graphs in the GraphML XML format.
//
// The codec is independent of any concrete graph type. [Write] walks a
// [Topology] together with an [attr.Store] of typed attributes; [Read]
// replays a document into any [Builder], so the caller chooses the vertex and
// edge handle types and the in-memory representation.
//
// # Attribute types
//
// Every <key> carries an attr.type drawn from the value registry (boolean,
// int, long, float, double, the vector_* family, string and python_object).
// Floating point values are written in hexadecimal so that a write followed
// by a read reproduces every bit, including infinities, NaN and negative
// zero. Values whose encoding is empty, such as the empty string, are
// omitted from the output.
//
// Strings travel through XML text and attribute values, with carriage
// returns, and in attributes newlines and tabs, written as character
// references so they survive a round trip. XML 1.0 cannot carry most
// control characters (U+0000 to U+001F other than tab, newline and carriage
// return) in any form; Write emits them as they are and Read then rejects
// the document.
//
// # Identifiers
//
// By default nodes are written as "n0", "n1", ... and edges as "e0", "e1",
// ... in iteration order. With [ReadOptions.StoreIDs] the reader records the
// document's ids under attr.VertexIDName and attr.EdgeIDName, and the writer
// emits them again, so foreign documents keep their ids through a round
// trip.
//
// # Errors
//
// Read and Probe report every failure as a *[ParseError] wrapping a coded
// error from pkg/errors (PARSE_MALFORMED_XML, PARSE_UNKNOWN_TYPE,
// PARSE_INVALID_VALUE, ...).
package graphml
