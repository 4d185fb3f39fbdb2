// Package attr provides the attribute store that carries typed values on a
// graph, its vertices and its edges.
//
// A [Store] holds three families of named [PropertyMap]s, one per owner:
// graph scope (a single value per name), vertex scope and edge scope. Each
// property map has a fixed [value.Kind] chosen when it is created; storing a
// value of another kind is an error. Entries are created on first assignment
// and are never removed implicitly.
//
// The vertex and edge handle types are type parameters, so a store built for
// one graph representation cannot be indexed with another's handles.
//
// # Reserved Names
//
// [VertexIDName] and [EdgeIDName] carry the original external identifiers of a
// GraphML document through a read-then-write cycle. The GraphML writer uses them
// as node and edge ids and does not declare them as keys.
//
// Stores are not safe for concurrent use.
package attr
