package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphkit/pkg/core/graph"
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graphml"
)

// ReadGraphML decodes a GraphML document from r.
//
// The document is buffered so its header can be probed first: the returned
// graph is directed exactly when the document's edgedefault is "directed".
// Errors from the codec are *graphml.ParseError values.
func ReadGraphML(r io.Reader, opts Options) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	h, err := graphml.Probe(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	g := graph.New(h.Directed)
	if err := graphml.Read(bytes.NewReader(data), g, graphml.ReadOptions{StoreIDs: opts.StoreIDs}); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadJSON decodes a node-link JSON document from r.
//
// ReadJSON returns an error if the JSON is malformed, a node id is missing or
// duplicated, an edge references an unknown node id, or an attribute carries
// an unknown type or a value that does not parse as its type. Errors are
// wrapped with the node or edge that caused them.
func ReadJSON(r io.Reader, opts Options) (*graph.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed JSON document: %v", err)
	}
	return fromDocument(doc, opts)
}

// ReadYAML decodes a node-link YAML document from r. It accepts the same
// structure as ReadJSON.
func ReadYAML(r io.Reader, opts Options) (*graph.Graph, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed YAML document: %v", err)
	}
	return fromDocument(doc, opts)
}

// Import reads the graph file at path, choosing the format and compression
// from its extension.
func Import(path string, opts Options) (*graph.Graph, error) {
	f, comp, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return importFile(path, f, comp, opts)
}

// ImportGraphML reads a GraphML file. Compression is still inferred from the
// extension.
func ImportGraphML(path string, opts Options) (*graph.Graph, error) {
	return importFile(path, FormatGraphML, compressionOf(path), opts)
}

// ImportJSON reads a node-link JSON file.
func ImportJSON(path string, opts Options) (*graph.Graph, error) {
	return importFile(path, FormatJSON, compressionOf(path), opts)
}

func importFile(path string, f Format, comp Compression, opts Options) (*graph.Graph, error) {
	rc, err := openFile(path, comp)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	g, err := read(rc, f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func read(r io.Reader, f Format, opts Options) (*graph.Graph, error) {
	switch f {
	case FormatGraphML:
		return ReadGraphML(r, opts)
	case FormatJSON:
		return ReadJSON(r, opts)
	case FormatYAML:
		return ReadYAML(r, opts)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "format %s cannot be read", f)
	}
}
