package io

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphkit/pkg/core/graph"
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graphml"
	"github.com/matzehuels/graphkit/pkg/render/nodelink"
)

// WriteGraphML encodes g as GraphML. Directedness comes from the graph.
func WriteGraphML(g *graph.Graph, w io.Writer, opts Options) error {
	return graphml.Write(w, g, g.Properties(), graphml.WriteOptions{
		Directed:        g.IsDirected(),
		OrderedVertices: opts.OrderedVertices,
	})
}

// WriteJSON encodes g as an indented node-link JSON document.
// The output can be re-imported with [ReadJSON] without loss.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes g as a node-link YAML document.
func WriteYAML(g *graph.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Export writes g to path, choosing format and compression from the
// extension.
func Export(g *graph.Graph, path string, opts Options) error {
	f, comp, err := DetectFormat(path)
	if err != nil {
		return err
	}
	return exportFile(g, path, f, comp, opts)
}

// ExportGraphML writes g as GraphML. Compression is inferred from the
// extension.
func ExportGraphML(g *graph.Graph, path string, opts Options) error {
	return exportFile(g, path, FormatGraphML, compressionOf(path), opts)
}

// ExportJSON writes g as node-link JSON.
func ExportJSON(g *graph.Graph, path string) error {
	return exportFile(g, path, FormatJSON, compressionOf(path), Options{})
}

func exportFile(g *graph.Graph, path string, f Format, comp Compression, opts Options) error {
	wc, err := createFile(path, comp)
	if err != nil {
		return err
	}
	if err := write(g, wc, f, opts); err != nil {
		wc.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func write(g *graph.Graph, w io.Writer, f Format, opts Options) error {
	switch f {
	case FormatGraphML:
		return WriteGraphML(g, w, opts)
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	case FormatDOT:
		_, err := io.WriteString(w, nodelink.ToDOT(g, nodelink.Options{Detailed: true}))
		return err
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
}

func compressionOf(path string) Compression {
	return compressionExts[strings.ToLower(filepath.Ext(path))]
}
