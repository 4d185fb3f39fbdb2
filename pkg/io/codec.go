package io

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/matzehuels/graphkit/pkg/core/graph"
	"github.com/matzehuels/graphkit/pkg/observability"
)

// Decode reads a graph in format f from r and reports the run to the
// registered codec hooks.
func Decode(ctx context.Context, r io.Reader, f Format, opts Options) (*graph.Graph, error) {
	hooks := observability.Codec()
	hooks.OnDecodeStart(ctx, string(f))
	start := time.Now()

	g, err := read(r, f, opts)

	var nv, ne int
	if g != nil {
		nv, ne = g.NumVertices(), g.NumEdges()
	}
	hooks.OnDecodeComplete(ctx, string(f), nv, ne, time.Since(start), err)
	return g, err
}

// Encode writes g in format f to w and reports the run to the registered
// codec hooks.
func Encode(ctx context.Context, g *graph.Graph, w io.Writer, f Format, opts Options) error {
	hooks := observability.Codec()
	hooks.OnEncodeStart(ctx, string(f), g.NumVertices(), g.NumEdges())
	start := time.Now()

	cw := &countingWriter{w: w}
	err := write(g, cw, f, opts)

	hooks.OnEncodeComplete(ctx, string(f), cw.n, time.Since(start), err)
	return err
}

// Convert decodes data in format from and re-encodes it in format to.
func Convert(ctx context.Context, data []byte, from, to Format, opts Options) ([]byte, error) {
	g, err := Decode(ctx, bytes.NewReader(data), from, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Encode(ctx, g, &buf, to, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
