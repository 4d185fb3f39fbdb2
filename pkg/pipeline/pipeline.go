// Package pipeline runs graphkit's document operations with caching.
//
// The CLI and the HTTP server share one [Runner] so both entry points decode,
// convert and summarize documents the same way and hit the same cache keys.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Convert(ctx, data, pipeline.Options{
//	    From: graphio.FormatGraphML,
//	    To:   graphio.FormatJSON,
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Output)
//
// Summaries are computed with [Runner.Info]:
//
//	sum, cached, err := runner.Info(ctx, data, graphio.FormatGraphML)
package pipeline

import (
	"time"

	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/errors"
	graphio "github.com/matzehuels/graphkit/pkg/io"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultTTL is how long converted documents and summaries stay cached.
const DefaultTTL = 24 * time.Hour

// =============================================================================
// Options
// =============================================================================

// Options configures one conversion.
type Options struct {
	From            graphio.Format `json:"from"`
	To              graphio.Format `json:"to"`
	StoreIDs        bool           `json:"store_ids,omitempty"`
	OrderedVertices bool           `json:"ordered_vertices,omitempty"`

	// Refresh bypasses the cache lookup; the result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// TTL of the cached result, DefaultTTL when zero.
	TTL time.Duration `json:"-"`
}

// ValidateAndSetDefaults checks the formats and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.From == "" || o.To == "" {
		return errors.New(errors.ErrCodeInvalidInput, "both source and target format are required")
	}
	from, err := graphio.ParseFormat(string(o.From))
	if err != nil {
		return err
	}
	if from == graphio.FormatDOT {
		return errors.New(errors.ErrCodeUnsupported, "dot is an output-only format")
	}
	to, err := graphio.ParseFormat(string(o.To))
	if err != nil {
		return err
	}
	o.From, o.To = from, to
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	return nil
}

// IOOptions returns the codec options.
func (o *Options) IOOptions() graphio.Options {
	return graphio.Options{StoreIDs: o.StoreIDs, OrderedVertices: o.OrderedVertices}
}

// KeyOpts returns the cache key options for this conversion.
func (o *Options) KeyOpts() cache.ConvertKeyOpts {
	return cache.ConvertKeyOpts{
		From:            string(o.From),
		To:              string(o.To),
		StoreIDs:        o.StoreIDs,
		OrderedVertices: o.OrderedVertices,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a conversion.
type Result struct {
	// Output is the encoded target document.
	Output []byte

	// InputHash is the content hash of the source document.
	InputHash string

	// Stats is zero on a cache hit except for Duration.
	Stats Stats

	// CacheHit reports whether Output came from the cache.
	CacheHit bool
}

// Stats contains conversion statistics.
type Stats struct {
	Vertices int
	Edges    int
	Duration time.Duration
}

// Summary describes a decoded graph.
type Summary struct {
	Format     string     `json:"format"`
	Directed   bool       `json:"directed"`
	Vertices   int        `json:"vertices"`
	Edges      int        `json:"edges"`
	SelfLoops  int        `json:"self_loops"`
	Isolated   int        `json:"isolated"`
	NodeIDs    string     `json:"node_ids,omitempty"` // parse.nodeids, GraphML only
	EdgeIDs    string     `json:"edge_ids,omitempty"` // parse.edgeids, GraphML only
	Properties []Property `json:"properties"`
}

// Property describes one attribute map.
type Property struct {
	Domain string `json:"domain"` // graph, node or edge
	Name   string `json:"name"`
	Type   string `json:"type"`
	Count  int    `json:"count"`
}
