package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/core/attr"
	"github.com/matzehuels/graphkit/pkg/core/graph"
	"github.com/matzehuels/graphkit/pkg/graphml"
	graphio "github.com/matzehuels/graphkit/pkg/io"
)

// Runner executes conversions and summaries with caching.
//
// The Runner holds no per-request state, so one instance can serve many
// goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Convert decodes data in opts.From and encodes it in opts.To.
// Results are cached by the content hash of data and the conversion options.
func (r *Runner) Convert(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Result{InputHash: cache.Hash(data)}
	key := r.Keyer.ConvertKey(res.InputHash, opts.KeyOpts())

	if !opts.Refresh {
		if out, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			res.Output = out
			res.CacheHit = true
			res.Stats.Duration = time.Since(start)
			r.Logger.Debug("conversion cached", "from", opts.From, "to", opts.To, "bytes", len(out))
			return res, nil
		} else if err != nil {
			r.Logger.Warn("cache lookup failed", "err", err)
		}
	}

	g, err := graphio.Decode(ctx, bytes.NewReader(data), opts.From, opts.IOOptions())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", opts.From, err)
	}
	var buf bytes.Buffer
	if err := graphio.Encode(ctx, g, &buf, opts.To, opts.IOOptions()); err != nil {
		return nil, fmt.Errorf("encode %s: %w", opts.To, err)
	}
	res.Output = buf.Bytes()
	res.Stats = Stats{Vertices: g.NumVertices(), Edges: g.NumEdges(), Duration: time.Since(start)}

	if err := r.Cache.Set(ctx, key, res.Output, opts.TTL); err != nil {
		r.Logger.Warn("cache store failed", "err", err)
	}
	r.Logger.Info("converted document",
		"from", opts.From,
		"to", opts.To,
		"vertices", res.Stats.Vertices,
		"edges", res.Stats.Edges,
		"duration", res.Stats.Duration)
	return res, nil
}

// Info decodes data in format f and summarizes the graph. The second return
// value reports whether the summary came from the cache.
func (r *Runner) Info(ctx context.Context, data []byte, f graphio.Format) (*Summary, bool, error) {
	f, err := graphio.ParseFormat(string(f))
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.InfoKey(cache.Hash(data), string(f))
	if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var sum Summary
		if err := json.Unmarshal(cached, &sum); err == nil && sum.Format == string(f) {
			return &sum, true, nil
		}
	}

	g, err := graphio.Decode(ctx, bytes.NewReader(data), f, graphio.Options{})
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", f, err)
	}
	sum := Summarize(g)
	sum.Format = string(f)
	if f == graphio.FormatGraphML {
		if h, err := graphml.Probe(bytes.NewReader(data)); err == nil {
			sum.NodeIDs, sum.EdgeIDs = h.NodeIDs, h.EdgeIDs
		}
	}

	if enc, err := json.Marshal(sum); err == nil {
		if err := r.Cache.Set(ctx, key, enc, DefaultTTL); err != nil {
			r.Logger.Warn("cache store failed", "err", err)
		}
	}
	return &sum, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// Summarize computes the structural summary of g. Reserved id maps are
// not listed as properties.
func Summarize(g *graph.Graph) Summary {
	sum := Summary{
		Directed:   g.IsDirected(),
		Vertices:   g.NumVertices(),
		Edges:      g.NumEdges(),
		Properties: []Property{},
	}
	for e := range g.Edges() {
		if s, t := g.Endpoints(e); s == t {
			sum.SelfLoops++
		}
	}
	for v := range g.Vertices() {
		if g.OutDegree(v)+g.InDegree(v) == 0 {
			sum.Isolated++
		}
	}

	s := g.Properties()
	for _, m := range s.GraphMaps() {
		sum.Properties = appendProperty(sum.Properties, "graph", m)
	}
	for _, m := range s.VertexMaps() {
		sum.Properties = appendProperty(sum.Properties, "node", m)
	}
	for _, m := range s.EdgeMaps() {
		sum.Properties = appendProperty(sum.Properties, "edge", m)
	}
	return sum
}

func appendProperty[K comparable](props []Property, domain string, m *attr.PropertyMap[K]) []Property {
	if attr.IsReserved(m.Name()) {
		return props
	}
	return append(props, Property{Domain: domain, Name: m.Name(), Type: m.TypeName(), Count: m.Len()})
}
