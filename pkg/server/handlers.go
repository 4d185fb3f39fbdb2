package server

import (
	"bytes"
	"cmp"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/graphkit/pkg/buildinfo"
	"github.com/matzehuels/graphkit/pkg/errors"
	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/pipeline"
	"github.com/matzehuels/graphkit/pkg/render/nodelink"
)

var contentTypes = map[graphio.Format]string{
	graphio.FormatGraphML: "application/graphml+xml",
	graphio.FormatJSON:    "application/json",
	graphio.FormatYAML:    "application/yaml",
	graphio.FormatDOT:     "text/vnd.graphviz",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		From:            graphio.Format(q.Get("from")),
		To:              graphio.Format(q.Get("to")),
		StoreIDs:        s.opts.GraphML.StoreIDs,
		OrderedVertices: s.opts.GraphML.OrderedVertices,
		TTL:             s.opts.TTL,
	}
	if opts.From == "" {
		opts.From = graphio.FormatGraphML
	}
	var err error
	if opts.StoreIDs, err = boolParam(q.Get("store_ids"), opts.StoreIDs); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.OrderedVertices, err = boolParam(q.Get("ordered"), opts.OrderedVertices); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Refresh, err = boolParam(q.Get("refresh"), false); err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Convert(r.Context(), data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Convert normalized the format names.
	to, _ := graphio.ParseFormat(string(opts.To))
	w.Header().Set("Content-Type", contentTypes[to])
	w.Header().Set("X-Input-Hash", res.InputHash)
	w.Header().Set("X-Cache", cacheStatus(res.CacheHit))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Output)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	format := graphio.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = graphio.FormatGraphML
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sum, cached, err := s.runner.Info(r.Context(), data, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(cached))
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := graphio.ParseFormat(cmp.Or(q.Get("format"), string(graphio.FormatGraphML)))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	detailed, err := boolParam(q.Get("detailed"), false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	g, err := graphio.Decode(r.Context(), r.Body, format, graphio.Options{StoreIDs: true})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	svg, err := nodelink.RenderSVG(r.Context(), nodelink.ToDOT(g, nodelink.Options{Detailed: detailed}))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render svg"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, bytes.NewReader(svg))
}

func boolParam(raw string, def bool) (bool, error) {
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid boolean %q", raw)
	}
	return b, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
