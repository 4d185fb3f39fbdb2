package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/config"
	"github.com/matzehuels/graphkit/pkg/observability"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <key id="w" for="edge" attr.name="weight" attr.type="double"/>
  <graph id="G" edgedefault="directed">
    <node id="a"/>
    <node id="b"/>
    <edge source="a" target="b"><data key="w">0x1p+01</data></edge>
  </graph>
</graphml>`

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(c, nil, logger)
	ts := httptest.NewServer(New(runner, logger, opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/xml", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestConvert(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := post(t, ts.URL+"/v1/convert?to=json&store_ids=true", doc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s", ct)
	}
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("X-Cache = %s, want MISS", resp.Header.Get("X-Cache"))
	}
	var out struct {
		Directed bool `json:"directed"`
		Nodes    []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	decodeBody(t, resp, &out)
	if !out.Directed || len(out.Nodes) != 2 || out.Nodes[0].ID != "a" {
		t.Errorf("converted document = %+v", out)
	}

	again := post(t, ts.URL+"/v1/convert?to=json&store_ids=true", doc)
	if again.Header.Get("X-Cache") != "HIT" {
		t.Errorf("second request X-Cache = %s, want HIT", again.Header.Get("X-Cache"))
	}
}

func TestConvertToDOT(t *testing.T) {
	ts := newTestServer(t, Options{GraphML: config.GraphML{StoreIDs: true}})
	resp := post(t, ts.URL+"/v1/convert?from=graphml&to=dot", doc)
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"a" -> "b"`) {
		t.Errorf("status %d, body:\n%s", resp.StatusCode, body)
	}
}

func TestInfo(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := post(t, ts.URL+"/v1/info", doc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var sum pipeline.Summary
	decodeBody(t, resp, &sum)
	if sum.Vertices != 2 || sum.Edges != 1 || !sum.Directed || len(sum.Properties) != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, Options{MaxBody: 512})
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
		line   int
	}{
		{"missing target", "/v1/convert", doc, http.StatusBadRequest, "INVALID_INPUT", 0},
		{"unknown format", "/v1/convert?to=svg", doc, http.StatusBadRequest, "INVALID_FORMAT", 0},
		{"dot source", "/v1/convert?from=dot&to=json", doc, http.StatusUnsupportedMediaType, "UNSUPPORTED", 0},
		{"bad flag", "/v1/convert?to=json&store_ids=maybe", doc, http.StatusBadRequest, "INVALID_INPUT", 0},
		{"unknown node", "/v1/convert?to=json",
			"<graphml>\n<graph>\n<edge source=\"x\" target=\"y\"/>\n</graph>\n</graphml>",
			http.StatusUnprocessableEntity, "PARSE_UNKNOWN_NODE", 3},
		{"too large", "/v1/info", doc + strings.Repeat(" ", 1024), http.StatusRequestEntityTooLarge, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorResponse
			decodeBody(t, resp, &body)
			if body.Code != tt.code || body.Line != tt.line {
				t.Errorf("error body = %+v", body)
			}
			if body.RequestID == "" || body.Error == "" {
				t.Errorf("error body missing fields: %+v", body)
			}
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, Options{})
	const id = "0b8f3c7e-55a4-4c1e-9a59-6c1d1c2f6a10"

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" || got == "" {
		t.Errorf("invalid request id should be replaced, got %q", got)
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)
	defer observability.Reset()

	ts := newTestServer(t, Options{})
	post(t, ts.URL+"/v1/info", doc)
	post(t, ts.URL+"/v1/info?format=json", doc)

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.statuses) != 2 || h.statuses[0] != http.StatusOK || h.statuses[1] != http.StatusBadRequest {
		t.Errorf("statuses = %v", h.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), log.New(io.Discard), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("ListenAndServe = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
