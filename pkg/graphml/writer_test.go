package graphml

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/graphkit/pkg/core/attr"
	"github.com/matzehuels/graphkit/pkg/core/graph"
	"github.com/matzehuels/graphkit/pkg/core/value"
)

const goldenSmall = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns"
         xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
         xsi:schemaLocation="http://graphml.graphdrawing.org/xmlns http://graphml.graphdrawing.org/xmlns/1.0/graphml.xsd">

  <!-- property keys -->
  <key id="key0" for="graph" attr.name="title" attr.type="string" />
  <key id="key1" for="node" attr.name="name" attr.type="string" />
  <key id="key2" for="edge" attr.name="weight" attr.type="float" />

  <graph id="G" edgedefault="directed" parse.nodeids="canonical" parse.edgeids="canonical" parse.order="nodesfirst">

   <!-- graph properties -->
   <data key="key0">t</data>

   <!-- vertices -->
    <node id="n0">
      <data key="key1">a</data>
    </node>
    <node id="n1">
      <data key="key1">b</data>
    </node>

   <!-- edges -->
    <edge id="e0" source="n0" target="n1">
      <data key="key2">0x1.8p+00</data>
    </edge>

  </graph>
</graphml>
`

func smallGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(true)
	a, b := g.AddVertex(), g.AddVertex()
	e, _ := g.AddEdge(a, b)
	p := g.Properties()
	must(t, p.SetGraph("title", value.String("t")))
	must(t, p.SetVertex("name", a, value.String("a")))
	must(t, p.SetVertex("name", b, value.String("b")))
	must(t, p.SetEdge("weight", e, value.Float64(1.5)))
	return g
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func writeString(t *testing.T, g *graph.Graph, opts WriteOptions) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, g, g.Properties(), opts); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.String()
}

func TestWriteLayout(t *testing.T) {
	got := writeString(t, smallGraph(t), WriteOptions{Directed: true, OrderedVertices: true})
	if got != goldenSmall {
		t.Errorf("Write output mismatch\ngot:\n%s\nwant:\n%s", got, goldenSmall)
	}
}

func TestWriteDeterministic(t *testing.T) {
	g := smallGraph(t)
	first := writeString(t, g, WriteOptions{Directed: true})
	for range 5 {
		if got := writeString(t, g, WriteOptions{Directed: true}); got != first {
			t.Fatal("Write is not deterministic")
		}
	}
}

func TestWriteGraphFlags(t *testing.T) {
	tests := []struct {
		name string
		opts WriteOptions
		ids  bool
		want string
	}{
		{"undirected", WriteOptions{}, false,
			`edgedefault="undirected" parse.nodeids="free" parse.edgeids="canonical"`},
		{"ordered", WriteOptions{Directed: true, OrderedVertices: true}, false,
			`edgedefault="directed" parse.nodeids="canonical" parse.edgeids="canonical"`},
		{"passthrough overrides ordered", WriteOptions{OrderedVertices: true}, true,
			`edgedefault="undirected" parse.nodeids="free" parse.edgeids="free"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New(tt.opts.Directed)
			a, b := g.AddVertex(), g.AddVertex()
			e, _ := g.AddEdge(a, b)
			if tt.ids {
				must(t, g.Properties().SetVertex(attr.VertexIDName, a, value.String("x")))
				must(t, g.Properties().SetEdge(attr.EdgeIDName, e, value.String("y")))
			}
			if got := writeString(t, g, tt.opts); !strings.Contains(got, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestWriteEmptyGraph(t *testing.T) {
	got := writeString(t, graph.New(false), WriteOptions{})
	for _, tag := range []string{"<key ", "<node ", "<edge ", "<data "} {
		if strings.Contains(got, tag) {
			t.Errorf("empty graph output contains %s", tag)
		}
	}
	if !strings.Contains(got, `<graph id="G" edgedefault="undirected"`) {
		t.Errorf("missing graph element:\n%s", got)
	}

	g := graph.New(false)
	if err := Read(strings.NewReader(got), g, ReadOptions{}); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g.NumVertices() != 0 || g.NumEdges() != 0 || g.Properties().Len() != 0 {
		t.Errorf("read back %d vertices, %d edges, %d maps", g.NumVertices(), g.NumEdges(), g.Properties().Len())
	}
}

func TestWriteOmitsEmptyValues(t *testing.T) {
	g := graph.New(true)
	v := g.AddVertex()
	must(t, g.Properties().SetVertex("label", v, value.String("")))
	must(t, g.Properties().SetVertex("tags", v, value.VectorInt32{}))

	out := writeString(t, g, WriteOptions{Directed: true})
	if strings.Contains(out, "<data ") {
		t.Errorf("empty values were written:\n%s", out)
	}
	if !strings.Contains(out, `attr.name="label"`) {
		t.Error("key for an all-empty map should still be declared")
	}

	back := graph.New(true)
	must(t, Read(strings.NewReader(out), back, ReadOptions{}))
	if _, ok := back.Properties().Vertex("label", 0); ok {
		t.Error("empty string should read back as absent")
	}
}

func TestWriteEscapes(t *testing.T) {
	g := graph.New(true)
	v := g.AddVertex()
	name := `a<b & "c" 'd'>`
	must(t, g.Properties().SetVertex(`k&"`, v, value.String(name)))

	out := writeString(t, g, WriteOptions{Directed: true})
	if !strings.Contains(out, `attr.name="k&amp;&quot;"`) {
		t.Errorf("attribute name not escaped:\n%s", out)
	}
	if !strings.Contains(out, "a&lt;b &amp; &quot;c&quot; &apos;d&apos;&gt;") {
		t.Errorf("value not escaped:\n%s", out)
	}

	back := graph.New(true)
	must(t, Read(strings.NewReader(out), back, ReadOptions{}))
	got, ok := back.Properties().Vertex(`k&"`, 0)
	if !ok || got != value.String(name) {
		t.Errorf("read back %v, %v; want %q", got, ok, name)
	}
}

type failWriter struct{}

func (w *failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWritePropagatesWriterError(t *testing.T) {
	g := smallGraph(t)
	err := Write(&failWriter{}, g, g.Properties(), WriteOptions{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Write error = %v, want disk full", err)
	}
}

func TestWriteNilStore(t *testing.T) {
	g := graph.New(false)
	g.AddVertex()
	var buf bytes.Buffer
	if err := Write[graph.Vertex, graph.Edge](&buf, g, nil, WriteOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<node id="n0">`) {
		t.Errorf("missing node:\n%s", buf.String())
	}
}

func TestEscape(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"plain", "plain"},
		{"&", "&amp;"},
		{"<>", "&lt;&gt;"},
		{`"'`, "&quot;&apos;"},
		{"&amp;", "&amp;amp;"},
		{"a\r\nb", "a&#xD;\nb"},
		{"a\tb", "a\tb"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{`a"b`, "a&quot;b"},
		{"a\r\nb", "a&#xD;&#xA;b"},
		{"a\tb", "a&#x9;b"},
	}
	for _, tt := range tests {
		if got := EscapeAttr(tt.in); got != tt.want {
			t.Errorf("EscapeAttr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteLineEndingsRoundTrip(t *testing.T) {
	text := "a\rb\r\nc\td\n"
	id := "node\r\n\t1"

	g := graph.New(true)
	v := g.AddVertex()
	must(t, g.Properties().SetVertex("note", v, value.String(text)))
	must(t, g.Properties().SetVertex(attr.VertexIDName, v, value.String(id)))

	out := writeString(t, g, WriteOptions{Directed: true})
	back := graph.New(true)
	must(t, Read(strings.NewReader(out), back, ReadOptions{StoreIDs: true}))

	if got, _ := back.Properties().Vertex("note", 0); got != value.String(text) {
		t.Errorf("note = %q, want %q", got, text)
	}
	if got, _ := back.Properties().Vertex(attr.VertexIDName, 0); got != value.String(id) {
		t.Errorf("id = %q, want %q", got, id)
	}
}

func TestWriteSyntheticIDsAvoidPassthrough(t *testing.T) {
	g := graph.New(true)
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	e1, _ := g.AddEdge(a, b)
	g.AddEdge(b, c)
	p := g.Properties()
	must(t, p.SetVertex(attr.VertexIDName, a, value.String("n2")))
	must(t, p.SetVertex(attr.VertexIDName, b, value.String("x")))
	must(t, p.SetEdge(attr.EdgeIDName, e1, value.String("e1")))

	out := writeString(t, g, WriteOptions{Directed: true})
	for _, want := range []string{`<node id="n2">`, `<node id="n2_1">`, `<edge id="e1_1" source="x" target="n2_1">`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}

	back := graph.New(true)
	if err := Read(strings.NewReader(out), back, ReadOptions{StoreIDs: true}); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.NumVertices() != 3 || back.NumEdges() != 2 {
		t.Errorf("read back %d vertices, %d edges", back.NumVertices(), back.NumEdges())
	}
}
