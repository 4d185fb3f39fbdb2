package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/matzehuels/graphkit/pkg/core/attr"
	"github.com/matzehuels/graphkit/pkg/core/value"
	"github.com/matzehuels/graphkit/pkg/errors"
)

// ReadOptions controls optional behavior of Read.
type ReadOptions struct {
	// StoreIDs records each node and edge id attribute under the reserved
	// names attr.VertexIDName and attr.EdgeIDName, so a later Write emits the
	// same ids.
	StoreIDs bool
}

// Key is a <key> declaration.
type Key struct {
	ID         string
	For        string // graph, node, edge, all, ...
	Name       string // attr.name, or the id when absent
	Type       string // attr.type, "string" when absent
	Default    string
	HasDefault bool
}

func (k Key) appliesTo(domain string) bool {
	return k.For == domain || k.For == "all"
}

var keyDomains = map[string]bool{
	"graph": true, "node": true, "edge": true, "all": true,
	"graphml": true, "hyperedge": true, "port": true, "endpoint": true,
}

// Read parses a GraphML document from r and replays it into b.
//
// Keys are resolved first; the single <graph> element is then walked in
// document order, calling AddVertex for each <node> and AddEdge for each
// <edge>, with every <data> child forwarded to the matching Set*Property
// method. Any failure, including one reported by the builder, is returned as
// a *ParseError. The builder keeps whatever it had already accepted.
func Read[V, E any](r io.Reader, b Builder[V, E], opts ReadOptions) error {
	rd := &reader[V, E]{
		scanner: newScanner(r),
		b:       b,
		opts:    opts,
		nodes:   make(map[string]V),
	}
	if err := rd.root(); err != nil {
		return err
	}
	return rd.document()
}

// ====================================================================
// Token scanning shared by Read and Probe
// ====================================================================

type scanner struct {
	d     *xml.Decoder
	keys  map[string]Key
	order []string
}

func newScanner(r io.Reader) *scanner {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	return &scanner{d: d, keys: make(map[string]Key)}
}

// charsetReader decodes documents declaring a non UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q", label)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func (s *scanner) fail(code errors.Code, format string, args ...any) error {
	return s.at(errors.New(code, format, args...))
}

// at attaches the current input position to err.
func (s *scanner) at(err error) error {
	if pe, ok := err.(*ParseError); ok {
		return pe
	}
	line, col := s.d.InputPos()
	return &ParseError{Line: line, Column: col, Err: err}
}

func (s *scanner) syntax(err error) error {
	if err == io.EOF {
		return s.fail(errors.ErrCodeMalformedXML, "unexpected end of document")
	}
	pe := s.at(errors.Wrap(errors.ErrCodeMalformedXML, err, "%s", err.Error())).(*ParseError)
	if se, ok := err.(*xml.SyntaxError); ok {
		pe.Line, pe.Column = se.Line, 0
	}
	return pe
}

func (s *scanner) next() (xml.Token, error) {
	tok, err := s.d.Token()
	if err != nil {
		return nil, s.syntax(err)
	}
	return tok, nil
}

func (s *scanner) skip() error {
	if err := s.d.Skip(); err != nil {
		return s.syntax(err)
	}
	return nil
}

// root advances to the <graphml> start tag.
func (s *scanner) root() error {
	for {
		tok, err := s.d.Token()
		if err == io.EOF {
			return s.fail(errors.ErrCodeNoGraph, "document has no <graphml> element")
		}
		if err != nil {
			return s.syntax(err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "graphml" {
				return s.fail(errors.ErrCodeMalformedXML, "root element is <%s>, want <graphml>", start.Name.Local)
			}
			return nil
		}
	}
}

// text returns the character data of the current element and consumes its
// end tag. Child elements are skipped.
func (s *scanner) text() (string, error) {
	var sb strings.Builder
	for {
		tok, err := s.next()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := s.skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

func (s *scanner) key(start xml.StartElement) error {
	k := Key{For: "all", Type: value.TypeString}
	id, _ := attrOf(start, "id")
	if id == "" {
		return s.fail(errors.ErrCodeMalformedXML, "<key> without id")
	}
	if _, dup := s.keys[id]; dup {
		return s.fail(errors.ErrCodeMalformedXML, "duplicate key id %q", id)
	}
	k.ID, k.Name = id, id
	if v, ok := attrOf(start, "for"); ok {
		k.For = v
	}
	if !keyDomains[k.For] {
		return s.fail(errors.ErrCodeMalformedXML, "key %q has invalid domain %q", id, k.For)
	}
	if v, ok := attrOf(start, "attr.name"); ok {
		k.Name = v
	}
	if v, ok := attrOf(start, "attr.type"); ok {
		k.Type = v
	}
	if _, ok := value.Lookup(k.Type); !ok {
		return s.fail(errors.ErrCodeUnknownType, "unrecognized type %q for key %q", k.Type, k.Name)
	}

	for {
		tok, err := s.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "default" {
				if err := s.skip(); err != nil {
					return err
				}
				continue
			}
			if k.Default, err = s.text(); err != nil {
				return err
			}
			k.HasDefault = true
		case xml.EndElement:
			s.keys[id] = k
			s.order = append(s.order, id)
			return nil
		}
	}
}

func attrOf(start xml.StartElement, local string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == local && (a.Name.Space == "" || a.Name.Space == Namespace) {
			return a.Value, true
		}
	}
	return "", false
}

func edgeDefault(start xml.StartElement) (directed bool, ok bool) {
	v, present := attrOf(start, "edgedefault")
	switch {
	case !present, v == "directed":
		return true, true
	case v == "undirected":
		return false, true
	default:
		return false, false
	}
}

func directedness(directed bool) string {
	if directed {
		return "directed"
	}
	return "undirected"
}

// ====================================================================
// Document walk
// ====================================================================

type reader[V, E any] struct {
	*scanner
	b     Builder[V, E]
	opts  ReadOptions
	nodes map[string]V
	edges int
}

// setter forwards one decoded <data> value to the builder.
type setter func(name, raw, typeName string) error

func (r *reader[V, E]) document() error {
	seen := false
	for {
		tok, err := r.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "key":
				err = r.key(t)
			case "graph":
				if seen {
					return r.fail(errors.ErrCodeUnsupportedML, "multiple <graph> elements are not supported")
				}
				seen = true
				err = r.graph(t)
			default:
				err = r.skip()
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			if !seen {
				return r.fail(errors.ErrCodeNoGraph, "document has no <graph> element")
			}
			return nil
		}
	}
}

func (r *reader[V, E]) graph(start xml.StartElement) error {
	directed, ok := edgeDefault(start)
	if !ok {
		v, _ := attrOf(start, "edgedefault")
		return r.fail(errors.ErrCodeMalformedXML, "invalid edgedefault %q", v)
	}
	if directed != r.b.IsDirected() {
		return r.fail(errors.ErrCodeDirectedness, "document is %s but the target graph is %s",
			directedness(directed), directedness(r.b.IsDirected()))
	}

	set := make(map[string]bool)
	apply := setter(r.b.SetGraphProperty)
	for {
		tok, err := r.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "data":
				err = r.data(t, "graph", set, apply)
			case "node":
				err = r.node(t)
			case "edge":
				err = r.edge(t)
			case "hyperedge":
				return r.fail(errors.ErrCodeUnsupportedML, "<hyperedge> is not supported")
			default:
				err = r.skip()
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			return r.defaults("graph", set, apply)
		}
	}
}

func (r *reader[V, E]) node(start xml.StartElement) error {
	id, ok := attrOf(start, "id")
	if !ok {
		return r.fail(errors.ErrCodeMalformedXML, "<node> without id")
	}
	if _, dup := r.nodes[id]; dup {
		return r.fail(errors.ErrCodeMalformedXML, "duplicate node id %q", id)
	}
	v := r.b.AddVertex()
	r.nodes[id] = v
	apply := func(name, raw, typeName string) error {
		return r.b.SetVertexProperty(name, v, raw, typeName)
	}
	if r.opts.StoreIDs {
		if err := apply(attr.VertexIDName, id, value.TypeString); err != nil {
			return r.at(err)
		}
	}
	return r.children("node", apply)
}

func (r *reader[V, E]) edge(start xml.StartElement) error {
	id, hasID := attrOf(start, "id")
	label := id
	if !hasID {
		label = fmt.Sprintf("#%d", r.edges)
	}
	r.edges++
	srcID, _ := attrOf(start, "source")
	dstID, _ := attrOf(start, "target")
	src, ok := r.nodes[srcID]
	if !ok {
		return r.fail(errors.ErrCodeUnknownNode, "edge %q references unknown source node %q", label, srcID)
	}
	dst, ok := r.nodes[dstID]
	if !ok {
		return r.fail(errors.ErrCodeUnknownNode, "edge %q references unknown target node %q", label, dstID)
	}
	if d, present := attrOf(start, "directed"); present {
		directed := d == "true" || d == "1"
		if directed != r.b.IsDirected() {
			return r.fail(errors.ErrCodeDirectedness, "edge %q is %s but the target graph is %s",
				label, directedness(directed), directedness(r.b.IsDirected()))
		}
	}

	e, ok := r.b.AddEdge(src, dst)
	if !ok {
		return r.fail(errors.ErrCodeInvalidEdge, "could not add edge %q from %q to %q", label, srcID, dstID)
	}
	apply := func(name, raw, typeName string) error {
		return r.b.SetEdgeProperty(name, e, raw, typeName)
	}
	if r.opts.StoreIDs && hasID {
		if err := apply(attr.EdgeIDName, id, value.TypeString); err != nil {
			return r.at(err)
		}
	}
	return r.children("edge", apply)
}

// children walks the content of a <node> or <edge>.
func (r *reader[V, E]) children(domain string, apply setter) error {
	set := make(map[string]bool)
	for {
		tok, err := r.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "data":
				err = r.data(t, domain, set, apply)
			case "graph":
				return r.fail(errors.ErrCodeUnsupportedML, "nested graphs are not supported")
			default:
				err = r.skip()
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			return r.defaults(domain, set, apply)
		}
	}
}

func (r *reader[V, E]) data(start xml.StartElement, domain string, set map[string]bool, apply setter) error {
	id, ok := attrOf(start, "key")
	if !ok {
		return r.fail(errors.ErrCodeMalformedXML, "<data> without key")
	}
	k, ok := r.keys[id]
	if !ok {
		return r.fail(errors.ErrCodeUnknownKey, "undeclared key %q", id)
	}
	if !k.appliesTo(domain) {
		return r.fail(errors.ErrCodeUnknownKey, "key %q is declared for %s, not %s", id, k.For, domain)
	}
	raw, err := r.text()
	if err != nil {
		return err
	}
	set[id] = true
	if err := apply(k.Name, raw, k.Type); err != nil {
		return r.at(err)
	}
	return nil
}

// defaults applies <default> values of keys the closing entity did not set.
func (r *reader[V, E]) defaults(domain string, set map[string]bool, apply setter) error {
	for _, id := range r.order {
		k := r.keys[id]
		if !k.HasDefault || set[id] || !k.appliesTo(domain) {
			continue
		}
		if err := apply(k.Name, k.Default, k.Type); err != nil {
			return r.at(err)
		}
	}
	return nil
}
