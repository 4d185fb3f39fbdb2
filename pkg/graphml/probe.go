package graphml

import (
	"encoding/xml"
	"io"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// Header summarizes a GraphML document without materializing it.
type Header struct {
	Directed bool
	NodeIDs  string // parse.nodeids advertisement, "" if absent
	EdgeIDs  string // parse.edgeids advertisement, "" if absent
	Order    string // parse.order advertisement, "" if absent
	Keys     []Key  // in declaration order
}

// Probe reads r up to the <graph> start tag and reports the document's
// directedness, id advertisements and key declarations. Errors are
// *ParseError values, as for Read.
func Probe(r io.Reader) (Header, error) {
	s := newScanner(r)
	if err := s.root(); err != nil {
		return Header{}, err
	}
	for {
		tok, err := s.next()
		if err != nil {
			return Header{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "key":
				if err := s.key(t); err != nil {
					return Header{}, err
				}
			case "graph":
				directed, ok := edgeDefault(t)
				if !ok {
					v, _ := attrOf(t, "edgedefault")
					return Header{}, s.fail(errors.ErrCodeMalformedXML, "invalid edgedefault %q", v)
				}
				h := Header{Directed: directed}
				h.NodeIDs, _ = attrOf(t, "parse.nodeids")
				h.EdgeIDs, _ = attrOf(t, "parse.edgeids")
				h.Order, _ = attrOf(t, "parse.order")
				for _, id := range s.order {
					h.Keys = append(h.Keys, s.keys[id])
				}
				return h, nil
			default:
				if err := s.skip(); err != nil {
					return Header{}, err
				}
			}
		case xml.EndElement:
			return Header{}, s.fail(errors.ErrCodeNoGraph, "document has no <graph> element")
		}
	}
}
