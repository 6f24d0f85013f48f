package matching

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/getmockd/clientmock/pkg/request"
)

// XMLPredicate decides whether a well-formed XML body is acceptable.
type XMLPredicate func(content string) bool

// XMLMatcher compares XML bodies after normalizing insignificant
// whitespace and formatting.
type XMLMatcher struct {
	xml       string
	canonical string
	predicate XMLPredicate
}

// NewXMLMatcher matches bodies equivalent to expected. expected must be
// well-formed XML.
func NewXMLMatcher(expected string) (*XMLMatcher, error) {
	canonical, ok := canonicalXML(expected)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidXML, expected)
	}
	return &XMLMatcher{xml: expected, canonical: canonical}, nil
}

// NewXMLPredicateMatcher matches well-formed XML bodies accepted by fn.
func NewXMLPredicateMatcher(fn XMLPredicate) *XMLMatcher {
	return &XMLMatcher{predicate: fn}
}

// Match implements Matcher.
func (m *XMLMatcher) Match(r *request.Request) Outcome {
	if m.predicate != nil {
		if r.Content == nil || !wellFormed(*r.Content) || !m.predicate(*r.Content) {
			return MismatchXML(expectedCallback, r.Content)
		}
		return HitXML(*r.Content)
	}

	if r.Content == nil || *r.Content == "" {
		return MismatchXML(m.xml, r.Content)
	}
	actual, ok := canonicalXML(*r.Content)
	if !ok || actual != m.canonical {
		return MismatchXML(m.xml, r.Content)
	}
	return HitXML(*r.Content)
}

func (m *XMLMatcher) String() string {
	if m.predicate != nil {
		return "callback(request.content) !== false"
	}
	return fmt.Sprintf(`request.content === "%s"`, m.xml)
}

// wellFormed reports whether s is a single well-formed XML document.
// etree reads raw tokens and does not verify element nesting, so the
// strict encoding/xml decoder is used for this check.
func wellFormed(s string) bool {
	dec := xml.NewDecoder(strings.NewReader(s))
	root := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return root
		}
		if err != nil {
			return false
		}
		if _, ok := tok.(xml.StartElement); ok {
			root = true
		}
	}
}

// canonicalXML parses s and re-serializes it with whitespace-only text
// removed, the XML declaration dropped and a fixed indentation.
func canonicalXML(s string) (string, bool) {
	if !wellFormed(s) {
		return "", false
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return "", false
	}
	if doc.Root() == nil {
		return "", false
	}

	var decls []etree.Token
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			decls = append(decls, pi)
		}
	}
	for _, decl := range decls {
		doc.RemoveChild(decl)
	}
	doc.Indent(2)

	out, err := doc.WriteToString()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(out), true
}
