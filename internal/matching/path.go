package matching

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/util"
)

// URIParams is a mutable bag of named values substituted into {name}
// placeholders of a URI pattern. It is shared by reference between an
// expectation and its URI matcher, so values set before or after the
// matcher is declared both apply.
type URIParams struct {
	params *orderedmap.OrderedMap[string, string]
}

// NewURIParams returns an empty parameter bag.
func NewURIParams() *URIParams {
	return &URIParams{params: orderedmap.New[string, string]()}
}

// Set stores a parameter value.
func (p *URIParams) Set(key, value string) { p.params.Set(key, value) }

// Get returns a parameter value.
func (p *URIParams) Get(key string) (string, bool) { return p.params.Get(key) }

// Has reports whether a non-empty value is stored for key.
func (p *URIParams) Has(key string) bool {
	v, ok := p.params.Get(key)
	return ok && v != ""
}

// Len returns the number of parameters.
func (p *URIParams) Len() int { return p.params.Len() }

// Map returns a copy of the parameters.
func (p *URIParams) Map() map[string]string {
	out := make(map[string]string, p.params.Len())
	for pair := p.params.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// Replace substitutes every {key} placeholder in uri, in insertion order.
func (p *URIParams) Replace(uri string) string {
	for pair := p.params.Oldest(); pair != nil; pair = pair.Next() {
		uri = strings.ReplaceAll(uri, "{"+pair.Key+"}", pair.Value)
	}
	return uri
}

// JSON renders the parameters as a JSON object, "{}" when empty.
func (p *URIParams) JSON() string {
	if p.params.Len() == 0 {
		return "{}"
	}
	return util.MustCompactJSON(p.Map())
}

// URIPredicate decides whether a URI is acceptable, given the URI params.
type URIPredicate func(uri string, params map[string]string) bool

// URIMatcher compares the request URI after placeholder substitution.
type URIMatcher struct {
	pattern   string
	predicate URIPredicate
	params    *URIParams
}

// NewURIMatcher matches the pattern with {name} placeholders resolved from
// params. A pattern carrying a query string is rejected.
func NewURIMatcher(pattern string, params *URIParams) (*URIMatcher, error) {
	if strings.Contains(pattern, "?") {
		return nil, fmt.Errorf("%w: %s", ErrURIContainsQuery, pattern)
	}
	if params == nil {
		params = NewURIParams()
	}
	return &URIMatcher{pattern: pattern, params: params}, nil
}

// NewURIPredicateMatcher matches URIs accepted by fn.
func NewURIPredicateMatcher(fn URIPredicate, params *URIParams) *URIMatcher {
	if params == nil {
		params = NewURIParams()
	}
	return &URIMatcher{predicate: fn, params: params}
}

// Match implements Matcher.
func (m *URIMatcher) Match(r *request.Request) Outcome {
	if m.predicate != nil {
		if !m.predicate(r.URI, m.params.Map()) {
			return MismatchURI("<callback("+m.params.JSON()+")>", r.URI)
		}
		return HitURI(r.URI)
	}

	expected := m.params.Replace(m.pattern)
	if expected != r.URI {
		return MismatchURI(expected, r.URI)
	}
	return HitURI(r.URI)
}

func (m *URIMatcher) String() string {
	if m.predicate != nil {
		return "callback(request.uri, " + m.params.JSON() + ") !== false"
	}
	return fmt.Sprintf(`request.uri === "%s"`, m.params.Replace(m.pattern))
}
