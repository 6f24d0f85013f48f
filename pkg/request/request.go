package request

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/getmockd/clientmock/pkg/util"
)

// Request is a normalized HTTP call. It is built once per intercepted call
// and must not be modified afterwards.
type Request struct {
	Method string
	// URI is the request target without its query string.
	URI string
	// Headers maps lower-cased header names to their (last) value.
	Headers map[string]string
	// Content is the raw body, nil when the call had none.
	Content *string
	// JSON is the decoded body, nil when absent or not JSON.
	JSON          any
	QueryParams   map[string]QueryValue
	RequestParams map[string]string
	Multiparts    map[string]Multipart
}

// Multipart is one part of a multipart/form-data body.
// Unset optional attributes are nil.
type Multipart struct {
	Name     string
	Mimetype *string
	Filename *string
	Content  *string
}

// QueryValue is a query parameter value: a single string, or a list for
// parameters sent as key[]=a&key[]=b.
type QueryValue struct {
	value  string
	values []string
	list   bool
}

// Value returns a single-valued query parameter.
func Value(v string) QueryValue {
	return QueryValue{value: v}
}

// Values returns a list-valued query parameter.
func Values(v ...string) QueryValue {
	return QueryValue{values: slices.Clone(v), list: true}
}

// IsList reports whether the parameter was sent as a list.
func (q QueryValue) IsList() bool { return q.list }

// List returns the list values. A single value is returned as a one-element list.
func (q QueryValue) List() []string {
	if !q.list {
		return []string{q.value}
	}
	return slices.Clone(q.values)
}

// Contains reports whether v is one of the values.
func (q QueryValue) Contains(v string) bool {
	if !q.list {
		return q.value == v
	}
	return slices.Contains(q.values, v)
}

// String returns the single value, or the list encoded as a JSON array.
func (q QueryValue) String() string {
	if !q.list {
		return q.value
	}
	return util.MustCompactJSON(q.values)
}

func (q QueryValue) appended(v string) QueryValue {
	if !q.list {
		return Values(v)
	}
	return QueryValue{values: append(slices.Clone(q.values), v), list: true}
}

// Header returns the value of the named header. Lookup is case-insensitive.
func (r *Request) Header(name string) (string, bool) {
	v, ok := r.Headers[strings.ToLower(name)]
	return v, ok
}

// HasHeader reports whether the named header was sent.
func (r *Request) HasHeader(name string) bool {
	_, ok := r.Header(name)
	return ok
}

// QueryParam returns the named query parameter.
func (r *Request) QueryParam(key string) (QueryValue, bool) {
	v, ok := r.QueryParams[key]
	return v, ok
}

// HasQueryParam reports whether the named query parameter was sent.
func (r *Request) HasQueryParam(key string) bool {
	_, ok := r.QueryParams[key]
	return ok
}

// RequestParam returns the named form field.
func (r *Request) RequestParam(key string) (string, bool) {
	v, ok := r.RequestParams[key]
	return v, ok
}

// HasRequestParam reports whether the named form field was sent.
func (r *Request) HasRequestParam(key string) bool {
	_, ok := r.RequestParams[key]
	return ok
}

// Multipart returns the named multipart part.
func (r *Request) Multipart(name string) (Multipart, bool) {
	p, ok := r.Multiparts[name]
	return p, ok
}

// HasMultipart reports whether the named multipart part was sent.
func (r *Request) HasMultipart(name string) bool {
	_, ok := r.Multiparts[name]
	return ok
}

// ContentString returns the raw body, or "" when there is none.
func (r *Request) ContentString() string {
	if r.Content == nil {
		return ""
	}
	return *r.Content
}

// String renders the request for diagnostics: request line, headers, then
// the most specific body representation available.
func (r *Request) String() string {
	var b strings.Builder
	b.WriteString(r.Method + " " + r.URI)
	if len(r.QueryParams) > 0 {
		b.WriteString("?" + BuildQuery(r.QueryParams))
	}
	b.WriteString("\n")
	for _, k := range sortedKeys(r.Headers) {
		fmt.Fprintf(&b, "%s: %s\n", k, r.Headers[k])
	}

	switch {
	case len(r.RequestParams) > 0:
		for _, k := range sortedKeys(r.RequestParams) {
			fmt.Fprintf(&b, "&%s=%s", k, r.RequestParams[k])
		}
		b.WriteString("\n")
	case len(r.Multiparts) > 0:
		for _, k := range sortedKeys(r.Multiparts) {
			p := r.Multiparts[k]
			var attrs strings.Builder
			if p.Filename != nil && *p.Filename != "" {
				fmt.Fprintf(&attrs, ", filename=%s", *p.Filename)
			}
			if p.Mimetype != nil && *p.Mimetype != "" {
				fmt.Fprintf(&attrs, ", mimetype=%s", *p.Mimetype)
			}
			if p.Content != nil && *p.Content != "" {
				fmt.Fprintf(&attrs, ", content=%s", *p.Content)
			}
			fmt.Fprintf(&b, "%s: name=%s, %s\n", k, p.Name, attrs.String())
		}
	case r.JSON != nil:
		b.WriteString(util.MustCompactJSON(r.JSON))
	case r.Content != nil:
		b.WriteString(*r.Content)
	}

	return strings.TrimSpace(b.String())
}

// BuildQuery encodes query parameters sorted by key. List values are
// written as key[0]=a&key[1]=b.
func BuildQuery(params map[string]QueryValue) string {
	var parts []string
	for _, k := range sortedKeys(params) {
		v := params[k]
		if !v.IsList() {
			parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v.value))
			continue
		}
		for i, item := range v.values {
			parts = append(parts, url.QueryEscape(k+"["+strconv.Itoa(i)+"]")+"="+url.QueryEscape(item))
		}
	}
	return strings.Join(parts, "&")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
