package clientmock

import (
	"slices"

	"github.com/getmockd/clientmock/internal/matching"
	"github.com/getmockd/clientmock/pkg/request"
)

// ExpectationFromRequest builds an expectation matching exactly the call
// described by method, URL and wire options. The body is decoded the way
// the collection decodes intercepted calls, so a recorded call can be
// turned back into an expectation.
func ExpectationFromRequest(method, rawURL string, opts request.Options) (*Expectation, error) {
	r, err := request.Normalize(method, rawURL, opts)
	if err != nil {
		return nil, err
	}

	e := NewExpectation().Method(r.Method).URI(r.URI)
	for _, name := range sortedKeys(r.Headers) {
		e.Header(name, r.Headers[name])
	}
	for _, key := range sortedKeys(r.QueryParams) {
		v := r.QueryParams[key]
		if !v.IsList() {
			e.QueryParam(key, v.String())
			continue
		}
		for _, item := range v.List() {
			e.set(catQueryParams, key+"[]="+item, matching.NewQueryParamMatcher(key+"[]", item))
		}
	}

	switch {
	case r.JSON != nil:
		e.JSON(r.JSON)
	case len(r.RequestParams) > 0:
		for _, key := range sortedKeys(r.RequestParams) {
			e.RequestParam(key, r.RequestParams[key])
		}
	case len(r.Multiparts) > 0:
		for _, name := range sortedKeys(r.Multiparts) {
			part := r.Multiparts[name]
			e.Multipart(name, MultipartSpec{
				Mimetype: deref(part.Mimetype),
				Filename: deref(part.Filename),
				Content:  deref(part.Content),
			})
		}
	case r.Content != nil:
		e.Content(*r.Content)
	}

	if err := e.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
