package matching

import (
	"fmt"
	"strings"

	"github.com/getmockd/clientmock/pkg/request"
)

// HeaderMatcher compares one header value exactly.
// Header names are case-insensitive.
type HeaderMatcher struct {
	name  string
	value string
}

// NewHeaderMatcher matches the named header against value.
func NewHeaderMatcher(name, value string) *HeaderMatcher {
	return &HeaderMatcher{name: strings.ToLower(name), value: value}
}

// Name returns the lower-cased header name.
func (m *HeaderMatcher) Name() string { return m.name }

// Match implements Matcher.
func (m *HeaderMatcher) Match(r *request.Request) Outcome {
	actual, ok := r.Header(m.name)
	if !ok {
		return MissingHeader(m.name, m.value)
	}
	if actual != m.value {
		return MismatchHeader(m.name, m.value, actual)
	}
	return HitHeader(m.name, actual)
}

func (m *HeaderMatcher) String() string {
	return fmt.Sprintf(`request.header["%s"] === "%s"`, m.name, m.value)
}
