package matching

import (
	"fmt"

	"github.com/getmockd/clientmock/pkg/request"
)

// ContentPredicate decides whether a raw body is acceptable.
// content is nil when the request had no body.
type ContentPredicate func(content *string) bool

// ContentMatcher compares the raw request body.
type ContentMatcher struct {
	content   string
	predicate ContentPredicate
}

// NewContentMatcher matches the exact body.
func NewContentMatcher(content string) *ContentMatcher {
	return &ContentMatcher{content: content}
}

// NewContentPredicateMatcher matches bodies accepted by fn.
func NewContentPredicateMatcher(fn ContentPredicate) *ContentMatcher {
	return &ContentMatcher{predicate: fn}
}

// Match implements Matcher.
func (m *ContentMatcher) Match(r *request.Request) Outcome {
	if m.predicate != nil {
		if !m.predicate(r.Content) {
			return MismatchContent(expectedCallback, r.Content)
		}
		return HitContent(r.Content)
	}
	if r.Content == nil || *r.Content != m.content {
		return MismatchContent(m.content, r.Content)
	}
	return HitContent(r.Content)
}

func (m *ContentMatcher) String() string {
	if m.predicate != nil {
		return "callback(request.content) !== false"
	}
	return fmt.Sprintf(`request.content === "%s"`, m.content)
}
