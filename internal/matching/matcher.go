package matching

import (
	"fmt"

	"github.com/getmockd/clientmock/pkg/request"
)

// Matcher evaluates one aspect of a request.
type Matcher interface {
	// Match evaluates the request and never fails; a non-matching request
	// is reported as a Mismatch or Missing outcome.
	Match(r *request.Request) Outcome

	// String renders the matcher as a readable condition.
	String() string
}

// RequestMatcher evaluates every matcher of one expectation.
type RequestMatcher struct {
	name     string
	matchers []Matcher
}

// NewRequestMatcher returns a matcher set for the named expectation.
func NewRequestMatcher(name string, matchers ...Matcher) *RequestMatcher {
	return &RequestMatcher{name: name, matchers: matchers}
}

// Matchers returns the matchers in evaluation order.
func (m *RequestMatcher) Matchers() []Matcher { return m.matchers }

// Match runs all matchers, including those after a failure, so that the
// result holds the full diagnostic picture.
func (m *RequestMatcher) Match(r *request.Request) Result {
	result := NewResult(m.name)
	for _, matcher := range m.matchers {
		result = result.WithOutcome(matcher.Match(r))
	}
	return result
}

// CatchAllMatcher hits every request.
type CatchAllMatcher struct{}

// Match implements Matcher.
func (CatchAllMatcher) Match(*request.Request) Outcome { return HitCatchAll() }

func (CatchAllMatcher) String() string { return "*" }

// MethodPredicate decides whether a method is acceptable.
type MethodPredicate func(method string) bool

// MethodMatcher compares the request method.
type MethodMatcher struct {
	method    string
	predicate MethodPredicate
}

// NewMethodMatcher matches the exact method.
func NewMethodMatcher(method string) *MethodMatcher {
	return &MethodMatcher{method: method}
}

// NewMethodPredicateMatcher matches methods accepted by fn.
func NewMethodPredicateMatcher(fn MethodPredicate) *MethodMatcher {
	return &MethodMatcher{predicate: fn}
}

// Match implements Matcher.
func (m *MethodMatcher) Match(r *request.Request) Outcome {
	if m.predicate != nil {
		if !m.predicate(r.Method) {
			return MismatchMethod(expectedCallback, r.Method)
		}
		return HitMethod(r.Method)
	}
	if m.method != r.Method {
		return MismatchMethod(m.method, r.Method)
	}
	return HitMethod(r.Method)
}

func (m *MethodMatcher) String() string {
	if m.predicate != nil {
		return "callback(request.method) !== false"
	}
	return fmt.Sprintf(`request.method === "%s"`, m.method)
}

// RequestPredicate decides whether a whole request is acceptable.
type RequestPredicate func(r *request.Request) bool

// ThatMatcher applies an arbitrary predicate to the request.
type ThatMatcher struct {
	predicate RequestPredicate
}

// NewThatMatcher matches requests accepted by fn.
func NewThatMatcher(fn RequestPredicate) *ThatMatcher {
	return &ThatMatcher{predicate: fn}
}

// Match implements Matcher.
func (m *ThatMatcher) Match(r *request.Request) Outcome {
	if !m.predicate(r) {
		return MismatchThat("returned false")
	}
	return HitThat()
}

func (m *ThatMatcher) String() string { return "callback(request)" }
