package matching

import (
	"fmt"
	"strings"

	"github.com/getmockd/clientmock/pkg/request"
)

// QueryParamMatcher compares one query parameter.
//
// A key ending in [] addresses a list parameter; the expected value then
// only has to be one of the sent values.
type QueryParamMatcher struct {
	key    string
	value  string
	isList bool
}

// NewQueryParamMatcher matches key against value. When args are given,
// value is a format string with %s placeholders filled from args.
func NewQueryParamMatcher(key, value string, args ...any) *QueryParamMatcher {
	name, isList := strings.CutSuffix(key, "[]")
	if len(args) > 0 {
		value = fmt.Sprintf(value, args...)
	}
	return &QueryParamMatcher{key: name, value: value, isList: isList}
}

// Key returns the parameter name without any [] suffix.
func (m *QueryParamMatcher) Key() string { return m.key }

// Match implements Matcher.
func (m *QueryParamMatcher) Match(r *request.Request) Outcome {
	actual, ok := r.QueryParam(m.key)
	if !ok {
		return MissingQueryParam(m.key, m.value)
	}

	var matched bool
	if m.isList {
		matched = actual.IsList() && actual.Contains(m.value)
	} else {
		matched = !actual.IsList() && actual.String() == m.value
	}
	if !matched {
		return MismatchQueryParam(m.key, m.value, actual.String())
	}
	return HitQueryParam(m.key, actual)
}

func (m *QueryParamMatcher) String() string {
	return fmt.Sprintf(`request.queryParams["%s"] === "%s"`, m.key, m.value)
}

// RequestParamMatcher compares one form-encoded body field exactly.
type RequestParamMatcher struct {
	key   string
	value string
}

// NewRequestParamMatcher matches the form field key against value.
func NewRequestParamMatcher(key, value string) *RequestParamMatcher {
	return &RequestParamMatcher{key: key, value: value}
}

// Key returns the field name.
func (m *RequestParamMatcher) Key() string { return m.key }

// Match implements Matcher.
func (m *RequestParamMatcher) Match(r *request.Request) Outcome {
	actual, ok := r.RequestParam(m.key)
	if !ok {
		return MissingRequestParam(m.key, m.value)
	}
	if actual != m.value {
		return MismatchRequestParam(m.key, m.value, actual)
	}
	return HitRequestParam(m.key, actual)
}

func (m *RequestParamMatcher) String() string {
	return fmt.Sprintf(`request.requestParams["%s"] === "%s"`, m.key, m.value)
}
