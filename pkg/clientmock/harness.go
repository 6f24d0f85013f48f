package clientmock

import (
	"fmt"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/clientmock/pkg/logging"
	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/response"
	"github.com/getmockd/clientmock/pkg/util"
)

// Mock is a test helper around a Collection. Expectations created through
// it fail the test as soon as they are misconfigured, and the collection is
// reset when the test completes.
type Mock struct {
	*Collection
	t testing.TB
}

// New creates a mock bound to t. Resolution decisions are logged to t at
// debug level unless WithLogger is given.
func New(t testing.TB, opts ...Option) *Mock {
	t.Helper()
	opts = append([]Option{WithLogger(logging.NewTB(t, logging.LevelDebug))}, opts...)
	m := &Mock{Collection: NewCollection(opts...), t: t}
	t.Cleanup(m.Reset)
	return m
}

// FailOnUnmatched makes the test fail at cleanup if the collection produced
// an error while answering a call, even when the code under test swallowed it.
func (m *Mock) FailOnUnmatched() *Mock {
	m.t.Helper()
	m.t.Cleanup(func() {
		for _, err := range m.Failures() {
			m.t.Error(err.Error())
		}
	})
	return m
}

// Request adds an expectation for method and uri. Empty arguments are not
// matched. A query string in uri becomes QueryParam conditions.
func (m *Mock) Request(method, uri string) *Expectation {
	m.t.Helper()
	e := NewExpectation()
	e.t = m.t
	newExpectationFor(e, method, uri)
	if err := m.Add(e); err != nil {
		m.t.Fatal(err)
	}
	return e
}

// Response returns a new response builder.
func (m *Mock) Response() *response.Builder {
	return response.New()
}

// AssertCalledNTimes asserts that e was called exactly n times.
func (m *Mock) AssertCalledNTimes(e *Expectation, n int, msgAndArgs ...any) bool {
	m.t.Helper()
	return assert.Len(m.t, e.CallStack(), n,
		message(msgAndArgs, "Request not called expected times: %s", e))
}

// AssertAllCalled asserts that every expectation was called at least once.
func (m *Mock) AssertAllCalled(msgAndArgs ...any) bool {
	m.t.Helper()
	ok := true
	for _, e := range m.Expectations() {
		if !assert.False(m.t, e.CallStack().IsEmpty(), message(msgAndArgs, "Request not called: %s", e)) {
			ok = false
		}
	}
	return ok
}

// AssertCalledWithJSON asserts that every call to e sent a JSON body equal
// to expected.
func (m *Mock) AssertCalledWithJSON(e *Expectation, expected any, msgAndArgs ...any) bool {
	m.t.Helper()
	want, err := util.NormalizeJSON(expected)
	if err != nil {
		return assert.Fail(m.t, fmt.Sprintf("expected value is not JSON encodable: %v", err), msgAndArgs...)
	}
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		return assert.Equal(m.t, want, c.Request.JSON,
			message(msgAndArgs, "Request not called with expected json data: %s", c.Request))
	})
}

// AssertCalledWithContent asserts that every call to e sent the raw body expected.
func (m *Mock) AssertCalledWithContent(e *Expectation, expected string, msgAndArgs ...any) bool {
	m.t.Helper()
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		return assert.Equal(m.t, expected, c.Request.ContentString(),
			message(msgAndArgs, "Request not called with expected content: %s", c.Request))
	})
}

// AssertCalledWithRequestParams asserts that every call to e sent exactly
// the form parameters expected.
func (m *Mock) AssertCalledWithRequestParams(e *Expectation, expected map[string]string, msgAndArgs ...any) bool {
	m.t.Helper()
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		return assert.Equal(m.t, orEmpty(expected), orEmpty(c.Request.RequestParams),
			message(msgAndArgs, "Request not called with expected request parameters: %s", c.Request))
	})
}

// AssertCalledWithQueryParams asserts that every call to e sent exactly the
// query parameters expected.
func (m *Mock) AssertCalledWithQueryParams(e *Expectation, expected map[string]request.QueryValue, msgAndArgs ...any) bool {
	m.t.Helper()
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		return assert.Equal(m.t, orEmpty(expected), orEmpty(c.Request.QueryParams),
			message(msgAndArgs, "Request not called with expected query parameters: %s", c.Request))
	})
}

// AssertCalledWithQueryParam asserts that every call to e sent the query
// parameter name with the value expected. List values compare by their
// JSON rendering.
func (m *Mock) AssertCalledWithQueryParam(e *Expectation, name, expected string, msgAndArgs ...any) bool {
	m.t.Helper()
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		actual, ok := c.Request.QueryParam(name)
		if !assert.True(m.t, ok,
			message(msgAndArgs, `Request not called with expected query parameter "%s": %s`, name, c.Request)) {
			return false
		}
		return assert.Equal(m.t, expected, actual.String(),
			message(msgAndArgs, `Request not called with expected query parameter value "%s": %s`, name, c.Request))
	})
}

// AssertCalledWithFile asserts that every call to e sent the multipart part
// key with the given filename. A non-negative size is compared with the
// length of the part content.
func (m *Mock) AssertCalledWithFile(e *Expectation, key, filename string, size int, msgAndArgs ...any) bool {
	m.t.Helper()
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		part, ok := c.Request.Multipart(key)
		if !assert.True(m.t, ok, message(msgAndArgs, `Request not called with file "%s": %s`, key, c.Request)) {
			return false
		}
		if !assert.Equal(m.t, filename, deref(part.Filename),
			message(msgAndArgs, `Request not called with expected filename "%s": %s`, filename, c.Request)) {
			return false
		}
		if size < 0 {
			return true
		}
		return assert.Len(m.t, deref(part.Content), size,
			message(msgAndArgs, `Request not called with expected file size "%d": %s`, size, c.Request))
	})
}

// AssertCalledWithHeaderSame asserts that every call to e sent header with
// exactly value.
func (m *Mock) AssertCalledWithHeaderSame(e *Expectation, header, value string, msgAndArgs ...any) bool {
	m.t.Helper()
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		actual, ok := c.Request.Header(header)
		return assert.True(m.t, ok && actual == value,
			message(msgAndArgs, "Request not called with expected header: %s", c.Request))
	})
}

// AssertCalledWithHeaderContaining asserts that every call to e sent header
// with a value containing substr.
func (m *Mock) AssertCalledWithHeaderContaining(e *Expectation, header, substr string, msgAndArgs ...any) bool {
	m.t.Helper()
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		actual, _ := c.Request.Header(header)
		return assert.Contains(m.t, actual, substr,
			message(msgAndArgs, "Request not called with expected header: %s", c.Request))
	})
}

// AssertCalledWithHeaderNotContaining asserts that no call to e sent header
// with a value containing substr.
func (m *Mock) AssertCalledWithHeaderNotContaining(e *Expectation, header, substr string, msgAndArgs ...any) bool {
	m.t.Helper()
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		actual, _ := c.Request.Header(header)
		return assert.NotContains(m.t, actual, substr,
			message(msgAndArgs, "Request not called with expected header: %s", c.Request))
	})
}

// AssertCalledWithoutHeader asserts that no call to e sent header.
func (m *Mock) AssertCalledWithoutHeader(e *Expectation, header string, msgAndArgs ...any) bool {
	m.t.Helper()
	return m.eachCall(e, msgAndArgs, func(c Call) bool {
		return assert.False(m.t, c.Request.HasHeader(header),
			message(msgAndArgs, "Request not called without expected header: %s", c.Request))
	})
}

// eachCall fails if e was never called, then runs check for every call.
func (m *Mock) eachCall(e *Expectation, msgAndArgs []any, check func(c Call) bool) bool {
	m.t.Helper()
	calls := e.CallStack()
	if !assert.NotEmpty(m.t, calls, message(msgAndArgs, "Request not called: %s", e)) {
		return false
	}
	ok := true
	for _, c := range calls {
		if !check(c) {
			ok = false
		}
	}
	return ok
}

// message prefixes the formatted template with the caller's message.
func message(msgAndArgs []any, template string, values ...any) string {
	msg := fmt.Sprintf(template, values...)
	user := userMessage(msgAndArgs)
	if user == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(user)
	return string(unicode.ToUpper(r)) + user[size:] + ". " + msg
}

func userMessage(msgAndArgs []any) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%+v", msgAndArgs[0])
	default:
		format, ok := msgAndArgs[0].(string)
		if !ok {
			return strings.TrimSpace(fmt.Sprintln(msgAndArgs...))
		}
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
}

func orEmpty[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}
