package clientmock

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/getmockd/clientmock/internal/matching"
	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/response"
)

// Matcher categories. Matchers are evaluated in the order their category
// was first configured.
const (
	catMethod        = "method"
	catURI           = "uri"
	catHeaders       = "headers"
	catQueryParams   = "queryParams"
	catRequestParams = "requestParams"
	catMultiparts    = "multiparts"
	catContent       = "content"
	catJSON          = "json"
	catXML           = "xml"
	catThat          = "that"
	catJSONPath      = "jsonPath"
)

// Assertion runs after an expectation was resolved for a call. A non-nil
// error aborts the call and is returned to the caller unchanged.
type Assertion func(r *request.Request, e *Expectation) error

// Expectation describes one expected outgoing call and what to answer.
//
// Configuration methods return the expectation for chaining. Configuration
// errors are recorded (first error wins) and reported by Err; when the
// expectation was created through a test harness the test fails at once.
type Expectation struct {
	name       string
	matchers   *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, matching.Matcher]]
	uriParams  *matching.URIParams
	assertions []Assertion
	onMatch    func(r *request.Request)
	err        error
	t          testing.TB

	mu        sync.Mutex
	responses response.Queue
	calls     CallStack
}

// NewExpectation returns an expectation without matchers. It matches every
// call with the lowest possible score.
func NewExpectation() *Expectation {
	return &Expectation{
		matchers:  orderedmap.New[string, *orderedmap.OrderedMap[string, matching.Matcher]](),
		uriParams: matching.NewURIParams(),
	}
}

// setError records the first configuration error.
func (e *Expectation) setError(err error) {
	if e.err == nil {
		e.err = err
	}
	if e.t != nil {
		e.t.Helper()
		e.t.Fatal(err)
	}
}

// Err returns the first configuration error.
func (e *Expectation) Err() error {
	return e.err
}

func (e *Expectation) set(category, key string, m matching.Matcher) {
	group, ok := e.matchers.Get(category)
	if !ok {
		group = orderedmap.New[string, matching.Matcher]()
		e.matchers.Set(category, group)
	}
	group.Set(key, m)
}

// Name labels the expectation in diagnostics.
func (e *Expectation) Name(name string) *Expectation {
	e.name = name
	return e
}

// GetName returns the configured name.
func (e *Expectation) GetName() string { return e.name }

// Method expects the exact request method.
func (e *Expectation) Method(method string) *Expectation {
	e.set(catMethod, "", matching.NewMethodMatcher(method))
	return e
}

// MethodFunc expects a method accepted by fn.
func (e *Expectation) MethodFunc(fn MethodPredicate) *Expectation {
	e.set(catMethod, "", matching.NewMethodPredicateMatcher(fn))
	return e
}

// URI expects the URI pattern. {name} placeholders are filled from URIParam
// values, whether they are set before or after this call.
func (e *Expectation) URI(uri string) *Expectation {
	m, err := matching.NewURIMatcher(uri, e.uriParams)
	if err != nil {
		if e.t != nil {
			e.t.Helper()
		}
		e.setError(err)
		return e
	}
	e.set(catURI, "", m)
	return e
}

// URIFunc expects a URI accepted by fn.
func (e *Expectation) URIFunc(fn URIPredicate) *Expectation {
	e.set(catURI, "", matching.NewURIPredicateMatcher(fn, e.uriParams))
	return e
}

// URIParam sets a value for the {key} placeholder of the URI pattern.
func (e *Expectation) URIParam(key, value string) *Expectation {
	e.uriParams.Set(key, value)
	return e
}

// Header expects a header value. Names are case-insensitive.
func (e *Expectation) Header(name, value string) *Expectation {
	e.set(catHeaders, strings.ToLower(name), matching.NewHeaderMatcher(name, value))
	return e
}

// BasicAuthentication expects an Authorization header with the given
// basic credentials.
func (e *Expectation) BasicAuthentication(username, password string) *Expectation {
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return e.Header("Authorization", "Basic "+token)
}

// Content expects the exact raw body.
func (e *Expectation) Content(content string) *Expectation {
	e.set(catContent, "", matching.NewContentMatcher(content))
	return e
}

// ContentFunc expects a raw body accepted by fn.
func (e *Expectation) ContentFunc(fn ContentPredicate) *Expectation {
	e.set(catContent, "", matching.NewContentPredicateMatcher(fn))
	return e
}

// JSON expects a JSON body structurally equal to data.
func (e *Expectation) JSON(data any) *Expectation {
	m, err := matching.NewJSONMatcher(data)
	if err != nil {
		if e.t != nil {
			e.t.Helper()
		}
		e.setError(err)
		return e
	}
	e.set(catJSON, "", m)
	return e
}

// JSONFunc expects a decoded JSON body accepted by fn.
func (e *Expectation) JSONFunc(fn JSONPredicate) *Expectation {
	e.set(catJSON, "", matching.NewJSONPredicateMatcher(fn))
	return e
}

// XML expects a body that is the same XML document as xml, ignoring
// formatting.
func (e *Expectation) XML(xml string) *Expectation {
	m, err := matching.NewXMLMatcher(xml)
	if err != nil {
		if e.t != nil {
			e.t.Helper()
		}
		e.setError(err)
		return e
	}
	e.set(catXML, "", m)
	return e
}

// XMLFunc expects a body accepted by fn.
func (e *Expectation) XMLFunc(fn XMLPredicate) *Expectation {
	e.set(catXML, "", matching.NewXMLPredicateMatcher(fn))
	return e
}

// QueryParam expects a query parameter. A key ending in [] matches when
// value is one of the values of a list parameter. Placeholders fill %s
// verbs in value.
func (e *Expectation) QueryParam(key, value string, placeholders ...any) *Expectation {
	e.set(catQueryParams, key, matching.NewQueryParamMatcher(key, value, placeholders...))
	return e
}

// RequestParam expects a form-encoded body parameter.
func (e *Expectation) RequestParam(key, value string) *Expectation {
	e.set(catRequestParams, key, matching.NewRequestParamMatcher(key, value))
	return e
}

// Multipart expects a multipart part. Empty spec fields are not compared.
func (e *Expectation) Multipart(name string, spec MultipartSpec) *Expectation {
	e.set(catMultiparts, name, matching.NewMultipartMatcher(name, spec))
	return e
}

// MultipartFromFile expects a part carrying the content of the file at
// path, with its base name as filename. An empty mimetype is derived from
// the file extension, or sniffed from the content.
func (e *Expectation) MultipartFromFile(name, path, mimetype string) *Expectation {
	data, err := os.ReadFile(path)
	if err != nil {
		if e.t != nil {
			e.t.Helper()
		}
		e.setError(fmt.Errorf("%w: reading multipart file: %w", ErrInvalidExpectation, err))
		return e
	}
	if mimetype == "" {
		mimetype = detectMimetype(path, data)
	}
	return e.Multipart(name, MultipartSpec{
		Mimetype: mimetype,
		Filename: filepath.Base(path),
		Content:  string(data),
	})
}

func detectMimetype(path string, data []byte) string {
	detected := mime.TypeByExtension(filepath.Ext(path))
	if detected == "" {
		detected = http.DetectContentType(data)
	}
	if mediaType, _, err := mime.ParseMediaType(detected); err == nil {
		return mediaType
	}
	return detected
}

// That expects the whole request to be accepted by fn.
func (e *Expectation) That(fn RequestPredicate) *Expectation {
	e.set(catThat, "", matching.NewThatMatcher(fn))
	return e
}

// JSONPath expects the JSONPath expression to select a value equal to
// expected. {"exists": bool} checks presence only.
func (e *Expectation) JSONPath(path string, expected any) *Expectation {
	m, err := matching.NewJSONPathMatcher(path, expected)
	if err != nil {
		if e.t != nil {
			e.t.Helper()
		}
		e.setError(err)
		return e
	}
	e.set(catJSONPath, path, m)
	return e
}

// AssertMethod adds an assertion on the method of a resolved call.
func (e *Expectation) AssertMethod(fn func(method string, e *Expectation) error) *Expectation {
	return e.AssertThat(func(r *request.Request, e *Expectation) error { return fn(r.Method, e) })
}

// AssertURI adds an assertion on the URI of a resolved call.
func (e *Expectation) AssertURI(fn func(uri string, e *Expectation) error) *Expectation {
	return e.AssertThat(func(r *request.Request, e *Expectation) error { return fn(r.URI, e) })
}

// AssertContent adds an assertion on the raw body of a resolved call.
func (e *Expectation) AssertContent(fn func(content *string, e *Expectation) error) *Expectation {
	return e.AssertThat(func(r *request.Request, e *Expectation) error { return fn(r.Content, e) })
}

// AssertThat adds an assertion on a resolved call.
func (e *Expectation) AssertThat(fn Assertion) *Expectation {
	e.assertions = append(e.assertions, fn)
	return e
}

// Assert runs the assertions in order and returns the first error.
func (e *Expectation) Assert(r *request.Request) error {
	for _, assertion := range e.assertions {
		if err := assertion(r, e); err != nil {
			return err
		}
	}
	return nil
}

// OnMatch registers a side effect run for every resolved call, after the
// call was recorded and before the response is produced.
func (e *Expectation) OnMatch(fn func(r *request.Request)) *Expectation {
	e.onMatch = fn
	return e
}

// WillRespond appends a response to the sequence.
func (e *Expectation) WillRespond(b *response.Builder) *Expectation {
	if e.t != nil {
		e.t.Helper()
	}
	if err := builderErr(b); err != nil {
		e.setError(err)
		return e
	}
	return e.addResponse(response.Respond(b), false)
}

// WillThrow appends an error to the sequence.
func (e *Expectation) WillThrow(err error) *Expectation {
	if e.t != nil {
		e.t.Helper()
	}
	return e.addResponse(response.Throw(err), false)
}

// WillAlwaysRespond answers every call with b.
func (e *Expectation) WillAlwaysRespond(b *response.Builder) *Expectation {
	if e.t != nil {
		e.t.Helper()
	}
	if err := builderErr(b); err != nil {
		e.setError(err)
		return e
	}
	return e.addResponse(response.Respond(b), true)
}

// WillAlwaysThrow answers every call with err.
func (e *Expectation) WillAlwaysThrow(err error) *Expectation {
	if e.t != nil {
		e.t.Helper()
	}
	return e.addResponse(response.Throw(err), true)
}

func builderErr(b *response.Builder) error {
	if b == nil {
		return fmt.Errorf("%w: response builder is nil", ErrInvalidExpectation)
	}
	return b.Err()
}

func (e *Expectation) addResponse(entry response.Entry, always bool) *Expectation {
	if e.t != nil {
		e.t.Helper()
	}

	e.mu.Lock()
	var err error
	if always {
		err = e.responses.AddAlways(entry)
	} else {
		err = e.responses.Add(entry)
	}
	e.mu.Unlock()

	if err != nil {
		e.setError(&AddResponseError{Err: err, Expectation: e.String()})
	}
	return e
}

// ResetResponses drops all configured responses.
func (e *Expectation) ResetResponses() *Expectation {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses.Reset()
	return e
}

// HasResponse reports whether any response was configured.
func (e *Expectation) HasResponse() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.responses.IsEmpty()
}

// HasNextResponse reports whether the next call would get a response.
func (e *Expectation) HasNextResponse() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.responses.HasNext()
}

// NextResponse consumes the next planned response.
func (e *Expectation) NextResponse() (response.Entry, error) {
	e.mu.Lock()
	entry, err := e.responses.Next()
	e.mu.Unlock()

	if err != nil {
		return response.Entry{}, &NoResponseError{Err: err, Expectation: e.String()}
	}
	return entry, nil
}

// Respond consumes the next planned response and builds it for r. A
// planned error is returned as is.
func (e *Expectation) Respond(r *request.Request) (*response.Response, error) {
	entry, err := e.NextResponse()
	if err != nil {
		return nil, err
	}
	if entry.Err != nil {
		return nil, entry.Err
	}
	if entry.Response == nil {
		return nil, &NoResponseError{Err: response.ErrNoResponse, Expectation: e.String()}
	}
	resp, err := entry.Response.Build(r)
	if errors.Is(err, response.ErrCallbackNoResponse) {
		return nil, &NoResponseError{Err: err, Expectation: e.String()}
	}
	return resp, err
}

// Called records a call.
func (e *Expectation) Called(r *request.Request) *Expectation {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, newCall(r))
	return e
}

// CallStack returns the recorded calls in order.
func (e *Expectation) CallStack() CallStack {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.calls)
}

// Matcher returns the flattened matchers in category order. An expectation
// without matchers gets a catch-all matcher.
func (e *Expectation) Matcher() *RequestMatcher {
	var matchers []matching.Matcher
	for category := e.matchers.Oldest(); category != nil; category = category.Next() {
		for pair := category.Value.Oldest(); pair != nil; pair = pair.Next() {
			matchers = append(matchers, pair.Value)
		}
	}
	if len(matchers) == 0 {
		matchers = append(matchers, matching.CatchAllMatcher{})
	}
	return matching.NewRequestMatcher(e.name, matchers...)
}

// IsEmpty reports whether no matcher was configured.
func (e *Expectation) IsEmpty() bool {
	return e.matchers.Len() == 0
}

// String renders the configured conditions joined by &&. Only one body
// condition is shown: json, else xml, else content.
func (e *Expectation) String() string {
	var parts []string
	for _, category := range []string{catMethod, catURI, catHeaders, catQueryParams, catRequestParams, catMultiparts, catJSONPath} {
		parts = append(parts, e.rendered(category)...)
	}
	for _, category := range []string{catJSON, catXML, catContent} {
		if body := e.rendered(category); len(body) > 0 {
			parts = append(parts, body...)
			break
		}
	}
	return strings.TrimSpace(strings.Join(parts, " && "))
}

func (e *Expectation) rendered(category string) []string {
	group, ok := e.matchers.Get(category)
	if !ok {
		return nil
	}
	out := make([]string, 0, group.Len())
	for pair := group.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value.String())
	}
	return out
}

// errInvalid wraps a configuration error for callers of the collection.
func errInvalid(e *Expectation) error {
	if e.err == nil {
		return nil
	}
	if errors.Is(e.err, ErrInvalidExpectation) {
		return e.err
	}
	return fmt.Errorf("%w: %w", ErrInvalidExpectation, e.err)
}
