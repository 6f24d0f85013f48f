package clientmock

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/getmockd/clientmock/pkg/logging"
	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/response"
)

// Collection is the ordered set of expectations that answers intercepted
// calls. It implements http.RoundTripper.
type Collection struct {
	mu           sync.Mutex
	expectations []*Expectation
	failures     []error
	resolver     Resolver
	logger       *slog.Logger
}

// Option configures a Collection.
type Option func(*Collection)

// WithLogger sets the logger for resolution decisions. Default is a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithResolver replaces the default ScoreResolver.
func WithResolver(r Resolver) Option {
	return func(c *Collection) {
		if r != nil {
			c.resolver = r
		}
	}
}

// NewCollection returns an empty collection.
func NewCollection(opts ...Option) *Collection {
	c := &Collection{
		resolver: ScoreResolver{},
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logger returns the collection's logger.
func (c *Collection) Logger() *slog.Logger { return c.logger }

// Add appends an expectation. Expectations carrying a configuration error
// are refused.
func (c *Collection) Add(e *Expectation) error {
	if err := errInvalid(e); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expectations = append(c.expectations, e)
	return nil
}

// Expect creates an expectation for method and uri and adds it. Empty
// arguments are not matched. A query string in uri is turned into
// QueryParam conditions.
func (c *Collection) Expect(method, uri string) *Expectation {
	e := newExpectationFor(NewExpectation(), method, uri)
	c.mu.Lock()
	c.expectations = append(c.expectations, e)
	c.mu.Unlock()
	return e
}

func newExpectationFor(e *Expectation, method, uri string) *Expectation {
	if method != "" {
		e.Method(method)
	}
	if base, query, ok := strings.Cut(uri, "?"); ok {
		uri = base
		for _, pair := range strings.Split(query, "&") {
			key, value, _ := strings.Cut(pair, "=")
			if key == "" {
				continue
			}
			if unescaped, err := url.QueryUnescape(value); err == nil {
				value = unescaped
			}
			e.QueryParam(key, value)
		}
	}
	if uri != "" {
		e.URI(uri)
	}
	return e
}

// Expectations returns the expectations in registration order.
func (c *Collection) Expectations() []*Expectation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Expectation, len(c.expectations))
	copy(out, c.expectations)
	return out
}

// Len returns the number of expectations.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.expectations)
}

// CallStack returns the calls recorded by all expectations in call order.
func (c *Collection) CallStack() CallStack {
	expectations := c.Expectations()
	stacks := make([]CallStack, len(expectations))
	for i, e := range expectations {
		stacks[i] = e.CallStack()
	}
	return MergeCallStacks(stacks...)
}

// Failures returns the errors the collection itself produced while
// answering calls, such as unmatched calls or exhausted responses.
func (c *Collection) Failures() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]error, len(c.failures))
	copy(out, c.failures)
	return out
}

// Reset drops all expectations and recorded failures.
func (c *Collection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expectations = nil
	c.failures = nil
}

// Do answers a call given as method, URL and wire options.
func (c *Collection) Do(method, rawURL string, opts request.Options) (*response.Response, error) {
	r, err := request.Normalize(method, rawURL, opts)
	if err != nil {
		return nil, c.fail(err)
	}
	return c.Handle(r)
}

// RoundTrip implements http.RoundTripper.
func (c *Collection) RoundTrip(hr *http.Request) (*http.Response, error) {
	r, err := request.FromHTTP(hr)
	if err != nil {
		return nil, c.fail(err)
	}
	resp, err := c.Handle(r)
	if err != nil {
		return nil, err
	}
	return resp.HTTPResponse(hr), nil
}

// Client returns an http.Client whose calls are answered by the collection.
func (c *Collection) Client() *http.Client {
	return &http.Client{Transport: c}
}

// Handle answers a normalized call: it resolves the expectation, runs its
// assertions, records the call, runs the on-match hook and produces the
// next planned response.
func (c *Collection) Handle(r *request.Request) (*response.Response, error) {
	for _, e := range c.Expectations() {
		if err := errInvalid(e); err != nil {
			return nil, c.fail(fmt.Errorf("%w for:\n%s\n", err, e))
		}
	}

	e, err := c.resolver.Resolve(c, r)
	if err != nil {
		return nil, c.fail(err)
	}
	if e == nil {
		return nil, c.fail(fmt.Errorf("%w: resolver returned no expectation for:\n%s\n", ErrInvalidExpectation, r))
	}

	if err := e.Assert(r); err != nil {
		return nil, err
	}

	e.Called(r)
	if e.onMatch != nil {
		e.onMatch(r)
	}

	resp, err := e.Respond(r)
	if err != nil {
		if isEngineError(err) {
			msg := "expectation exhausted"
			if errors.Is(err, response.ErrCallbackNoResponse) {
				msg = "response callback returned no response"
			}
			c.logger.Debug(msg, logging.Name(e.GetName()), logging.Method(r.Method), logging.URI(r.URI))
			return nil, c.fail(err)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Collection) fail(err error) error {
	if isEngineError(err) {
		c.mu.Lock()
		c.failures = append(c.failures, err)
		c.mu.Unlock()
	}
	return err
}
