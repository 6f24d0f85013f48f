package clientmock

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/clientmock/pkg/logging"
	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/response"
)

func TestCollection_DoReturnsConfiguredResponse(t *testing.T) {
	c := NewCollection()
	c.Expect(http.MethodPost, "https://api.test/users").
		Header("Content-Type", "application/json").
		JSON(map[string]any{"name": "peter"}).
		WillRespond(response.New().Code(http.StatusCreated).JSON(map[string]any{"id": 1}))

	resp, err := c.Do(http.MethodPost, "https://api.test/users", request.Options{
		Headers: []string{"Content-Type: application/json"},
		Body:    `{"name":"peter"}`,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"id":1}`, string(resp.Body))
}

func TestCollection_CallOrder(t *testing.T) {
	var steps []string
	c := NewCollection()
	var e *Expectation
	e = c.Expect("GET", "/order").
		AssertThat(func(*request.Request, *Expectation) error {
			steps = append(steps, "assert")
			assert.True(t, e.CallStack().IsEmpty())
			return nil
		}).
		OnMatch(func(*request.Request) {
			steps = append(steps, "onMatch")
			assert.Equal(t, 1, e.CallStack().Len())
			assert.True(t, e.HasNextResponse())
		}).
		WillRespond(response.New().FromCallback(func(*request.Request) (*response.Response, error) {
			steps = append(steps, "respond")
			return &response.Response{}, nil
		}))

	_, err := c.Do("GET", "/order", request.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"assert", "onMatch", "respond"}, steps)
}

func TestCollection_AssertionErrorAbortsCall(t *testing.T) {
	errAssert := errors.New("unexpected payload")
	c := NewCollection()
	e := c.Expect("GET", "/").
		AssertThat(func(*request.Request, *Expectation) error { return errAssert }).
		WillRespond(response.New())

	_, err := c.Do("GET", "/", request.Options{})

	assert.Same(t, errAssert, err)
	assert.True(t, e.CallStack().IsEmpty())
	assert.True(t, e.HasNextResponse())
	assert.Empty(t, c.Failures())
}

func TestCollection_ThrownErrorIsReturnedAsIs(t *testing.T) {
	errDown := errors.New("connection reset")
	c := NewCollection()
	e := c.Expect("GET", "/").WillThrow(errDown)

	_, err := c.Do("GET", "/", request.Options{})

	assert.Same(t, errDown, err)
	assert.Equal(t, 1, e.CallStack().Len())
	assert.Empty(t, c.Failures())
}

func TestCollection_ExhaustedExpectationStillRecordsCall(t *testing.T) {
	c := NewCollection()
	e := c.Expect("GET", "/").WillRespond(response.New())

	_, err := c.Do("GET", "/", request.Options{})
	require.NoError(t, err)

	_, err = c.Do("GET", "/", request.Options{})
	assert.ErrorIs(t, err, response.ErrAllResponsesProcessed)
	assert.Equal(t, 2, e.CallStack().Len())
	assert.Len(t, c.Failures(), 1)
}

func TestCollection_NoMatchIsRecordedAsFailure(t *testing.T) {
	c := NewCollection()
	c.Expect("POST", "/")

	_, err := c.Do("GET", "/", request.Options{})

	require.ErrorIs(t, err, ErrNoMatch)
	require.Len(t, c.Failures(), 1)
	assert.ErrorIs(t, c.Failures()[0], ErrNoMatch)
}

func TestCollection_AddRefusesInvalidExpectation(t *testing.T) {
	c := NewCollection()

	err := c.Add(NewExpectation().XML("not xml"))

	assert.ErrorIs(t, err, ErrInvalidExpectation)
	assert.Equal(t, 0, c.Len())
}

func TestCollection_DoReportsLateConfigurationError(t *testing.T) {
	c := NewCollection()
	c.Expect("GET", "/").WillRespond(response.New()).WillAlwaysRespond(response.New())

	_, err := c.Do("GET", "/", request.Options{})

	assert.ErrorIs(t, err, ErrInvalidExpectation)
	assert.ErrorIs(t, err, response.ErrResponseAlreadyAdded)
}

func TestCollection_ExpectSplitsQueryString(t *testing.T) {
	c := NewCollection()
	e := c.Expect("GET", "https://api.test/search?q=hello%20world&page=2&=skipped").WillRespond(response.New())

	assert.Equal(t, `request.method === "GET" && `+
		`request.uri === "https://api.test/search" && `+
		`request.queryParams["q"] === "hello world" && `+
		`request.queryParams["page"] === "2"`, e.String())

	_, err := c.Do("GET", "https://api.test/search?page=2&q=hello+world", request.Options{})
	assert.NoError(t, err)
}

func TestCollection_UnprocessableBody(t *testing.T) {
	c := NewCollection()
	c.Expect("POST", "/form")

	_, err := c.Do("POST", "/form", request.Options{
		Headers: []string{"Content-Type: application/x-www-form-urlencoded"},
		Body:    map[string]any{"a": 1},
	})

	assert.ErrorIs(t, err, request.ErrUnprocessableBody)
	assert.Len(t, c.Failures(), 1)
}

func TestCollection_CallStackIsMergedInCallOrder(t *testing.T) {
	c := NewCollection()
	a := c.Expect("GET", "/a").WillAlwaysRespond(response.New())
	b := c.Expect("GET", "/b").WillAlwaysRespond(response.New())

	for _, uri := range []string{"/b", "/a", "/b"} {
		_, err := c.Do("GET", uri, request.Options{})
		require.NoError(t, err)
	}

	var uris []string
	for _, r := range c.CallStack().Requests() {
		uris = append(uris, r.URI)
	}
	assert.Equal(t, []string{"/b", "/a", "/b"}, uris)
	assert.Equal(t, 1, a.CallStack().Len())
	assert.Equal(t, 2, b.CallStack().Len())
}

func TestCollection_RoundTrip(t *testing.T) {
	c := NewCollection()
	c.Expect(http.MethodPut, "http://api.test/items/{id}").
		URIParam("id", "7").
		Header("X-Token", "secret").
		RequestParam("name", "lamp").
		WillRespond(response.New().Code(http.StatusAccepted).Header("X-Request-Id", "abc").Content("done"))

	req, err := http.NewRequest(http.MethodPut, "http://api.test/items/7", strings.NewReader("name=lamp"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Token", "secret")

	resp, err := c.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "abc", resp.Header.Get("X-Request-Id"))
	assert.Equal(t, "done", string(body))
}

func TestCollection_RoundTripNoMatch(t *testing.T) {
	c := NewCollection()
	c.Expect(http.MethodGet, "http://api.test/a")

	_, err := c.Client().Get("http://api.test/b")

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestCollection_LogsResolution(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON, Output: &buf})
	c := NewCollection(WithLogger(logger))
	c.Expect("GET", "/hit").Name("hit").WillRespond(response.New())

	_, err := c.Do("GET", "/hit", request.Options{})
	require.NoError(t, err)
	_, err = c.Do("GET", "/miss", request.Options{})
	require.Error(t, err)
	_, err = c.Do("GET", "/hit", request.Options{})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"resolved expectation"`)
	assert.Contains(t, out, `"name":"hit"`)
	assert.Contains(t, out, `"score":30`)
	assert.Contains(t, out, `"msg":"no matching expectation"`)
	assert.Contains(t, out, `"msg":"expectation exhausted"`)
}

func TestCollection_DefaultLoggerIsSilent(t *testing.T) {
	assert.False(t, NewCollection().Logger().Enabled(t.Context(), slog.LevelError))
}

func TestCollection_Reset(t *testing.T) {
	c := NewCollection()
	c.Expect("GET", "/")
	_, _ = c.Do("POST", "/", request.Options{})

	c.Reset()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Failures())
}

func TestCollection_QueryParamsWithEmptyValueScore(t *testing.T) {
	c := NewCollection()
	loose := c.Expect("GET", "/query").WillRespond(response.New().Content("loose"))
	strict := c.Expect("GET", "/query").
		QueryParam("firstname", "peter").
		QueryParam("lastname", "peterson").
		QueryParam("email", "").
		WillRespond(response.New().Content("strict"))

	resp, err := c.Do("GET", "/query?firstname=peter&lastname=peterson&email=", request.Options{})
	require.NoError(t, err)
	assert.Equal(t, "strict", string(resp.Body))

	assert.True(t, loose.CallStack().IsEmpty())
	require.Equal(t, 1, strict.CallStack().Len())
	call, _ := strict.CallStack().First()
	result := strict.Matcher().Match(call.Request)
	assert.Equal(t, 45, result.Score())
	assert.Equal(t, 30, loose.Matcher().Match(call.Request).Score())
}

func TestCollection_CallbackWithoutResponse(t *testing.T) {
	c := NewCollection()
	c.Expect(http.MethodGet, "http://api.test/x").
		WillRespond(response.New().FromCallback(func(*request.Request) (*response.Response, error) {
			return nil, nil
		}))

	resp, err := c.Client().Get("http://api.test/x")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, response.ErrCallbackNoResponse)
	assert.ErrorIs(t, err, response.ErrNoResponse)
	require.Len(t, c.Failures(), 1)
	assert.ErrorIs(t, c.Failures()[0], response.ErrCallbackNoResponse)
	assert.Equal(t, 1, c.CallStack().Len())
}

func TestCollection_ResolverWithoutExpectation(t *testing.T) {
	c := NewCollection(WithResolver(ResolverFunc(func(*Collection, *request.Request) (*Expectation, error) {
		return nil, nil
	})))
	c.Expect("GET", "/")

	resp, err := c.Do("GET", "/", request.Options{})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidExpectation)
	require.Len(t, c.Failures(), 1)
	assert.ErrorIs(t, c.Failures()[0], ErrInvalidExpectation)
}
