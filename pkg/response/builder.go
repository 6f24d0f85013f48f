package response

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/util"
)

// Response is a materialized canned response.
type Response struct {
	// StatusCode is 0 when the builder did not set one; transports then use 200.
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ErrCallbackNoResponse is returned by Build when a callback yields
// neither a response nor an error.
var ErrCallbackNoResponse = &queueError{msg: "response callback returned no response", parent: ErrNoResponse}

// Callback computes a response from the matched request.
type Callback func(req *request.Request) (*Response, error)

// Builder describes a canned response. The zero value is not usable; call New.
type Builder struct {
	header   *orderedmap.OrderedMap[string, string]
	content  *string
	code     int
	callback Callback
	err      error
}

// New returns an empty response builder.
func New() *Builder {
	return &Builder{header: orderedmap.New[string, string]()}
}

// Content sets the raw body.
func (b *Builder) Content(content string) *Builder {
	b.content = &content
	return b
}

// Header sets a header. Names are stored lower-cased.
func (b *Builder) Header(name, value string) *Builder {
	b.header.Set(strings.ToLower(name), value)
	return b
}

// ContentType sets the Content-Type header.
func (b *Builder) ContentType(contentType string) *Builder {
	return b.Header("Content-Type", contentType)
}

// ContentLength sets the Content-Length header.
func (b *Builder) ContentLength(n int) *Builder {
	return b.Header("Content-Length", strconv.Itoa(n))
}

// ETag sets the ETag header.
func (b *Builder) ETag(etag string) *Builder {
	return b.Header("ETag", etag)
}

// JSON sets an application/json body encoded from v. A nil v clears the body.
func (b *Builder) JSON(v any) *Builder {
	b.ContentType("application/json")
	if v == nil {
		b.content = nil
		return b
	}
	encoded, err := util.CompactJSON(v)
	if err != nil {
		b.err = fmt.Errorf("encoding json response body: %w", err)
		return b
	}
	return b.Content(encoded)
}

// XML sets a text/xml body.
func (b *Builder) XML(data string) *Builder {
	b.ContentType("text/xml")
	return b.Content(data)
}

// Code sets the status code.
func (b *Builder) Code(code int) *Builder {
	b.code = code
	return b
}

// FromCallback makes the builder delegate to fn. All other settings are ignored.
func (b *Builder) FromCallback(fn Callback) *Builder {
	b.callback = fn
	return b
}

// Err returns the first configuration error, if any.
func (b *Builder) Err() error { return b.err }

// Build materializes the response for the matched request.
func (b *Builder) Build(req *request.Request) (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.callback != nil {
		resp, err := b.callback(req)
		if err == nil && resp == nil {
			return nil, ErrCallbackNoResponse
		}
		return resp, err
	}

	resp := &Response{StatusCode: b.code, Header: make(http.Header, b.header.Len())}
	for pair := b.header.Oldest(); pair != nil; pair = pair.Next() {
		resp.Header.Set(pair.Key, pair.Value)
	}
	if b.content != nil {
		resp.Body = []byte(*b.content)
	}
	return resp, nil
}

// String renders the response as status line, headers and body.
func (b *Builder) String() string {
	if b.callback != nil {
		return "callable(realRequest)"
	}

	var s strings.Builder
	if b.code != 0 {
		fmt.Fprintf(&s, "HTTP Code: %d", b.code)
	}
	for pair := b.header.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&s, "\n%s: %s", http.CanonicalHeaderKey(pair.Key), pair.Value)
	}
	if b.content != nil && *b.content != "" {
		if s.Len() > 0 {
			s.WriteString("\n\n")
		}
		s.WriteString(*b.content)
	}
	return strings.TrimSpace(s.String())
}
