package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/getmockd/clientmock/pkg/util"
)

// Sentinel errors for request normalization.
var (
	// ErrUnprocessableBody is returned when a body cannot be decoded the way
	// its Content-Type requires.
	ErrUnprocessableBody = errors.New("unprocessable request body")

	// ErrMalformedHeader is returned for a header line without a colon.
	ErrMalformedHeader = errors.New("malformed header line")
)

// DefaultPartMimetype is assigned to multipart parts sent without a Content-Type.
const DefaultPartMimetype = "application/octet-stream"

const bodyChunkSize = 1000

// formBodyPattern only needs to occur somewhere in the body; pairs that do not
// fit it are still split.
var formBodyPattern = regexp.MustCompile(`[^=]+=[^=]*(&[^=]+=[^=]*)*`)

func formKey(pair string) string {
	key, _, _ := strings.Cut(pair, "=")
	return key
}

// formValue is the text between the first and second "=", so "a=b=c" yields "b".
func formValue(pair string) string {
	_, rest, _ := strings.Cut(pair, "=")
	value, _, _ := strings.Cut(rest, "=")
	return value
}

// BodyFunc streams a request body. It is called repeatedly with a size hint
// and returns the next chunk, or an empty slice once the body is exhausted.
type BodyFunc func(n int) []byte

// Options are the wire-level options of an outgoing call.
type Options struct {
	// Headers are "Name: value" lines. Later lines win on duplicate names.
	Headers []string

	// QueryParams are merged with (and overridden by) the URL's query string.
	QueryParams map[string]QueryValue

	// JSON, when non-nil, is taken as the decoded JSON body.
	JSON any

	// Body is the raw body: string, []byte, BodyFunc, func(int) string,
	// or, for application/json requests, a value to encode.
	Body any
}

// Normalize builds the normalized Request for a call to rawURL.
func Normalize(method, rawURL string, opts Options) (*Request, error) {
	req := &Request{
		Method:        method,
		URI:           rawURL,
		Headers:       map[string]string{},
		QueryParams:   map[string]QueryValue{},
		RequestParams: map[string]string{},
		Multiparts:    map[string]Multipart{},
	}

	for k, v := range opts.QueryParams {
		req.QueryParams[k] = v
	}
	if uri, query, found := strings.Cut(rawURL, "?"); found {
		req.URI = uri
		for k, v := range parseQuery(query) {
			req.QueryParams[k] = v
		}
	}

	for _, line := range opts.Headers {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		req.Headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimPrefix(value, " ")
	}

	if opts.JSON != nil {
		decoded, err := util.NormalizeJSON(opts.JSON)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnprocessableBody, err)
		}
		req.JSON = decoded
	}

	if opts.Body == nil {
		return req, nil
	}

	contentType := req.Headers["content-type"]
	contentLength, _ := strconv.Atoi(req.Headers["content-length"])
	raw, isRaw := readBody(opts.Body, contentLength)

	switch {
	case strings.HasPrefix(contentType, "application/json"):
		if isRaw {
			var decoded any
			if err := json.Unmarshal(raw, &decoded); err == nil {
				req.JSON = decoded
			}
			break
		}
		decoded, err := util.NormalizeJSON(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnprocessableBody, err)
		}
		req.JSON = decoded

	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		if !isRaw {
			return nil, fmt.Errorf("%w: form body must be a string", ErrUnprocessableBody)
		}
		if formBodyPattern.Match(raw) {
			for _, pair := range strings.Split(string(raw), "&") {
				req.RequestParams[unescape(formKey(pair))] = unescape(formValue(pair))
			}
		}

	case strings.HasPrefix(contentType, "multipart/form-data"):
		if !isRaw {
			return nil, fmt.Errorf("%w: multipart body must be a string", ErrUnprocessableBody)
		}
		parts, err := parseMultipart(contentType, raw)
		if err != nil {
			return nil, err
		}
		req.Multiparts = parts
	}

	if isRaw {
		req.Content = StringPtr(string(raw))
	}

	return req, nil
}

// readBody materializes string, byte and streaming bodies. Structured
// bodies are reported as not raw.
func readBody(body any, contentLength int) ([]byte, bool) {
	switch b := body.(type) {
	case string:
		return []byte(b), true
	case []byte:
		return b, true
	case BodyFunc:
		return drain(b, contentLength), true
	case func(int) []byte:
		return drain(b, contentLength), true
	case func(int) string:
		return drain(func(n int) []byte { return []byte(b(n)) }, contentLength), true
	default:
		return nil, false
	}
}

// drain reads chunks until fn returns nothing or, when the length is
// known, until contentLength bytes have arrived.
func drain(fn func(int) []byte, contentLength int) []byte {
	size := contentLength
	if size <= 0 {
		size = bodyChunkSize
	}
	var buf bytes.Buffer
	for {
		chunk := fn(size)
		if len(chunk) == 0 {
			return buf.Bytes()
		}
		buf.Write(chunk)
		if contentLength > 0 && buf.Len() >= contentLength {
			return buf.Bytes()
		}
	}
}

func parseMultipart(contentType string, body []byte) (map[string]Multipart, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnprocessableBody, err)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, fmt.Errorf("%w: multipart boundary missing", ErrUnprocessableBody)
	}

	parts := map[string]Multipart{}
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return parts, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnprocessableBody, err)
		}

		content, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnprocessableBody, err)
		}

		mimetype := part.Header.Get("Content-Type")
		if mimetype == "" {
			mimetype = DefaultPartMimetype
		}
		p := Multipart{
			Name:     part.FormName(),
			Mimetype: StringPtr(mimetype),
			Content:  StringPtr(string(content)),
		}
		if filename := part.FileName(); filename != "" {
			p.Filename = StringPtr(filename)
		}
		parts[p.Name] = p
	}
}

// parseQuery splits an encoded query string. Keys ending in [] collect
// their values into a list; any other repeated key keeps its last value.
func parseQuery(query string) map[string]QueryValue {
	params := map[string]QueryValue{}
	if query == "" {
		return params
	}
	for _, pair := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(pair, "=")
		key, value = unescape(key), unescape(value)
		if name, isList := strings.CutSuffix(key, "[]"); isList {
			params[name] = params[name].appended(value)
			continue
		}
		params[key] = Value(value)
	}
	return params
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
