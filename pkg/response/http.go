package response

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
)

// HTTPResponse converts r into an *http.Response answering req.
// A zero status code becomes 200 OK.
func (r *Response) HTTPResponse(req *http.Request) *http.Response {
	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	header := r.Header.Clone()
	if header == nil {
		header = http.Header{}
	}

	return &http.Response{
		Status:        strconv.Itoa(status) + " " + http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}

// Status returns the effective status code.
func (r *Response) Status() int {
	if r.StatusCode == 0 {
		return http.StatusOK
	}
	return r.StatusCode
}
