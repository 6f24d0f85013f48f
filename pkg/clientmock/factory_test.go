package clientmock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/clientmock/pkg/request"
)

func TestExpectationFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		method string
		url    string
		opts   request.Options
		want   string
	}{
		{
			name:   "json body",
			method: "POST",
			url:    "/users",
			opts: request.Options{
				Headers: []string{"Content-Type: application/json"},
				Body:    `{"name":"peter"}`,
			},
			want: `request.method === "POST" && request.uri === "/users" && ` +
				`request.header["content-type"] === "application/json" && ` +
				`request.content === "{"name":"peter"}"`,
		},
		{
			name:   "form body",
			method: "POST",
			url:    "/login",
			opts: request.Options{
				Headers: []string{"Content-Type: application/x-www-form-urlencoded"},
				Body:    "user=a&pass=b",
			},
			want: `request.method === "POST" && request.uri === "/login" && ` +
				`request.header["content-type"] === "application/x-www-form-urlencoded" && ` +
				`request.requestParams["pass"] === "b" && request.requestParams["user"] === "a"`,
		},
		{
			name:   "query and raw content",
			method: "PUT",
			url:    "/items?tags[]=a&tags[]=b&page=1",
			opts:   request.Options{Body: "raw"},
			want: `request.method === "PUT" && request.uri === "/items" && ` +
				`request.queryParams["page"] === "1" && ` +
				`request.queryParams["tags"] === "a" && request.queryParams["tags"] === "b" && ` +
				`request.content === "raw"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ExpectationFromRequest(tt.method, tt.url, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())

			r, err := request.Normalize(tt.method, tt.url, tt.opts)
			require.NoError(t, err)
			result := e.Matcher().Match(r)
			assert.False(t, result.IsMismatch())
			assert.Positive(t, result.Score())
		})
	}
}

func TestExpectationFromRequest_Multipart(t *testing.T) {
	opts := request.Options{
		Headers: []string{"Content-Type: multipart/form-data; boundary=B"},
		Body: "--B\r\n" +
			"Content-Disposition: form-data; name=\"doc\"; filename=\"a.txt\"\r\n" +
			"Content-Type: text/plain\r\n\r\n" +
			"hi\r\n" +
			"--B--\r\n",
	}

	e, err := ExpectationFromRequest("POST", "/upload", opts)
	require.NoError(t, err)

	r, err := request.Normalize("POST", "/upload", opts)
	require.NoError(t, err)
	assert.Equal(t, 10+20+5+5, e.Matcher().Match(r).Score())
}

func TestExpectationFromRequest_UnprocessableBody(t *testing.T) {
	_, err := ExpectationFromRequest("POST", "/", request.Options{
		Headers: []string{"Content-Type: multipart/form-data"},
		Body:    "--x--",
	})

	assert.ErrorIs(t, err, request.ErrUnprocessableBody)
}
