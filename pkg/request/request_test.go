package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_StringWithRequestParams(t *testing.T) {
	req := &Request{
		Method:        "POST",
		URI:           "/form",
		Headers:       map[string]string{"content-type": "application/x-www-form-urlencoded", "accept": "text/plain"},
		QueryParams:   map[string]QueryValue{"filter": Value("lastname"), "ids": Values("1", "2")},
		RequestParams: map[string]string{"b": "2", "a": "1"},
		Content:       StringPtr("a=1&b=2"),
	}

	assert.Equal(t,
		"POST /form?filter=lastname&ids%5B0%5D=1&ids%5B1%5D=2\n"+
			"accept: text/plain\n"+
			"content-type: application/x-www-form-urlencoded\n"+
			"&a=1&b=2",
		req.String())
}

func TestRequest_StringWithMultiparts(t *testing.T) {
	req := &Request{
		Method: "POST",
		URI:    "/upload",
		Multiparts: map[string]Multipart{
			"file": {Name: "file", Filename: StringPtr("a.txt"), Mimetype: StringPtr("text/plain"), Content: StringPtr("hi")},
		},
	}

	assert.Equal(t, "POST /upload\nfile: name=file, , filename=a.txt, mimetype=text/plain, content=hi", req.String())
}

func TestRequest_StringPrefersJSONOverContent(t *testing.T) {
	req := &Request{
		Method:  "POST",
		URI:     "/users",
		JSON:    map[string]any{"name": "peter"},
		Content: StringPtr(`{"name": "peter"}`),
	}
	assert.Equal(t, "POST /users\n{\"name\":\"peter\"}", req.String())

	req.JSON = nil
	assert.Equal(t, "POST /users\n{\"name\": \"peter\"}", req.String())
}

func TestRequest_StringMinimal(t *testing.T) {
	assert.Equal(t, "GET /", (&Request{Method: "GET", URI: "/"}).String())
}

func TestQueryValue(t *testing.T) {
	single := Value("a")
	assert.False(t, single.IsList())
	assert.True(t, single.Contains("a"))
	assert.Equal(t, "a", single.String())
	assert.Equal(t, []string{"a"}, single.List())

	list := Values("a", "b")
	assert.True(t, list.IsList())
	assert.True(t, list.Contains("b"))
	assert.False(t, list.Contains("c"))
	assert.Equal(t, `["a","b"]`, list.String())
}

func TestRequest_Lookups(t *testing.T) {
	req := &Request{
		Headers:       map[string]string{"accept": "text/plain"},
		QueryParams:   map[string]QueryValue{"q": Value("x")},
		RequestParams: map[string]string{"name": "peter"},
		Multiparts:    map[string]Multipart{"file": {Name: "file"}},
	}

	assert.True(t, req.HasHeader("Accept"))
	assert.False(t, req.HasHeader("Authorization"))
	assert.True(t, req.HasQueryParam("q"))
	assert.False(t, req.HasQueryParam("Q"))
	assert.True(t, req.HasRequestParam("name"))
	assert.True(t, req.HasMultipart("file"))
	assert.False(t, req.HasMultipart("other"))
	assert.Equal(t, "", req.ContentString())
}
