package clientmock

import (
	"github.com/getmockd/clientmock/pkg/request"
)

func newRequest(method, uri string) *request.Request {
	return &request.Request{
		Method:        method,
		URI:           uri,
		Headers:       map[string]string{},
		QueryParams:   map[string]request.QueryValue{},
		RequestParams: map[string]string{},
		Multiparts:    map[string]request.Multipart{},
	}
}

func collectionOf(expectations ...*Expectation) *Collection {
	c := NewCollection()
	for _, e := range expectations {
		if err := c.Add(e); err != nil {
			panic(err)
		}
	}
	return c
}
