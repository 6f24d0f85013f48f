package matching

import (
	"github.com/getmockd/clientmock/pkg/request"
)

func requestValue(v string) request.QueryValue { return request.Value(v) }

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

func ptr(s string) *string { return &s }
