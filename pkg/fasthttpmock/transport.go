// Package fasthttpmock answers fasthttp client calls from a clientmock
// Collection.
//
//	c := clientmock.NewCollection()
//	c.Expect("GET", "http://api.test/health").WillRespond(response.New().Code(204))
//
//	hc := fasthttpmock.HostClient("api.test", c)
//	// code under test uses hc
package fasthttpmock

import (
	"github.com/valyala/fasthttp"

	"github.com/getmockd/clientmock/pkg/clientmock"
	"github.com/getmockd/clientmock/pkg/request"
)

// Transport implements fasthttp.RoundTripper on top of a Collection.
type Transport struct {
	Collection *clientmock.Collection
}

var _ fasthttp.RoundTripper = (*Transport)(nil)

// RoundTrip implements fasthttp.RoundTripper. Calls are never retried.
func (t *Transport) RoundTrip(_ *fasthttp.HostClient, req *fasthttp.Request, resp *fasthttp.Response) (bool, error) {
	return false, t.Do(req, resp)
}

// Do answers req into resp.
func (t *Transport) Do(req *fasthttp.Request, resp *fasthttp.Response) error {
	var headers []string
	req.Header.VisitAll(func(key, value []byte) {
		headers = append(headers, string(key)+": "+string(value))
	})

	opts := request.Options{Headers: headers}
	if body := req.Body(); len(body) > 0 {
		// fasthttp reuses request buffers
		bodyCopy := make([]byte, len(body))
		copy(bodyCopy, body)
		opts.Body = bodyCopy
	}

	uri := req.URI()
	rawURL := string(uri.Scheme()) + "://" + string(uri.Host()) + string(uri.RequestURI())
	if len(uri.Host()) == 0 {
		rawURL = string(uri.RequestURI())
	}

	result, err := t.Collection.Do(string(req.Header.Method()), rawURL, opts)
	if err != nil {
		return err
	}

	resp.Reset()
	resp.SetStatusCode(result.Status())
	for name, values := range result.Header {
		for _, value := range values {
			resp.Header.Add(name, value)
		}
	}
	resp.SetBody(result.Body)
	return nil
}

// HostClient returns a HostClient for addr whose calls are answered by c.
func HostClient(addr string, c *clientmock.Collection) *fasthttp.HostClient {
	return &fasthttp.HostClient{
		Addr:      addr,
		Transport: &Transport{Collection: c},
	}
}
