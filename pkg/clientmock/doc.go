// Package clientmock intercepts outgoing HTTP calls in tests and answers
// them from declared expectations.
//
// An Expectation lists what a call must look like (method, URI, headers,
// query and form parameters, multipart parts, a JSON, XML or raw body, or
// arbitrary predicates) and what to answer with. A Collection receives the
// real calls, scores every expectation against each call and replays the
// response of the best one. When nothing matches, the returned error
// carries a per-matcher breakdown of every expectation.
//
// # Basic Usage
//
//	func TestClient(t *testing.T) {
//	    m := clientmock.New(t)
//
//	    m.Request(http.MethodGet, "https://api.test/users/{id}").
//	        URIParam("id", "42").
//	        Header("Accept", "application/json").
//	        WillRespond(m.Response().Code(200).JSON(map[string]any{"id": 42}))
//
//	    client := m.Client()
//	    // exercise code that uses client
//
//	    m.AssertAllCalled()
//	}
//
// The Collection is also an http.RoundTripper, so it can be plugged into any
// http.Client. Code that builds requests itself can call Collection.Do with
// the method, URL and wire options directly.
package clientmock
