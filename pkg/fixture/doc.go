// Package fixture loads declarative expectation files into a clientmock
// Collection.
//
// A fixture is a YAML or JSON document:
//
//	version: "1"
//	expectations:
//	  - name: get-user
//	    request:
//	      method: GET
//	      uri: https://api.test/users/{id}
//	      uriParams: {id: "42"}
//	      headers: {Accept: application/json}
//	      that: 'request.Headers["accept"] != ""'
//	    responses:
//	      - status: 200
//	        json: {id: 42}
//	      - error: connection reset
//
// "responses" queue one response per call. "always" answers every call
// and cannot be combined with "responses". Documents are checked against
// an embedded JSON Schema before they are applied.
package fixture
