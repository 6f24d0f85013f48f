package clientmock

import "github.com/getmockd/clientmock/internal/matching"

// Matching types re-exported for callers outside this module.
type (
	// Result is the outcome of matching one expectation against a call.
	Result = matching.Result

	// Outcome is the verdict of a single matcher.
	Outcome = matching.Outcome

	// RequestMatcher is the flattened matcher set of an expectation.
	RequestMatcher = matching.RequestMatcher

	// MultipartSpec lists the expected attributes of a multipart part.
	MultipartSpec = matching.MultipartSpec

	// MethodPredicate decides whether a method is acceptable.
	MethodPredicate = matching.MethodPredicate

	// URIPredicate receives the request URI and the expectation's URI params.
	URIPredicate = matching.URIPredicate

	// ContentPredicate receives the raw body, nil when there is none.
	ContentPredicate = matching.ContentPredicate

	// JSONPredicate receives the decoded JSON body, nil when there is none.
	JSONPredicate = matching.JSONPredicate

	// XMLPredicate receives the raw body.
	XMLPredicate = matching.XMLPredicate

	// RequestPredicate receives the whole normalized request.
	RequestPredicate = matching.RequestPredicate
)
