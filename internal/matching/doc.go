// Package matching evaluates declared expectations against normalized requests.
//
// Each Matcher inspects one field of a request.Request and reports an
// Outcome: a Hit carrying a positive score, a Mismatch when the field was
// present but differed, or a Missing when a keyed field was absent.
// A RequestMatcher runs every matcher of one expectation without
// short-circuiting and collects the outcomes into an immutable Result.
//
// Scoring is all-or-nothing: a Result scores the sum of its hit scores,
// or zero as soon as one outcome is a Mismatch or Missing. Score constants
// are defined in scores.go and only their ordering carries meaning
// (uri > method > field-level matchers > catch-all).
//
// Matchers:
//
//   - CatchAll: hits every request
//   - Method, URI: exact comparison or predicate
//   - Header, QueryParam, RequestParam, Multipart: keyed fields that may be missing
//   - Content, JSON, XML: body comparison or predicate
//   - JSONPath: value selected from the decoded JSON body
//   - That: predicate over the whole request
package matching
