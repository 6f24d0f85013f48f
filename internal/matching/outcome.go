package matching

import (
	"github.com/getmockd/clientmock/pkg/request"
)

// Kind discriminates the three outcome variants.
type Kind int

// Outcome kinds.
const (
	KindHit Kind = iota + 1
	KindMismatch
	KindMissing
)

func (k Kind) String() string {
	switch k {
	case KindHit:
		return "hit"
	case KindMismatch:
		return "mismatch"
	case KindMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Matcher kind names as they appear in diagnostics.
const (
	NameCatchAll     = "catchAll"
	NameMethod       = "method"
	NameURI          = "uri"
	NameHeader       = "header"
	NameQueryParam   = "queryParam"
	NameRequestParam = "requestParam"
	NameMultipart    = "multipart"
	NameContent      = "content"
	NameJSON         = "json"
	NameXML          = "xml"
	NameThat         = "that"
	NameJSONPath     = "jsonPath"
)

// Predicate placeholders used as the expected value of callback mismatches.
const (
	expectedCallback = "<callback>"
	expectedCallable = "<callable>"
)

// Outcome is the result of evaluating one matcher.
//
// Hit carries Score > 0 and the matched Actual value. Mismatch carries the
// Expected value, the Actual value (nil when the request had none) and an
// optional Diff. Missing carries the Key and the Expected value.
type Outcome struct {
	Kind     Kind
	Matcher  string
	Key      string
	Score    int
	Expected string
	Actual   *string
	Diff     string
}

// IsHit reports whether the matcher was satisfied.
func (o Outcome) IsHit() bool { return o.Kind == KindHit }

// IsFailure reports whether the outcome is a Mismatch or a Missing.
func (o Outcome) IsFailure() bool { return o.Kind == KindMismatch || o.Kind == KindMissing }

// ActualString returns the actual value, or "NULL" when there was none.
func (o Outcome) ActualString() string {
	if o.Actual == nil {
		return "NULL"
	}
	return *o.Actual
}

func hit(matcher, key string, score int, actual string) Outcome {
	return Outcome{Kind: KindHit, Matcher: matcher, Key: key, Score: score, Actual: &actual}
}

func mismatch(matcher, key, expected string, actual *string) Outcome {
	return Outcome{Kind: KindMismatch, Matcher: matcher, Key: key, Expected: expected, Actual: actual}
}

func missing(matcher, key, expected string) Outcome {
	return Outcome{Kind: KindMissing, Matcher: matcher, Key: key, Expected: expected}
}

// HitCatchAll is the outcome of the catch-all matcher.
func HitCatchAll() Outcome { return hit(NameCatchAll, "", ScoreCatchAll, "Match everything") }

// HitMethod reports a matched method.
func HitMethod(method string) Outcome { return hit(NameMethod, "", ScoreMethod, method) }

// HitURI reports a matched URI.
func HitURI(uri string) Outcome { return hit(NameURI, "", ScoreURI, uri) }

// HitHeader reports a matched header.
func HitHeader(key, value string) Outcome { return hit(NameHeader, key, ScoreHeader, value) }

// HitQueryParam reports a matched query parameter. List values render as JSON.
func HitQueryParam(key string, value request.QueryValue) Outcome {
	return hit(NameQueryParam, key, ScoreQueryParam, value.String())
}

// HitRequestParam reports a matched form field.
func HitRequestParam(key, value string) Outcome {
	return hit(NameRequestParam, key, ScoreRequestParam, value)
}

// HitMultipart reports a matched multipart part.
func HitMultipart(name string) Outcome { return hit(NameMultipart, name, ScoreMultipart, name) }

// HitContent reports a matched raw body.
func HitContent(content *string) Outcome {
	return hit(NameContent, "", ScoreContent, derefOrNull(content))
}

// HitJSON reports a matched JSON body.
func HitJSON(json string) Outcome { return hit(NameJSON, "", ScoreJSON, json) }

// HitXML reports a matched XML body.
func HitXML(xml string) Outcome { return hit(NameXML, "", ScoreXML, xml) }

// HitThat reports a satisfied request predicate.
func HitThat() Outcome { return hit(NameThat, "", ScoreThat, "Match that-callback") }

// HitJSONPath reports a matched JSONPath condition.
func HitJSONPath(path, value string) Outcome { return hit(NameJSONPath, path, ScoreJSONPath, value) }

// MismatchMethod reports a differing method.
func MismatchMethod(expected, actual string) Outcome {
	return mismatch(NameMethod, "", expected, &actual)
}

// MismatchURI reports a differing URI.
func MismatchURI(expected, actual string) Outcome {
	return mismatch(NameURI, "", expected, &actual)
}

// MismatchHeader reports a differing header value.
func MismatchHeader(key, expected, actual string) Outcome {
	return mismatch(NameHeader, key, expected, &actual)
}

// MismatchQueryParam reports a differing query parameter.
func MismatchQueryParam(key, expected, actual string) Outcome {
	return mismatch(NameQueryParam, key, expected, &actual)
}

// MismatchRequestParam reports a differing form field.
func MismatchRequestParam(key, expected, actual string) Outcome {
	return mismatch(NameRequestParam, key, expected, &actual)
}

// MismatchMultipart reports a differing multipart part. Both sides are the
// JSON rendering of the compared attributes.
func MismatchMultipart(name, expected, actual string) Outcome {
	return mismatch(NameMultipart, name, expected, &actual)
}

// MismatchContent reports a differing raw body.
func MismatchContent(expected string, actual *string) Outcome {
	return mismatch(NameContent, "", expected, actual)
}

// MismatchJSON reports a differing JSON body. When the request carried
// JSON, a unified diff of both documents is attached.
func MismatchJSON(expected string, actual *string) Outcome {
	o := mismatch(NameJSON, "", expected, actual)
	if actual != nil && *actual != "" {
		o.Diff = JSONDiff(expected, *actual)
	}
	return o
}

// MismatchJSONCallback reports a JSON predicate that returned false.
func MismatchJSONCallback(actual string) Outcome {
	return mismatch(NameJSON, "", expectedCallback, &actual)
}

// MismatchXML reports a differing or unparsable XML body.
func MismatchXML(expected string, actual *string) Outcome {
	return mismatch(NameXML, "", expected, actual)
}

// MismatchThat reports a request predicate that did not pass.
func MismatchThat(reason string) Outcome {
	return mismatch(NameThat, "", expectedCallable, &reason)
}

// MismatchJSONPath reports a JSONPath selection with no expected value.
func MismatchJSONPath(path, expected, actual string) Outcome {
	return mismatch(NameJSONPath, path, expected, &actual)
}

// MissingHeader reports an absent header.
func MissingHeader(key, expected string) Outcome { return missing(NameHeader, key, expected) }

// MissingQueryParam reports an absent query parameter.
func MissingQueryParam(key, expected string) Outcome { return missing(NameQueryParam, key, expected) }

// MissingRequestParam reports an absent form field.
func MissingRequestParam(key, expected string) Outcome {
	return missing(NameRequestParam, key, expected)
}

// MissingMultipart reports an absent multipart part.
func MissingMultipart(name, expected string) Outcome { return missing(NameMultipart, name, expected) }

// MissingJSONPath reports a JSONPath that selected nothing.
func MissingJSONPath(path, expected string) Outcome { return missing(NameJSONPath, path, expected) }

func derefOrNull(s *string) string {
	if s == nil {
		return "NULL"
	}
	return *s
}
