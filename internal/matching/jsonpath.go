package matching

import (
	"fmt"
	"reflect"

	"github.com/ohler55/ojg/jp"

	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/util"
)

// JSONPathMatcher compares the value selected by a JSONPath expression in
// the decoded JSON body.
//
// The expected value {"exists": true} or {"exists": false} turns the
// condition into a presence check.
type JSONPathMatcher struct {
	path     string
	expr     jp.Expr
	expected any
	encoded  string
}

// NewJSONPathMatcher matches when any value selected by path equals expected.
func NewJSONPathMatcher(path string, expected any) (*JSONPathMatcher, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidJSONPath, path, err)
	}
	normalized, err := util.NormalizeJSON(expected)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return &JSONPathMatcher{
		path:     path,
		expr:     expr,
		expected: normalized,
		encoded:  util.MustCompactJSON(normalized),
	}, nil
}

// Path returns the JSONPath expression.
func (m *JSONPathMatcher) Path() string { return m.path }

// Match implements Matcher.
func (m *JSONPathMatcher) Match(r *request.Request) Outcome {
	var results []any
	if r.JSON != nil {
		results = m.expr.Get(r.JSON)
	}

	if exists, ok := existenceCheck(m.expected); ok {
		switch {
		case exists && len(results) > 0:
			return HitJSONPath(m.path, util.MustCompactJSON(results[0]))
		case !exists && len(results) == 0:
			return HitJSONPath(m.path, "missing")
		case exists:
			return MissingJSONPath(m.path, m.encoded)
		default:
			return MismatchJSONPath(m.path, m.encoded, util.MustCompactJSON(results[0]))
		}
	}

	if len(results) == 0 {
		return MissingJSONPath(m.path, m.encoded)
	}
	for _, v := range results {
		if valuesEqual(v, m.expected) {
			return HitJSONPath(m.path, util.MustCompactJSON(v))
		}
	}
	actual := any(results)
	if len(results) == 1 {
		actual = results[0]
	}
	return MismatchJSONPath(m.path, m.encoded, util.MustCompactJSON(actual))
}

func (m *JSONPathMatcher) String() string {
	return fmt.Sprintf(`request.json["%s"] === "%s"`, m.path, m.encoded)
}

// existenceCheck recognizes the {"exists": bool} form.
func existenceCheck(expected any) (exists, ok bool) {
	obj, isObj := expected.(map[string]any)
	if !isObj || len(obj) != 1 {
		return false, false
	}
	b, isBool := obj["exists"].(bool)
	return b, isBool
}

// valuesEqual compares two decoded JSON values, treating all numeric
// types as equal when their float64 values are.
func valuesEqual(actual, expected any) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}
	if reflect.DeepEqual(actual, expected) {
		return true
	}
	a, aNum := toFloat64(actual)
	e, eNum := toFloat64(expected)
	return aNum && eNum && a == e
}

// toFloat64 converts the numeric types ojg and encoding/json produce.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}
