package matching

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/util"
)

// JSONPredicate decides whether a decoded JSON body is acceptable.
// body is nil when the request carried no JSON.
type JSONPredicate func(body any) bool

// JSONMatcher compares the decoded JSON body structurally. Object key
// order is irrelevant, array order is significant.
type JSONMatcher struct {
	expected  any
	encoded   string
	predicate JSONPredicate
}

// NewJSONMatcher matches bodies structurally equal to expected, which may
// be any value encoding/json can marshal.
func NewJSONMatcher(expected any) (*JSONMatcher, error) {
	normalized, err := util.NormalizeJSON(expected)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return &JSONMatcher{expected: normalized, encoded: util.MustCompactJSON(normalized)}, nil
}

// NewJSONPredicateMatcher matches JSON bodies accepted by fn.
func NewJSONPredicateMatcher(fn JSONPredicate) *JSONMatcher {
	return &JSONMatcher{predicate: fn}
}

// Match implements Matcher.
func (m *JSONMatcher) Match(r *request.Request) Outcome {
	actual := util.MustCompactJSON(r.JSON)

	if m.predicate != nil {
		if !m.predicate(r.JSON) {
			return MismatchJSONCallback(actual)
		}
		return HitJSON(actual)
	}

	if r.JSON == nil {
		return MismatchJSON(m.encoded, nil)
	}
	if !reflect.DeepEqual(m.expected, r.JSON) {
		return MismatchJSON(m.encoded, &actual)
	}
	return HitJSON(actual)
}

func (m *JSONMatcher) String() string {
	if m.predicate != nil {
		return "callback(request.content) !== false"
	}
	return fmt.Sprintf(`request.content === "%s"`, m.encoded)
}

// JSONDiff returns a unified diff between two JSON documents, pretty
// printed with four-space indentation. Hunk ranges are omitted so the diff
// is stable across documents of different length. Equal documents, or
// documents that fail to decode, produce an empty diff.
func JSONDiff(expected, actual string) string {
	exp, err := prettify(expected)
	if err != nil {
		return ""
	}
	act, err := prettify(actual)
	if err != nil {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  3,
	})
	if err != nil || diff == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "@@ ") {
			lines[i] = "@@ @@"
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func prettify(doc string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return "", err
	}
	return util.PrettyJSON(v)
}
