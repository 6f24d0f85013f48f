package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMatcher_KeyOrderIndependent(t *testing.T) {
	m, err := NewJSONMatcher(map[string]any{"firstname": "peter", "tags": []string{"a", "b"}})
	require.NoError(t, err)

	req := newRequest("POST", "/")
	req.JSON = map[string]any{"tags": []any{"a", "b"}, "firstname": "peter"}

	o := m.Match(req)
	assert.Equal(t, KindHit, o.Kind)
	assert.Equal(t, `{"firstname":"peter","tags":["a","b"]}`, o.ActualString())
	assert.Equal(t, `request.content === "{"firstname":"peter","tags":["a","b"]}"`, m.String())
}

func TestJSONMatcher_ArrayOrderMatters(t *testing.T) {
	m, err := NewJSONMatcher([]int{1, 2})
	require.NoError(t, err)

	req := newRequest("POST", "/")
	req.JSON = []any{2.0, 1.0}

	assert.Equal(t, KindMismatch, m.Match(req).Kind)
}

func TestJSONMatcher_MissingBody(t *testing.T) {
	m, err := NewJSONMatcher(map[string]any{"a": 1})
	require.NoError(t, err)

	o := m.Match(newRequest("POST", "/"))
	assert.Equal(t, KindMismatch, o.Kind)
	assert.Nil(t, o.Actual)
	assert.Empty(t, o.Diff)
}

func TestJSONMatcher_MismatchCarriesDiff(t *testing.T) {
	m, err := NewJSONMatcher(map[string]any{
		"firstname": "peter",
		"address":   map[string]any{"street": "peterstreet 1", "zip": "12345"},
	})
	require.NoError(t, err)

	req := newRequest("POST", "/")
	req.JSON = map[string]any{
		"firstname": "peter",
		"address":   map[string]any{"street": "bobstreet 1", "zip": "12345"},
	}

	o := m.Match(req)
	require.Equal(t, KindMismatch, o.Kind)
	assert.Equal(t, `{"address":{"street":"peterstreet 1","zip":"12345"},"firstname":"peter"}`, o.Expected)
	assert.Equal(t, `{"address":{"street":"bobstreet 1","zip":"12345"},"firstname":"peter"}`, o.ActualString())
	assert.Equal(t, "--- Expected\n"+
		"+++ Actual\n"+
		"@@ @@\n"+
		" {\n"+
		"     \"address\": {\n"+
		"-        \"street\": \"peterstreet 1\",\n"+
		"+        \"street\": \"bobstreet 1\",\n"+
		"         \"zip\": \"12345\"\n"+
		"     },\n"+
		"     \"firstname\": \"peter\"\n", o.Diff)
}

func TestJSONMatcher_Predicate(t *testing.T) {
	m := NewJSONPredicateMatcher(func(body any) bool {
		obj, ok := body.(map[string]any)
		return ok && obj["id"] == 1.0
	})

	req := newRequest("POST", "/")
	req.JSON = map[string]any{"id": 1.0}
	assert.True(t, m.Match(req).IsHit())

	o := m.Match(newRequest("POST", "/"))
	assert.Equal(t, MismatchJSONCallback("null"), o)
	assert.Empty(t, o.Diff)
}

func TestNewJSONMatcher_RejectsUnencodable(t *testing.T) {
	_, err := NewJSONMatcher(map[string]any{"fn": func() {}})
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestJSONDiff_EqualDocuments(t *testing.T) {
	assert.Empty(t, JSONDiff(`{"a":1}`, `{ "a" : 1 }`))
	assert.Empty(t, JSONDiff(`not json`, `{}`))
}
