package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{"hit", HitMethod("GET"), `✔ method matches "GET"`},
		{"keyed hit", HitHeader("accept", "text/plain"), `✔ header accept matches "text/plain"`},
		{"mismatch", MismatchMethod("POST", "GET"), `✘ method "GET" does not match "POST"`},
		{"null actual", MismatchContent("this is plain text", nil), `✘ content "NULL" does not match "this is plain text"`},
		{"missing", MissingHeader("accept", "text/plain"), "✘ header accept missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOutcome(tt.outcome))
		})
	}
}

func TestWriteBreakdown(t *testing.T) {
	r := NewResult("").
		WithOutcome(HitMethod("GET")).
		WithOutcome(MissingHeader("accept", "text/plain")).
		WithOutcome(MismatchJSON(`{"a":1}`, ptr(`{"a":2}`)))

	var b strings.Builder
	WriteBreakdown(&b, 2, r)

	assert.Equal(t, "#2 (unnamed)\n"+
		"  ✔ method matches \"GET\" (10)\n"+
		"  ✘ header accept missing (0)\n"+
		"  ✘ json \"{\"a\":2}\" does not match \"{\"a\":1}\" (0)\n"+
		"    --- Expected\n"+
		"    +++ Actual\n"+
		"    @@ @@\n"+
		"     {\n"+
		"    -    \"a\": 1\n"+
		"    +    \"a\": 2\n"+
		"     }\n", b.String())
}

func TestGenerateReason(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"empty", NewResult(""), "no matchers to compare"},
		{"all matched", NewResult("").WithOutcome(HitMethod("GET")), "all specified matchers matched"},
		{
			"first failure only",
			NewResult("").WithOutcome(MismatchMethod("POST", "GET")),
			`method expected "POST", got "GET"`,
		},
		{
			"matched fields listed",
			NewResult("").
				WithOutcome(HitMethod("GET")).
				WithOutcome(HitURI("/users")).
				WithOutcome(HitHeader("accept", "a")).
				WithOutcome(MissingQueryParam("page", "1")),
			"method, uri, and header matched, but queryParam page missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateReason(tt.result))
		})
	}
}
