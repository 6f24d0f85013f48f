package util

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CompactJSON encodes v without insignificant whitespace and without HTML
// escaping. Object keys are emitted in sorted order.
func CompactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// PrettyJSON encodes v indented by four spaces per level.
func PrettyJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// NormalizeJSON round-trips v through encoding/json so that structs, typed
// maps and numeric types collapse into the generic shape produced by
// json.Unmarshal (map[string]any, []any, float64, string, bool, nil).
// Two normalized values are equal in JSON terms iff reflect.DeepEqual holds.
func NormalizeJSON(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MustCompactJSON is CompactJSON for values known to be encodable, such as
// normalized JSON. It returns an empty string on failure.
func MustCompactJSON(v any) string {
	s, err := CompactJSON(v)
	if err != nil {
		return ""
	}
	return s
}
