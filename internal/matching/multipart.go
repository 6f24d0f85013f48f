package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/util"
)

// MultipartSpec lists the attributes a multipart part is expected to carry.
// Empty attributes are not compared.
type MultipartSpec struct {
	Mimetype string
	Filename string
	Content  string
}

// MultipartMatcher compares the declared attributes of one named part.
type MultipartMatcher struct {
	name string
	spec MultipartSpec
}

// NewMultipartMatcher matches the part called name.
func NewMultipartMatcher(name string, spec MultipartSpec) *MultipartMatcher {
	return &MultipartMatcher{name: name, spec: spec}
}

// Name returns the part name.
func (m *MultipartMatcher) Name() string { return m.name }

type attr struct {
	key   string
	value *string
}

// expected returns the declared attributes, name first.
func (m *MultipartMatcher) expected() []attr {
	attrs := []attr{{"name", &m.name}}
	if m.spec.Mimetype != "" {
		attrs = append(attrs, attr{"mimetype", &m.spec.Mimetype})
	}
	if m.spec.Filename != "" {
		attrs = append(attrs, attr{"filename", &m.spec.Filename})
	}
	if m.spec.Content != "" {
		attrs = append(attrs, attr{"content", &m.spec.Content})
	}
	return attrs
}

// reduce projects the real part onto the declared attributes. Unset or
// empty attributes of the real part become nil.
func reduce(expected []attr, part request.Multipart) []attr {
	reduced := make([]attr, 0, len(expected))
	for _, a := range expected {
		var v *string
		switch a.key {
		case "name":
			v = &part.Name
		case "mimetype":
			v = part.Mimetype
		case "filename":
			v = part.Filename
		case "content":
			v = part.Content
		}
		if v != nil && *v == "" {
			v = nil
		}
		reduced = append(reduced, attr{a.key, v})
	}
	return reduced
}

// Match implements Matcher.
func (m *MultipartMatcher) Match(r *request.Request) Outcome {
	expected := m.expected()
	part, ok := r.Multipart(m.name)
	if !ok {
		return MissingMultipart(m.name, encodeAttrs(expected))
	}

	reduced := reduce(expected, part)
	for i, a := range expected {
		if reduced[i].value == nil || *reduced[i].value != *a.value {
			return MismatchMultipart(m.name, encodeAttrs(expected), encodeAttrs(reduced))
		}
	}
	return HitMultipart(m.name)
}

func (m *MultipartMatcher) String() string {
	var parts []string
	if m.spec.Filename != "" {
		parts = append(parts, "filename="+m.spec.Filename)
	}
	if m.spec.Mimetype != "" {
		parts = append(parts, "mimetype="+m.spec.Mimetype)
	}
	if m.spec.Content != "" {
		parts = append(parts, "content="+m.spec.Content)
	}
	if len(parts) > 0 {
		return fmt.Sprintf("[%s] === request.request[%s]", strings.Join(parts, ", "), m.name)
	}
	return fmt.Sprintf("request.request[%s] is set", m.name)
}

// encodeAttrs renders attributes as a JSON object preserving their order.
func encodeAttrs(attrs []attr) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range attrs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(a.key)
		buf.Write(key)
		buf.WriteByte(':')
		if a.value == nil {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(util.MustCompactJSON(*a.value))
	}
	buf.WriteByte('}')
	return buf.String()
}

