package fixture

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/getmockd/clientmock/pkg/clientmock"
	"github.com/getmockd/clientmock/pkg/response"
)

// Apply builds every expectation of the document and adds it to c, in
// document order. Expectations added before a failing one stay in c.
func (d *Document) Apply(c *clientmock.Collection) error {
	for i := range d.Expectations {
		cfg := &d.Expectations[i]
		e, err := cfg.Build()
		if err == nil {
			err = c.Add(e)
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidFixture, d.describe(i), err)
		}
	}
	return nil
}

// Collection returns a new collection holding the expectations of docs.
func Collection(docs []*Document, opts ...clientmock.Option) (*clientmock.Collection, error) {
	c := clientmock.NewCollection(opts...)
	for _, d := range docs {
		if err := d.Apply(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (d *Document) describe(i int) string {
	where := fmt.Sprintf("expectations[%d]", i)
	if name := d.Expectations[i].Name; name != "" {
		where += " (" + name + ")"
	}
	if d.Source != "" {
		where = d.Source + ": " + where
	}
	return where
}

// Build turns the declaration into an expectation. Map entries are
// applied in key order.
func (x *Expectation) Build() (*clientmock.Expectation, error) {
	if len(x.Responses) > 0 && x.Always != nil {
		return nil, errors.New("responses and always are mutually exclusive")
	}

	e := clientmock.NewExpectation()
	if x.Name != "" {
		e.Name(x.Name)
	}

	req := x.Request
	if req.Method != "" {
		e.Method(req.Method)
	}
	if req.URI != "" {
		e.URI(req.URI)
	}
	for _, k := range sortedKeys(req.URIParams) {
		e.URIParam(k, req.URIParams[k])
	}
	for _, k := range sortedKeys(req.Headers) {
		e.Header(k, req.Headers[k])
	}
	for _, k := range sortedKeys(req.QueryParams) {
		e.QueryParam(k, req.QueryParams[k])
	}
	for _, k := range sortedKeys(req.RequestParams) {
		e.RequestParam(k, req.RequestParams[k])
	}
	for _, k := range sortedKeys(req.Multiparts) {
		part := req.Multiparts[k]
		e.Multipart(k, clientmock.MultipartSpec{
			Mimetype: part.Mimetype,
			Filename: part.Filename,
			Content:  part.Content,
		})
	}
	switch {
	case req.JSON != nil:
		e.JSON(req.JSON)
	case req.XML != "":
		e.XML(req.XML)
	case req.Content != nil:
		e.Content(*req.Content)
	}
	for _, k := range sortedKeys(req.JSONPath) {
		e.JSONPath(k, req.JSONPath[k])
	}
	if req.That != "" {
		predicate, err := CompilePredicate(req.That)
		if err != nil {
			return nil, err
		}
		e.That(predicate)
	}

	for _, r := range x.Responses {
		if r.Error != "" {
			e.WillThrow(errors.New(r.Error))
		} else {
			e.WillRespond(r.builder())
		}
	}
	if a := x.Always; a != nil {
		if a.Error != "" {
			e.WillAlwaysThrow(errors.New(a.Error))
		} else {
			e.WillAlwaysRespond(a.builder())
		}
	}

	if err := e.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Response) builder() *response.Builder {
	b := response.New()
	if r.Status != 0 {
		b.Code(r.Status)
	}
	for _, k := range sortedKeys(r.Headers) {
		b.Header(k, r.Headers[k])
	}
	switch {
	case r.JSON != nil:
		b.JSON(r.JSON)
	case r.Body != nil:
		b.Content(*r.Body)
	}
	return b
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
