package fixture

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "clientmock-fixture.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Schema returns the JSON Schema fixture documents are validated against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

// Validate checks doc against the fixture schema. Every violation is
// reported, one per line, with the location of the offending value.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidFixture)
	}
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	err = schema.Validate(instance)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	var msgs []string
	collectViolations(validationErr, &msgs)
	return fmt.Errorf("%w:\n%s", ErrInvalidFixture, strings.Join(msgs, "\n"))
}

func collectViolations(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("  %s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectViolations(cause, msgs)
	}
}
