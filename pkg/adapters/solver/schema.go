package solver

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/solution.schema.json
var solutionSchemaJSON string

//go:embed schemas/random.schema.json
var randomSchemaJSON string

var (
	solutionSchema = jsonschema.MustCompileString("solution.schema.json", solutionSchemaJSON)
	randomSchema   = jsonschema.MustCompileString("random.schema.json", randomSchemaJSON)
)

// validate checks a response body against schema.
func validate(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
