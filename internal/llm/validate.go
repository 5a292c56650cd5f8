package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidatePayload checks a reconciled payload against a dataset schema map.
// The schema is compiled per call; each document is validated exactly once
// and the payloads are small.
func ValidatePayload(schema map[string]any, payload []byte) error {
	b, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("payload.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("register schema: %w", err)
	}
	compiled, err := compiler.Compile("payload.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("payload does not conform to schema: %w", err)
	}
	return nil
}
