package framework

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema is the JSON Schema every framework document must satisfy.
// The scoring engine itself tolerates degenerate shapes (an area with zero
// questions just scores 0), so the schema only pins down what would
// otherwise corrupt keyed state: ids must be present and non-empty.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"name":    map[string]any{"type": "string"},
		"domains": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"areas": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":          map[string]any{"type": "string", "minLength": 1},
								"name":        map[string]any{"type": "string"},
								"description": map[string]any{"type": "string"},
								"questions": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type": "object",
										"properties": map[string]any{
											"text": map[string]any{"type": "string"},
										},
										"required":             []any{"text"},
										"additionalProperties": false,
									},
								},
							},
							"required":             []any{"id", "name", "questions"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"id", "name", "areas"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"version", "domains"},
	"additionalProperties": false,
}

var (
	compiledSchema     *jsonschema.Schema
	compileSchemaOnce  sync.Once
	compileSchemaError error
)

// compiledDocumentSchema compiles documentSchema once and caches it.
func compiledDocumentSchema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw bytes.
		b, err := json.Marshal(documentSchema)
		if err != nil {
			compileSchemaError = fmt.Errorf("marshal document schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(b, &parsed); err != nil {
			compileSchemaError = fmt.Errorf("parse document schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://afs-framework.json"
		if err := c.AddResource(schemaURL, parsed); err != nil {
			compileSchemaError = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileSchemaError = c.Compile(schemaURL)
	})
	return compiledSchema, compileSchemaError
}

// validateShape validates raw document JSON against the framework schema.
func validateShape(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledDocumentSchema()
	if err != nil {
		return fmt.Errorf("compile framework schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
