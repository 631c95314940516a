package input

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/fmea/internal/fmea"
)

const documentSchemaURL = "schema://fmea-document.json"

// documentSchema describes the shape of an input document. Rating ranges
// are left to the core so they are reported alongside name errors.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"title":   map[string]any{"type": "string"},
		"num_vars": map[string]any{
			"type":    "integer",
			"minimum": fmea.MinVariables,
			"maximum": fmea.MaxVariables,
		},
		"variables": map[string]any{
			"type":     "array",
			"minItems": fmea.MinVariables,
			"maxItems": fmea.MaxVariables,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":          map[string]any{"type": "string"},
					"severity":      map[string]any{"type": "integer"},
					"occurrence":    map[string]any{"type": "integer"},
					"detectability": map[string]any{"type": "integer"},
				},
				"required":             []any{"name", "severity", "occurrence", "detectability"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"variables"},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles documentSchema on first use.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, so round-trip through
		// encoding/json to normalise Go int constants.
		raw, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(documentSchemaURL)
	})
	return compiled, compileErr
}
