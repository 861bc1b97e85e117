package builtintools

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/dbrheo/agentcore/internal/sanitize"
)

// reflectSchema generates a JSON-Schema map from a Go struct's jsonschema
// tags, then runs it through internal/sanitize so the result matches
// exactly what an MCP tool's InputSchema carries after discovery
// (dropping $schema/$ref/$defs and constraint fields no wire format here
// accepts). Grounded on the kadirpekel-hector and haasonsaas-nexus
// pattern of generating tool schemas by reflection instead of hand
// writing JSON Schema for every builtin tool's parameters.
func reflectSchema(v any) map[string]any {
	reflector := &jsonschema.Reflector{DoNotReference: true}
	raw := reflector.Reflect(v)

	data, err := json.Marshal(raw)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]any{"type": "object"}
	}
	return sanitize.Schema(out)
}

// requiredFields reads the "required" array back off a reflected schema,
// used by the builtin tool handlers to fail fast on missing arguments
// before doing any real work.
func requiredFields(schema map[string]any) []string {
	raw, ok := schema["required"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func missingRequired(schema map[string]any, args map[string]any) []string {
	var missing []string
	for _, name := range requiredFields(schema) {
		if _, ok := args[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
