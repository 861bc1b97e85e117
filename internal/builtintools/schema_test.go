package builtintools

import "testing"

func TestReflectSchemaStripsDisallowedFieldsAndKeepsRequired(t *testing.T) {
	schema := reflectSchema(&bashArgs{})

	if _, ok := schema["$schema"]; ok {
		t.Error("$schema should be stripped by sanitize.Schema")
	}
	required := requiredFields(schema)
	found := false
	for _, r := range required {
		if r == "command" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected \"command\" in required fields, got %v", required)
	}
}

func TestMissingRequiredDetectsGaps(t *testing.T) {
	schema := reflectSchema(&bashArgs{})
	if missing := missingRequired(schema, map[string]any{}); len(missing) == 0 {
		t.Fatal("expected missing required fields for empty args")
	}
	if missing := missingRequired(schema, map[string]any{"command": "echo hi"}); len(missing) != 0 {
		t.Fatalf("expected no missing fields, got %v", missing)
	}
}
