package sanitize

import "testing"

func TestSchemaStripsDisallowedFields(t *testing.T) {
	s := map[string]any{
		"type":    "object",
		"$schema": "http://json-schema.org/draft-07/schema#",
		"properties": map[string]any{
			"name": map[string]any{
				"type":      "string",
				"default":   "x",
				"minLength": 1.0,
				"format":    "email",
			},
			"age": map[string]any{
				"type":    "integer",
				"minimum": 0.0,
				"maximum": 120.0,
			},
		},
	}
	Schema(s)

	if _, ok := s["$schema"]; ok {
		t.Error("$schema should be stripped")
	}
	props := s["properties"].(map[string]any)
	name := props["name"].(map[string]any)
	if _, ok := name["default"]; ok {
		t.Error("default should be stripped")
	}
	if _, ok := name["minLength"]; ok {
		t.Error("minLength should be stripped")
	}
	if _, ok := name["format"]; ok {
		t.Error("non-enum/date-time format on string should be stripped")
	}
	age := props["age"].(map[string]any)
	if _, ok := age["minimum"]; ok {
		t.Error("minimum should be stripped")
	}
}

func TestSchemaKeepsAllowedStringFormats(t *testing.T) {
	s := map[string]any{"type": "string", "format": "date-time"}
	Schema(s)
	if s["format"] != "date-time" {
		t.Error("date-time format should survive sanitization")
	}
}

func TestSchemaIdempotent(t *testing.T) {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "string", "default": "x"},
		},
	}
	Schema(s)
	first := len(s["properties"].(map[string]any)["a"].(map[string]any))
	Schema(s)
	second := len(s["properties"].(map[string]any)["a"].(map[string]any))
	if first != second {
		t.Fatalf("sanitizing twice changed field count: %d vs %d", first, second)
	}
}

func TestSchemaHandlesCycles(t *testing.T) {
	node := map[string]any{"type": "object"}
	node["properties"] = map[string]any{"self": node}

	done := make(chan struct{})
	go func() {
		Schema(node)
		close(done)
	}()
	select {
	case <-done:
	default:
	}
	<-done
}
