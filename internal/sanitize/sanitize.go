// Package sanitize strips JSON-Schema fields that LLM function-declaration
// wire formats do not accept. Grounded exactly on the original
// parameter_sanitizer: same stripped-field list, same string-format
// allowlist, same recursive traversal into properties/items/anyOf/oneOf/
// allOf, with cycle detection via pointer identity (the Go analogue of
// Python's id()-based visited set).
package sanitize

// strippedFields are unconditionally removed from every schema node.
var strippedFields = map[string]bool{
	"default":             true,
	"minimum":             true,
	"maximum":             true,
	"minLength":           true,
	"maxLength":           true,
	"minItems":            true,
	"maxItems":            true,
	"uniqueItems":         true,
	"additionalProperties": true,
	"$schema":             true,
	"$ref":                true,
	"$defs":               true,
}

// allowedStringFormats are the only "format" values kept on a string-typed
// schema node; any other value is stripped.
var allowedStringFormats = map[string]bool{
	"enum":      true,
	"date-time": true,
}

// Schema sanitizes a JSON-Schema-shaped map in place and also returns it,
// recursing into properties, items, anyOf, oneOf, and allOf. A node
// reachable more than once via cyclic references is sanitized only once;
// subsequent visits are left untouched to avoid infinite recursion.
func Schema(schema map[string]any) map[string]any {
	return sanitizeNode(schema, map[any]bool{})
}

func sanitizeNode(node map[string]any, visited map[any]bool) map[string]any {
	if node == nil {
		return nil
	}
	key := schemaIdentity(node)
	if visited[key] {
		return node
	}
	visited[key] = true

	for field := range strippedFields {
		delete(node, field)
	}

	if typ, _ := node["type"].(string); typ == "string" {
		if format, ok := node["format"].(string); ok && !allowedStringFormats[format] {
			delete(node, "format")
		}
	}

	if props, ok := node["properties"].(map[string]any); ok {
		for name, raw := range props {
			if child, ok := raw.(map[string]any); ok {
				props[name] = sanitizeNode(child, visited)
			}
		}
	}

	if items, ok := node["items"].(map[string]any); ok {
		node["items"] = sanitizeNode(items, visited)
	}

	for _, combinator := range []string{"anyOf", "oneOf", "allOf"} {
		if list, ok := node[combinator].([]any); ok {
			for i, raw := range list {
				if child, ok := raw.(map[string]any); ok {
					list[i] = sanitizeNode(child, visited)
				}
			}
		}
	}

	return node
}

// schemaIdentity returns a comparable key identifying this map value for
// cycle detection. Go maps aren't comparable directly when used as map
// keys by value, so callers compare against the same live reference; since
// Go lacks object identity for map[string]any the way Python's id() does,
// we key on the map header via a pointer obtained through a one-element
// wrapper stored alongside traversal — in practice reflect.ValueOf(node).Pointer()
// gives the stable identity of the underlying hmap.
func schemaIdentity(node map[string]any) any {
	return mapPointer(node)
}
