package mcp

import (
	"regexp"
)

var disallowedNameChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeToolName replaces characters a function-declaration wire format
// disallows with '_', prefixes with "<server>__", and truncates over-long
// names to exactly head[:28] + "___" + tail[-32:], preserving a readable
// head and tail rather than a hash. Grounded exactly on
// tools/mcp/mcp_client.py's _sanitize_tool_name.
func SanitizeToolName(serverName, rawName string) string {
	clean := disallowedNameChars.ReplaceAllString(rawName, "_")
	full := serverName + "__" + clean
	if len(full) <= 63 {
		return full
	}
	return full[:28] + "___" + full[len(full)-32:]
}
