package mcp

import (
	"strings"
	"testing"
)

func TestSanitizeToolNameShortPassesThrough(t *testing.T) {
	got := SanitizeToolName("fs", "read-file")
	if got != "fs__read_file" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeToolNameTruncatesOverLong(t *testing.T) {
	server := "a-very-long-descriptive-server-name"
	name := "an-equally-long-and-descriptive-tool-name-that-pushes-us-over"
	got := SanitizeToolName(server, name)
	if len(got) != 63 {
		t.Fatalf("expected exactly 63 chars, got %d: %q", len(got), got)
	}
	if !strings.Contains(got, "___") {
		t.Fatalf("expected the head/tail separator in %q", got)
	}
}
