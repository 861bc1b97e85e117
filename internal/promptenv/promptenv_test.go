package promptenv

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBuildIncludesEnvironmentAndProjectPrompt(t *testing.T) {
	m := &Manager{
		BaseInstructions: "You are an assistant.",
		ProjectPrompt:    "Always cite sources.",
		Env:              Environment{WorkingDirectory: "/tmp/proj", Platform: "linux", Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}
	out := m.Build()
	if !contains(out, "You are an assistant.") || !contains(out, "Always cite sources.") || !contains(out, "2026-08-01") {
		t.Fatalf("prompt missing expected sections: %s", out)
	}
}

func TestDiscoverMemoryWalksUpToRoot(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "AGENTS.md"), []byte("root memory"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "AGENTS.md"), []byte("local memory"), 0644); err != nil {
		t.Fatal(err)
	}

	files := discoverMemory(sub, "AGENTS.md")
	if len(files) != 2 {
		t.Fatalf("expected 2 memory files, got %d", len(files))
	}
	if files[0].Content != "local memory" {
		t.Fatal("closest directory's memory should come first")
	}
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && (func() bool {
		for i := 0; i+len(sub) <= len(s); i++ {
			if s[i:i+len(sub)] == sub {
				return true
			}
		}
		return false
	})()
}
