package content

import "testing"

func TestDefaultCurationDropsEmptyModel(t *testing.T) {
	h := NewHistory(nil)
	h.Append(UserContent("hi"))
	h.Append(ModelContent(TextPart("   ")))
	h.Append(UserContent("still here"))

	curated := h.Curated()
	if len(curated) != 2 {
		t.Fatalf("curated len = %d, want 2 (empty model dropped)", len(curated))
	}
	for _, c := range curated {
		if c.Role == RoleModel {
			t.Fatal("empty model content should have been curated out")
		}
	}
}

func TestDefaultCurationNeverDropsUser(t *testing.T) {
	h := NewHistory(nil)
	h.Append(UserContent(""))
	curated := h.Curated()
	if len(curated) != 1 {
		t.Fatal("user turn must never be dropped, even if empty")
	}
}

func TestDefaultCurationDropsAllErrorFunctionResponses(t *testing.T) {
	h := NewHistory(nil)
	h.Append(UserContent("do a thing"))
	h.Append(FunctionContent(FunctionResponsePart("c1", "tool", map[string]any{"error": "boom"})))
	curated := h.Curated()
	if len(curated) != 1 {
		t.Fatalf("curated len = %d, want 1 (error-only function content dropped)", len(curated))
	}
}

func TestCompressReplacesPrefix(t *testing.T) {
	h := NewHistory(nil)
	h.Append(UserContent("a"))
	h.Append(UserContent("b"))
	h.Append(UserContent("c"))
	h.Compress(2, "a and b happened")

	raw := h.Raw()
	if len(raw) != 2 {
		t.Fatalf("raw len after compress = %d, want 2", len(raw))
	}
	if raw[0].Role != RoleModel {
		t.Fatal("compressed prefix should be a synthetic model content")
	}
	if raw[1].Text() != "c" {
		t.Fatal("content after the compressed prefix should survive untouched")
	}
}
