package session

import (
	"path/filepath"
	"testing"

	"github.com/dbrheo/agentcore/internal/content"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := NewSession()
	s.SetMetadata(Metadata{Provider: "anthropic", Model: "claude-3-5-sonnet"})
	s.AddMessage(FromContent(content.UserContent("hello")))
	s.AddMessage(FromContent(content.ModelContent(content.TextPart("hi there"))))

	path := filepath.Join(t.TempDir(), "session.json")
	if err := s.SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded.Messages))
	}
	if loaded.Metadata.Provider != "anthropic" {
		t.Fatalf("metadata did not round-trip: %+v", loaded.Metadata)
	}
	if loaded.Messages[1].ToContent().Text() != "hi there" {
		t.Fatalf("content did not round-trip: %+v", loaded.Messages[1])
	}
}

func TestFunctionCallContentRoundTrips(t *testing.T) {
	cc := content.ModelContent(content.FunctionCallPart("call-1", "search", map[string]any{"q": "go"}))
	msg := FromContent(cc)

	back := msg.ToContent()
	calls := back.FunctionCalls()
	if len(calls) != 1 || calls[0].Name != "search" || calls[0].ID != "call-1" {
		t.Fatalf("functionCall did not survive round trip: %+v", calls)
	}
}

func TestAddMessageStampsIDAndTimestamp(t *testing.T) {
	s := NewSession()
	s.AddMessage(Message{Role: content.RoleUser, Parts: []content.Part{content.TextPart("x")}})
	if s.Messages[0].ID == "" {
		t.Fatal("expected an auto-generated ID")
	}
	if s.Messages[0].Timestamp.IsZero() {
		t.Fatal("expected an auto-stamped timestamp")
	}
}
