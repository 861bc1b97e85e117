package session

import (
	"path/filepath"
	"testing"

	"github.com/dbrheo/agentcore/internal/content"
)

func TestManagerAutoSavesWhenFilePathSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	m := NewManager(path)

	if err := m.AddContent(content.UserContent("hello")); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("expected auto-save to have written a file: %v", err)
	}
	if len(loaded.Messages) != 1 {
		t.Fatalf("expected 1 persisted message, got %d", len(loaded.Messages))
	}
}

func TestManagerNoOpWhenFilePathEmpty(t *testing.T) {
	m := NewManager("")
	if err := m.AddContent(content.UserContent("hello")); err != nil {
		t.Fatalf("AddContent with no file path should not error: %v", err)
	}
	if err := m.Save(); err == nil {
		t.Fatal("expected Save to error without a configured file path")
	}
}

func TestManagerReplaceAllContent(t *testing.T) {
	m := NewManager("")
	m.AddContent(content.UserContent("first"))
	m.AddContent(content.UserContent("second"))

	if err := m.ReplaceAllContent([]content.Content{content.UserContent("only")}); err != nil {
		t.Fatal(err)
	}
	if m.MessageCount() != 1 {
		t.Fatalf("expected 1 message after replace, got %d", m.MessageCount())
	}
	if m.GetHistory()[0].Text() != "only" {
		t.Fatalf("unexpected history after replace: %+v", m.GetHistory())
	}
}

func TestManagerGetSessionReturnsDeepCopy(t *testing.T) {
	m := NewManager("")
	m.AddContent(content.UserContent("a"))

	cp := m.GetSession()
	cp.Messages = append(cp.Messages, Message{Role: content.RoleUser, Parts: []content.Part{content.TextPart("injected")}})

	if m.MessageCount() != 1 {
		t.Fatalf("mutating the copy should not affect the manager, got count %d", m.MessageCount())
	}
}

func TestManagerGetHistoryPreservesOrder(t *testing.T) {
	m := NewManager("")
	m.AddContent(content.UserContent("one"))
	m.AddContent(content.ModelContent(content.TextPart("two")))
	m.AddContent(content.UserContent("three"))

	history := m.GetHistory()
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	if history[0].Text() != "one" || history[1].Text() != "two" || history[2].Text() != "three" {
		t.Fatalf("history out of order: %+v", history)
	}
}

func TestNewManagerWithSessionResumes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewSession()
	s.AddMessage(FromContent(content.UserContent("resumed")))
	if err := s.SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}

	m := NewManagerWithSession(loaded, path)
	if m.MessageCount() != 1 {
		t.Fatalf("expected resumed manager to carry 1 message, got %d", m.MessageCount())
	}
}
