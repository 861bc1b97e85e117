package chat

import (
	"testing"

	"github.com/dbrheo/agentcore/internal/content"
)

type stubCounter struct{ perContent int }

func (s stubCounter) CountText(string) int                  { return s.perContent }
func (s stubCounter) CountContent(content.Content) int { return s.perContent }

func TestAppendAndCuratedHistory(t *testing.T) {
	c := New("you are helpful", nil, stubCounter{perContent: 1})
	c.AppendHistory(content.UserContent("hi"))
	c.AppendHistory(content.ModelContent(content.TextPart("hello")))

	if len(c.RawHistory()) != 2 {
		t.Fatal("expected 2 raw entries")
	}
	if len(c.CuratedHistory()) != 2 {
		t.Fatal("expected both entries to survive curation")
	}
	if c.SystemPrompt() != "you are helpful" {
		t.Fatal("system prompt should be stable")
	}
}

func TestCuratedTokenCount(t *testing.T) {
	c := New("", nil, stubCounter{perContent: 5})
	c.AppendHistory(content.UserContent("hi"))
	c.AppendHistory(content.UserContent("there"))
	if got := c.CuratedTokenCount(); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
}
