package turn

import (
	"context"
	"testing"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/llmprovider"
	"github.com/dbrheo/agentcore/internal/registry"
)

type fakeProvider struct {
	chunks []llmprovider.Chunk
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) StreamChat(ctx context.Context, systemPrompt string, history []content.Content, tools []registry.FunctionDeclaration) (*llmprovider.Stream, error) {
	ch := make(chan llmprovider.Chunk, len(f.chunks))
	for _, c := range f.chunks {
		ch <- c
	}
	close(ch)
	return &llmprovider.Stream{Chunks: ch}, nil
}

func TestPlainTextTurn(t *testing.T) {
	p := &fakeProvider{chunks: []llmprovider.Chunk{
		{Kind: llmprovider.ChunkText, TextDelta: "Hi "},
		{Kind: llmprovider.ChunkText, TextDelta: "there!"},
		{Kind: llmprovider.ChunkFinished, FinishReason: "stop"},
	}}
	tr := New(p, "prompt-1")

	var events []Event
	result, err := tr.Run(context.Background(), "", nil, nil, abort.Background(), func(e Event) { events = append(events, e) })
	if err != nil {
		t.Fatal(err)
	}
	if len(result.ToolRequests) != 0 {
		t.Fatal("plain text turn should produce no tool requests")
	}
	if result.ModelContent.Text() != "Hi there!" {
		t.Fatalf("got %q", result.ModelContent.Text())
	}

	textEvents := 0
	for _, e := range events {
		if e.Kind == EventContent {
			textEvents++
		}
	}
	if textEvents != 2 {
		t.Fatalf("expected 2 content events, got %d", textEvents)
	}
}

func TestTurnEmitsToolCallRequest(t *testing.T) {
	p := &fakeProvider{chunks: []llmprovider.Chunk{
		{Kind: llmprovider.ChunkFunctionCalls, FunctionCalls: []content.FunctionCall{{ID: "c1", Name: "now", Args: map[string]any{}}}},
		{Kind: llmprovider.ChunkFinished, FinishReason: "tool_calls"},
	}}
	tr := New(p, "prompt-1")

	result, err := tr.Run(context.Background(), "", nil, nil, abort.Background(), func(Event) {})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.ToolRequests) != 1 || result.ToolRequests[0].CallID != "c1" {
		t.Fatalf("expected one tool request with id c1, got %+v", result.ToolRequests)
	}
}
