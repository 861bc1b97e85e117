package client

import (
	"context"
	"testing"
	"time"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/chat"
	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/llmprovider"
	"github.com/dbrheo/agentcore/internal/registry"
	"github.com/dbrheo/agentcore/internal/session"
	"github.com/dbrheo/agentcore/internal/tool"
)

// scriptedProvider returns one canned chunk sequence per call to
// StreamChat, advancing through turns of a multi-turn conversation.
type scriptedProvider struct {
	turns [][]llmprovider.Chunk
	calls int
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) StreamChat(ctx context.Context, systemPrompt string, history []content.Content, tools []registry.FunctionDeclaration) (*llmprovider.Stream, error) {
	idx := s.calls
	s.calls++
	chunks := s.turns[idx]
	ch := make(chan llmprovider.Chunk, len(chunks))
	for _, c := range chunks {
		ch <- c
	}
	close(ch)
	return &llmprovider.Stream{Chunks: ch}, nil
}

type echoTool struct {
	name string
}

func (e *echoTool) Name() string                    { return e.name }
func (e *echoTool) DisplayName() string              { return e.name }
func (e *echoTool) Description() string              { return "echoes its input" }
func (e *echoTool) ParameterSchema() map[string]any  { return map[string]any{"type": "object"} }
func (e *echoTool) ValidateParams(map[string]any) error { return nil }
func (e *echoTool) GetDescription(map[string]any) string { return "" }
func (e *echoTool) ShouldConfirmExecute(context.Context, map[string]any, *abort.Signal) (*tool.ConfirmationDetails, error) {
	return nil, nil
}
func (e *echoTool) Execute(ctx context.Context, args map[string]any, signal *abort.Signal, update tool.OutputUpdater) (*tool.Result, error) {
	return tool.TextResult("echoed"), nil
}
func (e *echoTool) Capabilities() []tool.Capability { return []tool.Capability{tool.CapabilityQuery} }

func drain(t *testing.T, ch <-chan Event, timeout time.Duration) []Event {
	t.Helper()
	var events []Event
	deadline := time.After(timeout)
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, e)
		case <-deadline:
			t.Fatal("timed out draining client events")
		}
	}
}

func TestSendMessageStreamSingleToolCallAutoApprove(t *testing.T) {
	reg := registry.New()
	reg.Register(&echoTool{name: "echo"}, []tool.Capability{tool.CapabilityQuery}, nil, 1, nil)

	provider := &scriptedProvider{turns: [][]llmprovider.Chunk{
		{
			{Kind: llmprovider.ChunkFunctionCalls, FunctionCalls: []content.FunctionCall{{ID: "c1", Name: "echo", Args: map[string]any{}}}},
			{Kind: llmprovider.ChunkFinished, FinishReason: "tool_calls"},
		},
		{
			{Kind: llmprovider.ChunkText, TextDelta: "done"},
			{Kind: llmprovider.ChunkFinished, FinishReason: "stop"},
		},
	}}

	c := chat.New("system prompt", nil, stubCounter{})
	cl := New(c, reg, provider, nil, nil, nil, nil, nil)

	events := drain(t, cl.SendMessageStream(context.Background(), "please echo", abort.Background(), "prompt-1", 10), 2*time.Second)

	sawToolRequest, sawUpdate, sawFinalText := false, false, false
	for _, e := range events {
		switch {
		case e.ToolRequest != nil && e.ToolRequest.CallID == "c1":
			sawToolRequest = true
		case e.Kind == eventToolCallsUpdate:
			sawUpdate = true
		case e.Text == "done":
			sawFinalText = true
		}
	}
	if !sawToolRequest || !sawUpdate || !sawFinalText {
		t.Fatalf("missing expected events: toolRequest=%v update=%v finalText=%v (%+v)", sawToolRequest, sawUpdate, sawFinalText, events)
	}

	raw := c.RawHistory()
	foundFunctionResponse := false
	for _, cc := range raw {
		if cc.Role == content.RoleFunction {
			foundFunctionResponse = true
		}
	}
	if !foundFunctionResponse {
		t.Fatal("expected a function-role Content recording the tool's response")
	}
}

func TestSendMessageStreamPlainTextNoTools(t *testing.T) {
	reg := registry.New()
	provider := &scriptedProvider{turns: [][]llmprovider.Chunk{
		{
			{Kind: llmprovider.ChunkText, TextDelta: "hello"},
			{Kind: llmprovider.ChunkFinished, FinishReason: "stop"},
		},
	}}
	c := chat.New("", nil, stubCounter{})
	cl := New(c, reg, provider, nil, nil, nil, nil, nil)

	events := drain(t, cl.SendMessageStream(context.Background(), "hi", abort.Background(), "prompt-1", 10), 2*time.Second)
	if len(events) == 0 {
		t.Fatal("expected at least one event")
	}
	if provider.calls != 1 {
		t.Fatalf("expected exactly one turn for a no-tool-call response, got %d", provider.calls)
	}
}

func TestSendMessageStreamPersistsToSessionManager(t *testing.T) {
	reg := registry.New()
	provider := &scriptedProvider{turns: [][]llmprovider.Chunk{
		{
			{Kind: llmprovider.ChunkText, TextDelta: "hello"},
			{Kind: llmprovider.ChunkFinished, FinishReason: "stop"},
		},
	}}
	c := chat.New("", nil, stubCounter{})
	mgr := session.NewManager("")
	cl := New(c, reg, provider, nil, nil, nil, mgr, nil)

	drain(t, cl.SendMessageStream(context.Background(), "hi", abort.Background(), "prompt-1", 10), 2*time.Second)

	if mgr.MessageCount() != 2 {
		t.Fatalf("expected user + model messages persisted, got %d", mgr.MessageCount())
	}
	history := mgr.GetHistory()
	if history[0].Text() != "hi" {
		t.Fatalf("expected first persisted message to be the user prompt, got %+v", history[0])
	}
}

type stubCounter struct{}

func (stubCounter) CountText(string) int                  { return 1 }
func (stubCounter) CountContent(content.Content) int { return 1 }
