// Package llmprovider defines the abstract streaming chat contract the
// runtime consumes, plus adapters onto concrete SDKs. Grounded on the
// teacher's cloudwego/eino-based agent.go (model.ToolCallingChatModel,
// schema.StreamReader) for the streaming shape, and pkg/llm/anthropic,
// pkg/llm/ollama for the direct-SDK adapter precedent.
package llmprovider

import (
	"context"

	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/registry"
)

// ChunkKind discriminates one streamed chunk from the model.
type ChunkKind int

const (
	ChunkText ChunkKind = iota
	ChunkThought
	ChunkFunctionCalls
	ChunkFinished
)

// Chunk is one unit of streamed model output.
type Chunk struct {
	Kind          ChunkKind
	TextDelta     string
	ThoughtDelta  string
	FunctionCalls []content.FunctionCall
	FinishReason  string
}

// Stream is the channel-based consumer surface a Provider hands back:
// range over Chunks, then check Err once the channel closes.
type Stream struct {
	Chunks <-chan Chunk
	errFn  func() error
}

// Err returns the terminal error, if any, once Chunks is drained.
func (s *Stream) Err() error {
	if s.errFn == nil {
		return nil
	}
	return s.errFn()
}

// Provider is the abstract streaming chat endpoint: accepts a system
// prompt, history, and the registry's function declarations, and yields a
// Stream of Chunks.
type Provider interface {
	Name() string
	StreamChat(ctx context.Context, systemPrompt string, history []content.Content, tools []registry.FunctionDeclaration) (*Stream, error)
}
