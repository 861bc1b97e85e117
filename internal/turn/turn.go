// Package turn implements a single model-response cycle: stream chunks,
// accumulate Parts, and emit events to the caller without executing tools,
// mutating history, or looping. Grounded on the consumer-loop shape of
// internal/agent/streaming.go's StreamWithCallback (reader.Recv() loop),
// corrected to use one consistent return signature rather than the
// teacher's mismatched caller/callee types.
package turn

import (
	"context"
	"fmt"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/llmprovider"
	"github.com/dbrheo/agentcore/internal/registry"
	"github.com/dbrheo/agentcore/internal/toolcall"
	"github.com/google/uuid"
)

// EventKind discriminates one emitted Turn event.
type EventKind int

const (
	EventContent EventKind = iota
	EventThought
	EventToolCallRequest
	EventError
	EventFinished
)

// Event is one unit the Turn emits to its caller.
type Event struct {
	Kind        EventKind
	Text        string
	ToolRequest *toolcall.Request
	Err         error
	FinishReason string
}

// Turn runs one streamed model pass over a fixed history snapshot.
type Turn struct {
	provider llmprovider.Provider
	promptID string
}

// New creates a Turn against provider, tagging any tool requests it
// produces with promptID.
func New(provider llmprovider.Provider, promptID string) *Turn {
	return &Turn{provider: provider, promptID: promptID}
}

// Result is what Run returns once the stream completes: the accumulated
// model Content (for Chat to append) and the tool requests to schedule.
type Result struct {
	ModelContent  content.Content
	ToolRequests  []toolcall.Request
	FinishReason  string
}

// Run streams from the provider, forwarding events to emit, and returns
// the accumulated Result once the stream ends. It never executes tools,
// mutates history, or loops — a single pass only.
func (t *Turn) Run(ctx context.Context, systemPrompt string, history []content.Content, tools []registry.FunctionDeclaration, signal *abort.Signal, emit func(Event)) (Result, error) {
	stream, err := t.provider.StreamChat(ctx, systemPrompt, history, tools)
	if err != nil {
		emit(Event{Kind: EventError, Err: err})
		return Result{}, err
	}

	var parts []content.Part
	var finishReason string
	var requests []toolcall.Request

	for chunk := range stream.Chunks {
		if signal.IsAborted() {
			emit(Event{Kind: EventError, Err: fmt.Errorf("turn: aborted")})
			return Result{ModelContent: content.ModelContent(parts...), ToolRequests: requests}, signal.Context().Err()
		}
		switch chunk.Kind {
		case llmprovider.ChunkText:
			parts = append(parts, content.TextPart(chunk.TextDelta))
			emit(Event{Kind: EventContent, Text: chunk.TextDelta})
		case llmprovider.ChunkThought:
			parts = append(parts, content.ThoughtPart(chunk.ThoughtDelta))
			emit(Event{Kind: EventThought, Text: chunk.ThoughtDelta})
		case llmprovider.ChunkFunctionCalls:
			for _, fc := range chunk.FunctionCalls {
				id := fc.ID
				if id == "" {
					id = uuid.NewString()
				}
				parts = append(parts, content.FunctionCallPart(id, fc.Name, fc.Args))
				req := toolcall.Request{CallID: id, Name: fc.Name, Args: fc.Args, PromptID: t.promptID}
				requests = append(requests, req)
				emit(Event{Kind: EventToolCallRequest, ToolRequest: &req})
			}
		case llmprovider.ChunkFinished:
			finishReason = chunk.FinishReason
		}
	}

	if err := stream.Err(); err != nil {
		emit(Event{Kind: EventError, Err: err})
		return Result{ModelContent: content.ModelContent(parts...), ToolRequests: requests, FinishReason: finishReason}, err
	}

	emit(Event{Kind: EventFinished, FinishReason: finishReason})
	return Result{ModelContent: content.ModelContent(parts...), ToolRequests: requests, FinishReason: finishReason}, nil
}
