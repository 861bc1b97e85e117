package llmprovider

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	openaisdk "github.com/sashabaranov/go-openai"

	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/registry"
)

// OpenAIProvider drives the direct sashabaranov/go-openai streaming
// endpoint, the second wire format beside AnthropicProvider. cmd/root.go
// selects it for "openai:" models in every mode (interactive, script and
// server).
type OpenAIProvider struct {
	client *openaisdk.Client
	model  string
}

// NewOpenAIProvider builds a provider authenticated with apiKey.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{client: openaisdk.NewClient(apiKey), model: model}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) StreamChat(ctx context.Context, systemPrompt string, history []content.Content, tools []registry.FunctionDeclaration) (*Stream, error) {
	messages := toOpenAIMessages(systemPrompt, history)

	req := openaisdk.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
		Tools:    toOpenAITools(tools),
		Stream:   true,
	}

	sdkStream, err := p.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make(chan Chunk)
	var streamErr error
	go func() {
		defer close(out)
		defer sdkStream.Close()

		type pendingCall struct {
			id, name string
			args     string
		}
		calls := map[int]*pendingCall{}

		for {
			resp, err := sdkStream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				streamErr = err
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			choice := resp.Choices[0]
			if choice.Delta.Content != "" {
				out <- Chunk{Kind: ChunkText, TextDelta: choice.Delta.Content}
			}
			for _, tc := range choice.Delta.ToolCalls {
				idx := 0
				if tc.Index != nil {
					idx = *tc.Index
				}
				pc, ok := calls[idx]
				if !ok {
					pc = &pendingCall{}
					calls[idx] = pc
				}
				if tc.ID != "" {
					pc.id = tc.ID
				}
				if tc.Function.Name != "" {
					pc.name = tc.Function.Name
				}
				pc.args += tc.Function.Arguments
			}
			if choice.FinishReason != "" {
				out <- Chunk{Kind: ChunkFinished, FinishReason: string(choice.FinishReason)}
			}
		}

		if len(calls) > 0 {
			fcs := make([]content.FunctionCall, 0, len(calls))
			for i := 0; i < len(calls); i++ {
				pc, ok := calls[i]
				if !ok {
					continue
				}
				var args map[string]any
				_ = json.Unmarshal([]byte(pc.args), &args)
				fcs = append(fcs, content.FunctionCall{ID: pc.id, Name: pc.name, Args: args})
			}
			out <- Chunk{Kind: ChunkFunctionCalls, FunctionCalls: fcs}
		}
	}()

	return &Stream{Chunks: out, errFn: func() error { return streamErr }}, nil
}

func toOpenAIMessages(systemPrompt string, history []content.Content) []openaisdk.ChatCompletionMessage {
	out := make([]openaisdk.ChatCompletionMessage, 0, len(history)+1)
	if systemPrompt != "" {
		out = append(out, openaisdk.ChatCompletionMessage{Role: openaisdk.ChatMessageRoleSystem, Content: systemPrompt})
	}
	for _, c := range history {
		switch c.Role {
		case content.RoleUser:
			out = append(out, openaisdk.ChatCompletionMessage{Role: openaisdk.ChatMessageRoleUser, Content: c.Text()})
		case content.RoleModel:
			msg := openaisdk.ChatCompletionMessage{Role: openaisdk.ChatMessageRoleAssistant, Content: c.Text()}
			for _, fc := range c.FunctionCalls() {
				args, _ := json.Marshal(fc.Args)
				msg.ToolCalls = append(msg.ToolCalls, openaisdk.ToolCall{
					ID:   fc.ID,
					Type: openaisdk.ToolTypeFunction,
					Function: openaisdk.FunctionCall{
						Name:      fc.Name,
						Arguments: string(args),
					},
				})
			}
			out = append(out, msg)
		case content.RoleFunction:
			for _, p := range c.Parts {
				if p.Kind != content.KindFunctionResponse {
					continue
				}
				out = append(out, openaisdk.ChatCompletionMessage{
					Role:       openaisdk.ChatMessageRoleTool,
					ToolCallID: p.FunctionResponse.ID,
					Content:    functionResponseText(p.FunctionResponse.Response),
				})
			}
		}
	}
	return out
}

func toOpenAITools(decls []registry.FunctionDeclaration) []openaisdk.Tool {
	out := make([]openaisdk.Tool, 0, len(decls))
	for _, d := range decls {
		out = append(out, openaisdk.Tool{
			Type: openaisdk.ToolTypeFunction,
			Function: &openaisdk.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		})
	}
	return out
}
