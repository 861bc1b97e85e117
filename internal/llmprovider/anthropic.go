package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/registry"
)

// AnthropicProvider drives the direct anthropic-sdk-go streaming
// endpoint. cmd/root.go selects it for "anthropic:" models in every mode
// (interactive, script and server), with the API key resolved through
// internal/auth. Grounded on pkg/llm/anthropic/provider.go's
// message-conversion shape, rewired onto the SDK's native streaming API.
type AnthropicProvider struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicProvider builds a provider authenticated with apiKey,
// targeting model.
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) StreamChat(ctx context.Context, systemPrompt string, history []content.Content, tools []registry.FunctionDeclaration) (*Stream, error) {
	messages, err := toAnthropicMessages(history)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 4096,
		Messages:  messages,
		Tools:     toAnthropicTools(tools),
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	sdkStream := p.client.Messages.NewStreaming(ctx, params)

	out := make(chan Chunk)
	var streamErr error
	go func() {
		defer close(out)
		accumulated := anthropic.Message{}
		for sdkStream.Next() {
			event := sdkStream.Current()
			if err := accumulated.Accumulate(event); err != nil {
				streamErr = err
				return
			}
			switch delta := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				switch d := delta.Delta.AsAny().(type) {
				case anthropic.TextDelta:
					out <- Chunk{Kind: ChunkText, TextDelta: d.Text}
				case anthropic.ThinkingDelta:
					out <- Chunk{Kind: ChunkThought, ThoughtDelta: d.Thinking}
				}
			case anthropic.MessageStopEvent:
				out <- Chunk{Kind: ChunkFinished, FinishReason: string(accumulated.StopReason)}
			}
		}
		if err := sdkStream.Err(); err != nil {
			streamErr = err
			return
		}
		var calls []content.FunctionCall
		for _, block := range accumulated.Content {
			if tu, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
				var args map[string]any
				_ = json.Unmarshal(tu.Input, &args)
				calls = append(calls, content.FunctionCall{ID: tu.ID, Name: tu.Name, Args: args})
			}
		}
		if len(calls) > 0 {
			out <- Chunk{Kind: ChunkFunctionCalls, FunctionCalls: calls}
		}
	}()

	return &Stream{Chunks: out, errFn: func() error { return streamErr }}, nil
}

func toAnthropicMessages(history []content.Content) ([]anthropic.MessageParam, error) {
	out := make([]anthropic.MessageParam, 0, len(history))
	for _, c := range history {
		var blocks []anthropic.ContentBlockParamUnion
		for _, p := range c.Parts {
			switch p.Kind {
			case content.KindText:
				blocks = append(blocks, anthropic.NewTextBlock(p.Text))
			case content.KindFunctionCall:
				args, err := json.Marshal(p.FunctionCall.Args)
				if err != nil {
					return nil, fmt.Errorf("llmprovider: marshaling tool args: %w", err)
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(p.FunctionCall.ID, json.RawMessage(args), p.FunctionCall.Name))
			case content.KindFunctionResponse:
				text := functionResponseText(p.FunctionResponse.Response)
				blocks = append(blocks, anthropic.NewToolResultBlock(p.FunctionResponse.ID, text, p.FunctionResponse.Response["error"] != nil))
			}
		}
		if len(blocks) == 0 {
			continue
		}
		switch c.Role {
		case content.RoleUser, content.RoleFunction:
			out = append(out, anthropic.NewUserMessage(blocks...))
		case content.RoleModel:
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		}
	}
	return out, nil
}

func toAnthropicTools(decls []registry.FunctionDeclaration) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(decls))
	for _, d := range decls {
		props, _ := d.Parameters["properties"].(map[string]any)
		var required []string
		if req, ok := d.Parameters["required"].([]string); ok {
			required = req
		}
		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        d.Name,
				Description: anthropic.String(d.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: props,
					Required:   required,
				},
			},
		})
	}
	return out
}

func functionResponseText(response map[string]any) string {
	if v, ok := response["output"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if v, ok := response["error"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	b, _ := json.Marshal(response)
	return string(b)
}
