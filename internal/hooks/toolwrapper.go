package hooks

import (
	"context"
	"encoding/json"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/tool"
)

// hookedTool decorates a tool.Tool with PreToolUse/PostToolUse hook
// firing, letting a deployment block, log, or rewrite any tool call
// without the scheduler knowing hooks exist.
type hookedTool struct {
	tool.Tool
	executor    *Executor
	cwd         string
	model       string
	interactive bool
}

// Wrap returns t unchanged if executor is nil (no hooks configured),
// otherwise a decorator that fires PreToolUse before Execute and
// PostToolUse after.
func Wrap(t tool.Tool, executor *Executor, cwd, model string, interactive bool) tool.Tool {
	if executor == nil {
		return t
	}
	return &hookedTool{Tool: t, executor: executor, cwd: cwd, model: model, interactive: interactive}
}

func (h *hookedTool) Execute(ctx context.Context, args map[string]any, signal *abort.Signal, update tool.OutputUpdater) (*tool.Result, error) {
	toolInput, _ := json.Marshal(args)

	preOut, err := h.executor.ExecuteHooks(ctx, PreToolUse, &PreToolUseInput{
		CommonInput: h.executor.CommonInput(PreToolUse, h.cwd, h.model, h.interactive),
		ToolName:    h.Tool.Name(),
		ToolInput:   toolInput,
	})
	if err != nil {
		return nil, err
	}
	if preOut.Decision == "block" {
		return tool.ErrorResult(preOut.Reason), nil
	}

	result, err := h.Tool.Execute(ctx, args, signal, update)
	if err != nil {
		return nil, err
	}

	toolResponse, _ := json.Marshal(result)
	postOut, err := h.executor.ExecuteHooks(ctx, PostToolUse, &PostToolUseInput{
		CommonInput:  h.executor.CommonInput(PostToolUse, h.cwd, h.model, h.interactive),
		ToolName:     h.Tool.Name(),
		ToolInput:    toolInput,
		ToolResponse: toolResponse,
	})
	if err != nil {
		return nil, err
	}
	if postOut.Decision == "block" {
		return tool.ErrorResult(postOut.Reason), nil
	}
	if postOut.ModifyOutput != "" {
		result = &tool.Result{
			Summary:       result.Summary,
			LLMContent:    []content.Part{content.TextPart(postOut.ModifyOutput)},
			ReturnDisplay: postOut.ModifyOutput,
		}
	}
	if postOut.Feedback != "" {
		result.LLMContent = append(result.LLMContent, content.TextPart(postOut.Feedback))
	}

	return result, nil
}
