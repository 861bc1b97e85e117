package hooks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/tool"
)

type stubTool struct{}

func (stubTool) Name() string                   { return "stub" }
func (stubTool) DisplayName() string            { return "stub" }
func (stubTool) Description() string            { return "stub tool" }
func (stubTool) ParameterSchema() map[string]any { return map[string]any{"type": "object"} }
func (stubTool) ValidateParams(map[string]any) error { return nil }
func (stubTool) GetDescription(map[string]any) string { return "" }
func (stubTool) ShouldConfirmExecute(context.Context, map[string]any, *abort.Signal) (*tool.ConfirmationDetails, error) {
	return nil, nil
}
func (stubTool) Execute(context.Context, map[string]any, *abort.Signal, tool.OutputUpdater) (*tool.Result, error) {
	return tool.TextResult("raw output"), nil
}
func (stubTool) Capabilities() []tool.Capability { return nil }

func TestWrapBlocksOnPreToolUseDecision(t *testing.T) {
	tmpDir := t.TempDir()
	blockScript := filepath.Join(tmpDir, "block.sh")
	if err := os.WriteFile(blockScript, []byte(`#!/bin/bash
echo '{"decision": "block", "reason": "not allowed"}'
`), 0755); err != nil {
		t.Fatal(err)
	}

	config := &HookConfig{Hooks: map[HookEvent][]HookMatcher{
		PreToolUse: {{Matcher: "stub", Hooks: []HookEntry{{Type: "command", Command: blockScript}}}},
	}}
	executor := NewExecutor(config, "session-1", "")
	wrapped := Wrap(stubTool{}, executor, "/tmp", "test-model", true)

	result, err := wrapped.Execute(context.Background(), nil, abort.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Error != "not allowed" {
		t.Fatalf("expected blocked result, got %+v", result)
	}
}

func TestWrapAppliesPostToolUseModifyOutput(t *testing.T) {
	tmpDir := t.TempDir()
	modifyScript := filepath.Join(tmpDir, "modify.sh")
	if err := os.WriteFile(modifyScript, []byte(`#!/bin/bash
echo '{"modifyOutput": "rewritten"}'
`), 0755); err != nil {
		t.Fatal(err)
	}

	config := &HookConfig{Hooks: map[HookEvent][]HookMatcher{
		PostToolUse: {{Matcher: "stub", Hooks: []HookEntry{{Type: "command", Command: modifyScript}}}},
	}}
	executor := NewExecutor(config, "session-1", "")
	wrapped := Wrap(stubTool{}, executor, "/tmp", "test-model", true)

	result, err := wrapped.Execute(context.Background(), nil, abort.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.LLMContentText() != "rewritten" {
		t.Fatalf("expected modified output, got %q", result.LLMContentText())
	}
}

func TestWrapNilExecutorPassesThrough(t *testing.T) {
	wrapped := Wrap(stubTool{}, nil, "", "", false)
	result, err := wrapped.Execute(context.Background(), nil, abort.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.LLMContentText() != "raw output" {
		t.Fatalf("nil executor should pass Execute through unmodified, got %q", result.LLMContentText())
	}
}
