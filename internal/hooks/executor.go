package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// Executor runs a HookConfig's matching commands for a given event,
// feeding each one the event's input as JSON on stdin and interpreting
// its stdout/exit code as a HookOutput.
type Executor struct {
	config         *HookConfig
	sessionID      string
	transcriptPath string
}

// NewExecutor binds a HookConfig to the session metadata every hook
// input's CommonInput should reflect.
func NewExecutor(config *HookConfig, sessionID, transcriptPath string) *Executor {
	return &Executor{config: config, sessionID: sessionID, transcriptPath: transcriptPath}
}

// CommonInput builds the CommonInput every hook input embeds, stamped
// with this Executor's session identity and the given event metadata.
func (e *Executor) CommonInput(event HookEvent, cwd, model string, interactive bool) CommonInput {
	return CommonInput{
		SessionID:      e.sessionID,
		TranscriptPath: e.transcriptPath,
		CWD:            cwd,
		HookEventName:  event,
		Timestamp:      time.Now().Unix(),
		Model:          model,
		Interactive:    interactive,
	}
}

// ExecuteHooks runs every hook registered for event whose matcher accepts
// the input's tool name (for PreToolUse/PostToolUse; unfiltered for
// lifecycle events), merging their outputs in registration order. A
// "block" decision short-circuits remaining hooks for this event.
func (e *Executor) ExecuteHooks(ctx context.Context, event HookEvent, input interface{}) (*HookOutput, error) {
	if e.config == nil {
		return &HookOutput{}, nil
	}
	matchers := e.config.Hooks[event]
	if len(matchers) == 0 {
		return &HookOutput{}, nil
	}

	toolName := toolNameFromInput(input)
	result := &HookOutput{}

	for _, m := range matchers {
		if event.RequiresMatcher() && !matchesPattern(m.Matcher, toolName) {
			continue
		}
		for _, entry := range m.Hooks {
			out, err := e.runHook(ctx, entry, input)
			if err != nil {
				return nil, err
			}
			mergeHookOutput(result, out)
			if result.Decision == "block" {
				return result, nil
			}
		}
	}
	return result, nil
}

func toolNameFromInput(input interface{}) string {
	switch v := input.(type) {
	case *PreToolUseInput:
		return v.ToolName
	case *PostToolUseInput:
		return v.ToolName
	default:
		return ""
	}
}

// runHook executes one command, applying entry.Timeout (seconds) on top
// of ctx when set. A timed-out hook is treated as a silent no-op, not an
// error — a slow or hung hook must never wedge the turn loop.
func (e *Executor) runHook(ctx context.Context, entry HookEntry, input interface{}) (*HookOutput, error) {
	runCtx := ctx
	if entry.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(entry.Timeout)*time.Second)
		defer cancel()
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("hooks: marshaling input for %s: %w", entry.Command, err)
	}

	cmd := exec.CommandContext(runCtx, "/bin/sh", "-c", entry.Command)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return &HookOutput{}, nil
	}

	if exitErr, ok := runErr.(*exec.ExitError); ok {
		if exitErr.ExitCode() == 2 {
			blocked := false
			return &HookOutput{Decision: "block", Reason: stderr.String(), Continue: &blocked}, nil
		}
		return &HookOutput{}, nil
	} else if runErr != nil {
		return nil, fmt.Errorf("hooks: running %s: %w", entry.Command, runErr)
	}

	trimmed := bytes.TrimSpace(stdout.Bytes())
	if len(trimmed) == 0 {
		return &HookOutput{}, nil
	}
	var out HookOutput
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return &HookOutput{}, nil
	}
	return &out, nil
}

func mergeHookOutput(dst, src *HookOutput) {
	if src == nil {
		return
	}
	if src.Continue != nil {
		dst.Continue = src.Continue
	}
	if src.StopReason != "" {
		dst.StopReason = src.StopReason
	}
	if src.SuppressOutput {
		dst.SuppressOutput = true
	}
	if src.Decision != "" {
		dst.Decision = src.Decision
	}
	if src.Reason != "" {
		dst.Reason = src.Reason
	}
	if src.Feedback != "" {
		dst.Feedback = src.Feedback
	}
	if src.Context != "" {
		dst.Context = src.Context
	}
	if src.SystemPrompt != "" {
		dst.SystemPrompt = src.SystemPrompt
	}
	if src.ModifyInput != "" {
		dst.ModifyInput = src.ModifyInput
	}
	if src.ModifyOutput != "" {
		dst.ModifyOutput = src.ModifyOutput
	}
}
