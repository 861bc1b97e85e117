// Package client implements the Client orchestrator (C8): the recursive
// turn loop gluing Chat, Turn, and ToolScheduler together. Grounded on
// internal/agent/agent.go's GenerateWithLoop/GenerateWithLoopAndStreaming
// main loop — same collect-pending-requests / schedule / re-loop
// structure, generalized from eino schema.Message to internal/content.
package client

import (
	"context"
	"fmt"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/chat"
	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/hooks"
	"github.com/dbrheo/agentcore/internal/llmprovider"
	"github.com/dbrheo/agentcore/internal/registry"
	"github.com/dbrheo/agentcore/internal/scheduler"
	"github.com/dbrheo/agentcore/internal/session"
	"github.com/dbrheo/agentcore/internal/tool"
	"github.com/dbrheo/agentcore/internal/toolcall"
	"github.com/dbrheo/agentcore/internal/turn"
)

// Event mirrors turn.Event for the outer caller, plus a ToolCallsUpdate
// kind surfacing scheduler snapshots (for a host's progress UI).
type Event struct {
	Kind             turn.EventKind
	Text             string
	ToolRequest      *toolcall.Request
	Err              error
	FinishReason     string
	ToolCallsUpdate  []*toolcall.ToolCall
	MaxTurnsExceeded bool
}

const eventToolCallsUpdate turn.EventKind = 100

// NextSpeakerChecker decides whether the user or the model should speak
// next when a Turn produces no tool calls. A nil checker always ends the
// loop (treats next speaker as "user").
type NextSpeakerChecker func(ctx context.Context, c *chat.Chat) (nextIsModel bool)

// Client glues Chat + Turn + Scheduler and runs the recursive turn loop.
// Client itself only fires the lifecycle events UserPromptSubmit and
// Stop, which have no single tool to decorate. Tool-level hooks
// (PreToolUse/PostToolUse) fire only for a tool decorated with
// hooks.Wrap; the tools registered by mcp.Manager.AddServer are not
// wrapped.
type Client struct {
	chat         *chat.Chat
	registry     *registry.Registry
	provider     llmprovider.Provider
	scheduler    *scheduler.Scheduler
	nextSpeaker  NextSpeakerChecker
	completionCh chan []*toolcall.ToolCall

	hookExecutor *hooks.Executor
	modelName    string

	sessionMgr *session.Manager
}

// New creates a Client. reg is exclusively owned by Client (it
// instantiates the one Scheduler that holds a reference to it). A nil
// hookExecutor disables UserPromptSubmit/Stop hook firing. A nil
// sessionMgr disables on-disk persistence of the conversation; pass one
// built with session.NewManagerWithSession to resume a prior session's
// history into c before the first SendMessageStream call.
func New(c *chat.Chat, reg *registry.Registry, provider llmprovider.Provider, logger scheduler.Logger, nextSpeaker NextSpeakerChecker, hookExecutor *hooks.Executor, sessionMgr *session.Manager, metrics *scheduler.Metrics) *Client {
	cl := &Client{
		chat:         c,
		registry:     reg,
		provider:     provider,
		nextSpeaker:  nextSpeaker,
		completionCh: make(chan []*toolcall.ToolCall, 1),
		hookExecutor: hookExecutor,
		modelName:    provider.Name(),
		sessionMgr:   sessionMgr,
	}
	cl.scheduler = scheduler.New(reg, func(completed []*toolcall.ToolCall) {
		cl.completionCh <- completed
	}, logger, metrics)
	return cl
}

// Scheduler exposes the owned scheduler so a host can call
// HandleConfirmationResponse directly, or inspect live state.
func (c *Client) Scheduler() *scheduler.Scheduler { return c.scheduler }

// appendHistory records cc in both the live chat history and, if
// configured, the persisted session. A persistence failure returned by
// the Manager's auto-save is discarded here: a failed write to disk must
// never interrupt an in-progress turn.
func (c *Client) appendHistory(cc content.Content) {
	c.chat.AppendHistory(cc)
	if c.sessionMgr != nil {
		_ = c.sessionMgr.AddContent(cc)
	}
}

// SendMessageStream runs the recursive turn loop for one user request. It
// returns a channel of Events the caller ranges over; the channel closes
// when the loop ends (model yielded control, max turns exhausted, or an
// unrecoverable error).
func (c *Client) SendMessageStream(ctx context.Context, userText string, signal *abort.Signal, promptID string, maxTurns int) <-chan Event {
	out := make(chan Event)
	go c.run(ctx, userText, signal, promptID, maxTurns, out)
	return out
}

func (c *Client) run(ctx context.Context, userText string, signal *abort.Signal, promptID string, maxTurns int, out chan<- Event) {
	defer close(out)

	if c.hookExecutor != nil {
		promptOut, err := c.hookExecutor.ExecuteHooks(ctx, hooks.UserPromptSubmit, &hooks.UserPromptSubmitInput{
			CommonInput: c.hookExecutor.CommonInput(hooks.UserPromptSubmit, "", c.modelName, true),
			Prompt:      userText,
		})
		if err == nil && promptOut.Decision == "block" {
			out <- Event{Kind: turn.EventError, Err: fmt.Errorf("client: prompt blocked by hook: %s", promptOut.Reason)}
			c.fireStop(ctx, "", "blocked")
			return
		}
	}

	c.appendHistory(content.UserContent(userText))

	var finalText string
	stopReason := "completed"
	remaining := maxTurns

	for {
		if remaining <= 0 {
			out <- Event{MaxTurnsExceeded: true}
			stopReason = "max_turns"
			c.fireStop(ctx, finalText, stopReason)
			return
		}
		remaining--

		t := turn.New(c.provider, promptID)
		declarations := c.registry.FunctionDeclarations()

		history := c.chat.CuratedHistory()

		result, err := t.Run(ctx, c.chat.SystemPrompt(), history, declarations, signal, func(e turn.Event) {
			if e.Kind == turn.EventContent {
				finalText += e.Text
			}
			out <- Event{Kind: e.Kind, Text: e.Text, ToolRequest: e.ToolRequest, Err: e.Err, FinishReason: e.FinishReason}
		})
		if err != nil {
			c.fireStop(ctx, finalText, "error")
			return
		}

		if !result.ModelContent.IsEmpty() {
			c.appendHistory(result.ModelContent)
		}

		if len(result.ToolRequests) == 0 {
			if c.nextSpeaker != nil && c.nextSpeaker(ctx, c.chat) {
				c.appendHistory(content.UserContent("Please continue."))
				continue
			}
			c.fireStop(ctx, finalText, stopReason)
			return
		}

		if err := c.scheduler.Schedule(ctx, result.ToolRequests, signal, func(calls []*toolcall.ToolCall) {
			out <- Event{Kind: eventToolCallsUpdate, ToolCallsUpdate: calls}
		}); err != nil {
			out <- Event{Kind: turn.EventError, Err: fmt.Errorf("client: scheduling tools: %w", err)}
			c.fireStop(ctx, finalText, "error")
			return
		}

		select {
		case completed := <-c.completionCh:
			responseParts := make([]content.Part, 0, len(completed))
			for _, call := range completed {
				responseParts = append(responseParts, content.FunctionResponsePart(
					call.Request.CallID, call.Request.Name, call.FunctionResponsePartResponse(),
				))
			}
			c.appendHistory(content.FunctionContent(responseParts...))
		case <-signal.Done():
			out <- Event{Kind: turn.EventError, Err: fmt.Errorf("client: aborted while awaiting tool completion")}
			c.fireStop(ctx, finalText, "cancelled")
			return
		case <-ctx.Done():
			out <- Event{Kind: turn.EventError, Err: ctx.Err()}
			c.fireStop(ctx, finalText, "cancelled")
			return
		}
	}
}

// fireStop fires the Stop lifecycle hook, best-effort: a hook failure or
// block decision here has nothing left to block, so its result is
// discarded beyond whatever logging the hook itself does.
func (c *Client) fireStop(ctx context.Context, response, stopReason string) {
	if c.hookExecutor == nil {
		return
	}
	_, _ = c.hookExecutor.ExecuteHooks(ctx, hooks.Stop, &hooks.StopInput{
		CommonInput: c.hookExecutor.CommonInput(hooks.Stop, "", c.modelName, true),
		Response:    response,
		StopReason:  stopReason,
	})
}

// HandleConfirmationResponse forwards a host's confirmation outcome to
// the owned Scheduler.
func (c *Client) HandleConfirmationResponse(ctx context.Context, callID string, outcome tool.ConfirmationOutcome, signal *abort.Signal, payload map[string]any) error {
	return c.scheduler.HandleConfirmationResponse(ctx, callID, outcome, signal, payload, func(calls []*toolcall.ToolCall) {})
}
