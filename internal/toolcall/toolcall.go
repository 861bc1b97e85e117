// Package toolcall defines ToolCallRequest and the seven-state ToolCall
// record driven by the scheduler. Grounded on the per-status dataclasses
// of the original scheduler implementation, collapsed into one flat Go
// struct gated by Status rather than a class per state.
package toolcall

import (
	"time"

	"github.com/dbrheo/agentcore/internal/tool"
)

// Status is one of the seven states a ToolCall can occupy.
type Status int

const (
	StatusValidating Status = iota
	StatusScheduled
	StatusAwaitingApproval
	StatusExecuting
	StatusSuccess
	StatusError
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusValidating:
		return "validating"
	case StatusScheduled:
		return "scheduled"
	case StatusAwaitingApproval:
		return "awaitingApproval"
	case StatusExecuting:
		return "executing"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether s is one of success, error, or cancelled.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusError || s == StatusCancelled
}

// Request is one requested tool invocation, materialized from a model
// functionCall chunk. CallID must be unique within a batch.
type Request struct {
	CallID            string
	Name              string
	Args              map[string]any
	IsClientInitiated bool
	PromptID          string
}

// ToolCall is the mutable state-machine record the scheduler owns for one
// Request as it moves from validating through to a terminal status.
type ToolCall struct {
	Request Request
	Status  Status

	Tool tool.Tool // resolved once, nil only if Status==StatusError from a lookup miss

	ConfirmationDetails *tool.ConfirmationDetails
	LiveOutput          string

	Response   *tool.Result
	StartTime  time.Time
	DurationMs int64
}

// New creates a validating ToolCall with StartTime captured now.
func New(req Request, t tool.Tool) *ToolCall {
	return &ToolCall{Request: req, Status: StatusValidating, Tool: t, StartTime: time.Now()}
}

// FunctionResponsePartResponse returns the response map ({"error": ...} or
// {"output": ...}) of the functionResponse Part owed to the model for a
// terminal ToolCall. Callers must only invoke this once Status is
// terminal; it panics otherwise to surface a scheduler bug immediately.
func (c *ToolCall) FunctionResponsePartResponse() map[string]any {
	if !c.Status.IsTerminal() {
		panic("toolcall: FunctionResponsePartResponse called on non-terminal call")
	}
	if c.Response == nil {
		return map[string]any{"error": "no result recorded"}
	}
	if c.Response.Error != "" {
		return map[string]any{"error": c.Response.Error}
	}
	return map[string]any{"output": c.Response.LLMContentText()}
}
