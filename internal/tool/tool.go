// Package tool defines the Tool contract every capability in the
// registry implements, plus the ConfirmationDetails and Result types that
// cross the scheduler boundary.
package tool

import (
	"context"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/content"
)

// Capability is an abstract tag on a tool used for programmatic
// discovery by the registry (query, modify, read, write, search,
// codeExecution, external, mcp, ...).
type Capability string

const (
	CapabilityQuery        Capability = "query"
	CapabilityModify       Capability = "modify"
	CapabilityRead         Capability = "read"
	CapabilityWrite        Capability = "write"
	CapabilitySearch       Capability = "search"
	CapabilityCodeExec     Capability = "codeExecution"
	CapabilityExternal     Capability = "external"
	CapabilityMCP          Capability = "mcp"
	CapabilityNetwork      Capability = "network"
	CapabilityDestructive  Capability = "destructive"
)

// ConfirmationOutcome is the host's resolution of an awaitingApproval call.
type ConfirmationOutcome string

const (
	OutcomeProceedOnce         ConfirmationOutcome = "proceedOnce"
	OutcomeProceedAlwaysTool   ConfirmationOutcome = "proceedAlwaysTool"
	OutcomeProceedAlwaysServer ConfirmationOutcome = "proceedAlwaysServer"
	OutcomeModifyWithEditor    ConfirmationOutcome = "modifyWithEditor"
	OutcomeCancel              ConfirmationOutcome = "cancel"
)

// ConfirmationType distinguishes what kind of action is being confirmed,
// letting a host render type-appropriate UI.
type ConfirmationType string

const (
	ConfirmationExec  ConfirmationType = "exec"
	ConfirmationEdit  ConfirmationType = "edit"
	ConfirmationMCP   ConfirmationType = "mcp"
	ConfirmationOther ConfirmationType = "other"
)

// ConfirmationDetails describes an action requiring user approval before a
// tool executes.
type ConfirmationDetails struct {
	Type ConfirmationType
	Title string
	Risk  string // human-readable risk summary, optional

	// ServerName/ToolName identify the MCP origin for proceedAlwaysServer
	// / proceedAlwaysTool trust-scope bookkeeping. Empty for local tools
	// that only support proceedOnce/cancel.
	ServerName string
	ToolName   string

	// Command is populated for ConfirmationExec to show the user exactly
	// what will run.
	Command string

	// ProposedContent/OriginalContent are populated for ConfirmationEdit.
	ProposedContent string
	OriginalContent string
}

// Result is what a tool's execution produces. LLMContent is what the model
// sees; ReturnDisplay is what a UI renders; they may differ.
type Result struct {
	Summary       string
	LLMContent    []content.Part
	ReturnDisplay string
	Error         string
}

// LLMContentText concatenates the text of every text Part in LLMContent,
// the common case of a tool returning plain text.
func (r *Result) LLMContentText() string {
	if r == nil {
		return ""
	}
	var out string
	for _, p := range r.LLMContent {
		if p.Kind == content.KindText {
			out += p.Text
		}
	}
	return out
}

// TextResult builds a Result whose LLMContent is a single text Part.
func TextResult(text string) *Result {
	return &Result{LLMContent: []content.Part{content.TextPart(text)}, ReturnDisplay: text}
}

// ErrorResult builds a Result carrying an error.
func ErrorResult(err string) *Result {
	return &Result{Error: err}
}

// OutputUpdater streams incremental progress from Execute. Calls must be
// serialized by the tool itself even if it uses internal parallelism.
type OutputUpdater func(chunk string)

// Tool is the polymorphic capability every registry entry implements.
type Tool interface {
	Name() string
	DisplayName() string
	Description() string
	ParameterSchema() map[string]any

	// ValidateParams is pure, synchronous, and cheap.
	ValidateParams(args map[string]any) error

	// GetDescription returns a one-line human summary for confirmation
	// prompts.
	GetDescription(args map[string]any) string

	// ShouldConfirmExecute returns nil to auto-proceed, or
	// ConfirmationDetails describing what must be approved.
	ShouldConfirmExecute(ctx context.Context, args map[string]any, signal *abort.Signal) (*ConfirmationDetails, error)

	// Execute runs the tool. It must honor signal at every I/O point.
	Execute(ctx context.Context, args map[string]any, signal *abort.Signal, update OutputUpdater) (*Result, error)

	// Capabilities returns the capability tags this tool is indexed under.
	Capabilities() []Capability
}
