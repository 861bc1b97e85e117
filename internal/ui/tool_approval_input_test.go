package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dbrheo/agentcore/internal/tool"
)

func TestToolApprovalInputLocalToolOffersOnlyOnceAndCancel(t *testing.T) {
	input := NewToolApprovalInput(&tool.ConfirmationDetails{Type: tool.ConfirmationExec, Title: "rm file"}, 80)
	if len(input.options) != 2 {
		t.Fatalf("expected 2 options for a local tool, got %d: %v", len(input.options), input.options)
	}
	if input.options[0] != tool.OutcomeProceedOnce || input.options[len(input.options)-1] != tool.OutcomeCancel {
		t.Fatalf("unexpected option set: %v", input.options)
	}
}

func TestToolApprovalInputMCPToolOffersAlwaysTrustOptions(t *testing.T) {
	input := NewToolApprovalInput(&tool.ConfirmationDetails{
		Type:       tool.ConfirmationMCP,
		Title:      "search",
		ServerName: "brave-search",
		ToolName:   "search",
	}, 80)
	if len(input.options) != 4 {
		t.Fatalf("expected 4 options for an MCP tool, got %d: %v", len(input.options), input.options)
	}
}

func TestToolApprovalInputEnterResolvesSelectedOutcome(t *testing.T) {
	input := NewToolApprovalInput(&tool.ConfirmationDetails{Type: tool.ConfirmationExec, Title: "ls"}, 80)
	input.Update(tea.KeyMsg{Type: tea.KeyRight})
	model, _ := input.Update(tea.KeyMsg{Type: tea.KeyEnter})

	resolved := model.(*ToolApprovalInput)
	if !resolved.Done() {
		t.Fatal("expected Done() after enter")
	}
	if resolved.Outcome() != tool.OutcomeCancel {
		t.Fatalf("expected cancel (second option for a local tool), got %s", resolved.Outcome())
	}
}

func TestToolApprovalInputEscCancels(t *testing.T) {
	input := NewToolApprovalInput(&tool.ConfirmationDetails{Type: tool.ConfirmationExec, Title: "ls"}, 80)
	model, _ := input.Update(tea.KeyMsg{Type: tea.KeyEsc})

	resolved := model.(*ToolApprovalInput)
	if resolved.Outcome() != tool.OutcomeCancel {
		t.Fatalf("expected esc to resolve to cancel, got %s", resolved.Outcome())
	}
}
