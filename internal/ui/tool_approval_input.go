package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbrheo/agentcore/internal/tool"
)

// ToolApprovalInput renders a pending tool confirmation and collects the
// host's resolution as a tool.ConfirmationOutcome. Adapted from the
// teacher's binary yes/no approval prompt: a confirmation can resolve to
// more than accept/reject (proceedOnce, proceedAlwaysTool,
// proceedAlwaysServer, cancel), so selection cycles through whichever
// outcomes the ConfirmationDetails actually supports instead of a fixed
// two-choice toggle.
type ToolApprovalInput struct {
	textarea textarea.Model
	details  *tool.ConfirmationDetails
	options  []tool.ConfirmationOutcome
	width    int
	cursor   int
	outcome  tool.ConfirmationOutcome
	done     bool
}

// NewToolApprovalInput builds a prompt for details. When details names a
// ServerName/ToolName (an MCP-originated call), the matching always-trust
// option is offered alongside proceedOnce/cancel.
func NewToolApprovalInput(details *tool.ConfirmationDetails, width int) *ToolApprovalInput {
	ta := textarea.New()
	ta.Placeholder = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 1000
	ta.SetWidth(width - 8) // Account for container padding, border and internal padding
	ta.SetHeight(4)        // 4 lines tall
	ta.Focus()

	// Style the textarea to match huh theme
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	ta.FocusedStyle.Prompt = lipgloss.NewStyle()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	options := []tool.ConfirmationOutcome{tool.OutcomeProceedOnce}
	if details.ToolName != "" {
		options = append(options, tool.OutcomeProceedAlwaysTool)
	}
	if details.ServerName != "" {
		options = append(options, tool.OutcomeProceedAlwaysServer)
	}
	options = append(options, tool.OutcomeCancel)

	return &ToolApprovalInput{
		textarea: ta,
		details:  details,
		options:  options,
		width:    width,
	}
}

func (t *ToolApprovalInput) Init() tea.Cmd {
	return textarea.Blink
}

// Outcome returns the resolved outcome; only meaningful once Done()
// reports true.
func (t *ToolApprovalInput) Outcome() tool.ConfirmationOutcome { return t.outcome }

// Done reports whether the user has resolved this confirmation.
func (t *ToolApprovalInput) Done() bool { return t.done }

func (t *ToolApprovalInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left":
			t.cursor = (t.cursor - 1 + len(t.options)) % len(t.options)
			return t, nil
		case "right", "tab":
			t.cursor = (t.cursor + 1) % len(t.options)
			return t, nil
		case "enter", " ":
			t.outcome = t.options[t.cursor]
			t.done = true
			return t, tea.Quit
		case "y":
			t.outcome = tool.OutcomeProceedOnce
			t.done = true
			return t, tea.Quit
		case "n":
			t.outcome = tool.OutcomeCancel
			t.done = true
			return t, tea.Quit
		case "esc", "ctrl+c":
			t.outcome = tool.OutcomeCancel
			t.done = true
			return t, tea.Quit
		}
	}
	return t, nil
}

func (t *ToolApprovalInput) View() string {
	if t.done {
		return fmt.Sprintf("resolved: %s\n", t.outcome)
	}
	// Add left padding to entire component (2 spaces like other UI elements)
	containerStyle := lipgloss.NewStyle().PaddingLeft(2)

	// Title
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		MarginBottom(1)

	// Input box with huh-like styling
	inputBoxStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		BorderForeground(lipgloss.Color("39")).
		PaddingLeft(1).
		Width(t.width - 2) // Account for container padding

	// Style for the currently selected/highlighted option
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")). // Bright green
		Bold(true).
		Underline(true)

	// Style for the unselected/unhighlighted option
	unselectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")) // Dark gray

	// Build the view
	var view strings.Builder
	view.WriteString(titleStyle.Render(confirmationTitle(t.details.Type)))
	view.WriteString("\n")
	view.WriteString(fmt.Sprintf("Tool: %s\n", t.details.Title))
	if t.details.Command != "" {
		view.WriteString(fmt.Sprintf("Command: %s\n", t.details.Command))
	}
	if t.details.Risk != "" {
		view.WriteString(fmt.Sprintf("Risk: %s\n", t.details.Risk))
	}
	view.WriteString("\n")

	labels := make([]string, len(t.options))
	for i, opt := range t.options {
		label := outcomeLabel(opt)
		if i == t.cursor {
			labels[i] = selectedStyle.Render(label)
		} else {
			labels[i] = unselectedStyle.Render(label)
		}
	}
	view.WriteString(strings.Join(labels, "  "))
	view.WriteString("\n")

	return containerStyle.Render(inputBoxStyle.Render(view.String()))
}

func confirmationTitle(t tool.ConfirmationType) string {
	switch t {
	case tool.ConfirmationExec:
		return "Allow command execution"
	case tool.ConfirmationEdit:
		return "Allow file edit"
	case tool.ConfirmationMCP:
		return "Allow MCP tool call"
	default:
		return "Allow tool execution"
	}
}

func outcomeLabel(o tool.ConfirmationOutcome) string {
	switch o {
	case tool.OutcomeProceedOnce:
		return "[y]es, once"
	case tool.OutcomeProceedAlwaysTool:
		return "always for this tool"
	case tool.OutcomeProceedAlwaysServer:
		return "always for this server"
	case tool.OutcomeCancel:
		return "[n]o, cancel"
	default:
		return string(o)
	}
}
