package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/mark3labs/mcp-go/mcp"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/tool"
)

// ToolAdapter wraps one discovered MCP tool as a tool.Tool. It holds a
// reference to the owning Manager (looked up by server name), never the
// underlying session handle directly.
type ToolAdapter struct {
	manager    *Manager
	trust      *TrustStore
	serverName string
	rawName    string
	sanitized  string
	info       ToolInfo
	cfgTrust   bool
}

// NewToolAdapter wraps info (discovered on serverName) as a tool.Tool.
// cfgTrust is the server config's static trust flag.
func NewToolAdapter(manager *Manager, trust *TrustStore, serverName string, info ToolInfo, cfgTrust bool) *ToolAdapter {
	return &ToolAdapter{
		manager:    manager,
		trust:      trust,
		serverName: serverName,
		rawName:    info.Name,
		sanitized:  SanitizeToolName(serverName, info.Name),
		info:       info,
		cfgTrust:   cfgTrust,
	}
}

func (a *ToolAdapter) Name() string        { return a.sanitized }
func (a *ToolAdapter) DisplayName() string { return a.serverName + "/" + a.rawName }
func (a *ToolAdapter) Description() string { return a.info.Description }

func (a *ToolAdapter) ParameterSchema() map[string]any {
	if a.info.Schema == nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}
	}
	return a.info.Schema
}

func (a *ToolAdapter) ValidateParams(args map[string]any) error {
	return nil
}

func (a *ToolAdapter) GetDescription(args map[string]any) string {
	return fmt.Sprintf("call %s on MCP server %s", a.rawName, a.serverName)
}

// ShouldConfirmExecute returns nil (auto-proceed) if the server or this
// exact tool is in the trust set or the server config marked it trusted;
// otherwise it builds ConfirmationDetails naming server+tool+args.
func (a *ToolAdapter) ShouldConfirmExecute(ctx context.Context, args map[string]any, signal *abort.Signal) (*tool.ConfirmationDetails, error) {
	if a.cfgTrust || a.trust.IsTrusted(a.serverName, a.rawName) {
		return nil, nil
	}
	return &tool.ConfirmationDetails{
		Type:       tool.ConfirmationMCP,
		Title:      fmt.Sprintf("Run %s on %s?", a.rawName, a.serverName),
		ServerName: a.serverName,
		ToolName:   a.rawName,
		Command:    fmt.Sprintf("%s(%v)", a.rawName, args),
	}, nil
}

// ResolveOutcome applies the host's confirmation outcome to the trust
// store. proceedOnce and cancel leave trust unchanged.
func (a *ToolAdapter) ResolveOutcome(outcome tool.ConfirmationOutcome) {
	switch outcome {
	case tool.OutcomeProceedAlwaysServer:
		a.trust.TrustServer(a.serverName)
	case tool.OutcomeProceedAlwaysTool:
		a.trust.TrustTool(a.serverName, a.rawName)
	}
}

// Execute invokes Manager.CallTool and translates the response: the
// content array concatenates into LLMContent; isError=true becomes
// Result.Error.
func (a *ToolAdapter) Execute(ctx context.Context, args map[string]any, signal *abort.Signal, update tool.OutputUpdater) (*tool.Result, error) {
	result, err := a.manager.CallTool(ctx, a.serverName, a.rawName, args)
	if err != nil {
		return tool.ErrorResult(err.Error()), nil
	}

	var sb strings.Builder
	for _, c := range result.Content {
		if text, ok := c.(mcpsdk.TextContent); ok {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(text.Text)
		}
	}
	text := sb.String()

	if result.IsError {
		return tool.ErrorResult(text), nil
	}
	return &tool.Result{
		LLMContent:    []content.Part{content.TextPart(text)},
		ReturnDisplay: text,
	}, nil
}

// Capabilities infers hints from the tool name/description via string
// matching on file/query/http/execute keywords, grounded on the
// original mcp_adapter.py's capability inference.
func (a *ToolAdapter) Capabilities() []tool.Capability {
	caps := []tool.Capability{tool.CapabilityMCP, tool.CapabilityExternal}
	haystack := strings.ToLower(a.rawName + " " + a.info.Description)
	switch {
	case strings.Contains(haystack, "write") || strings.Contains(haystack, "delete") || strings.Contains(haystack, "create"):
		caps = append(caps, tool.CapabilityModify)
	case strings.Contains(haystack, "read") || strings.Contains(haystack, "get") || strings.Contains(haystack, "list"):
		caps = append(caps, tool.CapabilityRead)
	}
	if strings.Contains(haystack, "search") || strings.Contains(haystack, "query") {
		caps = append(caps, tool.CapabilityQuery, tool.CapabilitySearch)
	}
	if strings.Contains(haystack, "http") || strings.Contains(haystack, "fetch") || strings.Contains(haystack, "url") {
		caps = append(caps, tool.CapabilityNetwork)
	}
	if strings.Contains(haystack, "exec") || strings.Contains(haystack, "run") || strings.Contains(haystack, "shell") {
		caps = append(caps, tool.CapabilityCodeExec)
	}
	return caps
}

var _ tool.Tool = (*ToolAdapter)(nil)
