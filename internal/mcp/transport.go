package mcp

import (
	"context"
	"fmt"

	mcpclient "github.com/mark3labs/mcp-go/client"
	mcpsdk "github.com/mark3labs/mcp-go/mcp"
)

// session is the minimal surface this package needs from an mcp-go
// client, narrowed so the manager doesn't depend on the full MCPClient
// interface's transport-specific extras.
type session interface {
	Initialize(ctx context.Context, req mcpsdk.InitializeRequest) (*mcpsdk.InitializeResult, error)
	ListTools(ctx context.Context, req mcpsdk.ListToolsRequest) (*mcpsdk.ListToolsResult, error)
	CallTool(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error)
	Close() error
}

// dialTransport opens the session for cfg's transport without performing
// the MCP initialize handshake; Connect in manager.go does that next.
func dialTransport(ctx context.Context, cfg ServerConfig) (session, error) {
	switch cfg.Transport {
	case TransportStdio:
		env := make([]string, 0, len(cfg.Env))
		for k, v := range cfg.Env {
			env = append(env, k+"="+v)
		}
		c, err := mcpclient.NewStdioMCPClient(cfg.Command, env, cfg.Args...)
		if err != nil {
			return nil, fmt.Errorf("mcp: spawning stdio server: %w", err)
		}
		return c, nil
	case TransportSSE:
		c, err := mcpclient.NewSSEMCPClient(cfg.URL, mcpclient.WithHeaders(cfg.Headers))
		if err != nil {
			return nil, fmt.Errorf("mcp: dialing sse server: %w", err)
		}
		if err := c.Start(ctx); err != nil {
			return nil, fmt.Errorf("mcp: starting sse session: %w", err)
		}
		return c, nil
	case TransportHTTP:
		c, err := mcpclient.NewStreamableHttpClient(cfg.URL, mcpclient.WithHTTPHeaders(cfg.Headers))
		if err != nil {
			return nil, fmt.Errorf("mcp: dialing http server: %w", err)
		}
		return c, nil
	case TransportWebSocket:
		return newWebSocketSession(ctx, cfg)
	case TransportInProcess:
		c, err := mcpclient.NewInProcessClient(cfg.InProcessServer)
		if err != nil {
			return nil, fmt.Errorf("mcp: starting in-process server: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("mcp: unsupported transport %q", cfg.Transport)
	}
}
