package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpsdk "github.com/mark3labs/mcp-go/mcp"

	"github.com/dbrheo/agentcore/internal/tools"
)

// Status is the 4-state server connection lifecycle.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusError        Status = "error"
)

// ToolInfo is one tool discovered from a server, before sanitization.
type ToolInfo struct {
	Name        string
	Description string
	Schema      map[string]any
}

type serverConnection struct {
	config ServerConfig
	status Status
	err    error
	sess   session
	tools  []ToolInfo
}

// StatusListener is notified on every server status transition.
type StatusListener func(serverName string, status Status, err error)

// Manager owns every MCP subprocess/transport handle. Adapters hold a
// weak reference (lookup by server name), never the handle itself.
// Connect and Disconnect take no per-server lock: concurrent calls for
// the same server name are not serialized against each other.
type Manager struct {
	mu        sync.RWMutex
	servers   map[string]*serverConnection
	listeners []StatusListener
	debug     tools.DebugLogger
}

// NewManager creates an empty Manager. Debug output is discarded until
// SetDebugLogger is called.
func NewManager() *Manager {
	return &Manager{servers: map[string]*serverConnection{}, debug: tools.NewSimpleDebugLogger(false)}
}

// SetDebugLogger replaces the Manager's debug sink. Connect/Discover/
// CallTool/Disconnect all funnel their per-server debug lines through it
// rather than writing directly to the terminal, so that concurrent
// servers (DiscoverAllServers, DisconnectAll) don't interleave output —
// the teacher's internal/tools.BufferedDebugLogger pattern, with the
// draining done by whatever host surface renders it (internal/ui's debug
// logger in the interactive CLI).
func (m *Manager) SetDebugLogger(l tools.DebugLogger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l == nil {
		l = tools.NewSimpleDebugLogger(false)
	}
	m.debug = l
}

func (m *Manager) logDebugf(format string, args ...any) {
	m.mu.RLock()
	logger := m.debug
	m.mu.RUnlock()
	if logger == nil || !logger.IsDebugEnabled() {
		return
	}
	logger.LogDebug(fmt.Sprintf(format, args...))
}

// AddStatusListener registers l to be called on every status change.
func (m *Manager) AddStatusListener(l StatusListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Manager) setStatus(name string, status Status, err error) {
	m.mu.Lock()
	conn, ok := m.servers[name]
	if !ok {
		conn = &serverConnection{}
		m.servers[name] = conn
	}
	conn.status = status
	conn.err = err
	listeners := append([]StatusListener(nil), m.listeners...)
	m.mu.Unlock()

	if err != nil {
		m.logDebugf("mcp: server %s -> %s (%v)", name, status, err)
	} else {
		m.logDebugf("mcp: server %s -> %s", name, status)
	}

	for _, l := range listeners {
		l(name, status, err)
	}
}

// GetStatus returns the current status for name.
func (m *Manager) GetStatus(name string) (Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conn, ok := m.servers[name]
	if !ok {
		return StatusDisconnected, nil
	}
	return conn.status, conn.err
}

// GetAllStatuses returns every known server's status.
func (m *Manager) GetAllStatuses() map[string]Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Status, len(m.servers))
	for name, conn := range m.servers {
		out[name] = conn.status
	}
	return out
}

// Connect spawns/opens cfg's transport, runs the MCP initialize handshake,
// and immediately discovers tools. On any failure it tears down the
// partial context and transitions to error.
func (m *Manager) Connect(ctx context.Context, name string, cfg ServerConfig) error {
	cfg = cfg.Substituted()
	if err := cfg.Validate(); err != nil {
		m.setStatus(name, StatusError, err)
		return err
	}

	m.setStatus(name, StatusConnecting, nil)

	sess, err := dialTransport(ctx, cfg)
	if err != nil {
		m.setStatus(name, StatusError, err)
		return err
	}

	initCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	initReq := mcpsdk.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcpsdk.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcpsdk.Implementation{Name: "agentcore", Version: "0.1.0"}
	if _, err := sess.Initialize(initCtx, initReq); err != nil {
		_ = sess.Close()
		m.setStatus(name, StatusError, err)
		return fmt.Errorf("mcp: initializing server %s: %w", name, err)
	}

	m.mu.Lock()
	m.servers[name] = &serverConnection{config: cfg, status: StatusConnecting, sess: sess}
	m.mu.Unlock()

	if err := m.discoverLocked(ctx, name); err != nil {
		_ = sess.Close()
		m.setStatus(name, StatusError, err)
		return err
	}

	m.setStatus(name, StatusConnected, nil)
	return nil
}

// Discover re-runs listTools for name, clearing and reloading its tool
// list. Idempotent.
func (m *Manager) Discover(ctx context.Context, name string) error {
	return m.discoverLocked(ctx, name)
}

func (m *Manager) discoverLocked(ctx context.Context, name string) error {
	m.mu.RLock()
	conn, ok := m.servers[name]
	m.mu.RUnlock()
	if !ok || conn.sess == nil {
		return fmt.Errorf("mcp: server %s not connected", name)
	}

	listCtx, cancel := context.WithTimeout(ctx, conn.config.Timeout)
	defer cancel()
	result, err := conn.sess.ListTools(listCtx, mcpsdk.ListToolsRequest{})
	if err != nil {
		return fmt.Errorf("mcp: listing tools on %s: %w", name, err)
	}

	discovered := make([]ToolInfo, 0, len(result.Tools))
	for _, t := range result.Tools {
		if !conn.config.allowsTool(t.Name) {
			continue
		}
		discovered = append(discovered, ToolInfo{
			Name:        t.Name,
			Description: t.Description,
			Schema:      schemaToMap(t.InputSchema),
		})
	}

	m.mu.Lock()
	conn.tools = discovered
	m.mu.Unlock()
	m.logDebugf("mcp: server %s exposes %d tool(s) after filtering", name, len(discovered))
	return nil
}

// GetServerTools returns the discovered tools for one server.
func (m *Manager) GetServerTools(name string) []ToolInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conn, ok := m.servers[name]
	if !ok {
		return nil
	}
	return append([]ToolInfo(nil), conn.tools...)
}

// GetAllTools returns every discovered tool across every connected server,
// keyed by server name.
func (m *Manager) GetAllTools() map[string][]ToolInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]ToolInfo, len(m.servers))
	for name, conn := range m.servers {
		out[name] = append([]ToolInfo(nil), conn.tools...)
	}
	return out
}

// CallResult is the outcome of a routed tool call.
type CallResult struct {
	Content []mcpsdk.Content
	IsError bool
}

// CallTool routes to the initialized session for server, applying the
// server's per-call timeout.
func (m *Manager) CallTool(ctx context.Context, server, name string, args map[string]any) (*CallResult, error) {
	m.mu.RLock()
	conn, ok := m.servers[server]
	m.mu.RUnlock()
	if !ok || conn.sess == nil {
		return nil, fmt.Errorf("mcp: server %s not connected", server)
	}

	callCtx, cancel := context.WithTimeout(ctx, conn.config.Timeout)
	defer cancel()

	m.logDebugf("mcp: calling %s on %s", name, server)

	req := mcpsdk.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := conn.sess.CallTool(callCtx, req)
	if err != nil {
		return nil, fmt.Errorf("mcp: calling %s on %s: %w", name, server, err)
	}
	return &CallResult{Content: result.Content, IsError: result.IsError}, nil
}

// Disconnect closes the session and transport in reverse order of
// acquisition, transitions to disconnected, and clears the tool list.
func (m *Manager) Disconnect(name string) error {
	m.mu.Lock()
	conn, ok := m.servers[name]
	if ok {
		conn.tools = nil
	}
	m.mu.Unlock()
	if !ok {
		return nil
	}

	var err error
	if conn.sess != nil {
		err = conn.sess.Close()
	}
	m.setStatus(name, StatusDisconnected, nil)
	return err
}

// DisconnectAll disconnects every server in parallel and waits for all to
// finish.
func (m *Manager) DisconnectAll() {
	m.mu.RLock()
	names := make([]string, 0, len(m.servers))
	for n := range m.servers {
		names = append(names, n)
	}
	m.mu.RUnlock()

	var wg sync.WaitGroup
	for _, n := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_ = m.Disconnect(name)
		}(n)
	}
	wg.Wait()
}

// DiscoverAllServers connects every given server concurrently, collecting
// per-server errors rather than failing the whole batch (the Go analogue
// of asyncio.gather(return_exceptions=True)).
func (m *Manager) DiscoverAllServers(ctx context.Context, configs map[string]ServerConfig) map[string]error {
	results := make(map[string]error, len(configs))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		wg.Add(1)
		go func(name string, cfg ServerConfig) {
			defer wg.Done()
			err := m.Connect(ctx, name, cfg)
			mu.Lock()
			results[name] = err
			mu.Unlock()
		}(name, cfg)
	}
	wg.Wait()
	return results
}

func schemaToMap(s mcpsdk.ToolInputSchema) map[string]any {
	out := map[string]any{"type": "object"}
	if len(s.Properties) > 0 {
		out["properties"] = s.Properties
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}
