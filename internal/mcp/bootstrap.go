package mcp

import (
	"context"
	"fmt"

	"github.com/dbrheo/agentcore/internal/registry"
)

// AddServer connects to cfg and registers every filtered tool it exposes
// into reg, wrapped as ToolAdapters.
func (m *Manager) AddServer(ctx context.Context, reg *registry.Registry, trust *TrustStore, name string, cfg ServerConfig) error {
	if err := m.Connect(ctx, name, cfg); err != nil {
		return fmt.Errorf("mcp: adding server %s: %w", name, err)
	}
	for _, info := range m.GetServerTools(name) {
		adapter := NewToolAdapter(m, trust, name, info, cfg.Trust)
		reg.Register(adapter, adapter.Capabilities(), []string{"mcp:" + name}, 0, map[string]any{"server": name})
	}
	return nil
}

// RemoveServer unregisters name's tools from reg and disconnects it.
func (m *Manager) RemoveServer(reg *registry.Registry, name string) error {
	for _, info := range m.GetServerTools(name) {
		sanitized := SanitizeToolName(name, info.Name)
		reg.Unregister(sanitized)
	}
	return m.Disconnect(name)
}
